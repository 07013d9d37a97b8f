package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/escrow/types"
)

var _ types.MsgServer = msgServer{}

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

// CreateWallet handles wallet creation through the factory
func (ms msgServer) CreateWallet(goCtx context.Context, msg *types.MsgCreateWallet) (*types.MsgCreateWalletResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid owner address: %v", err)
	}

	walletAddr, err := ms.Keeper.CreateWallet(ctx, owner)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateWalletResponse{Address: walletAddr.String()}, nil
}

// Deposit handles funding a wallet
func (ms msgServer) Deposit(goCtx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	depositor, err := sdk.AccAddressFromBech32(msg.Depositor)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid depositor address: %v", err)
	}
	walletAddr, err := sdk.AccAddressFromBech32(msg.Wallet)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid wallet address: %v", err)
	}

	if err := ms.Keeper.Deposit(ctx, depositor, walletAddr, msg.Amount); err != nil {
		return nil, err
	}

	return &types.MsgDepositResponse{}, nil
}

// Withdraw handles withdrawing unlocked funds from a wallet
func (ms msgServer) Withdraw(goCtx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid owner address: %v", err)
	}
	walletAddr, err := sdk.AccAddressFromBech32(msg.Wallet)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid wallet address: %v", err)
	}

	recipient := owner
	if msg.Recipient != "" {
		recipient, err = sdk.AccAddressFromBech32(msg.Recipient)
		if err != nil {
			return nil, types.ErrInvalidAddress.Wrapf("invalid recipient address: %v", err)
		}
	}

	if err := ms.Keeper.Withdraw(ctx, owner, walletAddr, recipient, msg.Amount); err != nil {
		return nil, err
	}

	return &types.MsgWithdrawResponse{}, nil
}

// Approve handles setting a spender allowance on a wallet
func (ms msgServer) Approve(goCtx context.Context, msg *types.MsgApprove) (*types.MsgApproveResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid owner address: %v", err)
	}
	walletAddr, err := sdk.AccAddressFromBech32(msg.Wallet)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid wallet address: %v", err)
	}
	spender, err := sdk.AccAddressFromBech32(msg.Spender)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid spender address: %v", err)
	}

	if err := ms.Keeper.Approve(ctx, owner, walletAddr, spender, msg.Denom, msg.Amount); err != nil {
		return nil, err
	}

	return &types.MsgApproveResponse{}, nil
}
