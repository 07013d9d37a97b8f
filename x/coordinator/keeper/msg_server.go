package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/chime-chain/chime/x/coordinator/types"
	sharedkeeper "github.com/chime-chain/chime/x/shared/keeper"
)

var _ types.MsgServer = msgServer{}

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

// CreateSubscription handles direct subscription creation by the owner
func (ms msgServer) CreateSubscription(goCtx context.Context, msg *types.MsgCreateSubscription) (*types.MsgCreateSubscriptionResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	id, err := ms.Keeper.CreateSubscription(ctx, types.Subscription{
		Owner:         msg.Owner,
		ActiveAt:      msg.ActiveAt,
		Period:        msg.Period,
		Frequency:     msg.Frequency,
		Redundancy:    msg.Redundancy,
		ContainerId:   msg.ContainerId,
		Lazy:          msg.Lazy,
		Prover:        msg.Prover,
		PaymentToken:  msg.PaymentToken,
		PaymentAmount: msg.PaymentAmount,
		Wallet:        msg.Wallet,
	})
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateSubscriptionResponse{Id: id}, nil
}

// CancelSubscription handles owner cancellation
func (ms msgServer) CancelSubscription(goCtx context.Context, msg *types.MsgCancelSubscription) (*types.MsgCancelSubscriptionResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid owner address: %v", err)
	}

	if err := ms.Keeper.CancelSubscription(ctx, owner, msg.Id); err != nil {
		return nil, err
	}

	return &types.MsgCancelSubscriptionResponse{}, nil
}

// DeliverCompute handles a node's compute delivery
func (ms msgServer) DeliverCompute(goCtx context.Context, msg *types.MsgDeliverCompute) (*types.MsgDeliverComputeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	node, err := sdk.AccAddressFromBech32(msg.Node)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid node address: %v", err)
	}

	accepted, pending, err := ms.Keeper.DeliverCompute(ctx, node, msg.SubscriptionId, msg.Interval, msg.Input, msg.Output, msg.Proof)
	if err != nil {
		return nil, err
	}

	return &types.MsgDeliverComputeResponse{
		AcceptedCount: accepted,
		Pending:       pending,
	}, nil
}

// FinalizeProofValidation handles the prover's verdict on a pending delivery
func (ms msgServer) FinalizeProofValidation(goCtx context.Context, msg *types.MsgFinalizeProofValidation) (*types.MsgFinalizeProofValidationResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	prover, err := sdk.AccAddressFromBech32(msg.Prover)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid prover address: %v", err)
	}
	node, err := sdk.AccAddressFromBech32(msg.Node)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid node address: %v", err)
	}

	if err := ms.Keeper.FinalizeProofValidation(ctx, prover, msg.SubscriptionId, msg.Interval, node, msg.Valid); err != nil {
		return nil, err
	}

	return &types.MsgFinalizeProofValidationResponse{}, nil
}

// SetDelegateSigner handles registering an owner's delegated signing key
func (ms msgServer) SetDelegateSigner(goCtx context.Context, msg *types.MsgSetDelegateSigner) (*types.MsgSetDelegateSignerResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid owner address: %v", err)
	}

	ms.Keeper.SetDelegateSigner(ctx, owner, common.HexToAddress(msg.Signer))

	return &types.MsgSetDelegateSignerResponse{}, nil
}

// CreateSubscriptionDelegatee handles relayed creation from a signed envelope
func (ms msgServer) CreateSubscriptionDelegatee(goCtx context.Context, msg *types.MsgCreateSubscriptionDelegatee) (*types.MsgCreateSubscriptionDelegateeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	id, err := ms.Keeper.CreateSubscriptionDelegatee(ctx, types.DelegateSubscription{
		Nonce:        msg.Nonce,
		Expiry:       msg.Expiry,
		Subscription: msg.Subscription,
	}, msg.Signature)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateSubscriptionDelegateeResponse{Id: id}, nil
}

// UpdateParams handles governance parameter updates
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}

	if err := ms.Keeper.SetParams(ctx, msg.Params); err != nil {
		return nil, types.ErrInvalidParams.Wrap(err.Error())
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeParamsUpdated,
			sdk.NewAttribute(types.AttributeKeyAuthority, msg.Authority),
		),
	)

	return &types.MsgUpdateParamsResponse{}, nil
}
