package types

import (
	"context"

	"cosmossdk.io/math"
	"github.com/cosmos/gogoproto/proto"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgServer is the server API for the escrow Msg service.
type MsgServer interface {
	CreateWallet(context.Context, *MsgCreateWallet) (*MsgCreateWalletResponse, error)
	Deposit(context.Context, *MsgDeposit) (*MsgDepositResponse, error)
	Withdraw(context.Context, *MsgWithdraw) (*MsgWithdrawResponse, error)
	Approve(context.Context, *MsgApprove) (*MsgApproveResponse, error)
}

// Message type URLs
const (
	TypeMsgCreateWallet = "create_wallet"
	TypeMsgDeposit      = "deposit"
	TypeMsgWithdraw     = "withdraw"
	TypeMsgApprove      = "approve"
)

var (
	_ sdk.Msg = &MsgCreateWallet{}
	_ sdk.Msg = &MsgDeposit{}
	_ sdk.Msg = &MsgWithdraw{}
	_ sdk.Msg = &MsgApprove{}
)

// MsgCreateWallet creates a new escrow wallet owned by Owner. The wallet
// address is derived by the keeper and returned in the response.
type MsgCreateWallet struct {
	Creator string `json:"creator"`
	Owner   string `json:"owner"`
}

// MsgCreateWalletResponse carries the derived wallet address.
type MsgCreateWalletResponse struct {
	Address string `json:"address"`
}

// MsgDeposit moves funds from the depositor into an escrow wallet. Any
// account may fund any wallet.
type MsgDeposit struct {
	Depositor string   `json:"depositor"`
	Wallet    string   `json:"wallet"`
	Amount    sdk.Coin `json:"amount"`
}

// MsgDepositResponse is the MsgDeposit response type.
type MsgDepositResponse struct{}

// MsgWithdraw moves unlocked funds out of an escrow wallet. Only the wallet
// owner may withdraw; Recipient defaults to the owner when empty.
type MsgWithdraw struct {
	Owner     string   `json:"owner"`
	Wallet    string   `json:"wallet"`
	Recipient string   `json:"recipient,omitempty"`
	Amount    sdk.Coin `json:"amount"`
}

// MsgWithdrawResponse is the MsgWithdraw response type.
type MsgWithdrawResponse struct{}

// MsgApprove sets the allowance of (spender, denom) on a wallet to Amount.
// Only the wallet owner may set allowances.
type MsgApprove struct {
	Owner   string   `json:"owner"`
	Wallet  string   `json:"wallet"`
	Spender string   `json:"spender"`
	Denom   string   `json:"denom"`
	Amount  math.Int `json:"amount"`
}

// MsgApproveResponse is the MsgApprove response type.
type MsgApproveResponse struct{}

// proto.Message conformance for the legacy message router and Any packing.

func (msg *MsgCreateWallet) Reset()         { *msg = MsgCreateWallet{} }
func (msg *MsgCreateWallet) String() string { return proto.CompactTextString(msg) }
func (msg *MsgCreateWallet) ProtoMessage()  {}

func (msg *MsgDeposit) Reset()         { *msg = MsgDeposit{} }
func (msg *MsgDeposit) String() string { return proto.CompactTextString(msg) }
func (msg *MsgDeposit) ProtoMessage()  {}

func (msg *MsgWithdraw) Reset()         { *msg = MsgWithdraw{} }
func (msg *MsgWithdraw) String() string { return proto.CompactTextString(msg) }
func (msg *MsgWithdraw) ProtoMessage()  {}

func (msg *MsgApprove) Reset()         { *msg = MsgApprove{} }
func (msg *MsgApprove) String() string { return proto.CompactTextString(msg) }
func (msg *MsgApprove) ProtoMessage()  {}

// GetSigners implementations - these assume addresses are valid (validated in ValidateBasic)

// GetSigners returns the expected signers for MsgCreateWallet
func (msg *MsgCreateWallet) GetSigners() []sdk.AccAddress {
	creator, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{creator}
}

// GetSigners returns the expected signers for MsgDeposit
func (msg *MsgDeposit) GetSigners() []sdk.AccAddress {
	depositor, _ := sdk.AccAddressFromBech32(msg.Depositor)
	return []sdk.AccAddress{depositor}
}

// GetSigners returns the expected signers for MsgWithdraw
func (msg *MsgWithdraw) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{owner}
}

// GetSigners returns the expected signers for MsgApprove
func (msg *MsgApprove) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{owner}
}

// ValidateBasic performs stateless validation of MsgCreateWallet
func (msg *MsgCreateWallet) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return ErrInvalidAddress.Wrapf("invalid creator address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrInvalidAddress.Wrapf("invalid owner address: %s", err)
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgDeposit
func (msg *MsgDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositor); err != nil {
		return ErrInvalidAddress.Wrapf("invalid depositor address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Wallet); err != nil {
		return ErrInvalidAddress.Wrapf("invalid wallet address: %s", err)
	}
	if !msg.Amount.IsValid() || msg.Amount.IsZero() {
		return ErrInvalidAmount.Wrapf("deposit amount must be positive, got %s", msg.Amount)
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgWithdraw
func (msg *MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrInvalidAddress.Wrapf("invalid owner address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Wallet); err != nil {
		return ErrInvalidAddress.Wrapf("invalid wallet address: %s", err)
	}
	if msg.Recipient != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Recipient); err != nil {
			return ErrInvalidAddress.Wrapf("invalid recipient address: %s", err)
		}
	}
	if !msg.Amount.IsValid() || msg.Amount.IsZero() {
		return ErrInvalidAmount.Wrapf("withdraw amount must be positive, got %s", msg.Amount)
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgApprove
func (msg *MsgApprove) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrInvalidAddress.Wrapf("invalid owner address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Wallet); err != nil {
		return ErrInvalidAddress.Wrapf("invalid wallet address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Spender); err != nil {
		return ErrInvalidAddress.Wrapf("invalid spender address: %s", err)
	}
	if err := sdk.ValidateDenom(msg.Denom); err != nil {
		return ErrInvalidAmount.Wrapf("invalid denom: %s", err)
	}
	if msg.Amount.IsNil() || msg.Amount.IsNegative() {
		return ErrInvalidAmount.Wrapf("allowance must be non-negative, got %s", msg.Amount)
	}
	return nil
}
