package types

import (
	"context"

	"cosmossdk.io/math"
	"github.com/cosmos/gogoproto/proto"
	"github.com/ethereum/go-ethereum/common"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgServer is the server API for the coordinator Msg service.
type MsgServer interface {
	CreateSubscription(context.Context, *MsgCreateSubscription) (*MsgCreateSubscriptionResponse, error)
	CancelSubscription(context.Context, *MsgCancelSubscription) (*MsgCancelSubscriptionResponse, error)
	DeliverCompute(context.Context, *MsgDeliverCompute) (*MsgDeliverComputeResponse, error)
	FinalizeProofValidation(context.Context, *MsgFinalizeProofValidation) (*MsgFinalizeProofValidationResponse, error)
	SetDelegateSigner(context.Context, *MsgSetDelegateSigner) (*MsgSetDelegateSignerResponse, error)
	CreateSubscriptionDelegatee(context.Context, *MsgCreateSubscriptionDelegatee) (*MsgCreateSubscriptionDelegateeResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// Message type URLs
const (
	TypeMsgCreateSubscription          = "create_subscription"
	TypeMsgCancelSubscription          = "cancel_subscription"
	TypeMsgDeliverCompute              = "deliver_compute"
	TypeMsgFinalizeProofValidation     = "finalize_proof_validation"
	TypeMsgSetDelegateSigner           = "set_delegate_signer"
	TypeMsgCreateSubscriptionDelegatee = "create_subscription_delegatee"
	TypeMsgUpdateParams                = "update_params"
)

var (
	_ sdk.Msg = &MsgCreateSubscription{}
	_ sdk.Msg = &MsgCancelSubscription{}
	_ sdk.Msg = &MsgDeliverCompute{}
	_ sdk.Msg = &MsgFinalizeProofValidation{}
	_ sdk.Msg = &MsgSetDelegateSigner{}
	_ sdk.Msg = &MsgCreateSubscriptionDelegatee{}
	_ sdk.Msg = &MsgUpdateParams{}
)

// MsgCreateSubscription creates a subscription owned by the sender.
// ActiveAt of 0 means "active immediately"; the keeper resolves it to the
// block time. No funds are checked or moved at creation.
type MsgCreateSubscription struct {
	Owner         string   `json:"owner"`
	ActiveAt      int64    `json:"active_at"`
	Period        uint32   `json:"period"`
	Frequency     uint32   `json:"frequency"`
	Redundancy    uint32   `json:"redundancy"`
	ContainerId   string   `json:"container_id"`
	Lazy          bool     `json:"lazy"`
	Prover        string   `json:"prover,omitempty"`
	PaymentToken  string   `json:"payment_token,omitempty"`
	PaymentAmount math.Int `json:"payment_amount"`
	Wallet        string   `json:"wallet,omitempty"`
}

// MsgCreateSubscriptionResponse carries the allocated subscription id.
type MsgCreateSubscriptionResponse struct {
	Id uint64 `json:"id"`
}

// MsgCancelSubscription marks a subscription terminal. Owner-only and
// idempotent: cancelling an already cancelled or completed subscription is
// a no-op.
type MsgCancelSubscription struct {
	Owner string `json:"owner"`
	Id    uint64 `json:"id"`
}

// MsgCancelSubscriptionResponse is the MsgCancelSubscription response type.
type MsgCancelSubscriptionResponse struct{}

// MsgDeliverCompute submits a node's compute result against the interval it
// believes is currently open.
type MsgDeliverCompute struct {
	Node           string `json:"node"`
	SubscriptionId uint64 `json:"subscription_id"`
	Interval       uint32 `json:"interval"`
	Input          []byte `json:"input,omitempty"`
	Output         []byte `json:"output,omitempty"`
	Proof          []byte `json:"proof,omitempty"`
}

// MsgDeliverComputeResponse reports how the delivery was recorded: the
// accepted count after an immediate delivery, or Pending for a delivery
// awaiting its prover.
type MsgDeliverComputeResponse struct {
	AcceptedCount uint32 `json:"accepted_count"`
	Pending       bool   `json:"pending"`
}

// MsgFinalizeProofValidation is the second phase of the proof handshake,
// callable only by the prover recorded on the subscription.
type MsgFinalizeProofValidation struct {
	Prover         string `json:"prover"`
	SubscriptionId uint64 `json:"subscription_id"`
	Interval       uint32 `json:"interval"`
	Node           string `json:"node"`
	Valid          bool   `json:"valid"`
}

// MsgFinalizeProofValidationResponse is the MsgFinalizeProofValidation response type.
type MsgFinalizeProofValidationResponse struct{}

// MsgSetDelegateSigner registers or replaces the secp256k1 address (0x hex)
// authorized to sign delegated subscription creations for Owner.
type MsgSetDelegateSigner struct {
	Owner  string `json:"owner"`
	Signer string `json:"signer"`
}

// MsgSetDelegateSignerResponse is the MsgSetDelegateSigner response type.
type MsgSetDelegateSignerResponse struct{}

// MsgCreateSubscriptionDelegatee creates a subscription on behalf of the
// embedded subscription's owner from a signed envelope. Any relayer may
// submit it; authorization is the signature, not the msg signer.
type MsgCreateSubscriptionDelegatee struct {
	Creator      string       `json:"creator"`
	Nonce        uint64       `json:"nonce"`
	Expiry       int64        `json:"expiry"`
	Subscription Subscription `json:"subscription"`
	Signature    []byte       `json:"signature"`
}

// MsgCreateSubscriptionDelegateeResponse carries the allocated subscription id.
type MsgCreateSubscriptionDelegateeResponse struct {
	Id uint64 `json:"id"`
}

// MsgUpdateParams updates the module parameters. Only the governance
// authority may submit it.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// MsgUpdateParamsResponse is the MsgUpdateParams response type.
type MsgUpdateParamsResponse struct{}

// proto.Message conformance for the legacy message router and Any packing.

func (msg *MsgCreateSubscription) Reset()         { *msg = MsgCreateSubscription{} }
func (msg *MsgCreateSubscription) String() string { return proto.CompactTextString(msg) }
func (msg *MsgCreateSubscription) ProtoMessage()  {}

func (msg *MsgCancelSubscription) Reset()         { *msg = MsgCancelSubscription{} }
func (msg *MsgCancelSubscription) String() string { return proto.CompactTextString(msg) }
func (msg *MsgCancelSubscription) ProtoMessage()  {}

func (msg *MsgDeliverCompute) Reset()         { *msg = MsgDeliverCompute{} }
func (msg *MsgDeliverCompute) String() string { return proto.CompactTextString(msg) }
func (msg *MsgDeliverCompute) ProtoMessage()  {}

func (msg *MsgFinalizeProofValidation) Reset()         { *msg = MsgFinalizeProofValidation{} }
func (msg *MsgFinalizeProofValidation) String() string { return proto.CompactTextString(msg) }
func (msg *MsgFinalizeProofValidation) ProtoMessage()  {}

func (msg *MsgSetDelegateSigner) Reset()         { *msg = MsgSetDelegateSigner{} }
func (msg *MsgSetDelegateSigner) String() string { return proto.CompactTextString(msg) }
func (msg *MsgSetDelegateSigner) ProtoMessage()  {}

func (msg *MsgCreateSubscriptionDelegatee) Reset()         { *msg = MsgCreateSubscriptionDelegatee{} }
func (msg *MsgCreateSubscriptionDelegatee) String() string { return proto.CompactTextString(msg) }
func (msg *MsgCreateSubscriptionDelegatee) ProtoMessage()  {}

func (msg *MsgUpdateParams) Reset()         { *msg = MsgUpdateParams{} }
func (msg *MsgUpdateParams) String() string { return proto.CompactTextString(msg) }
func (msg *MsgUpdateParams) ProtoMessage()  {}

// GetSigners implementations - these assume addresses are valid (validated in ValidateBasic)

// GetSigners returns the expected signers for MsgCreateSubscription
func (msg *MsgCreateSubscription) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{owner}
}

// GetSigners returns the expected signers for MsgCancelSubscription
func (msg *MsgCancelSubscription) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{owner}
}

// GetSigners returns the expected signers for MsgDeliverCompute
func (msg *MsgDeliverCompute) GetSigners() []sdk.AccAddress {
	node, _ := sdk.AccAddressFromBech32(msg.Node)
	return []sdk.AccAddress{node}
}

// GetSigners returns the expected signers for MsgFinalizeProofValidation
func (msg *MsgFinalizeProofValidation) GetSigners() []sdk.AccAddress {
	prover, _ := sdk.AccAddressFromBech32(msg.Prover)
	return []sdk.AccAddress{prover}
}

// GetSigners returns the expected signers for MsgSetDelegateSigner
func (msg *MsgSetDelegateSigner) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{owner}
}

// GetSigners returns the expected signers for MsgCreateSubscriptionDelegatee
func (msg *MsgCreateSubscriptionDelegatee) GetSigners() []sdk.AccAddress {
	creator, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{creator}
}

// GetSigners returns the expected signers for MsgUpdateParams
func (msg *MsgUpdateParams) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// ValidateBasic performs stateless validation of MsgCreateSubscription
func (msg *MsgCreateSubscription) ValidateBasic() error {
	sub := Subscription{
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
	}
	if err := sub.Validate(); err != nil {
		return ErrInvalidSubscription.Wrap(err.Error())
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgCancelSubscription
func (msg *MsgCancelSubscription) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrInvalidAddress.Wrapf("invalid owner address: %s", err)
	}
	if msg.Id == 0 {
		return ErrInvalidSubscription.Wrap("subscription id cannot be zero")
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgDeliverCompute
func (msg *MsgDeliverCompute) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Node); err != nil {
		return ErrInvalidAddress.Wrapf("invalid node address: %s", err)
	}
	if msg.SubscriptionId == 0 {
		return ErrInvalidSubscription.Wrap("subscription id cannot be zero")
	}
	if msg.Interval == 0 {
		return ErrIntervalMismatch.Wrap("interval cannot be zero")
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgFinalizeProofValidation
func (msg *MsgFinalizeProofValidation) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Prover); err != nil {
		return ErrInvalidAddress.Wrapf("invalid prover address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Node); err != nil {
		return ErrInvalidAddress.Wrapf("invalid node address: %s", err)
	}
	if msg.SubscriptionId == 0 {
		return ErrInvalidSubscription.Wrap("subscription id cannot be zero")
	}
	if msg.Interval == 0 {
		return ErrIntervalMismatch.Wrap("interval cannot be zero")
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgSetDelegateSigner
func (msg *MsgSetDelegateSigner) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrInvalidAddress.Wrapf("invalid owner address: %s", err)
	}
	if !common.IsHexAddress(msg.Signer) {
		return ErrInvalidAddress.Wrapf("signer %q is not a hex address", msg.Signer)
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgCreateSubscriptionDelegatee
func (msg *MsgCreateSubscriptionDelegatee) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return ErrInvalidAddress.Wrapf("invalid creator address: %s", err)
	}
	if err := msg.Subscription.Validate(); err != nil {
		return ErrInvalidSubscription.Wrap(err.Error())
	}
	if msg.Expiry <= 0 {
		return ErrInvalidSubscription.Wrap("expiry must be positive")
	}
	if len(msg.Signature) != 65 {
		return ErrInvalidSignature.Wrapf("signature must be 65 bytes, got %d", len(msg.Signature))
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgUpdateParams
func (msg *MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress.Wrapf("invalid authority address: %s", err)
	}
	if err := msg.Params.Validate(); err != nil {
		return ErrInvalidParams.Wrap(err.Error())
	}
	return nil
}
