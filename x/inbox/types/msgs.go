package types

import (
	"context"

	"github.com/cosmos/gogoproto/proto"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgServer is the server API for the inbox Msg service.
type MsgServer interface {
	WriteInbox(context.Context, *MsgWriteInbox) (*MsgWriteInboxResponse, error)
}

// Message type URLs
const (
	TypeMsgWriteInbox = "write_inbox"
)

var _ sdk.Msg = &MsgWriteInbox{}

// MsgWriteInbox publishes a compute result to the ledger outside any
// subscription. The stored item's subscription id and interval are forced
// to 0; subscription-tied items are only ever written by the coordinator.
type MsgWriteInbox struct {
	Node        string `json:"node"`
	ContainerId string `json:"container_id"`
	Input       []byte `json:"input,omitempty"`
	Output      []byte `json:"output,omitempty"`
	Proof       []byte `json:"proof,omitempty"`
}

// MsgWriteInboxResponse carries the index the item was stored under.
type MsgWriteInboxResponse struct {
	Index uint64 `json:"index"`
}

func (msg *MsgWriteInbox) Reset()         { *msg = MsgWriteInbox{} }
func (msg *MsgWriteInbox) String() string { return proto.CompactTextString(msg) }
func (msg *MsgWriteInbox) ProtoMessage()  {}

// GetSigners returns the expected signers for MsgWriteInbox
func (msg *MsgWriteInbox) GetSigners() []sdk.AccAddress {
	node, _ := sdk.AccAddressFromBech32(msg.Node)
	return []sdk.AccAddress{node}
}

// ValidateBasic performs stateless validation of MsgWriteInbox
func (msg *MsgWriteInbox) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Node); err != nil {
		return ErrInvalidAddress.Wrapf("invalid node address: %s", err)
	}
	if msg.ContainerId == "" {
		return ErrInvalidItem.Wrap("container id cannot be empty")
	}
	for _, payload := range [][]byte{msg.Input, msg.Output, msg.Proof} {
		if len(payload) > MaxPayloadSize {
			return ErrPayloadTooLarge.Wrapf("payload of %d bytes exceeds limit %d", len(payload), MaxPayloadSize)
		}
	}
	return nil
}
