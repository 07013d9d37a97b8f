package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/inbox/types"
)

var _ types.MsgServer = msgServer{}

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

// WriteInbox handles a node publishing an untied compute result
func (ms msgServer) WriteInbox(goCtx context.Context, msg *types.MsgWriteInbox) (*types.MsgWriteInboxResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	index, err := ms.Keeper.Append(ctx, types.Item{
		ContainerId: msg.ContainerId,
		Node:        msg.Node,
		Input:       msg.Input,
		Output:      msg.Output,
		Proof:       msg.Proof,
	})
	if err != nil {
		return nil, err
	}

	return &types.MsgWriteInboxResponse{Index: index}, nil
}
