package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/gogoproto/proto"
)

// RegisterLegacyAminoCodec registers the necessary x/inbox interfaces and concrete types
// on the provided LegacyAmino codec. These types are used for Amino JSON serialization.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgWriteInbox{}, "chime/inbox/MsgWriteInbox", nil)
}

// RegisterInterfaces registers the x/inbox message types with the interface registry
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgWriteInbox{},
	)
}

var (
	amino = codec.NewLegacyAmino()

	// ModuleCdc is the amino codec used for genesis and store encoding.
	ModuleCdc = amino
)

func init() {
	proto.RegisterType(&MsgWriteInbox{}, "chime.inbox.MsgWriteInbox")

	RegisterLegacyAminoCodec(amino)
}
