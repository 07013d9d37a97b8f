package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/gogoproto/proto"
)

// RegisterLegacyAminoCodec registers the necessary x/escrow interfaces and concrete types
// on the provided LegacyAmino codec. These types are used for Amino JSON serialization.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreateWallet{}, "chime/escrow/MsgCreateWallet", nil)
	cdc.RegisterConcrete(&MsgDeposit{}, "chime/escrow/MsgDeposit", nil)
	cdc.RegisterConcrete(&MsgWithdraw{}, "chime/escrow/MsgWithdraw", nil)
	cdc.RegisterConcrete(&MsgApprove{}, "chime/escrow/MsgApprove", nil)
}

// RegisterInterfaces registers the x/escrow message types with the interface registry
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreateWallet{},
		&MsgDeposit{},
		&MsgWithdraw{},
		&MsgApprove{},
	)
}

var (
	amino = codec.NewLegacyAmino()

	// ModuleCdc is the amino codec used for genesis and store encoding.
	ModuleCdc = amino
)

func init() {
	proto.RegisterType(&MsgCreateWallet{}, "chime.escrow.MsgCreateWallet")
	proto.RegisterType(&MsgDeposit{}, "chime.escrow.MsgDeposit")
	proto.RegisterType(&MsgWithdraw{}, "chime.escrow.MsgWithdraw")
	proto.RegisterType(&MsgApprove{}, "chime.escrow.MsgApprove")

	RegisterLegacyAminoCodec(amino)
}
