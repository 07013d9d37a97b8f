package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/gogoproto/proto"
)

// RegisterLegacyAminoCodec registers the necessary x/coordinator interfaces and concrete types
// on the provided LegacyAmino codec. These types are used for Amino JSON serialization.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreateSubscription{}, "chime/coordinator/MsgCreateSubscription", nil)
	cdc.RegisterConcrete(&MsgCancelSubscription{}, "chime/coordinator/MsgCancelSubscription", nil)
	cdc.RegisterConcrete(&MsgDeliverCompute{}, "chime/coordinator/MsgDeliverCompute", nil)
	cdc.RegisterConcrete(&MsgFinalizeProofValidation{}, "chime/coordinator/MsgFinalizeProofValidation", nil)
	cdc.RegisterConcrete(&MsgSetDelegateSigner{}, "chime/coordinator/MsgSetDelegateSigner", nil)
	cdc.RegisterConcrete(&MsgCreateSubscriptionDelegatee{}, "chime/coordinator/MsgCreateSubscriptionDelegatee", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "chime/coordinator/MsgUpdateParams", nil)
}

// RegisterInterfaces registers the x/coordinator message types with the interface registry
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreateSubscription{},
		&MsgCancelSubscription{},
		&MsgDeliverCompute{},
		&MsgFinalizeProofValidation{},
		&MsgSetDelegateSigner{},
		&MsgCreateSubscriptionDelegatee{},
		&MsgUpdateParams{},
	)
}

var (
	amino = codec.NewLegacyAmino()

	// ModuleCdc is the amino codec used for genesis and store encoding.
	ModuleCdc = amino
)

func init() {
	proto.RegisterType(&MsgCreateSubscription{}, "chime.coordinator.MsgCreateSubscription")
	proto.RegisterType(&MsgCancelSubscription{}, "chime.coordinator.MsgCancelSubscription")
	proto.RegisterType(&MsgDeliverCompute{}, "chime.coordinator.MsgDeliverCompute")
	proto.RegisterType(&MsgFinalizeProofValidation{}, "chime.coordinator.MsgFinalizeProofValidation")
	proto.RegisterType(&MsgSetDelegateSigner{}, "chime.coordinator.MsgSetDelegateSigner")
	proto.RegisterType(&MsgCreateSubscriptionDelegatee{}, "chime.coordinator.MsgCreateSubscriptionDelegatee")
	proto.RegisterType(&MsgUpdateParams{}, "chime.coordinator.MsgUpdateParams")

	RegisterLegacyAminoCodec(amino)
}
