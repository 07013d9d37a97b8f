package types_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/chime-chain/chime/x/coordinator/types"
)

func TestMsgCreateSubscriptionValidateBasic(t *testing.T) {
	msg := &types.MsgCreateSubscription{
		Owner:       testOwner,
		Frequency:   1,
		Redundancy:  1,
		ContainerId: "container-a",
	}
	require.NoError(t, msg.ValidateBasic())
	require.Equal(t, []sdk.AccAddress{sdk.AccAddress("owner_______________")}, msg.GetSigners())

	bad := *msg
	bad.Owner = "not-bech32"
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidSubscription)

	bad = *msg
	bad.Frequency = 0
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidSubscription)

	bad = *msg
	bad.PaymentToken = "uchime"
	bad.PaymentAmount = math.NewInt(10)
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidSubscription)
}

func TestMsgCancelSubscriptionValidateBasic(t *testing.T) {
	msg := &types.MsgCancelSubscription{Owner: testOwner, Id: 1}
	require.NoError(t, msg.ValidateBasic())

	require.ErrorIs(t, (&types.MsgCancelSubscription{Owner: "x", Id: 1}).ValidateBasic(), types.ErrInvalidAddress)
	require.ErrorIs(t, (&types.MsgCancelSubscription{Owner: testOwner, Id: 0}).ValidateBasic(), types.ErrInvalidSubscription)
}

func TestMsgDeliverComputeValidateBasic(t *testing.T) {
	msg := &types.MsgDeliverCompute{
		Node:           testOwner,
		SubscriptionId: 1,
		Interval:       1,
	}
	require.NoError(t, msg.ValidateBasic())

	bad := *msg
	bad.Node = "not-bech32"
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidAddress)

	bad = *msg
	bad.SubscriptionId = 0
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidSubscription)

	bad = *msg
	bad.Interval = 0
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrIntervalMismatch)
}

func TestMsgFinalizeProofValidationValidateBasic(t *testing.T) {
	msg := &types.MsgFinalizeProofValidation{
		Prover:         testProver,
		Node:           testOwner,
		SubscriptionId: 1,
		Interval:       1,
		Valid:          true,
	}
	require.NoError(t, msg.ValidateBasic())

	bad := *msg
	bad.Prover = "not-bech32"
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidAddress)

	bad = *msg
	bad.Interval = 0
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrIntervalMismatch)
}

func TestMsgSetDelegateSignerValidateBasic(t *testing.T) {
	msg := &types.MsgSetDelegateSigner{
		Owner:  testOwner,
		Signer: "0x9965507D1a55bcC2695C58ba16FB37d819B0A4dc",
	}
	require.NoError(t, msg.ValidateBasic())

	bad := *msg
	bad.Signer = "not-hex"
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidAddress)
}

func TestMsgCreateSubscriptionDelegateeValidateBasic(t *testing.T) {
	msg := &types.MsgCreateSubscriptionDelegatee{
		Creator:      testOwner,
		Nonce:        1,
		Expiry:       2000,
		Subscription: validSubscription(),
		Signature:    make([]byte, 65),
	}
	require.NoError(t, msg.ValidateBasic())

	bad := *msg
	bad.Expiry = 0
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidSubscription)

	bad = *msg
	bad.Signature = make([]byte, 64)
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidSignature)
}

func TestMsgUpdateParamsValidateBasic(t *testing.T) {
	msg := &types.MsgUpdateParams{
		Authority: testOwner,
		Params:    types.DefaultParams(),
	}
	require.NoError(t, msg.ValidateBasic())

	bad := *msg
	bad.Params.MaxPayloadSize = 0
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidParams)
}
