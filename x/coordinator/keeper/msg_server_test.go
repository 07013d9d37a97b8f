package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/chime-chain/chime/examples/capability"
	keepertest "github.com/chime-chain/chime/testutil/keeper"
	"github.com/chime-chain/chime/x/coordinator/keeper"
	coordinatortypes "github.com/chime-chain/chime/x/coordinator/types"
)

func TestMsgCreateAndCancelSubscription(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Coordinator)

	resp, err := ms.CreateSubscription(f.Ctx, &coordinatortypes.MsgCreateSubscription{
		Owner:       ownerAddr.String(),
		Period:      60,
		Frequency:   3,
		Redundancy:  2,
		ContainerId: "container-a",
		Lazy:        true,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), resp.Id)

	_, err = ms.CreateSubscription(f.Ctx, &coordinatortypes.MsgCreateSubscription{
		Owner:       ownerAddr.String(),
		Frequency:   1,
		Redundancy:  0,
		ContainerId: "container-a",
	})
	require.ErrorIs(t, err, coordinatortypes.ErrValidationFailed)

	_, err = ms.CancelSubscription(f.Ctx, &coordinatortypes.MsgCancelSubscription{
		Owner: ownerAddr.String(),
		Id:    resp.Id,
	})
	require.NoError(t, err)

	sub, _ := f.Coordinator.GetSubscription(f.Ctx, resp.Id)
	require.True(t, sub.Cancelled)
}

func TestMsgDeliverCompute(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Coordinator)

	id, err := f.Coordinator.CreateSubscription(f.Ctx, baseSubscription(ownerAddr))
	require.NoError(t, err)

	resp, err := ms.DeliverCompute(f.Ctx, &coordinatortypes.MsgDeliverCompute{
		Node:           nodeAddr.String(),
		SubscriptionId: id,
		Interval:       1,
		Output:         []byte("out"),
	})
	require.NoError(t, err)
	require.Equal(t, uint32(1), resp.AcceptedCount)
	require.False(t, resp.Pending)

	_, err = ms.DeliverCompute(f.Ctx, &coordinatortypes.MsgDeliverCompute{
		Node:           nodeAddr.String(),
		SubscriptionId: id,
		Interval:       0,
	})
	require.ErrorIs(t, err, coordinatortypes.ErrValidationFailed)
}

func TestMsgFinalizeProofValidation(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Coordinator)
	prover := capability.NewOptimisticProver(proverAddr.String(), "", map[string]math.Int{testDenom: math.ZeroInt()})
	f.Coordinator.RegisterProver(proverAddr.String(), prover)

	id, err := f.Coordinator.CreateSubscription(f.Ctx, provedSubscription(t, f, proverAddr))
	require.NoError(t, err)

	deliver, err := ms.DeliverCompute(f.Ctx, &coordinatortypes.MsgDeliverCompute{
		Node:           nodeAddr.String(),
		SubscriptionId: id,
		Interval:       1,
		Output:         []byte("out"),
		Proof:          []byte("pf"),
	})
	require.NoError(t, err)
	require.True(t, deliver.Pending)

	_, err = ms.FinalizeProofValidation(f.Ctx, &coordinatortypes.MsgFinalizeProofValidation{
		Prover:         proverAddr.String(),
		SubscriptionId: id,
		Interval:       1,
		Node:           nodeAddr.String(),
		Valid:          true,
	})
	require.NoError(t, err)
	require.Equal(t, uint32(1), f.Coordinator.GetTally(f.Ctx, id, 1).Accepted)
}

func TestMsgDelegateFlow(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Coordinator)

	key, err := crypto.HexToECDSA(delegateKeyHex)
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey)

	_, err = ms.SetDelegateSigner(f.Ctx, &coordinatortypes.MsgSetDelegateSigner{
		Owner:  ownerAddr.String(),
		Signer: signer.Hex(),
	})
	require.NoError(t, err)

	params := f.Coordinator.GetParams(f.Ctx)
	env := coordinatortypes.DelegateSubscription{
		Nonce:        1,
		Expiry:       baseTime.Unix() + 600,
		Subscription: baseSubscription(ownerAddr),
	}
	sig, err := coordinatortypes.SignDelegate(env, key,
		params.TypedDataName, params.TypedDataVersion, params.ChainId, f.Coordinator.GetModuleAddress())
	require.NoError(t, err)

	resp, err := ms.CreateSubscriptionDelegatee(f.Ctx, &coordinatortypes.MsgCreateSubscriptionDelegatee{
		Creator:      nodeAddr.String(),
		Nonce:        env.Nonce,
		Expiry:       env.Expiry,
		Subscription: env.Subscription,
		Signature:    sig,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), resp.Id)
}

func TestMsgUpdateParams(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Coordinator)

	updated := coordinatortypes.DefaultParams()
	updated.FeeRecipient = feeAddr.String()
	updated.FeeRate = math.LegacyNewDecWithPrec(1, 2)

	_, err := ms.UpdateParams(f.Ctx, &coordinatortypes.MsgUpdateParams{
		Authority: ownerAddr.String(),
		Params:    updated,
	})
	require.ErrorIs(t, err, govtypes.ErrInvalidSigner)

	_, err = ms.UpdateParams(f.Ctx, &coordinatortypes.MsgUpdateParams{
		Authority: f.Authority,
		Params:    updated,
	})
	require.NoError(t, err)
	require.Equal(t, updated, f.Coordinator.GetParams(f.Ctx))
}
