package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/chime-chain/chime/examples/capability"
	keepertest "github.com/chime-chain/chime/testutil/keeper"
	"github.com/chime-chain/chime/x/coordinator/keeper"
	"github.com/chime-chain/chime/x/coordinator/types"
)

func TestInvariantsHoldOnLiveState(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	prover := capability.NewOptimisticProver(proverAddr.String(), "", map[string]math.Int{testDenom: math.ZeroInt()})
	f.Coordinator.RegisterProver(proverAddr.String(), prover)

	plain, err := f.Coordinator.CreateSubscription(f.Ctx, baseSubscription(ownerAddr))
	require.NoError(t, err)
	_, _, err = f.Coordinator.DeliverCompute(f.Ctx, nodeAddr, plain, 1, nil, []byte("out"), nil)
	require.NoError(t, err)

	proved, err := f.Coordinator.CreateSubscription(f.Ctx, provedSubscription(t, f, proverAddr))
	require.NoError(t, err)
	_, _, err = f.Coordinator.DeliverCompute(f.Ctx, node2Addr, proved, 1, nil, []byte("out"), []byte("pf"))
	require.NoError(t, err)

	msg, broken := keeper.AllInvariants(f.Coordinator)(f.Ctx)
	require.False(t, broken, msg)

	require.NoError(t, f.Coordinator.FinalizeProofValidation(f.Ctx, proverAddr, proved, 1, node2Addr, true))
	msg, broken = keeper.AllInvariants(f.Coordinator)(f.Ctx)
	require.False(t, broken, msg)
}

func TestRedundancyBoundInvariantDetectsOverflow(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	id, err := f.Coordinator.CreateSubscription(f.Ctx, baseSubscription(ownerAddr))
	require.NoError(t, err)

	// Redundancy is 2; force a tally past it.
	f.Coordinator.SetTally(f.Ctx, id, 1, types.DeliveryTally{Accepted: 3})

	msg, broken := keeper.RedundancyBoundInvariant(f.Coordinator)(f.Ctx)
	require.True(t, broken, msg)
}

func TestRedundancyBoundInvariantDetectsOrphanTally(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	f.Coordinator.SetTally(f.Ctx, 42, 1, types.DeliveryTally{Accepted: 1})

	msg, broken := keeper.RedundancyBoundInvariant(f.Coordinator)(f.Ctx)
	require.True(t, broken, msg)
}

func TestCounterBoundInvariantDetectsStaleCounter(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	id, err := f.Coordinator.CreateSubscription(f.Ctx, baseSubscription(ownerAddr))
	require.NoError(t, err)

	f.Coordinator.SetNextSubscriptionID(f.Ctx, id)

	msg, broken := keeper.CounterBoundInvariant(f.Coordinator)(f.Ctx)
	require.True(t, broken, msg)
}

func TestPendingProofAccountingInvariantDetectsDrift(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	prover := capability.NewOptimisticProver(proverAddr.String(), "", map[string]math.Int{testDenom: math.ZeroInt()})
	f.Coordinator.RegisterProver(proverAddr.String(), prover)

	id, err := f.Coordinator.CreateSubscription(f.Ctx, provedSubscription(t, f, proverAddr))
	require.NoError(t, err)
	_, _, err = f.Coordinator.DeliverCompute(f.Ctx, nodeAddr, id, 1, nil, []byte("out"), []byte("pf"))
	require.NoError(t, err)

	msg, broken := keeper.PendingProofAccountingInvariant(f.Coordinator)(f.Ctx)
	require.False(t, broken, msg)

	// Zero the tally while the pending record stands.
	f.Coordinator.SetTally(f.Ctx, id, 1, types.DeliveryTally{})

	msg, broken = keeper.PendingProofAccountingInvariant(f.Coordinator)(f.Ctx)
	require.True(t, broken, msg)
}

func TestProofLockAccountingInvariant(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	prover := capability.NewOptimisticProver(proverAddr.String(), "", map[string]math.Int{testDenom: math.ZeroInt()})
	f.Coordinator.RegisterProver(proverAddr.String(), prover)

	create := provedSubscription(t, f, proverAddr)
	id, err := f.Coordinator.CreateSubscription(f.Ctx, create)
	require.NoError(t, err)
	_, _, err = f.Coordinator.DeliverCompute(f.Ctx, nodeAddr, id, 1, nil, []byte("out"), []byte("pf"))
	require.NoError(t, err)

	msg, broken := keeper.ProofLockAccountingInvariant(f.Coordinator)(f.Ctx)
	require.False(t, broken, msg)

	// Release the lock behind the coordinator's back.
	wallet, owner, err := create.EscrowAddresses()
	require.NoError(t, err)
	require.NoError(t, f.Escrow.Unlock(f.Ctx, wallet, owner, testDenom, math.NewInt(100)))

	msg, broken = keeper.ProofLockAccountingInvariant(f.Coordinator)(f.Ctx)
	require.True(t, broken, msg)
}
