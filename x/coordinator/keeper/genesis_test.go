package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/chime-chain/chime/examples/capability"
	keepertest "github.com/chime-chain/chime/testutil/keeper"
	"github.com/chime-chain/chime/x/coordinator/types"
)

func TestGenesisDefault(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	require.NoError(t, f.Coordinator.InitGenesis(f.Ctx, *types.DefaultGenesis()))
	require.Equal(t, uint64(1), f.Coordinator.GetNextSubscriptionID(f.Ctx))
	require.Equal(t, types.DefaultParams(), f.Coordinator.GetParams(f.Ctx))
}

func TestGenesisRoundTrip(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	prover := capability.NewOptimisticProver(proverAddr.String(), "", map[string]math.Int{testDenom: math.ZeroInt()})
	f.Coordinator.RegisterProver(proverAddr.String(), prover)

	// Populate every collection: a plain subscription with deliveries, a
	// proved one with a pending record, a delegate signer and a consumed
	// nonce.
	plain, err := f.Coordinator.CreateSubscription(f.Ctx, baseSubscription(ownerAddr))
	require.NoError(t, err)
	_, _, err = f.Coordinator.DeliverCompute(f.Ctx, nodeAddr, plain, 1, nil, []byte("out"), nil)
	require.NoError(t, err)

	proved, err := f.Coordinator.CreateSubscription(f.Ctx, provedSubscription(t, f, proverAddr))
	require.NoError(t, err)
	_, _, err = f.Coordinator.DeliverCompute(f.Ctx, node2Addr, proved, 1, nil, []byte("out"), []byte("pf"))
	require.NoError(t, err)

	key, err := crypto.HexToECDSA(delegateKeyHex)
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey)
	f.Coordinator.SetDelegateSigner(f.Ctx, ownerAddr, signer)
	f.Coordinator.SetConsumedNonce(f.Ctx, signer, 7)

	exported, err := f.Coordinator.ExportGenesis(f.Ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.Subscriptions, 2)
	require.Len(t, exported.Proofs, 1)
	require.Len(t, exported.DelegateSigners, 1)
	require.Len(t, exported.ConsumedNonces, 1)

	// Import into a fresh keeper and compare the observable state.
	g := keepertest.CoordinatorKeeper(t)
	require.NoError(t, g.Coordinator.InitGenesis(g.Ctx, *exported))

	require.Equal(t, uint64(3), g.Coordinator.GetNextSubscriptionID(g.Ctx))

	sub, found := g.Coordinator.GetSubscription(g.Ctx, plain)
	require.True(t, found)
	require.Equal(t, "container-a", sub.ContainerId)

	require.Equal(t, uint32(1), g.Coordinator.GetTally(g.Ctx, plain, 1).Accepted)
	require.Equal(t, uint32(1), g.Coordinator.GetTally(g.Ctx, proved, 1).Pending)
	require.True(t, g.Coordinator.HasDelivered(g.Ctx, plain, 1, nodeAddr))
	require.True(t, g.Coordinator.HasDelivered(g.Ctx, proved, 1, node2Addr))

	record, found := g.Coordinator.GetProof(g.Ctx, proved, 1, node2Addr)
	require.True(t, found)
	require.True(t, record.Pending())
	require.Equal(t, math.NewInt(100), record.Locked)

	gotSigner, found := g.Coordinator.GetDelegateSigner(g.Ctx, ownerAddr)
	require.True(t, found)
	require.Equal(t, signer, gotSigner)
	require.True(t, g.Coordinator.IsNonceConsumed(g.Ctx, signer, 7))

	reexported, err := g.Coordinator.ExportGenesis(g.Ctx)
	require.NoError(t, err)
	require.Equal(t, exported, reexported)
}
