package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/chime-chain/chime/testutil/keeper"
	"github.com/chime-chain/chime/x/coordinator/types"
)

const testDenom = "uchime"

// baseTime matches the fixture's block time.
var baseTime = time.Unix(1_700_000_000, 0)

var (
	ownerAddr  = sdk.AccAddress("owner_______________")
	nodeAddr   = sdk.AccAddress("node-a______________")
	node2Addr  = sdk.AccAddress("node-b______________")
	node3Addr  = sdk.AccAddress("node-c______________")
	proverAddr = sdk.AccAddress("prover______________")
	feeAddr    = sdk.AccAddress("fee-recipient_______")
)

func baseSubscription(owner sdk.AccAddress) types.Subscription {
	return types.Subscription{
		Owner:       owner.String(),
		Period:      60,
		Frequency:   3,
		Redundancy:  2,
		ContainerId: "container-a",
		Lazy:        true,
	}
}

// fundedSubscription builds a paid subscription backed by a funded escrow
// wallet with the owner approved as spender for the full balance.
func fundedSubscription(t *testing.T, f keepertest.CoordinatorFixture, owner sdk.AccAddress, balance, amount math.Int) types.Subscription {
	wallet := f.FundWallet(t, f.Ctx, owner, testDenom, balance)
	require.NoError(t, f.Escrow.Approve(f.Ctx, owner, wallet, owner, testDenom, balance))

	sub := baseSubscription(owner)
	sub.PaymentToken = testDenom
	sub.PaymentAmount = amount
	sub.Wallet = wallet.String()
	return sub
}

func TestCreateSubscription(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	id, err := f.Coordinator.CreateSubscription(f.Ctx, baseSubscription(ownerAddr))
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	sub, found := f.Coordinator.GetSubscription(f.Ctx, id)
	require.True(t, found)
	require.Equal(t, ownerAddr.String(), sub.Owner)
	require.Equal(t, "container-a", sub.ContainerId)
	require.False(t, sub.Cancelled)
	require.Equal(t, baseTime.Unix(), sub.CreatedAt)

	// ActiveAt 0 resolves to the block time.
	require.Equal(t, baseTime.Unix(), sub.ActiveAt)

	second, err := f.Coordinator.CreateSubscription(f.Ctx, baseSubscription(ownerAddr))
	require.NoError(t, err)
	require.Equal(t, uint64(2), second)
	require.Equal(t, uint64(3), f.Coordinator.GetNextSubscriptionID(f.Ctx))
}

func TestCreateSubscriptionKeepsExplicitActiveAt(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	create := baseSubscription(ownerAddr)
	create.ActiveAt = baseTime.Unix() + 500
	id, err := f.Coordinator.CreateSubscription(f.Ctx, create)
	require.NoError(t, err)

	sub, found := f.Coordinator.GetSubscription(f.Ctx, id)
	require.True(t, found)
	require.Equal(t, baseTime.Unix()+500, sub.ActiveAt)
}

func TestCreateSubscriptionInvalid(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	tests := []struct {
		name   string
		mutate func(sub *types.Subscription)
	}{
		{"bad owner", func(sub *types.Subscription) { sub.Owner = "not-bech32" }},
		{"zero frequency", func(sub *types.Subscription) { sub.Frequency = 0 }},
		{"zero redundancy", func(sub *types.Subscription) { sub.Redundancy = 0 }},
		{"empty container", func(sub *types.Subscription) { sub.ContainerId = "" }},
		{"wallet without amount", func(sub *types.Subscription) { sub.Wallet = ownerAddr.String() }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sub := baseSubscription(ownerAddr)
			tc.mutate(&sub)
			_, err := f.Coordinator.CreateSubscription(f.Ctx, sub)
			require.ErrorIs(t, err, types.ErrInvalidSubscription)
		})
	}
}

func TestCancelSubscription(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	id, err := f.Coordinator.CreateSubscription(f.Ctx, baseSubscription(ownerAddr))
	require.NoError(t, err)

	require.NoError(t, f.Coordinator.CancelSubscription(f.Ctx, ownerAddr, id))
	sub, _ := f.Coordinator.GetSubscription(f.Ctx, id)
	require.True(t, sub.Cancelled)

	// Idempotent second cancel.
	require.NoError(t, f.Coordinator.CancelSubscription(f.Ctx, ownerAddr, id))
}

func TestCancelSubscriptionOwnerOnly(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	id, err := f.Coordinator.CreateSubscription(f.Ctx, baseSubscription(ownerAddr))
	require.NoError(t, err)

	err = f.Coordinator.CancelSubscription(f.Ctx, nodeAddr, id)
	require.ErrorIs(t, err, types.ErrNotSubscriptionOwner)

	err = f.Coordinator.CancelSubscription(f.Ctx, ownerAddr, 99)
	require.ErrorIs(t, err, types.ErrSubscriptionNotFound)
}

func TestIsCompleted(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	create := baseSubscription(ownerAddr)
	create.Frequency = 2
	create.Redundancy = 1
	id, err := f.Coordinator.CreateSubscription(f.Ctx, create)
	require.NoError(t, err)
	sub, _ := f.Coordinator.GetSubscription(f.Ctx, id)

	require.False(t, f.Coordinator.IsCompleted(f.Ctx, sub))

	// Final interval open but unsatisfied.
	ctx := f.Ctx.WithBlockTime(baseTime.Add(60 * time.Second))
	require.False(t, f.Coordinator.IsCompleted(ctx, sub))

	// Final interval satisfied.
	_, _, err = f.Coordinator.DeliverCompute(ctx, nodeAddr, id, 2, nil, []byte("out"), nil)
	require.NoError(t, err)
	require.True(t, f.Coordinator.IsCompleted(ctx, sub))

	// Schedule exhausted by time alone.
	ctx = f.Ctx.WithBlockTime(baseTime.Add(120 * time.Second))
	require.True(t, f.Coordinator.IsCompleted(ctx, sub))
}

func TestCancelAfterCompletionIsNoop(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	create := baseSubscription(ownerAddr)
	create.Frequency = 1
	create.Period = 0
	create.Redundancy = 1
	id, err := f.Coordinator.CreateSubscription(f.Ctx, create)
	require.NoError(t, err)

	_, _, err = f.Coordinator.DeliverCompute(f.Ctx, nodeAddr, id, 1, nil, []byte("out"), nil)
	require.NoError(t, err)
	require.NoError(t, f.Coordinator.CancelSubscription(f.Ctx, ownerAddr, id))

	// Completed subscriptions are left untouched rather than flagged.
	sub, _ := f.Coordinator.GetSubscription(f.Ctx, id)
	require.False(t, sub.Cancelled)
}
