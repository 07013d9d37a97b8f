package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/chime-chain/chime/testutil/keeper"
)

func TestGenesisRoundTrip(t *testing.T) {
	k, bk, ctx := keepertest.EscrowKeeper(t)
	owner := sdk.AccAddress("owner_______________")
	spender := sdk.AccAddress("spender_____________")

	wallet := fundedWallet(t, k, bk, ctx, owner, math.NewInt(1000))
	require.NoError(t, k.Approve(ctx, owner, wallet, spender, testDenom, math.NewInt(600)))
	require.NoError(t, k.Lock(ctx, wallet, spender, testDenom, math.NewInt(200)))

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Len(t, exported.Wallets, 1)
	require.Len(t, exported.Balances, 1)
	require.Len(t, exported.Allowances, 1)
	require.NoError(t, exported.Validate())

	// Import into a fresh keeper and compare observable state.
	k2, _, ctx2 := keepertest.EscrowKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))

	require.Equal(t, k.GetNextWalletID(ctx), k2.GetNextWalletID(ctx2))
	require.Equal(t, math.NewInt(1000), k2.GetBalance(ctx2, wallet, testDenom))
	require.Equal(t, math.NewInt(200), k2.GetLocked(ctx2, wallet, testDenom))
	require.Equal(t, math.NewInt(400), k2.GetAllowance(ctx2, wallet, spender, testDenom))

	restored, found := k2.GetWallet(ctx2, wallet)
	require.True(t, found)
	require.Equal(t, owner.String(), restored.Owner)
}

func TestGenesisDefaultNextID(t *testing.T) {
	k, _, ctx := keepertest.EscrowKeeper(t)

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), exported.NextWalletId)
}
