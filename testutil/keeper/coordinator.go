package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/stretchr/testify/require"

	coordinatorkeeper "github.com/chime-chain/chime/x/coordinator/keeper"
	coordinatortypes "github.com/chime-chain/chime/x/coordinator/types"
	escrowkeeper "github.com/chime-chain/chime/x/escrow/keeper"
	escrowtypes "github.com/chime-chain/chime/x/escrow/types"
	inboxkeeper "github.com/chime-chain/chime/x/inbox/keeper"
	inboxtypes "github.com/chime-chain/chime/x/inbox/types"
)

// CoordinatorFixture bundles the coordinator keeper with the escrow and
// inbox keepers it drives and the bank plumbing behind them.
type CoordinatorFixture struct {
	Coordinator *coordinatorkeeper.Keeper
	Escrow      escrowkeeper.Keeper
	Inbox       inboxkeeper.Keeper
	Account     authkeeper.AccountKeeper
	Bank        bankkeeper.BaseKeeper
	Authority   string
	Ctx         sdk.Context
}

// CoordinatorKeeper creates a full coordinator test fixture: coordinator,
// escrow and inbox keepers sharing one in-memory multistore, with real auth
// and bank keepers behind the escrow module.
func CoordinatorKeeper(t testing.TB) CoordinatorFixture {
	storeKey := storetypes.NewKVStoreKey(coordinatortypes.StoreKey)
	escrowStoreKey := storetypes.NewKVStoreKey(escrowtypes.StoreKey)
	inboxStoreKey := storetypes.NewKVStoreKey(inboxtypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(escrowStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(inboxStoreKey, storetypes.StoreTypeIAVL, db)

	fixture := newBankFixture(t, db, stateStore)
	require.NoError(t, stateStore.LoadLatestVersion())

	escrowKeeper := escrowkeeper.NewKeeper(
		escrowtypes.ModuleCdc,
		escrowStoreKey,
		fixture.AccountKeeper,
		fixture.BankKeeper,
	)
	inboxKeeper := inboxkeeper.NewKeeper(inboxtypes.ModuleCdc, inboxStoreKey)

	k := coordinatorkeeper.NewKeeper(
		coordinatortypes.ModuleCdc,
		storeKey,
		fixture.AccountKeeper,
		escrowKeeper,
		inboxKeeper,
		fixture.Authority,
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: time.Unix(1_700_000_000, 0)}, false, log.NewNopLogger())

	return CoordinatorFixture{
		Coordinator: k,
		Escrow:      escrowKeeper,
		Inbox:       inboxKeeper,
		Account:     fixture.AccountKeeper,
		Bank:        fixture.BankKeeper,
		Authority:   fixture.Authority,
		Ctx:         ctx,
	}
}

// FundWallet mints coins to the bank module and deposits them into an
// escrow wallet owned by owner, returning the wallet address.
func (f CoordinatorFixture) FundWallet(t testing.TB, ctx sdk.Context, owner sdk.AccAddress, denom string, amount math.Int) sdk.AccAddress {
	wallet, err := f.Escrow.CreateWallet(ctx, owner)
	require.NoError(t, err)

	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	require.NoError(t, f.Bank.MintCoins(ctx, banktypes.ModuleName, coins))
	require.NoError(t, f.Bank.SendCoinsFromModuleToAccount(ctx, banktypes.ModuleName, owner, coins))
	require.NoError(t, f.Escrow.Deposit(ctx, owner, wallet, sdk.NewCoin(denom, amount)))

	return wallet
}
