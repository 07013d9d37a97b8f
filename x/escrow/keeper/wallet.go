package keeper

import (
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/chime-chain/chime/x/escrow/types"
)

// CreateWallet allocates a new escrow wallet owned by owner and returns its
// derived address. Addresses are derived from the module account and a
// sequential wallet id, so they never collide with externally held keys.
func (k Keeper) CreateWallet(ctx sdk.Context, owner sdk.AccAddress) (sdk.AccAddress, error) {
	id := k.GetNextWalletID(ctx)
	walletAddr := sdk.AccAddress(address.Derive(k.GetModuleAddress(), sdk.Uint64ToBigEndian(id)))

	if _, found := k.GetWallet(ctx, walletAddr); found {
		return nil, types.ErrWalletExists.Wrapf("wallet %s already exists", walletAddr)
	}

	wallet := types.Wallet{
		Address:   walletAddr.String(),
		Owner:     owner.String(),
		CreatedAt: ctx.BlockTime().Unix(),
	}
	k.SetWallet(ctx, wallet)
	k.SetNextWalletID(ctx, id+1)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWalletCreated,
			sdk.NewAttribute(types.AttributeKeyWallet, wallet.Address),
			sdk.NewAttribute(types.AttributeKeyOwner, wallet.Owner),
		),
	)
	return walletAddr, nil
}

// SetWallet stores wallet metadata.
func (k Keeper) SetWallet(ctx sdk.Context, wallet types.Wallet) {
	store := ctx.KVStore(k.storeKey)
	addr, err := sdk.AccAddressFromBech32(wallet.Address)
	if err != nil {
		panic(err)
	}
	store.Set(WalletKey(addr), k.cdc.MustMarshal(&wallet))
}

// GetWallet returns the wallet metadata stored under addr.
func (k Keeper) GetWallet(ctx sdk.Context, addr sdk.AccAddress) (types.Wallet, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(WalletKey(addr))
	if bz == nil {
		return types.Wallet{}, false
	}
	var wallet types.Wallet
	k.cdc.MustUnmarshal(bz, &wallet)
	return wallet, true
}

// GetNextWalletID returns the next wallet id used for address derivation.
func (k Keeper) GetNextWalletID(ctx sdk.Context) uint64 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(NextWalletIDKey)
	if bz == nil {
		return 1
	}
	return sdk.BigEndianToUint64(bz)
}

// SetNextWalletID stores the next wallet id counter.
func (k Keeper) SetNextWalletID(ctx sdk.Context, id uint64) {
	store := ctx.KVStore(k.storeKey)
	store.Set(NextWalletIDKey, sdk.Uint64ToBigEndian(id))
}

// Deposit moves amount from the depositor's bank balance into the wallet.
// Any account may fund any wallet.
func (k Keeper) Deposit(ctx sdk.Context, depositor sdk.AccAddress, walletAddr sdk.AccAddress, amount sdk.Coin) error {
	if _, found := k.GetWallet(ctx, walletAddr); !found {
		return types.ErrWalletNotFound.Wrapf("wallet %s", walletAddr)
	}
	if !amount.IsValid() || amount.IsZero() {
		return types.ErrInvalidAmount.Wrapf("deposit amount %s", amount)
	}

	balance := k.GetBalance(ctx, walletAddr, amount.Denom)
	k.setAmount(ctx, BalanceKey(walletAddr, amount.Denom), balance.Add(amount.Amount))

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, depositor, types.ModuleName, sdk.NewCoins(amount)); err != nil {
		return types.ErrTransferFailed.Wrapf("deposit: %v", err)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDeposit,
			sdk.NewAttribute(types.AttributeKeyWallet, walletAddr.String()),
			sdk.NewAttribute(types.AttributeKeyDepositor, depositor.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, amount.Denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.Amount.String()),
		),
	)
	return nil
}

// Withdraw moves unlocked funds from the wallet to the recipient. Only the
// wallet owner may withdraw.
func (k Keeper) Withdraw(ctx sdk.Context, owner sdk.AccAddress, walletAddr sdk.AccAddress, recipient sdk.AccAddress, amount sdk.Coin) error {
	wallet, found := k.GetWallet(ctx, walletAddr)
	if !found {
		return types.ErrWalletNotFound.Wrapf("wallet %s", walletAddr)
	}
	if wallet.Owner != owner.String() {
		return types.ErrNotWalletOwner.Wrapf("wallet %s is owned by %s", walletAddr, wallet.Owner)
	}
	if !amount.IsValid() || amount.IsZero() {
		return types.ErrInvalidAmount.Wrapf("withdraw amount %s", amount)
	}

	unlocked := k.GetUnlockedBalance(ctx, walletAddr, amount.Denom)
	if amount.Amount.GT(unlocked) {
		return types.ErrInsufficientUnlocked.Wrapf("withdraw %s exceeds unlocked balance %s%s", amount, unlocked, amount.Denom)
	}

	balance := k.GetBalance(ctx, walletAddr, amount.Denom)
	k.setAmount(ctx, BalanceKey(walletAddr, amount.Denom), balance.Sub(amount.Amount))

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, sdk.NewCoins(amount)); err != nil {
		return types.ErrTransferFailed.Wrapf("withdraw: %v", err)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdraw,
			sdk.NewAttribute(types.AttributeKeyWallet, walletAddr.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, amount.Denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.Amount.String()),
		),
	)
	return nil
}

// Approve sets the allowance of (spender, denom) on the wallet to amount,
// replacing any previous value. Only the wallet owner may set allowances.
func (k Keeper) Approve(ctx sdk.Context, owner sdk.AccAddress, walletAddr sdk.AccAddress, spender sdk.AccAddress, denom string, amount math.Int) error {
	wallet, found := k.GetWallet(ctx, walletAddr)
	if !found {
		return types.ErrWalletNotFound.Wrapf("wallet %s", walletAddr)
	}
	if wallet.Owner != owner.String() {
		return types.ErrNotWalletOwner.Wrapf("wallet %s is owned by %s", walletAddr, wallet.Owner)
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("allowance %s", amount)
	}

	k.setAmount(ctx, AllowanceKey(walletAddr, spender, denom), amount)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeApprove,
			sdk.NewAttribute(types.AttributeKeyWallet, walletAddr.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// GetBalance returns the wallet's total balance of denom.
func (k Keeper) GetBalance(ctx sdk.Context, wallet sdk.AccAddress, denom string) math.Int {
	return k.getAmount(ctx, BalanceKey(wallet, denom))
}

// GetLocked returns the wallet's locked amount of denom.
func (k Keeper) GetLocked(ctx sdk.Context, wallet sdk.AccAddress, denom string) math.Int {
	return k.getAmount(ctx, LockedKey(wallet, denom))
}

// GetAllowance returns the (wallet, spender, denom) allowance.
func (k Keeper) GetAllowance(ctx sdk.Context, wallet, spender sdk.AccAddress, denom string) math.Int {
	return k.getAmount(ctx, AllowanceKey(wallet, spender, denom))
}

// IterateWallets calls fn for every wallet until it returns true.
func (k Keeper) IterateWallets(ctx sdk.Context, fn func(wallet types.Wallet) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, WalletKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var wallet types.Wallet
		k.cdc.MustUnmarshal(iterator.Value(), &wallet)
		if fn(wallet) {
			break
		}
	}
}

// IterateBalances calls fn for every (wallet, denom) balance row.
func (k Keeper) IterateBalances(ctx sdk.Context, fn func(wallet sdk.AccAddress, denom string, amount math.Int) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, BalanceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		wallet, denom := parseBalanceKey(iterator.Key()[1:])
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}
		if fn(wallet, denom, amount) {
			break
		}
	}
}

// IterateLocked calls fn for every (wallet, denom) locked row.
func (k Keeper) IterateLocked(ctx sdk.Context, fn func(wallet sdk.AccAddress, denom string, amount math.Int) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, LockedKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		wallet, denom := parseBalanceKey(iterator.Key()[1:])
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}
		if fn(wallet, denom, amount) {
			break
		}
	}
}

// IterateAllowances calls fn for every (wallet, spender, denom) allowance row.
func (k Keeper) IterateAllowances(ctx sdk.Context, fn func(wallet, spender sdk.AccAddress, denom string, amount math.Int) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, AllowanceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		wallet, spender, denom := parseAllowanceKey(iterator.Key()[1:])
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}
		if fn(wallet, spender, denom, amount) {
			break
		}
	}
}
