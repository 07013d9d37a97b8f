package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/escrow/types"
)

// The lock/unlock/transfer entry points below are the escrow ledger contract
// consumed by the coordinator module. No Msg handler reaches them; the
// coordinator keeper is handed this keeper at app wiring time and is the
// only mutating caller.

// GetUnlockedBalance returns balance minus locked for (wallet, denom).
// A wallet that does not exist has a zero unlocked balance.
func (k Keeper) GetUnlockedBalance(ctx sdk.Context, wallet sdk.AccAddress, denom string) math.Int {
	return k.GetBalance(ctx, wallet, denom).Sub(k.GetLocked(ctx, wallet, denom))
}

// Lock reserves amount of the wallet's denom against the spender's
// allowance: the allowance is decremented and the locked counter
// incremented, making the funds unavailable to withdrawals and to other
// spenders until Unlock or Transfer resolves them.
func (k Keeper) Lock(ctx sdk.Context, wallet sdk.AccAddress, spender sdk.AccAddress, denom string, amount math.Int) error {
	if _, found := k.GetWallet(ctx, wallet); !found {
		return types.ErrWalletNotFound.Wrapf("wallet %s", wallet)
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("lock amount %s", amount)
	}

	unlocked := k.GetUnlockedBalance(ctx, wallet, denom)
	if amount.GT(unlocked) {
		return types.ErrInsufficientUnlocked.Wrapf("lock %s%s exceeds unlocked balance %s%s", amount, denom, unlocked, denom)
	}
	allowance := k.GetAllowance(ctx, wallet, spender, denom)
	if amount.GT(allowance) {
		return types.ErrInsufficientAllowance.Wrapf("lock %s%s exceeds allowance %s%s of spender %s", amount, denom, allowance, denom, spender)
	}

	k.setAmount(ctx, AllowanceKey(wallet, spender, denom), allowance.Sub(amount))
	k.setAmount(ctx, LockedKey(wallet, denom), k.GetLocked(ctx, wallet, denom).Add(amount))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLock,
			sdk.NewAttribute(types.AttributeKeyWallet, wallet.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Unlock releases a previously locked amount back to the spender's
// allowance. The inverse of Lock; it never moves funds.
func (k Keeper) Unlock(ctx sdk.Context, wallet sdk.AccAddress, spender sdk.AccAddress, denom string, amount math.Int) error {
	if _, found := k.GetWallet(ctx, wallet); !found {
		return types.ErrWalletNotFound.Wrapf("wallet %s", wallet)
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("unlock amount %s", amount)
	}

	locked := k.GetLocked(ctx, wallet, denom)
	if amount.GT(locked) {
		return types.ErrInsufficientLocked.Wrapf("unlock %s%s exceeds locked balance %s%s", amount, denom, locked, denom)
	}

	k.setAmount(ctx, LockedKey(wallet, denom), locked.Sub(amount))
	allowance := k.GetAllowance(ctx, wallet, spender, denom)
	k.setAmount(ctx, AllowanceKey(wallet, spender, denom), allowance.Add(amount))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeUnlock,
			sdk.NewAttribute(types.AttributeKeyWallet, wallet.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Transfer spends amount of the spender's allowance, moving funds from the
// module account to the recipient. The wallet balance and allowance are
// decremented before the bank send so state is settled when the transfer
// executes.
func (k Keeper) Transfer(ctx sdk.Context, wallet sdk.AccAddress, spender sdk.AccAddress, denom string, to sdk.AccAddress, amount math.Int) error {
	if _, found := k.GetWallet(ctx, wallet); !found {
		return types.ErrWalletNotFound.Wrapf("wallet %s", wallet)
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("transfer amount %s", amount)
	}

	allowance := k.GetAllowance(ctx, wallet, spender, denom)
	if amount.GT(allowance) {
		return types.ErrInsufficientAllowance.Wrapf("transfer %s%s exceeds allowance %s%s of spender %s", amount, denom, allowance, denom, spender)
	}
	unlocked := k.GetUnlockedBalance(ctx, wallet, denom)
	if amount.GT(unlocked) {
		return types.ErrInsufficientUnlocked.Wrapf("transfer %s%s exceeds unlocked balance %s%s", amount, denom, unlocked, denom)
	}

	k.setAmount(ctx, AllowanceKey(wallet, spender, denom), allowance.Sub(amount))
	k.setAmount(ctx, BalanceKey(wallet, denom), k.GetBalance(ctx, wallet, denom).Sub(amount))

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, to, sdk.NewCoins(sdk.NewCoin(denom, amount))); err != nil {
		return types.ErrTransferFailed.Wrapf("transfer to %s: %v", to, err)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyWallet, wallet.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}
