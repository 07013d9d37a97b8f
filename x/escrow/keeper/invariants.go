package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/escrow/types"
)

// RegisterInvariants registers all escrow module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "locked-within-balance",
		LockedWithinBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "module-account-backing",
		ModuleAccountBackingInvariant(k))
}

// AllInvariants runs all invariants of the escrow module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := LockedWithinBalanceInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return ModuleAccountBackingInvariant(k)(ctx)
	}
}

// LockedWithinBalanceInvariant checks that no wallet has more locked than its
// balance for any denom.
func LockedWithinBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken bool
			msg    string
		)

		k.IterateLocked(ctx, func(wallet sdk.AccAddress, denom string, locked math.Int) bool {
			balance := k.GetBalance(ctx, wallet, denom)
			if locked.GT(balance) {
				broken = true
				msg += fmt.Sprintf("wallet %s: locked %s%s exceeds balance %s%s\n",
					wallet, locked, denom, balance, denom)
			}
			return false
		})

		return sdk.FormatInvariant(
			types.ModuleName, "locked-within-balance",
			msg,
		), broken
	}
}

// ModuleAccountBackingInvariant checks that the module account holds at least
// the sum of all wallet balances per denom.
func ModuleAccountBackingInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		totals := make(map[string]math.Int)
		k.IterateBalances(ctx, func(wallet sdk.AccAddress, denom string, amount math.Int) bool {
			total, ok := totals[denom]
			if !ok {
				total = math.ZeroInt()
			}
			totals[denom] = total.Add(amount)
			return false
		})

		var (
			broken bool
			msg    string
		)
		moduleAddr := k.GetModuleAddress()
		for denom, total := range totals {
			held := k.bankKeeper.GetBalance(ctx, moduleAddr, denom)
			if held.Amount.LT(total) {
				broken = true
				msg += fmt.Sprintf("module account holds %s but wallets claim %s%s\n",
					held, total, denom)
			}
		}

		return sdk.FormatInvariant(
			types.ModuleName, "module-account-backing",
			msg,
		), broken
	}
}
