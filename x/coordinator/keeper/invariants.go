package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/coordinator/types"
)

// RegisterInvariants registers all coordinator module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k *Keeper) {
	ir.RegisterRoute(types.ModuleName, "redundancy-bound",
		RedundancyBoundInvariant(k))
	ir.RegisterRoute(types.ModuleName, "counter-bound",
		CounterBoundInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pending-proof-accounting",
		PendingProofAccountingInvariant(k))
	ir.RegisterRoute(types.ModuleName, "proof-lock-accounting",
		ProofLockAccountingInvariant(k))
}

// AllInvariants runs all invariants of the coordinator module
func AllInvariants(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := RedundancyBoundInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = CounterBoundInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = PendingProofAccountingInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return ProofLockAccountingInvariant(k)(ctx)
	}
}

// RedundancyBoundInvariant checks that no interval tally exceeds its
// subscription's redundancy.
func RedundancyBoundInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken bool
			msg    string
		)

		k.IterateTallies(ctx, func(id uint64, interval uint32, tally types.DeliveryTally) bool {
			sub, found := k.GetSubscription(ctx, id)
			if !found {
				broken = true
				msg += fmt.Sprintf("tally for unknown subscription %d\n", id)
				return false
			}
			if tally.Total() > sub.Redundancy {
				broken = true
				msg += fmt.Sprintf("subscription %d interval %d: %d deliveries exceed redundancy %d\n",
					id, interval, tally.Total(), sub.Redundancy)
			}
			return false
		})

		return sdk.FormatInvariant(
			types.ModuleName, "redundancy-bound",
			msg,
		), broken
	}
}

// CounterBoundInvariant checks that every stored subscription id is below
// the next-id counter.
func CounterBoundInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken bool
			msg    string
		)

		nextID := k.GetNextSubscriptionID(ctx)
		k.IterateSubscriptions(ctx, func(sub types.Subscription) bool {
			if sub.Id >= nextID {
				broken = true
				msg += fmt.Sprintf("subscription %d at or beyond counter %d\n", sub.Id, nextID)
			}
			return false
		})

		return sdk.FormatInvariant(
			types.ModuleName, "counter-bound",
			msg,
		), broken
	}
}

// PendingProofAccountingInvariant checks that each interval's pending tally
// matches the number of pending proof records for that interval.
func PendingProofAccountingInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		pending := make(map[string]uint32)
		k.IterateProofs(ctx, func(record types.ProofVerification) bool {
			if record.Pending() {
				key := fmt.Sprintf("%d/%d", record.SubscriptionId, record.Interval)
				pending[key]++
			}
			return false
		})

		var (
			broken bool
			msg    string
		)
		k.IterateTallies(ctx, func(id uint64, interval uint32, tally types.DeliveryTally) bool {
			key := fmt.Sprintf("%d/%d", id, interval)
			if tally.Pending != pending[key] {
				broken = true
				msg += fmt.Sprintf("subscription %d interval %d: tally pending %d but %d pending proof records\n",
					id, interval, tally.Pending, pending[key])
			}
			delete(pending, key)
			return false
		})
		for key, count := range pending {
			broken = true
			msg += fmt.Sprintf("interval %s: %d pending proof records with no tally\n", key, count)
		}

		return sdk.FormatInvariant(
			types.ModuleName, "pending-proof-accounting",
			msg,
		), broken
	}
}

// ProofLockAccountingInvariant checks that the escrow holds at least the
// sum of the Locked amounts of pending proof records, per wallet and token.
func ProofLockAccountingInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		type walletToken struct {
			wallet string
			token  string
		}
		locked := make(map[walletToken]math.Int)
		var (
			broken bool
			msg    string
		)

		k.IterateProofs(ctx, func(record types.ProofVerification) bool {
			if !record.Pending() || !record.Locked.IsPositive() {
				return false
			}
			sub, found := k.GetSubscription(ctx, record.SubscriptionId)
			if !found {
				broken = true
				msg += fmt.Sprintf("pending proof record for unknown subscription %d\n", record.SubscriptionId)
				return false
			}
			key := walletToken{wallet: sub.Wallet, token: sub.PaymentToken}
			sum, ok := locked[key]
			if !ok {
				sum = math.ZeroInt()
			}
			locked[key] = sum.Add(record.Locked)
			return false
		})

		for key, sum := range locked {
			wallet, err := sdk.AccAddressFromBech32(key.wallet)
			if err != nil {
				broken = true
				msg += fmt.Sprintf("pending proof records against malformed wallet %q\n", key.wallet)
				continue
			}
			held := k.escrowKeeper.GetLocked(ctx, wallet, key.token)
			if sum.GT(held) {
				broken = true
				msg += fmt.Sprintf("wallet %s holds %s%s locked but pending proofs claim %s%s\n",
					key.wallet, held, key.token, sum, key.token)
			}
		}

		return sdk.FormatInvariant(
			types.ModuleName, "proof-lock-accounting",
			msg,
		), broken
	}
}
