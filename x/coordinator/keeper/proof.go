package keeper

import (
	"strconv"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/coordinator/types"
)

var _ types.ProofFinalizer = (*Keeper)(nil)

// FinalizeProofValidation resolves a provisional delivery with the
// prover's verdict. Only the prover recorded on the subscription may call
// it, exactly once per (subscription, interval, node).
//
// valid == true releases the locked payment back through the allowance and
// settles the fee split, moves the delivery from pending to accepted, and,
// for a non-lazy subscription, invokes the consumer callback with the
// inbox pointer stored at delivery time. valid == false only releases the
// lock; the delivery never counts toward redundancy, though the node stays
// marked delivered for the interval.
func (k *Keeper) FinalizeProofValidation(ctx sdk.Context, prover sdk.AccAddress, subscriptionId uint64, interval uint32, node sdk.AccAddress, valid bool) error {
	sub, found := k.GetSubscription(ctx, subscriptionId)
	if !found {
		return types.ErrSubscriptionNotFound.Wrapf("subscription %d", subscriptionId)
	}
	if sub.Prover != prover.String() {
		return types.ErrUnauthorizedProver.Wrapf("subscription %d expects prover %s", subscriptionId, sub.Prover)
	}

	record, found := k.GetProof(ctx, subscriptionId, interval, node)
	if !found {
		return types.ErrProofNotPending.Wrapf("no provisional delivery for node %s, subscription %d interval %d", node, subscriptionId, interval)
	}
	if !record.Pending() {
		return types.ErrProofAlreadyFinalized.Wrapf("node %s, subscription %d interval %d", node, subscriptionId, interval)
	}

	if record.Locked.IsPositive() {
		wallet, owner, err := sub.EscrowAddresses()
		if err != nil {
			return types.ErrInvalidAddress.Wrap(err.Error())
		}
		if err := k.escrowKeeper.Unlock(ctx, wallet, owner, sub.PaymentToken, record.Locked); err != nil {
			return err
		}
		if valid {
			if err := k.settle(ctx, sub, node, record.Locked); err != nil {
				return err
			}
		}
	}

	tally := k.GetTally(ctx, subscriptionId, interval)
	if tally.Pending > 0 {
		tally.Pending--
	}
	if valid {
		tally.Accepted++
	}
	k.SetTally(ctx, subscriptionId, interval, tally)

	record.Status = types.ProofStatusFinalized
	record.Valid = valid
	record.FinalizedAt = ctx.BlockTime().Unix()
	k.SetProof(ctx, record)

	if valid && !sub.Lazy {
		consumer, ok := k.GetConsumer(sub.Owner)
		if !ok {
			return types.ErrConsumerNotRegistered.Wrapf("owner %s", sub.Owner)
		}
		if err := consumer.ReceiveCompute(ctx, types.ComputeDelivery{
			SubscriptionId: subscriptionId,
			Interval:       interval,
			AcceptedCount:  tally.Accepted,
			Node:           node.String(),
			ContainerId:    record.ContainerId,
			InboxIndex:     record.InboxIndex,
		}); err != nil {
			return err
		}
	}

	k.metrics.ProofsFinalized.WithLabelValues(strconv.FormatBool(valid)).Inc()
	if valid {
		k.metrics.DeliveriesAccepted.Inc()
	}
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProofFinalized,
			sdk.NewAttribute(types.AttributeKeySubscriptionId, strconv.FormatUint(subscriptionId, 10)),
			sdk.NewAttribute(types.AttributeKeyInterval, strconv.FormatUint(uint64(interval), 10)),
			sdk.NewAttribute(types.AttributeKeyNode, node.String()),
			sdk.NewAttribute(types.AttributeKeyValid, strconv.FormatBool(valid)),
		),
	)
	return nil
}

// SetProof stores a proof verification record.
func (k *Keeper) SetProof(ctx sdk.Context, record types.ProofVerification) {
	node, err := sdk.AccAddressFromBech32(record.Node)
	if err != nil {
		panic(err)
	}
	store := ctx.KVStore(k.storeKey)
	store.Set(ProofKey(record.SubscriptionId, record.Interval, node), k.cdc.MustMarshal(&record))
}

// GetProof returns the proof verification record for (id, interval, node).
func (k *Keeper) GetProof(ctx sdk.Context, id uint64, interval uint32, node sdk.AccAddress) (types.ProofVerification, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(ProofKey(id, interval, node))
	if bz == nil {
		return types.ProofVerification{}, false
	}
	var record types.ProofVerification
	k.cdc.MustUnmarshal(bz, &record)
	return record, true
}

// IterateProofs calls fn for every proof verification record until it
// returns true.
func (k *Keeper) IterateProofs(ctx sdk.Context, fn func(record types.ProofVerification) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, ProofKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var record types.ProofVerification
		k.cdc.MustUnmarshal(iterator.Value(), &record)
		if fn(record) {
			break
		}
	}
}
