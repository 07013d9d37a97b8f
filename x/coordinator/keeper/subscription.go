package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/coordinator/types"
)

// CreateSubscription validates the creation fields, allocates the next
// sequential id and stores the subscription. ActiveAt of 0 resolves to the
// block time. No escrow interaction happens here: funding is checked
// lazily at delivery time, so creation never fails for lack of funds.
func (k *Keeper) CreateSubscription(ctx sdk.Context, sub types.Subscription) (uint64, error) {
	if sub.ActiveAt == 0 {
		sub.ActiveAt = ctx.BlockTime().Unix()
	}
	if sub.PaymentAmount.IsNil() {
		sub.PaymentAmount = math.ZeroInt()
	}
	if err := sub.Validate(); err != nil {
		return 0, types.ErrInvalidSubscription.Wrap(err.Error())
	}

	id := k.GetNextSubscriptionID(ctx)
	sub.Id = id
	sub.Cancelled = false
	sub.CreatedAt = ctx.BlockTime().Unix()

	k.SetSubscription(ctx, sub)
	k.SetNextSubscriptionID(ctx, id+1)

	k.metrics.SubscriptionsCreated.Inc()
	k.Logger(ctx).Info("subscription created",
		"id", id, "owner", sub.Owner, "container", sub.ContainerId,
		"frequency", sub.Frequency, "redundancy", sub.Redundancy)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubscriptionCreated,
			sdk.NewAttribute(types.AttributeKeySubscriptionId, strconv.FormatUint(id, 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, sub.Owner),
			sdk.NewAttribute(types.AttributeKeyContainerId, sub.ContainerId),
			sdk.NewAttribute(types.AttributeKeyLazy, strconv.FormatBool(sub.Lazy)),
		),
	)
	return id, nil
}

// CancelSubscription marks the subscription terminal. Only the owner may
// cancel; cancelling an already cancelled or completed subscription is an
// idempotent no-op.
func (k *Keeper) CancelSubscription(ctx sdk.Context, owner sdk.AccAddress, id uint64) error {
	sub, found := k.GetSubscription(ctx, id)
	if !found {
		return types.ErrSubscriptionNotFound.Wrapf("subscription %d", id)
	}
	if sub.Owner != owner.String() {
		return types.ErrNotSubscriptionOwner.Wrapf("subscription %d is owned by %s", id, sub.Owner)
	}
	if sub.Cancelled || k.IsCompleted(ctx, sub) {
		return nil
	}

	sub.Cancelled = true
	k.SetSubscription(ctx, sub)

	k.metrics.SubscriptionsCancelled.Inc()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubscriptionCancelled,
			sdk.NewAttribute(types.AttributeKeySubscriptionId, strconv.FormatUint(id, 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, sub.Owner),
		),
	)
	return nil
}

// IsCompleted reports whether the subscription has exhausted its delivery
// schedule: the open interval is beyond Frequency, or the final interval's
// redundancy is already satisfied.
func (k *Keeper) IsCompleted(ctx sdk.Context, sub types.Subscription) bool {
	interval := sub.IntervalAt(ctx.BlockTime().Unix())
	if interval > sub.Frequency {
		return true
	}
	if interval == sub.Frequency {
		tally := k.GetTally(ctx, sub.Id, interval)
		return tally.Accepted >= sub.Redundancy
	}
	return false
}

// SetSubscription stores a subscription record.
func (k *Keeper) SetSubscription(ctx sdk.Context, sub types.Subscription) {
	store := ctx.KVStore(k.storeKey)
	store.Set(SubscriptionKey(sub.Id), k.cdc.MustMarshal(&sub))
}

// GetSubscription returns the subscription stored under id.
func (k *Keeper) GetSubscription(ctx sdk.Context, id uint64) (types.Subscription, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(SubscriptionKey(id))
	if bz == nil {
		return types.Subscription{}, false
	}
	var sub types.Subscription
	k.cdc.MustUnmarshal(bz, &sub)
	return sub, true
}

// GetNextSubscriptionID returns the id the next creation will use.
func (k *Keeper) GetNextSubscriptionID(ctx sdk.Context) uint64 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(NextSubscriptionIDKey)
	if bz == nil {
		return 1
	}
	return sdk.BigEndianToUint64(bz)
}

// SetNextSubscriptionID stores the subscription id counter.
func (k *Keeper) SetNextSubscriptionID(ctx sdk.Context, id uint64) {
	store := ctx.KVStore(k.storeKey)
	store.Set(NextSubscriptionIDKey, sdk.Uint64ToBigEndian(id))
}

// GetTally returns the delivery tally for (id, interval), zero when unset.
func (k *Keeper) GetTally(ctx sdk.Context, id uint64, interval uint32) types.DeliveryTally {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(TallyKey(id, interval))
	if bz == nil {
		return types.DeliveryTally{}
	}
	var tally types.DeliveryTally
	k.cdc.MustUnmarshal(bz, &tally)
	return tally
}

// SetTally stores the delivery tally for (id, interval).
func (k *Keeper) SetTally(ctx sdk.Context, id uint64, interval uint32, tally types.DeliveryTally) {
	store := ctx.KVStore(k.storeKey)
	store.Set(TallyKey(id, interval), k.cdc.MustMarshal(&tally))
}

// HasDelivered reports whether node was already counted for (id, interval).
func (k *Keeper) HasDelivered(ctx sdk.Context, id uint64, interval uint32, node sdk.AccAddress) bool {
	return ctx.KVStore(k.storeKey).Has(DeliveredKey(id, interval, node))
}

// SetDelivered marks node delivered for (id, interval). The flag is never
// cleared, including for deliveries whose proof later fails.
func (k *Keeper) SetDelivered(ctx sdk.Context, id uint64, interval uint32, node sdk.AccAddress) {
	ctx.KVStore(k.storeKey).Set(DeliveredKey(id, interval, node), []byte{1})
}

// IterateSubscriptions calls fn for every subscription in id order until it
// returns true.
func (k *Keeper) IterateSubscriptions(ctx sdk.Context, fn func(sub types.Subscription) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, SubscriptionKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var sub types.Subscription
		k.cdc.MustUnmarshal(iterator.Value(), &sub)
		if fn(sub) {
			break
		}
	}
}

// IterateTallies calls fn for every stored tally until it returns true.
func (k *Keeper) IterateTallies(ctx sdk.Context, fn func(id uint64, interval uint32, tally types.DeliveryTally) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, TallyKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()[1:]
		id := sdk.BigEndianToUint64(key[:8])
		interval := uint32(sdk.BigEndianToUint64(key[8:16]))
		var tally types.DeliveryTally
		k.cdc.MustUnmarshal(iterator.Value(), &tally)
		if fn(id, interval, tally) {
			break
		}
	}
}

// IterateDelivered calls fn for every delivered flag until it returns true.
func (k *Keeper) IterateDelivered(ctx sdk.Context, fn func(id uint64, interval uint32, node sdk.AccAddress) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, DeliveredKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		id, interval, node := parseIntervalNodeKey(iterator.Key()[1:])
		if fn(id, interval, node) {
			break
		}
	}
}
