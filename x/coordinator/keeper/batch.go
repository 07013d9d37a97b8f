package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/coordinator/types"
)

// ReadSubscriptionBatch returns the subscriptions in the half-open id
// range [start, end). Ids never allocated yield zero-valued entries, so
// off-chain pollers can scan ranges without tracking which ids exist. The
// range size is capped by MaxBatchReadSize.
func (k *Keeper) ReadSubscriptionBatch(ctx sdk.Context, start, end uint64) ([]types.Subscription, error) {
	if end < start {
		return nil, types.ErrBatchTooLarge.Wrapf("end %d before start %d", end, start)
	}
	max := uint64(k.GetParams(ctx).MaxBatchReadSize)
	if end-start > max {
		return nil, types.ErrBatchTooLarge.Wrapf("range of %d exceeds limit %d", end-start, max)
	}

	subs := make([]types.Subscription, 0, end-start)
	for id := start; id < end; id++ {
		sub, found := k.GetSubscription(ctx, id)
		if !found {
			sub = types.Subscription{}
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// ReadRedundancyCountBatch returns the accepted-delivery counts for the
// parallel (ids, intervals) slices.
func (k *Keeper) ReadRedundancyCountBatch(ctx sdk.Context, ids []uint64, intervals []uint32) ([]uint32, error) {
	if len(ids) != len(intervals) {
		return nil, types.ErrBatchTooLarge.Wrapf("%d ids but %d intervals", len(ids), len(intervals))
	}
	max := int(k.GetParams(ctx).MaxBatchReadSize)
	if len(ids) > max {
		return nil, types.ErrBatchTooLarge.Wrapf("batch of %d exceeds limit %d", len(ids), max)
	}

	counts := make([]uint32, len(ids))
	for i := range ids {
		counts[i] = k.GetTally(ctx, ids[i], intervals[i]).Accepted
	}
	return counts, nil
}
