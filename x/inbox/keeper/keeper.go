package keeper

import (
	"strconv"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/inbox/types"
)

// Keeper of the inbox store: an append-only ledger of delivered compute
// items keyed (containerId, node, index). The coordinator writes
// subscription-tied items through Append; nodes publish untied items
// through the msg server.
type Keeper struct {
	storeKey storetypes.StoreKey
	cdc      *codec.LegacyAmino
}

// NewKeeper creates a new inbox Keeper instance
func NewKeeper(cdc *codec.LegacyAmino, storeKey storetypes.StoreKey) Keeper {
	return Keeper{
		storeKey: storeKey,
		cdc:      cdc,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// Append stores item under (item.ContainerId, item.Node, nextIndex) and
// returns the index. The item's Index and Timestamp fields are assigned
// here; the caller fills everything else.
func (k Keeper) Append(ctx sdk.Context, item types.Item) (uint64, error) {
	if err := item.Validate(); err != nil {
		return 0, types.ErrInvalidItem.Wrap(err.Error())
	}
	node, err := sdk.AccAddressFromBech32(item.Node)
	if err != nil {
		return 0, types.ErrInvalidAddress.Wrapf("invalid node address: %v", err)
	}

	index := k.GetCount(ctx, item.ContainerId, node)
	item.Index = index
	item.Timestamp = ctx.BlockTime().Unix()

	store := ctx.KVStore(k.storeKey)
	store.Set(ItemKey(item.ContainerId, node, index), k.cdc.MustMarshal(&item))
	store.Set(CountKey(item.ContainerId, node), sdk.Uint64ToBigEndian(index+1))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeItemWritten,
			sdk.NewAttribute(types.AttributeKeyContainerId, item.ContainerId),
			sdk.NewAttribute(types.AttributeKeyNode, item.Node),
			sdk.NewAttribute(types.AttributeKeyIndex, strconv.FormatUint(index, 10)),
			sdk.NewAttribute(types.AttributeKeySubscriptionId, strconv.FormatUint(item.SubscriptionId, 10)),
			sdk.NewAttribute(types.AttributeKeyInterval, strconv.FormatUint(uint64(item.Interval), 10)),
		),
	)
	return index, nil
}

// GetItem returns the item stored at (containerId, node, index).
func (k Keeper) GetItem(ctx sdk.Context, containerId string, node sdk.AccAddress, index uint64) (types.Item, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(ItemKey(containerId, node, index))
	if bz == nil {
		return types.Item{}, false
	}
	var item types.Item
	k.cdc.MustUnmarshal(bz, &item)
	return item, true
}

// GetCount returns the number of items stored for (containerId, node),
// which is also the index the next Append will use.
func (k Keeper) GetCount(ctx sdk.Context, containerId string, node sdk.AccAddress) uint64 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(CountKey(containerId, node))
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

// IterateItems calls fn for every stored item until it returns true.
func (k Keeper) IterateItems(ctx sdk.Context, fn func(item types.Item) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, ItemKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var item types.Item
		k.cdc.MustUnmarshal(iterator.Value(), &item)
		if fn(item) {
			break
		}
	}
}

// IteratePairItems calls fn for every item of (containerId, node) in index
// order until it returns true.
func (k Keeper) IteratePairItems(ctx sdk.Context, containerId string, node sdk.AccAddress, fn func(item types.Item) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, ItemPairPrefix(containerId, node))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var item types.Item
		k.cdc.MustUnmarshal(iterator.Value(), &item)
		if fn(item) {
			break
		}
	}
}
