package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/inbox/types"
)

// RegisterInvariants registers all inbox module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "index-density",
		IndexDensityInvariant(k))
}

// IndexDensityInvariant checks that every (container, node) pair's items
// occupy exactly the indices 0..count-1. A gap or an item at or beyond the
// counter would mean the ledger was mutated outside Append.
func IndexDensityInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken bool
			msg    string
		)

		counts := make(map[string]uint64)
		k.IterateItems(ctx, func(item types.Item) bool {
			pair := item.ContainerId + "/" + item.Node
			node, err := sdk.AccAddressFromBech32(item.Node)
			if err != nil {
				broken = true
				msg += fmt.Sprintf("item %s/%d: bad node address\n", pair, item.Index)
				return false
			}
			counter := k.GetCount(ctx, item.ContainerId, node)
			if item.Index >= counter {
				broken = true
				msg += fmt.Sprintf("item %s/%d: index at or beyond counter %d\n", pair, item.Index, counter)
			}
			counts[pair]++
			return false
		})

		k.IterateItems(ctx, func(item types.Item) bool {
			pair := item.ContainerId + "/" + item.Node
			node, _ := sdk.AccAddressFromBech32(item.Node)
			counter := k.GetCount(ctx, item.ContainerId, node)
			if counts[pair] != counter {
				broken = true
				msg += fmt.Sprintf("pair %s: %d items but counter %d\n", pair, counts[pair], counter)
			}
			return false
		})

		return sdk.FormatInvariant(
			types.ModuleName, "index-density",
			msg,
		), broken
	}
}
