package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/inbox/types"
)

// InitGenesis initializes the inbox module's state from a genesis state.
// Items are written as-is (index and timestamp preserved); the per-pair
// counters are rebuilt from the item counts.
func (k Keeper) InitGenesis(ctx sdk.Context, data types.GenesisState) error {
	store := ctx.KVStore(k.storeKey)
	counts := make(map[string]uint64)
	addrs := make(map[string]sdk.AccAddress)

	for _, item := range data.Items {
		node, err := sdk.AccAddressFromBech32(item.Node)
		if err != nil {
			return fmt.Errorf("invalid node address %s: %w", item.Node, err)
		}
		item := item
		store.Set(ItemKey(item.ContainerId, node, item.Index), k.cdc.MustMarshal(&item))

		pair := item.ContainerId + "/" + item.Node
		counts[pair]++
		addrs[pair] = node
	}

	for pair, count := range counts {
		node := addrs[pair]
		containerId := pair[:len(pair)-len(node.String())-1]
		store.Set(CountKey(containerId, node), sdk.Uint64ToBigEndian(count))
	}
	return nil
}

// ExportGenesis exports the inbox module's state to a genesis state
func (k Keeper) ExportGenesis(ctx sdk.Context) (*types.GenesisState, error) {
	genesis := types.GenesisState{
		Items: []types.Item{},
	}
	k.IterateItems(ctx, func(item types.Item) bool {
		genesis.Items = append(genesis.Items, item)
		return false
	})
	return &genesis, nil
}
