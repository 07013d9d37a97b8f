package types

import (
	"fmt"
)

// GenesisState defines the inbox module's genesis state.
type GenesisState struct {
	Items []Item `json:"items"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Items: []Item{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure. Item indices must be dense per (container, node) pair: 0..n-1 with
// no gaps, so the per-pair counters can be rebuilt from the items alone.
func (gs GenesisState) Validate() error {
	counts := make(map[string]uint64)
	seen := make(map[string]bool)

	for i, item := range gs.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		pair := item.ContainerId + "/" + item.Node
		key := fmt.Sprintf("%s/%d", pair, item.Index)
		if seen[key] {
			return fmt.Errorf("item %d: duplicate index %d for %s", i, item.Index, pair)
		}
		seen[key] = true
		counts[pair]++
	}

	for pair, count := range counts {
		for idx := uint64(0); idx < count; idx++ {
			if !seen[fmt.Sprintf("%s/%d", pair, idx)] {
				return fmt.Errorf("missing index %d for %s", idx, pair)
			}
		}
	}
	return nil
}
