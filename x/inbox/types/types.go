package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MaxPayloadSize bounds each of the input, output and proof payloads of an
// item written directly by a node. Coordinator-written items are bounded by
// the coordinator's own params instead.
const MaxPayloadSize = 1 << 20 // 1 MiB

// Item is one delivered compute result in the append-only ledger. Items are
// keyed (containerId, node, index) with a per-pair index that starts at 0
// and increases by one per write; once written an item is never mutated.
// SubscriptionId and Interval are 0 for items a node publishes directly,
// outside any subscription.
type Item struct {
	ContainerId    string `json:"container_id"`
	Node           string `json:"node"`
	Index          uint64 `json:"index"`
	Timestamp      int64  `json:"timestamp"`
	SubscriptionId uint64 `json:"subscription_id"`
	Interval       uint32 `json:"interval"`
	Input          []byte `json:"input,omitempty"`
	Output         []byte `json:"output,omitempty"`
	Proof          []byte `json:"proof,omitempty"`
}

// Validate performs stateless validation of an item.
func (item Item) Validate() error {
	if item.ContainerId == "" {
		return fmt.Errorf("container id cannot be empty")
	}
	if _, err := sdk.AccAddressFromBech32(item.Node); err != nil {
		return fmt.Errorf("invalid node address %q: %w", item.Node, err)
	}
	if item.Timestamp < 0 {
		return fmt.Errorf("negative timestamp %d", item.Timestamp)
	}
	if item.SubscriptionId == 0 && item.Interval != 0 {
		return fmt.Errorf("interval %d set without a subscription id", item.Interval)
	}
	return nil
}
