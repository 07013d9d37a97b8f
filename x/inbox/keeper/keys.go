package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

var (
	// ItemKeyPrefix is the prefix for stored ledger items
	ItemKeyPrefix = []byte{0x01}

	// CountKeyPrefix is the prefix for per-(container, node) item counters
	CountKeyPrefix = []byte{0x02}
)

// pairKey builds len(containerId) || containerId || len(node) || node. Both
// components are length-prefixed so pairs never alias across boundaries.
func pairKey(containerId string, node sdk.AccAddress) []byte {
	cid := []byte(containerId)
	key := make([]byte, 0, 1+len(cid)+1+len(node))
	key = append(key, byte(len(cid)))
	key = append(key, cid...)
	return append(key, address.MustLengthPrefix(node)...)
}

// ItemKey returns the store key for the item at (containerId, node, index)
func ItemKey(containerId string, node sdk.AccAddress, index uint64) []byte {
	key := append(ItemKeyPrefix, pairKey(containerId, node)...)
	return append(key, sdk.Uint64ToBigEndian(index)...)
}

// ItemPairPrefix returns the store prefix covering all items of a pair
func ItemPairPrefix(containerId string, node sdk.AccAddress) []byte {
	return append(ItemKeyPrefix, pairKey(containerId, node)...)
}

// CountKey returns the store key for a pair's item counter
func CountKey(containerId string, node sdk.AccAddress) []byte {
	return append(CountKeyPrefix, pairKey(containerId, node)...)
}
