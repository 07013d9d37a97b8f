package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

var (
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x01}

	// NextSubscriptionIDKey is the key for the subscription id counter
	NextSubscriptionIDKey = []byte{0x02}

	// SubscriptionKeyPrefix is the prefix for subscription records
	SubscriptionKeyPrefix = []byte{0x03}

	// TallyKeyPrefix is the prefix for per-(subscription, interval) tallies
	TallyKeyPrefix = []byte{0x04}

	// DeliveredKeyPrefix is the prefix for (subscription, interval, node)
	// delivered flags
	DeliveredKeyPrefix = []byte{0x05}

	// ProofKeyPrefix is the prefix for proof verification records
	ProofKeyPrefix = []byte{0x06}

	// DelegateSignerKeyPrefix is the prefix for per-owner delegate signers
	DelegateSignerKeyPrefix = []byte{0x07}

	// ConsumedNonceKeyPrefix is the prefix handed to the shared nonce
	// ledger for delegation replay protection
	ConsumedNonceKeyPrefix = []byte{0x08}
)

// SubscriptionKey returns the store key for a subscription record
func SubscriptionKey(id uint64) []byte {
	return append(SubscriptionKeyPrefix, sdk.Uint64ToBigEndian(id)...)
}

// intervalKey builds id(BE) || interval(BE, 8 bytes)
func intervalKey(id uint64, interval uint32) []byte {
	key := sdk.Uint64ToBigEndian(id)
	return append(key, sdk.Uint64ToBigEndian(uint64(interval))...)
}

// TallyKey returns the store key for a (subscription, interval) tally
func TallyKey(id uint64, interval uint32) []byte {
	return append(TallyKeyPrefix, intervalKey(id, interval)...)
}

// DeliveredKey returns the store key for a delivered flag
func DeliveredKey(id uint64, interval uint32, node sdk.AccAddress) []byte {
	key := append(DeliveredKeyPrefix, intervalKey(id, interval)...)
	return append(key, address.MustLengthPrefix(node)...)
}

// ProofKey returns the store key for a proof verification record
func ProofKey(id uint64, interval uint32, node sdk.AccAddress) []byte {
	key := append(ProofKeyPrefix, intervalKey(id, interval)...)
	return append(key, address.MustLengthPrefix(node)...)
}

// DelegateSignerKey returns the store key for an owner's delegate signer
func DelegateSignerKey(owner sdk.AccAddress) []byte {
	return append(DelegateSignerKeyPrefix, address.MustLengthPrefix(owner)...)
}

// parseIntervalNodeKey splits an id || interval || node key. The caller
// strips the one-byte prefix before calling.
func parseIntervalNodeKey(key []byte) (uint64, uint32, sdk.AccAddress) {
	id := sdk.BigEndianToUint64(key[:8])
	interval := uint32(sdk.BigEndianToUint64(key[8:16]))
	nodeLen := int(key[16])
	node := sdk.AccAddress(key[17 : 17+nodeLen])
	return id, interval, node
}
