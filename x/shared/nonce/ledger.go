// Package nonce provides a consumed-nonce ledger for signature replay
// prevention. Each (signer, nonce) pair may be consumed at most once;
// consumed pairs are kept forever so a signed envelope can never be
// replayed, regardless of how much later it is resubmitted.
package nonce

import (
	"encoding/binary"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ErrorProvider allows modules to surface ledger failures as their own
// registered error types while sharing the ledger logic.
type ErrorProvider interface {
	// ConsumedNonceError returns an error for a nonce that was already consumed.
	ConsumedNonceError(msg string) error
}

// Ledger tracks consumed (signer, nonce) pairs in a module store under a
// caller-supplied key prefix.
type Ledger struct {
	storeKey storetypes.StoreKey
	prefix   []byte
	errs     ErrorProvider
}

// NewLedger creates a consumed-nonce ledger bound to the module's store key.
// The prefix must not collide with other prefixes in the same store.
func NewLedger(storeKey storetypes.StoreKey, prefix []byte, errs ErrorProvider) *Ledger {
	return &Ledger{
		storeKey: storeKey,
		prefix:   prefix,
		errs:     errs,
	}
}

// key builds prefix || len(signer) || signer || nonce(BE).
func (l *Ledger) key(signer []byte, nonce uint64) []byte {
	key := make([]byte, 0, len(l.prefix)+1+len(signer)+8)
	key = append(key, l.prefix...)
	key = append(key, byte(len(signer)))
	key = append(key, signer...)
	return binary.BigEndian.AppendUint64(key, nonce)
}

// IsConsumed reports whether (signer, nonce) has been consumed.
func (l *Ledger) IsConsumed(ctx sdk.Context, signer []byte, nonce uint64) bool {
	return ctx.KVStore(l.storeKey).Has(l.key(signer, nonce))
}

// Consume marks (signer, nonce) consumed, failing if it already was.
func (l *Ledger) Consume(ctx sdk.Context, signer []byte, nonce uint64) error {
	store := ctx.KVStore(l.storeKey)
	key := l.key(signer, nonce)
	if store.Has(key) {
		return l.errs.ConsumedNonceError("nonce already consumed for signer")
	}
	store.Set(key, []byte{1})
	return nil
}

// Set marks (signer, nonce) consumed without the replay check. Used by
// genesis import.
func (l *Ledger) Set(ctx sdk.Context, signer []byte, nonce uint64) {
	ctx.KVStore(l.storeKey).Set(l.key(signer, nonce), []byte{1})
}

// Iterate calls fn for every consumed (signer, nonce) pair until it
// returns true.
func (l *Ledger) Iterate(ctx sdk.Context, fn func(signer []byte, nonce uint64) bool) {
	store := ctx.KVStore(l.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, l.prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		rest := iterator.Key()[len(l.prefix):]
		signerLen := int(rest[0])
		signer := rest[1 : 1+signerLen]
		nonce := binary.BigEndian.Uint64(rest[1+signerLen:])
		if fn(signer, nonce) {
			break
		}
	}
}
