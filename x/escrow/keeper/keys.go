package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

var (
	// WalletKeyPrefix is the prefix for wallet metadata storage
	WalletKeyPrefix = []byte{0x01}

	// NextWalletIDKey is the key for the wallet id counter used in address derivation
	NextWalletIDKey = []byte{0x02}

	// BalanceKeyPrefix is the prefix for per-(wallet, denom) balances
	BalanceKeyPrefix = []byte{0x03}

	// LockedKeyPrefix is the prefix for per-(wallet, denom) locked amounts
	LockedKeyPrefix = []byte{0x04}

	// AllowanceKeyPrefix is the prefix for per-(wallet, spender, denom) allowances
	AllowanceKeyPrefix = []byte{0x05}
)

// WalletKey returns the store key for a wallet's metadata
func WalletKey(wallet sdk.AccAddress) []byte {
	return append(WalletKeyPrefix, address.MustLengthPrefix(wallet)...)
}

// BalanceKey returns the store key for a wallet's balance of denom
func BalanceKey(wallet sdk.AccAddress, denom string) []byte {
	key := append(BalanceKeyPrefix, address.MustLengthPrefix(wallet)...)
	return append(key, []byte(denom)...)
}

// LockedKey returns the store key for a wallet's locked amount of denom
func LockedKey(wallet sdk.AccAddress, denom string) []byte {
	key := append(LockedKeyPrefix, address.MustLengthPrefix(wallet)...)
	return append(key, []byte(denom)...)
}

// AllowanceKey returns the store key for a (wallet, spender, denom) allowance
func AllowanceKey(wallet, spender sdk.AccAddress, denom string) []byte {
	key := append(AllowanceKeyPrefix, address.MustLengthPrefix(wallet)...)
	key = append(key, address.MustLengthPrefix(spender)...)
	return append(key, []byte(denom)...)
}

// parseBalanceKey splits a balance or locked store key into wallet and denom.
// The caller strips the one-byte prefix before calling.
func parseBalanceKey(key []byte) (sdk.AccAddress, string) {
	addrLen := int(key[0])
	wallet := sdk.AccAddress(key[1 : 1+addrLen])
	denom := string(key[1+addrLen:])
	return wallet, denom
}

// parseAllowanceKey splits an allowance store key into wallet, spender and denom.
// The caller strips the one-byte prefix before calling.
func parseAllowanceKey(key []byte) (sdk.AccAddress, sdk.AccAddress, string) {
	walletLen := int(key[0])
	wallet := sdk.AccAddress(key[1 : 1+walletLen])
	rest := key[1+walletLen:]
	spenderLen := int(rest[0])
	spender := sdk.AccAddress(rest[1 : 1+spenderLen])
	denom := string(rest[1+spenderLen:])
	return wallet, spender, denom
}
