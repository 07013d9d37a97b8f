package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState defines the escrow module's genesis state.
type GenesisState struct {
	Wallets      []Wallet          `json:"wallets"`
	Balances     []GenesisBalance  `json:"balances"`
	Allowances   []GenesisApproval `json:"allowances"`
	NextWalletId uint64            `json:"next_wallet_id"`
}

// GenesisBalance is a per-(wallet, denom) balance and locked amount.
type GenesisBalance struct {
	Wallet string   `json:"wallet"`
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
	Locked math.Int `json:"locked"`
}

// GenesisApproval is a per-(wallet, spender, denom) allowance.
type GenesisApproval struct {
	Wallet  string   `json:"wallet"`
	Spender string   `json:"spender"`
	Denom   string   `json:"denom"`
	Amount  math.Int `json:"amount"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Wallets:      []Wallet{},
		Balances:     []GenesisBalance{},
		Allowances:   []GenesisApproval{},
		NextWalletId: 1,
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	seenWallets := make(map[string]bool)
	for i, w := range gs.Wallets {
		if _, err := sdk.AccAddressFromBech32(w.Address); err != nil {
			return fmt.Errorf("wallet %d: invalid address %q: %w", i, w.Address, err)
		}
		if _, err := sdk.AccAddressFromBech32(w.Owner); err != nil {
			return fmt.Errorf("wallet %d: invalid owner %q: %w", i, w.Owner, err)
		}
		if seenWallets[w.Address] {
			return fmt.Errorf("wallet %d: duplicate address %s", i, w.Address)
		}
		seenWallets[w.Address] = true
	}

	seenBalances := make(map[string]bool)
	for i, b := range gs.Balances {
		if !seenWallets[b.Wallet] {
			return fmt.Errorf("balance %d: unknown wallet %s", i, b.Wallet)
		}
		if err := sdk.ValidateDenom(b.Denom); err != nil {
			return fmt.Errorf("balance %d: invalid denom: %w", i, err)
		}
		key := b.Wallet + "/" + b.Denom
		if seenBalances[key] {
			return fmt.Errorf("balance %d: duplicate entry for %s", i, key)
		}
		seenBalances[key] = true

		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return fmt.Errorf("balance %d: invalid amount", i)
		}
		if b.Locked.IsNil() || b.Locked.IsNegative() {
			return fmt.Errorf("balance %d: invalid locked amount", i)
		}
		if b.Locked.GT(b.Amount) {
			return fmt.Errorf("balance %d: locked %s exceeds balance %s", i, b.Locked, b.Amount)
		}
	}

	seenAllowances := make(map[string]bool)
	for i, a := range gs.Allowances {
		if !seenWallets[a.Wallet] {
			return fmt.Errorf("allowance %d: unknown wallet %s", i, a.Wallet)
		}
		if _, err := sdk.AccAddressFromBech32(a.Spender); err != nil {
			return fmt.Errorf("allowance %d: invalid spender %q: %w", i, a.Spender, err)
		}
		if err := sdk.ValidateDenom(a.Denom); err != nil {
			return fmt.Errorf("allowance %d: invalid denom: %w", i, err)
		}
		key := a.Wallet + "/" + a.Spender + "/" + a.Denom
		if seenAllowances[key] {
			return fmt.Errorf("allowance %d: duplicate entry for %s", i, key)
		}
		seenAllowances[key] = true

		if a.Amount.IsNil() || a.Amount.IsNegative() {
			return fmt.Errorf("allowance %d: invalid amount", i)
		}
	}

	if gs.NextWalletId == 0 {
		return fmt.Errorf("next wallet id cannot be zero")
	}
	return nil
}
