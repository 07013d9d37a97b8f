package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
)

// GenesisState defines the coordinator module's genesis state.
type GenesisState struct {
	Params             Params                 `json:"params"`
	Subscriptions      []Subscription         `json:"subscriptions"`
	NextSubscriptionId uint64                 `json:"next_subscription_id"`
	Tallies            []GenesisTally         `json:"tallies"`
	Delivered          []GenesisDelivered     `json:"delivered"`
	Proofs             []ProofVerification    `json:"proofs"`
	DelegateSigners    []GenesisDelegateSigner `json:"delegate_signers"`
	ConsumedNonces     []GenesisNonce         `json:"consumed_nonces"`
}

// GenesisTally is a delivery tally with its (subscription, interval) key.
type GenesisTally struct {
	SubscriptionId uint64 `json:"subscription_id"`
	Interval       uint32 `json:"interval"`
	Accepted       uint32 `json:"accepted"`
	Pending        uint32 `json:"pending"`
}

// GenesisDelivered is one (subscription, interval, node) delivered flag.
type GenesisDelivered struct {
	SubscriptionId uint64 `json:"subscription_id"`
	Interval       uint32 `json:"interval"`
	Node           string `json:"node"`
}

// GenesisDelegateSigner maps an owner to its registered delegate signer
// (0x hex address).
type GenesisDelegateSigner struct {
	Owner  string `json:"owner"`
	Signer string `json:"signer"`
}

// GenesisNonce is one consumed (signer, nonce) pair of the delegation
// replay ledger.
type GenesisNonce struct {
	Signer string `json:"signer"`
	Nonce  uint64 `json:"nonce"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:             DefaultParams(),
		Subscriptions:      []Subscription{},
		NextSubscriptionId: 1,
		Tallies:            []GenesisTally{},
		Delivered:          []GenesisDelivered{},
		Proofs:             []ProofVerification{},
		DelegateSigners:    []GenesisDelegateSigner{},
		ConsumedNonces:     []GenesisNonce{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}

	subs := make(map[uint64]Subscription)
	maxId := uint64(0)
	for i, sub := range gs.Subscriptions {
		if sub.Id == 0 {
			return fmt.Errorf("subscription %d: id cannot be zero", i)
		}
		if _, exists := subs[sub.Id]; exists {
			return fmt.Errorf("subscription %d: duplicate id %d", i, sub.Id)
		}
		if err := sub.Validate(); err != nil {
			return fmt.Errorf("subscription %d: %w", i, err)
		}
		subs[sub.Id] = sub
		if sub.Id > maxId {
			maxId = sub.Id
		}
	}
	if gs.NextSubscriptionId <= maxId {
		return fmt.Errorf("next subscription id %d not beyond max stored id %d", gs.NextSubscriptionId, maxId)
	}
	if gs.NextSubscriptionId == 0 {
		return fmt.Errorf("next subscription id cannot be zero")
	}

	seenTallies := make(map[string]bool)
	for i, tally := range gs.Tallies {
		sub, exists := subs[tally.SubscriptionId]
		if !exists {
			return fmt.Errorf("tally %d: unknown subscription %d", i, tally.SubscriptionId)
		}
		if tally.Interval == 0 || tally.Interval > sub.Frequency {
			return fmt.Errorf("tally %d: interval %d out of range for subscription %d", i, tally.Interval, tally.SubscriptionId)
		}
		if tally.Accepted+tally.Pending > sub.Redundancy {
			return fmt.Errorf("tally %d: %d deliveries exceed redundancy %d", i, tally.Accepted+tally.Pending, sub.Redundancy)
		}
		key := fmt.Sprintf("%d/%d", tally.SubscriptionId, tally.Interval)
		if seenTallies[key] {
			return fmt.Errorf("tally %d: duplicate entry for %s", i, key)
		}
		seenTallies[key] = true
	}

	seenDelivered := make(map[string]bool)
	for i, d := range gs.Delivered {
		if _, exists := subs[d.SubscriptionId]; !exists {
			return fmt.Errorf("delivered %d: unknown subscription %d", i, d.SubscriptionId)
		}
		if _, err := sdk.AccAddressFromBech32(d.Node); err != nil {
			return fmt.Errorf("delivered %d: invalid node %q: %w", i, d.Node, err)
		}
		key := fmt.Sprintf("%d/%d/%s", d.SubscriptionId, d.Interval, d.Node)
		if seenDelivered[key] {
			return fmt.Errorf("delivered %d: duplicate entry for %s", i, key)
		}
		seenDelivered[key] = true
	}

	seenProofs := make(map[string]bool)
	for i, p := range gs.Proofs {
		if _, exists := subs[p.SubscriptionId]; !exists {
			return fmt.Errorf("proof %d: unknown subscription %d", i, p.SubscriptionId)
		}
		if _, err := sdk.AccAddressFromBech32(p.Node); err != nil {
			return fmt.Errorf("proof %d: invalid node %q: %w", i, p.Node, err)
		}
		if p.Status != ProofStatusPending && p.Status != ProofStatusFinalized {
			return fmt.Errorf("proof %d: unknown status %q", i, p.Status)
		}
		if p.Locked.IsNil() || p.Locked.IsNegative() {
			return fmt.Errorf("proof %d: invalid locked amount", i)
		}
		key := fmt.Sprintf("%d/%d/%s", p.SubscriptionId, p.Interval, p.Node)
		if seenProofs[key] {
			return fmt.Errorf("proof %d: duplicate entry for %s", i, key)
		}
		seenProofs[key] = true
	}

	seenSigners := make(map[string]bool)
	for i, ds := range gs.DelegateSigners {
		if _, err := sdk.AccAddressFromBech32(ds.Owner); err != nil {
			return fmt.Errorf("delegate signer %d: invalid owner %q: %w", i, ds.Owner, err)
		}
		if !common.IsHexAddress(ds.Signer) {
			return fmt.Errorf("delegate signer %d: signer %q is not a hex address", i, ds.Signer)
		}
		if seenSigners[ds.Owner] {
			return fmt.Errorf("delegate signer %d: duplicate owner %s", i, ds.Owner)
		}
		seenSigners[ds.Owner] = true
	}

	seenNonces := make(map[string]bool)
	for i, n := range gs.ConsumedNonces {
		if !common.IsHexAddress(n.Signer) {
			return fmt.Errorf("consumed nonce %d: signer %q is not a hex address", i, n.Signer)
		}
		key := fmt.Sprintf("%s/%d", n.Signer, n.Nonce)
		if seenNonces[key] {
			return fmt.Errorf("consumed nonce %d: duplicate entry for %s", i, key)
		}
		seenNonces[key] = true
	}

	return nil
}
