package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Subscription is a recurring or one-time request for off-chain computation.
// The record is immutable after creation except for Cancelled, which flips
// at most once; subscriptions are never deleted so delivery history stays
// auditable.
type Subscription struct {
	Id          uint64 `json:"id"`
	Owner       string `json:"owner"`
	ActiveAt    int64  `json:"active_at"`
	Period      uint32 `json:"period"`
	Frequency   uint32 `json:"frequency"`
	Redundancy  uint32 `json:"redundancy"`
	ContainerId string `json:"container_id"`
	Lazy        bool   `json:"lazy"`

	// Prover is the address of the proof-verification capability gating
	// payment; empty means no proof is required.
	Prover string `json:"prover,omitempty"`

	// Payment terms. PaymentAmount of PaymentToken is owed per accepted
	// delivery, drawn from the escrow Wallet. All three are empty/zero for
	// unpaid subscriptions.
	PaymentToken  string   `json:"payment_token,omitempty"`
	PaymentAmount math.Int `json:"payment_amount"`
	Wallet        string   `json:"wallet,omitempty"`

	Cancelled bool  `json:"cancelled"`
	CreatedAt int64 `json:"created_at"`
}

// Validate performs stateless validation of the creation fields.
func (s Subscription) Validate() error {
	if _, err := sdk.AccAddressFromBech32(s.Owner); err != nil {
		return fmt.Errorf("invalid owner address %q: %w", s.Owner, err)
	}
	if s.Frequency < 1 {
		return fmt.Errorf("frequency must be at least 1")
	}
	if s.Redundancy < 1 {
		return fmt.Errorf("redundancy must be at least 1")
	}
	if s.ContainerId == "" {
		return fmt.Errorf("container id cannot be empty")
	}
	if s.ActiveAt < 0 {
		return fmt.Errorf("negative activeAt %d", s.ActiveAt)
	}
	if s.Prover != "" {
		if _, err := sdk.AccAddressFromBech32(s.Prover); err != nil {
			return fmt.Errorf("invalid prover address %q: %w", s.Prover, err)
		}
	}
	if s.IsPaid() {
		if err := sdk.ValidateDenom(s.PaymentToken); err != nil {
			return fmt.Errorf("invalid payment token: %w", err)
		}
		if _, err := sdk.AccAddressFromBech32(s.Wallet); err != nil {
			return fmt.Errorf("invalid wallet address %q: %w", s.Wallet, err)
		}
	} else if s.PaymentToken != "" || s.Wallet != "" {
		return fmt.Errorf("payment token or wallet set without a payment amount")
	}
	return nil
}

// IsPaid reports whether an escrow payment is owed per accepted delivery.
func (s Subscription) IsPaid() bool {
	return !s.PaymentAmount.IsNil() && s.PaymentAmount.IsPositive()
}

// HasProver reports whether deliveries are gated by proof verification.
func (s Subscription) HasProver() bool {
	return s.Prover != ""
}

// EscrowAddresses returns the subscription's escrow wallet and owner (the
// escrow spender) as account addresses.
func (s Subscription) EscrowAddresses() (wallet sdk.AccAddress, owner sdk.AccAddress, err error) {
	wallet, err = sdk.AccAddressFromBech32(s.Wallet)
	if err != nil {
		return nil, nil, fmt.Errorf("wallet: %w", err)
	}
	owner, err = sdk.AccAddressFromBech32(s.Owner)
	if err != nil {
		return nil, nil, fmt.Errorf("owner: %w", err)
	}
	return wallet, owner, nil
}

// IntervalAt returns the interval open at unix time now: 0 before activeAt,
// 1 from activeAt for single-shot (period 0) subscriptions, and
// (now-activeAt)/period + 1 otherwise. The result is not clamped to
// Frequency; callers treat anything beyond it as completion.
func (s Subscription) IntervalAt(now int64) uint32 {
	if now < s.ActiveAt {
		return 0
	}
	if s.Period == 0 {
		return 1
	}
	return uint32((now-s.ActiveAt)/int64(s.Period)) + 1
}

// DeliveryTally counts deliveries for one (subscription, interval) pair.
// Accepted only ever increases; Pending rises on a provisional (proved)
// delivery and falls when its proof finalizes. Accepted + Pending never
// exceeds the subscription's redundancy.
type DeliveryTally struct {
	Accepted uint32 `json:"accepted"`
	Pending  uint32 `json:"pending"`
}

// Total returns the number of redundancy slots the tally occupies.
func (t DeliveryTally) Total() uint32 {
	return t.Accepted + t.Pending
}

// Proof verification statuses
const (
	ProofStatusPending   = "pending"
	ProofStatusFinalized = "finalized"
)

// ProofVerification is the provisional record of a delivery awaiting its
// prover's verdict. It is kept after finalization so a second finalize for
// the same delivery is rejected and the handshake history stays exportable.
type ProofVerification struct {
	SubscriptionId uint64 `json:"subscription_id"`
	Interval       uint32 `json:"interval"`
	Node           string `json:"node"`
	Status         string `json:"status"`

	// Valid is meaningful once Status is finalized.
	Valid bool `json:"valid"`

	// Locked is the escrow amount held for this delivery, zero when the
	// subscription is unpaid.
	Locked math.Int `json:"locked"`

	// ContainerId and InboxIndex locate the payloads stored at delivery
	// time, so a deferred consumer callback can point at them.
	ContainerId string `json:"container_id"`
	InboxIndex  uint64 `json:"inbox_index"`

	RequestedAt int64 `json:"requested_at"`
	FinalizedAt int64 `json:"finalized_at,omitempty"`
}

// Pending reports whether the verification still awaits its prover.
func (p ProofVerification) Pending() bool {
	return p.Status == ProofStatusPending
}

// ComputeDelivery is the payload handed to a consumer's receive callback.
// For proof-deferred callbacks the byte payloads are empty and ContainerId
// plus InboxIndex point at the inbox item written at delivery time.
type ComputeDelivery struct {
	SubscriptionId uint64
	Interval       uint32
	AcceptedCount  uint32
	Node           string
	Input          []byte
	Output         []byte
	Proof          []byte
	ContainerId    string
	InboxIndex     uint64
}

// DelegateSubscription is the off-chain-signed envelope authorizing a
// subscription creation on behalf of its owner. Each (signer, nonce) pair
// is consumable at most once; Expiry bounds how long the signature may be
// submitted. Only the creation fields of the embedded subscription are
// covered by the signature.
type DelegateSubscription struct {
	Nonce        uint64       `json:"nonce"`
	Expiry       int64        `json:"expiry"`
	Subscription Subscription `json:"subscription"`
}
