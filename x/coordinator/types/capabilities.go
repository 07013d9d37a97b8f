package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ComputeConsumer is the capability a subscription owner registers to
// receive deliveries inline. ReceiveCompute runs inside the delivery
// transaction; returning an error aborts the whole delivery, tally
// increment and payment included.
type ComputeConsumer interface {
	ReceiveCompute(ctx sdk.Context, delivery ComputeDelivery) error
}

// ContainerInputSource is the optional consumer surface nodes query
// off-chain to discover what input to compute against when a subscription
// does not embed a fixed payload. Consumers expose it by implementing the
// interface alongside ComputeConsumer; the coordinator checks for it by
// type assertion.
type ContainerInputSource interface {
	GetContainerInputs(ctx sdk.Context, subscriptionId uint64, interval uint32, timestamp int64, caller string) ([]byte, error)
}

// ProofRequest carries a delivery to its prover for validation.
type ProofRequest struct {
	SubscriptionId uint64
	Interval       uint32
	Node           string
	Proof          []byte
}

// ProofFinalizer is the coordinator-side surface handed to a prover with
// each validation request. An atomic prover calls FinalizeProofValidation
// inline before RequestProofValidation returns; an optimistic prover holds
// the request and finalizes through a later transaction.
type ProofFinalizer interface {
	FinalizeProofValidation(ctx sdk.Context, prover sdk.AccAddress, subscriptionId uint64, interval uint32, node sdk.AccAddress, valid bool) error
}

// ProverCapability is a pluggable proof-verification service registered
// per prover address. GetWallet, IsSupportedToken and Fee expose the
// prover's own payment metadata; RequestProofValidation starts the
// two-phase handshake for one delivery.
type ProverCapability interface {
	GetWallet() string
	IsSupportedToken(denom string) bool
	Fee(denom string) math.Int
	RequestProofValidation(ctx sdk.Context, finalizer ProofFinalizer, req ProofRequest) error
}
