package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Coordinator module sentinel errors. Every rejection reason a caller can
// hit has its own registered error; nothing is folded into a catch-all.

var (
	// Validation errors
	ErrValidationFailed    = sdkerrors.Register(ModuleName, 2, "message validation failed")
	ErrInvalidAddress      = sdkerrors.Register(ModuleName, 3, "invalid address")
	ErrInvalidSubscription = sdkerrors.Register(ModuleName, 4, "invalid subscription")
	ErrInvalidParams       = sdkerrors.Register(ModuleName, 5, "invalid params")

	// Subscription state errors
	ErrSubscriptionNotFound  = sdkerrors.Register(ModuleName, 10, "subscription not found")
	ErrSubscriptionCancelled = sdkerrors.Register(ModuleName, 11, "subscription cancelled")
	ErrSubscriptionCompleted = sdkerrors.Register(ModuleName, 12, "subscription completed")
	ErrNotSubscriptionOwner  = sdkerrors.Register(ModuleName, 13, "caller is not the subscription owner")

	// Delivery errors
	ErrSubscriptionNotActive = sdkerrors.Register(ModuleName, 20, "subscription not yet active")
	ErrIntervalMismatch      = sdkerrors.Register(ModuleName, 21, "declared interval does not match the open interval")
	ErrNodeAlreadyDelivered  = sdkerrors.Register(ModuleName, 22, "node already delivered in this interval")
	ErrRedundancySatisfied   = sdkerrors.Register(ModuleName, 23, "interval redundancy already satisfied")
	ErrPayloadTooLarge       = sdkerrors.Register(ModuleName, 24, "payload exceeds size limit")
	ErrConsumerNotRegistered = sdkerrors.Register(ModuleName, 25, "no consumer registered for subscription owner")

	// Proof errors
	ErrProverNotRegistered   = sdkerrors.Register(ModuleName, 30, "no prover capability registered at address")
	ErrUnauthorizedProver    = sdkerrors.Register(ModuleName, 31, "caller is not the subscription's prover")
	ErrProofNotPending       = sdkerrors.Register(ModuleName, 32, "no pending proof verification for delivery")
	ErrProofAlreadyFinalized = sdkerrors.Register(ModuleName, 33, "proof verification already finalized")
	ErrUnsupportedToken      = sdkerrors.Register(ModuleName, 34, "prover does not support payment token")

	// Delegation errors
	ErrDelegateSignerNotSet = sdkerrors.Register(ModuleName, 40, "no delegate signer registered for owner")
	ErrSignatureExpired     = sdkerrors.Register(ModuleName, 41, "delegate signature expired")
	ErrNonceConsumed        = sdkerrors.Register(ModuleName, 42, "nonce already consumed")
	ErrInvalidSignature     = sdkerrors.Register(ModuleName, 43, "invalid delegate signature")

	// Query errors
	ErrBatchTooLarge = sdkerrors.Register(ModuleName, 50, "batch read exceeds size limit")
)
