package types

// Event types for the coordinator module
// All event types use lowercase with underscore separator (module_action format)
const (
	EventTypeSubscriptionCreated   = "coordinator_subscription_created"
	EventTypeSubscriptionCancelled = "coordinator_subscription_cancelled"
	EventTypeComputeDelivered      = "coordinator_compute_delivered"
	EventTypeProofRequested        = "coordinator_proof_requested"
	EventTypeProofFinalized        = "coordinator_proof_finalized"
	EventTypeDelegateSignerSet     = "coordinator_delegate_signer_set"
	EventTypePaymentSettled        = "coordinator_payment_settled"
	EventTypeParamsUpdated         = "coordinator_params_updated"
)

// Event attribute keys for the coordinator module
const (
	AttributeKeySubscriptionId = "subscription_id"
	AttributeKeyOwner          = "owner"
	AttributeKeyContainerId    = "container_id"
	AttributeKeyInterval       = "interval"
	AttributeKeyNode           = "node"
	AttributeKeyAcceptedCount  = "accepted_count"
	AttributeKeyProver         = "prover"
	AttributeKeyValid          = "valid"
	AttributeKeySigner         = "signer"
	AttributeKeyFeeAmount      = "fee_amount"
	AttributeKeyNodeAmount     = "node_amount"
	AttributeKeyDenom          = "denom"
	AttributeKeyLazy           = "lazy"
	AttributeKeyAuthority      = "authority"
)
