package types

// Event types for the inbox module
const (
	EventTypeItemWritten = "inbox_item_written"
)

// Event attribute keys for the inbox module
const (
	AttributeKeyContainerId    = "container_id"
	AttributeKeyNode           = "node"
	AttributeKeyIndex          = "index"
	AttributeKeySubscriptionId = "subscription_id"
	AttributeKeyInterval       = "interval"
)
