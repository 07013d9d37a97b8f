package types

// Event types for the escrow module
// All event types use lowercase with underscore separator (module_action format)
const (
	EventTypeWalletCreated = "escrow_wallet_created"
	EventTypeDeposit       = "escrow_deposit"
	EventTypeWithdraw      = "escrow_withdraw"
	EventTypeApprove       = "escrow_approve"
	EventTypeLock          = "escrow_lock"
	EventTypeUnlock        = "escrow_unlock"
	EventTypeTransfer      = "escrow_transfer"
)

// Event attribute keys for the escrow module
const (
	AttributeKeyWallet    = "wallet"
	AttributeKeyOwner     = "owner"
	AttributeKeySpender   = "spender"
	AttributeKeyDepositor = "depositor"
	AttributeKeyRecipient = "recipient"
	AttributeKeyDenom     = "denom"
	AttributeKeyAmount    = "amount"
)
