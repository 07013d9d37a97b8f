package cli

// Flag names for escrow transaction commands
const (
	FlagRecipient = "recipient"
)
