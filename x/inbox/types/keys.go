package types

const (
	// ModuleName defines the module name
	ModuleName = "inbox"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey is the message route for inbox
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName
)
