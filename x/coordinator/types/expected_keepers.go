package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	inboxtypes "github.com/chime-chain/chime/x/inbox/types"
)

// AccountKeeper defines the expected account keeper used by the coordinator
type AccountKeeper interface {
	GetModuleAddress(name string) sdk.AccAddress
}

// EscrowKeeper is the escrow ledger contract consumed at settlement time.
// The coordinator is the only caller of the three mutating entry points;
// that authorization is established by handing this keeper in at
// construction, not by a runtime address check.
type EscrowKeeper interface {
	GetUnlockedBalance(ctx sdk.Context, wallet sdk.AccAddress, denom string) math.Int
	GetLocked(ctx sdk.Context, wallet sdk.AccAddress, denom string) math.Int
	Lock(ctx sdk.Context, wallet sdk.AccAddress, spender sdk.AccAddress, denom string, amount math.Int) error
	Unlock(ctx sdk.Context, wallet sdk.AccAddress, spender sdk.AccAddress, denom string, amount math.Int) error
	Transfer(ctx sdk.Context, wallet sdk.AccAddress, spender sdk.AccAddress, denom string, to sdk.AccAddress, amount math.Int) error
}

// InboxKeeper is the delivery ledger the coordinator writes lazy and
// proof-deferred deliveries to.
type InboxKeeper interface {
	Append(ctx sdk.Context, item inboxtypes.Item) (uint64, error)
	GetItem(ctx sdk.Context, containerId string, node sdk.AccAddress, index uint64) (inboxtypes.Item, bool)
}
