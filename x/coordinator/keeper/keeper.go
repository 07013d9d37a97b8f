package keeper

import (
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/coordinator/types"
	"github.com/chime-chain/chime/x/shared/nonce"
)

// Keeper of the coordinator store. It owns subscription records, computes
// open intervals, validates and records deliveries, and drives escrow and
// proof settlement through the keepers injected at construction.
type Keeper struct {
	storeKey      storetypes.StoreKey
	cdc           *codec.LegacyAmino
	accountKeeper types.AccountKeeper
	escrowKeeper  types.EscrowKeeper
	inboxKeeper   types.InboxKeeper
	authority     string

	// nonces is the consumed-nonce ledger backing delegated-creation
	// replay protection.
	nonces *nonce.Ledger

	// Capability routers. Consumers and provers are in-process Go values
	// registered at app wiring time, keyed by bech32 address; they are
	// configuration, not state.
	consumers map[string]types.ComputeConsumer
	provers   map[string]types.ProverCapability

	metrics *CoordinatorMetrics
}

// NewKeeper creates a new coordinator Keeper instance
func NewKeeper(
	cdc *codec.LegacyAmino,
	storeKey storetypes.StoreKey,
	accountKeeper types.AccountKeeper,
	escrowKeeper types.EscrowKeeper,
	inboxKeeper types.InboxKeeper,
	authority string,
) *Keeper {
	if accountKeeper.GetModuleAddress(types.ModuleName) == nil {
		panic("the coordinator module account has not been set")
	}
	k := &Keeper{
		storeKey:      storeKey,
		cdc:           cdc,
		accountKeeper: accountKeeper,
		escrowKeeper:  escrowKeeper,
		inboxKeeper:   inboxKeeper,
		authority:     authority,
		consumers:     make(map[string]types.ComputeConsumer),
		provers:       make(map[string]types.ProverCapability),
		metrics:       NewCoordinatorMetrics(),
	}
	k.nonces = nonce.NewLedger(storeKey, ConsumedNonceKeyPrefix, nonceErrors{})
	return k
}

// nonceErrors adapts the shared ledger's failure to the module error.
type nonceErrors struct{}

func (nonceErrors) ConsumedNonceError(msg string) error {
	return types.ErrNonceConsumed.Wrap(msg)
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// GetAuthority returns the module's authority (the governance account).
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetModuleAddress returns the coordinator module account address. It is
// the EIP-712 verifying contract of the delegation domain.
func (k *Keeper) GetModuleAddress() sdk.AccAddress {
	return k.accountKeeper.GetModuleAddress(types.ModuleName)
}

// RegisterConsumer registers the compute consumer capability receiving
// deliveries for subscriptions owned by owner, replacing any previous one.
func (k *Keeper) RegisterConsumer(owner string, consumer types.ComputeConsumer) {
	k.consumers[owner] = consumer
}

// GetConsumer returns the consumer registered for owner.
func (k *Keeper) GetConsumer(owner string) (types.ComputeConsumer, bool) {
	consumer, ok := k.consumers[owner]
	return consumer, ok
}

// RegisterProver registers the prover capability reachable at addr,
// replacing any previous one.
func (k *Keeper) RegisterProver(addr string, prover types.ProverCapability) {
	k.provers[addr] = prover
}

// GetProver returns the prover capability registered at addr.
func (k *Keeper) GetProver(addr string) (types.ProverCapability, bool) {
	prover, ok := k.provers[addr]
	return prover, ok
}

// GetContainerInputs resolves the optional container-input hook of the
// consumer registered for the subscription's owner. Nodes query this
// read-only surface off-chain to learn what input to compute against.
func (k *Keeper) GetContainerInputs(ctx sdk.Context, subscriptionId uint64, interval uint32, caller string) ([]byte, error) {
	sub, found := k.GetSubscription(ctx, subscriptionId)
	if !found {
		return nil, types.ErrSubscriptionNotFound.Wrapf("subscription %d", subscriptionId)
	}
	consumer, ok := k.GetConsumer(sub.Owner)
	if !ok {
		return nil, types.ErrConsumerNotRegistered.Wrapf("owner %s", sub.Owner)
	}
	source, ok := consumer.(types.ContainerInputSource)
	if !ok {
		return nil, nil
	}
	return source.GetContainerInputs(ctx, subscriptionId, interval, ctx.BlockTime().Unix(), caller)
}
