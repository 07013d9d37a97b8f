package keeper

import (
	"bytes"
	"strconv"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/chime-chain/chime/x/coordinator/types"
)

// SetDelegateSigner registers or replaces the secp256k1 address authorized
// to sign delegated subscription creations for owner.
func (k *Keeper) SetDelegateSigner(ctx sdk.Context, owner sdk.AccAddress, signer common.Address) {
	store := ctx.KVStore(k.storeKey)
	store.Set(DelegateSignerKey(owner), signer.Bytes())

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDelegateSignerSet,
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeySigner, signer.Hex()),
		),
	)
}

// GetDelegateSigner returns the delegate signer registered for owner.
func (k *Keeper) GetDelegateSigner(ctx sdk.Context, owner sdk.AccAddress) (common.Address, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(DelegateSignerKey(owner))
	if len(bz) != common.AddressLength {
		return common.Address{}, false
	}
	return common.BytesToAddress(bz), true
}

// CreateSubscriptionDelegatee creates a subscription on behalf of the
// embedded subscription's owner, authorized by an EIP-712 signature from
// the owner's registered delegate signer instead of a transaction from the
// owner itself. The (signer, nonce) pair is consumed before creation so
// the same envelope can never create twice, and the domain separator binds
// the signature to this chain and module account, blocking cross-chain and
// cross-contract replay.
func (k *Keeper) CreateSubscriptionDelegatee(ctx sdk.Context, env types.DelegateSubscription, signature []byte) (uint64, error) {
	if ctx.BlockTime().Unix() > env.Expiry {
		return 0, types.ErrSignatureExpired.Wrapf("expired at %d, now %d", env.Expiry, ctx.BlockTime().Unix())
	}

	owner, err := sdk.AccAddressFromBech32(env.Subscription.Owner)
	if err != nil {
		return 0, types.ErrInvalidAddress.Wrapf("invalid owner address: %v", err)
	}
	signer, found := k.GetDelegateSigner(ctx, owner)
	if !found {
		return 0, types.ErrDelegateSignerNotSet.Wrapf("owner %s", env.Subscription.Owner)
	}

	params := k.GetParams(ctx)
	recovered, err := types.RecoverDelegateSigner(env, signature,
		params.TypedDataName, params.TypedDataVersion, params.ChainId, k.GetModuleAddress())
	if err != nil {
		return 0, types.ErrInvalidSignature.Wrap(err.Error())
	}
	if !bytes.Equal(recovered.Bytes(), signer.Bytes()) {
		return 0, types.ErrInvalidSignature.Wrapf("recovered %s, registered signer %s", recovered.Hex(), signer.Hex())
	}

	if err := k.nonces.Consume(ctx, signer.Bytes(), env.Nonce); err != nil {
		return 0, err
	}

	id, err := k.CreateSubscription(ctx, env.Subscription)
	if err != nil {
		return 0, err
	}

	k.Logger(ctx).Info("delegated subscription created",
		"id", id, "owner", env.Subscription.Owner,
		"signer", signer.Hex(), "nonce", strconv.FormatUint(env.Nonce, 10))
	return id, nil
}

// IsNonceConsumed reports whether (signer, nonce) was already used for a
// delegated creation.
func (k *Keeper) IsNonceConsumed(ctx sdk.Context, signer common.Address, n uint64) bool {
	return k.nonces.IsConsumed(ctx, signer.Bytes(), n)
}

// IterateDelegateSigners calls fn for every (owner, signer) pair until it
// returns true.
func (k *Keeper) IterateDelegateSigners(ctx sdk.Context, fn func(owner sdk.AccAddress, signer common.Address) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, DelegateSignerKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()[1:]
		ownerLen := int(key[0])
		owner := sdk.AccAddress(key[1 : 1+ownerLen])
		if fn(owner, common.BytesToAddress(iterator.Value())) {
			break
		}
	}
}

// IterateConsumedNonces calls fn for every consumed (signer, nonce) pair
// until it returns true.
func (k *Keeper) IterateConsumedNonces(ctx sdk.Context, fn func(signer common.Address, n uint64) bool) {
	k.nonces.Iterate(ctx, func(signer []byte, n uint64) bool {
		return fn(common.BytesToAddress(signer), n)
	})
}

// SetConsumedNonce marks a nonce consumed without the replay check. Used
// by genesis import.
func (k *Keeper) SetConsumedNonce(ctx sdk.Context, signer common.Address, n uint64) {
	k.nonces.Set(ctx, signer.Bytes(), n)
}
