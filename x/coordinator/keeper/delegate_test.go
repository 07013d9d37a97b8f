package keeper_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	keepertest "github.com/chime-chain/chime/testutil/keeper"
	"github.com/chime-chain/chime/x/coordinator/types"
)

const delegateKeyHex = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

func TestSetDelegateSigner(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	_, found := f.Coordinator.GetDelegateSigner(f.Ctx, ownerAddr)
	require.False(t, found)

	first := common.HexToAddress("0x1111111111111111111111111111111111111111")
	f.Coordinator.SetDelegateSigner(f.Ctx, ownerAddr, first)

	got, found := f.Coordinator.GetDelegateSigner(f.Ctx, ownerAddr)
	require.True(t, found)
	require.Equal(t, first, got)

	// Re-registration replaces the previous signer.
	second := common.HexToAddress("0x2222222222222222222222222222222222222222")
	f.Coordinator.SetDelegateSigner(f.Ctx, ownerAddr, second)
	got, _ = f.Coordinator.GetDelegateSigner(f.Ctx, ownerAddr)
	require.Equal(t, second, got)
}

func TestCreateSubscriptionDelegatee(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	key, err := crypto.HexToECDSA(delegateKeyHex)
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey)
	f.Coordinator.SetDelegateSigner(f.Ctx, ownerAddr, signer)

	params := f.Coordinator.GetParams(f.Ctx)
	env := types.DelegateSubscription{
		Nonce:        7,
		Expiry:       baseTime.Unix() + 600,
		Subscription: baseSubscription(ownerAddr),
	}
	sig, err := types.SignDelegate(env, key,
		params.TypedDataName, params.TypedDataVersion, params.ChainId, f.Coordinator.GetModuleAddress())
	require.NoError(t, err)

	id, err := f.Coordinator.CreateSubscriptionDelegatee(f.Ctx, env, sig)
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	sub, found := f.Coordinator.GetSubscription(f.Ctx, id)
	require.True(t, found)
	require.Equal(t, ownerAddr.String(), sub.Owner)
	require.True(t, f.Coordinator.IsNonceConsumed(f.Ctx, signer, 7))

	// Replaying the same envelope is blocked by the consumed nonce.
	_, err = f.Coordinator.CreateSubscriptionDelegatee(f.Ctx, env, sig)
	require.ErrorIs(t, err, types.ErrNonceConsumed)

	// A fresh nonce from the same signer creates again.
	env.Nonce = 8
	sig, err = types.SignDelegate(env, key,
		params.TypedDataName, params.TypedDataVersion, params.ChainId, f.Coordinator.GetModuleAddress())
	require.NoError(t, err)
	second, err := f.Coordinator.CreateSubscriptionDelegatee(f.Ctx, env, sig)
	require.NoError(t, err)
	require.Equal(t, uint64(2), second)
}

func TestCreateSubscriptionDelegateeRejections(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	key, err := crypto.HexToECDSA(delegateKeyHex)
	require.NoError(t, err)
	params := f.Coordinator.GetParams(f.Ctx)
	contract := f.Coordinator.GetModuleAddress()

	env := types.DelegateSubscription{
		Nonce:        1,
		Expiry:       baseTime.Unix() + 600,
		Subscription: baseSubscription(ownerAddr),
	}
	sig, err := types.SignDelegate(env, key, params.TypedDataName, params.TypedDataVersion, params.ChainId, contract)
	require.NoError(t, err)

	// No signer registered for the owner yet.
	_, err = f.Coordinator.CreateSubscriptionDelegatee(f.Ctx, env, sig)
	require.ErrorIs(t, err, types.ErrDelegateSignerNotSet)

	f.Coordinator.SetDelegateSigner(f.Ctx, ownerAddr, crypto.PubkeyToAddress(key.PublicKey))

	// Expiry in the past.
	expired := env
	expired.Expiry = baseTime.Unix() - 1
	expiredSig, err := types.SignDelegate(expired, key, params.TypedDataName, params.TypedDataVersion, params.ChainId, contract)
	require.NoError(t, err)
	_, err = f.Coordinator.CreateSubscriptionDelegatee(f.Ctx, expired, expiredSig)
	require.ErrorIs(t, err, types.ErrSignatureExpired)

	// Signed by a key other than the registered signer.
	otherKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	otherSig, err := types.SignDelegate(env, otherKey, params.TypedDataName, params.TypedDataVersion, params.ChainId, contract)
	require.NoError(t, err)
	_, err = f.Coordinator.CreateSubscriptionDelegatee(f.Ctx, env, otherSig)
	require.ErrorIs(t, err, types.ErrInvalidSignature)

	// Envelope mutated after signing.
	tampered := env
	tampered.Subscription.Redundancy = 9
	_, err = f.Coordinator.CreateSubscriptionDelegatee(f.Ctx, tampered, sig)
	require.ErrorIs(t, err, types.ErrInvalidSignature)

	// A valid signature over an invalid subscription still fails creation.
	// It gets its own nonce: the nonce is consumed before creation runs.
	invalid := env
	invalid.Nonce = 2
	invalid.Subscription.Frequency = 0
	invalidSig, err := types.SignDelegate(invalid, key, params.TypedDataName, params.TypedDataVersion, params.ChainId, contract)
	require.NoError(t, err)
	_, err = f.Coordinator.CreateSubscriptionDelegatee(f.Ctx, invalid, invalidSig)
	require.ErrorIs(t, err, types.ErrInvalidSubscription)

	// The happy path still works afterwards.
	id, err := f.Coordinator.CreateSubscriptionDelegatee(f.Ctx, env, sig)
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
}
