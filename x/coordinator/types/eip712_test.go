package types_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/chime-chain/chime/x/coordinator/types"
)

const (
	testTypedDataName    = "chime coordinator"
	testTypedDataVersion = "1"
	testChainId          = uint64(1)
	testSignerKeyHex     = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
)

var testVerifyingContract = sdk.AccAddress("coordinator_module__")

func testEnvelope() types.DelegateSubscription {
	sub := validSubscription()
	sub.PaymentToken = "uchime"
	sub.PaymentAmount = math.NewInt(5000)
	sub.Wallet = testWallet
	sub.Prover = testProver
	return types.DelegateSubscription{
		Nonce:        7,
		Expiry:       2000,
		Subscription: sub,
	}
}

func TestDelegateDigestDeterministic(t *testing.T) {
	env := testEnvelope()

	first, err := types.DelegateDigest(env, testTypedDataName, testTypedDataVersion, testChainId, testVerifyingContract)
	require.NoError(t, err)
	second, err := types.DelegateDigest(env, testTypedDataName, testTypedDataVersion, testChainId, testVerifyingContract)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.NotEqual(t, [32]byte{}, first)
}

func TestDelegateDigestCoversEveryField(t *testing.T) {
	base := testEnvelope()
	baseDigest, err := types.DelegateDigest(base, testTypedDataName, testTypedDataVersion, testChainId, testVerifyingContract)
	require.NoError(t, err)

	mutations := map[string]func(*types.DelegateSubscription){
		"nonce":         func(e *types.DelegateSubscription) { e.Nonce++ },
		"expiry":        func(e *types.DelegateSubscription) { e.Expiry++ },
		"owner":         func(e *types.DelegateSubscription) { e.Subscription.Owner = testProver },
		"activeAt":      func(e *types.DelegateSubscription) { e.Subscription.ActiveAt++ },
		"period":        func(e *types.DelegateSubscription) { e.Subscription.Period++ },
		"frequency":     func(e *types.DelegateSubscription) { e.Subscription.Frequency++ },
		"redundancy":    func(e *types.DelegateSubscription) { e.Subscription.Redundancy++ },
		"containerId":   func(e *types.DelegateSubscription) { e.Subscription.ContainerId = "other" },
		"lazy":          func(e *types.DelegateSubscription) { e.Subscription.Lazy = true },
		"prover":        func(e *types.DelegateSubscription) { e.Subscription.Prover = "" },
		"paymentToken":  func(e *types.DelegateSubscription) { e.Subscription.PaymentToken = "other" },
		"paymentAmount": func(e *types.DelegateSubscription) { e.Subscription.PaymentAmount = math.NewInt(1) },
		"wallet":        func(e *types.DelegateSubscription) { e.Subscription.Wallet = testOwner },
	}

	for field, mutate := range mutations {
		env := testEnvelope()
		mutate(&env)

		digest, err := types.DelegateDigest(env, testTypedDataName, testTypedDataVersion, testChainId, testVerifyingContract)
		require.NoError(t, err)
		require.NotEqual(t, baseDigest, digest, "mutating %s did not change the digest", field)
	}
}

func TestDelegateDigestBoundToDomain(t *testing.T) {
	env := testEnvelope()
	base, err := types.DelegateDigest(env, testTypedDataName, testTypedDataVersion, testChainId, testVerifyingContract)
	require.NoError(t, err)

	other, err := types.DelegateDigest(env, "other name", testTypedDataVersion, testChainId, testVerifyingContract)
	require.NoError(t, err)
	require.NotEqual(t, base, other)

	other, err = types.DelegateDigest(env, testTypedDataName, "2", testChainId, testVerifyingContract)
	require.NoError(t, err)
	require.NotEqual(t, base, other)

	other, err = types.DelegateDigest(env, testTypedDataName, testTypedDataVersion, testChainId+1, testVerifyingContract)
	require.NoError(t, err)
	require.NotEqual(t, base, other)

	other, err = types.DelegateDigest(env, testTypedDataName, testTypedDataVersion, testChainId, sdk.AccAddress("another_contract____"))
	require.NoError(t, err)
	require.NotEqual(t, base, other)
}

func TestSignAndRecover(t *testing.T) {
	privKey, err := crypto.HexToECDSA(testSignerKeyHex)
	require.NoError(t, err)
	signerAddr := crypto.PubkeyToAddress(privKey.PublicKey)

	env := testEnvelope()
	sig, err := types.SignDelegate(env, privKey, testTypedDataName, testTypedDataVersion, testChainId, testVerifyingContract)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	require.GreaterOrEqual(t, sig[64], byte(27))

	recovered, err := types.RecoverDelegateSigner(env, sig, testTypedDataName, testTypedDataVersion, testChainId, testVerifyingContract)
	require.NoError(t, err)
	require.Equal(t, signerAddr, recovered)

	// Raw 0/1 recovery ids are accepted too.
	raw := make([]byte, 65)
	copy(raw, sig)
	raw[64] -= 27
	recovered, err = types.RecoverDelegateSigner(env, raw, testTypedDataName, testTypedDataVersion, testChainId, testVerifyingContract)
	require.NoError(t, err)
	require.Equal(t, signerAddr, recovered)
}

func TestRecoverDetectsTampering(t *testing.T) {
	privKey, err := crypto.HexToECDSA(testSignerKeyHex)
	require.NoError(t, err)
	signerAddr := crypto.PubkeyToAddress(privKey.PublicKey)

	env := testEnvelope()
	sig, err := types.SignDelegate(env, privKey, testTypedDataName, testTypedDataVersion, testChainId, testVerifyingContract)
	require.NoError(t, err)

	// Tampering with the envelope recovers a different address.
	tampered := env
	tampered.Subscription.Redundancy++
	recovered, err := types.RecoverDelegateSigner(tampered, sig, testTypedDataName, testTypedDataVersion, testChainId, testVerifyingContract)
	if err == nil {
		require.NotEqual(t, signerAddr, recovered)
	}

	_, err = types.RecoverDelegateSigner(env, sig[:64], testTypedDataName, testTypedDataVersion, testChainId, testVerifyingContract)
	require.Error(t, err)
}
