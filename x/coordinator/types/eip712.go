package types

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EIP-712 typed-data layer for delegated subscription creation. The type
// strings, field order and slot encoding below are a wire format: external
// wallets build the same digests, so any change breaks every signature
// produced against the previous layout.

var (
	subscriptionTypeHash = crypto.Keccak256Hash([]byte(
		"Subscription(address owner,uint64 activeAt,uint32 period,uint32 frequency,uint32 redundancy,string containerId,bool lazy,address prover,string paymentToken,uint256 paymentAmount,address wallet)",
	))

	// The envelope type string carries the referenced Subscription type
	// definition, per EIP-712 nested struct encoding.
	delegateSubscriptionTypeHash = crypto.Keccak256Hash([]byte(
		"DelegateSubscription(uint64 nonce,uint64 expiry,Subscription sub)" +
			"Subscription(address owner,uint64 activeAt,uint32 period,uint32 frequency,uint32 redundancy,string containerId,bool lazy,address prover,string paymentToken,uint256 paymentAmount,address wallet)",
	))

	eip712DomainTypeHash = crypto.Keccak256Hash([]byte(
		"EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)",
	))
)

// DomainSeparator computes the EIP-712 domain separator binding signatures
// to (name, version, chainId, verifyingContract). The verifying contract is
// the coordinator module account in its 20-byte form.
func DomainSeparator(name, version string, chainId uint64, verifyingContract sdk.AccAddress) [32]byte {
	nameHash := crypto.Keccak256Hash([]byte(name))
	versionHash := crypto.Keccak256Hash([]byte(version))

	encoded := make([]byte, 5*32)
	copy(encoded[0:32], eip712DomainTypeHash[:])
	copy(encoded[32:64], nameHash[:])
	copy(encoded[64:96], versionHash[:])
	new(big.Int).SetUint64(chainId).FillBytes(encoded[96:128])
	copy(encoded[140:160], common.BytesToAddress(verifyingContract).Bytes())

	return crypto.Keccak256Hash(encoded)
}

// SubscriptionStructHash computes the EIP-712 struct hash over a
// subscription's creation fields. Id, Cancelled and CreatedAt are assigned
// on-chain and not covered.
func SubscriptionStructHash(sub Subscription) ([32]byte, error) {
	owner, err := addressSlotValue(sub.Owner)
	if err != nil {
		return [32]byte{}, fmt.Errorf("owner: %w", err)
	}
	prover, err := addressSlotValue(sub.Prover)
	if err != nil {
		return [32]byte{}, fmt.Errorf("prover: %w", err)
	}
	wallet, err := addressSlotValue(sub.Wallet)
	if err != nil {
		return [32]byte{}, fmt.Errorf("wallet: %w", err)
	}

	amount := new(big.Int)
	if !sub.PaymentAmount.IsNil() {
		amount = sub.PaymentAmount.BigInt()
	}

	containerHash := crypto.Keccak256Hash([]byte(sub.ContainerId))
	tokenHash := crypto.Keccak256Hash([]byte(sub.PaymentToken))

	encoded := make([]byte, 12*32)
	copy(encoded[0:32], subscriptionTypeHash[:])
	copy(encoded[44:64], owner.Bytes())
	new(big.Int).SetUint64(uint64(sub.ActiveAt)).FillBytes(encoded[64:96])
	new(big.Int).SetUint64(uint64(sub.Period)).FillBytes(encoded[96:128])
	new(big.Int).SetUint64(uint64(sub.Frequency)).FillBytes(encoded[128:160])
	new(big.Int).SetUint64(uint64(sub.Redundancy)).FillBytes(encoded[160:192])
	copy(encoded[192:224], containerHash[:])
	if sub.Lazy {
		encoded[255] = 1
	}
	copy(encoded[268:288], prover.Bytes())
	copy(encoded[288:320], tokenHash[:])
	amount.FillBytes(encoded[320:352])
	copy(encoded[364:384], wallet.Bytes())

	return crypto.Keccak256Hash(encoded), nil
}

// DelegateStructHash computes the EIP-712 struct hash of the delegation
// envelope. The outer hash embeds the inner subscription struct hash, per
// nested struct encoding.
func DelegateStructHash(env DelegateSubscription) ([32]byte, error) {
	subHash, err := SubscriptionStructHash(env.Subscription)
	if err != nil {
		return [32]byte{}, err
	}

	encoded := make([]byte, 4*32)
	copy(encoded[0:32], delegateSubscriptionTypeHash[:])
	new(big.Int).SetUint64(env.Nonce).FillBytes(encoded[32:64])
	new(big.Int).SetUint64(uint64(env.Expiry)).FillBytes(encoded[64:96])
	copy(encoded[96:128], subHash[:])

	return crypto.Keccak256Hash(encoded), nil
}

// DelegateDigest computes the final signing digest
// keccak256(0x19 || 0x01 || domainSeparator || structHash).
func DelegateDigest(env DelegateSubscription, name, version string, chainId uint64, verifyingContract sdk.AccAddress) ([32]byte, error) {
	structHash, err := DelegateStructHash(env)
	if err != nil {
		return [32]byte{}, err
	}
	domain := DomainSeparator(name, version, chainId, verifyingContract)

	msg := make([]byte, 2+32+32)
	msg[0] = 0x19
	msg[1] = 0x01
	copy(msg[2:34], domain[:])
	copy(msg[34:66], structHash[:])
	return crypto.Keccak256Hash(msg), nil
}

// SignDelegate signs the envelope digest with a secp256k1 key, returning a
// 65-byte signature with V normalized to 27/28.
func SignDelegate(env DelegateSubscription, privKey *ecdsa.PrivateKey, name, version string, chainId uint64, verifyingContract sdk.AccAddress) ([]byte, error) {
	digest, err := DelegateDigest(env, name, version, chainId, verifyingContract)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(digest[:], privKey)
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}

// RecoverDelegateSigner recovers the 20-byte address that signed the
// envelope. Both 0/1 and 27/28 V values are accepted.
func RecoverDelegateSigner(env DelegateSubscription, signature []byte, name, version string, chainId uint64, verifyingContract sdk.AccAddress) (common.Address, error) {
	if len(signature) != 65 {
		return common.Address{}, fmt.Errorf("signature must be 65 bytes, got %d", len(signature))
	}
	digest, err := DelegateDigest(env, name, version, chainId, verifyingContract)
	if err != nil {
		return common.Address{}, err
	}

	sig := make([]byte, 65)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	pub, err := crypto.SigToPub(digest[:], sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// addressSlotValue converts an optional bech32 address to its 20-byte form,
// zero when empty.
func addressSlotValue(bech32 string) (common.Address, error) {
	if bech32 == "" {
		return common.Address{}, nil
	}
	addr, err := sdk.AccAddressFromBech32(bech32)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(addr), nil
}
