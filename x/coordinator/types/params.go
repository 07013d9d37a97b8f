package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Default parameter values
const (
	DefaultTypedDataName    = "chime coordinator"
	DefaultTypedDataVersion = "1"
	DefaultChainId          = uint64(1)
	DefaultMaxBatchReadSize = uint32(100)
	DefaultMaxPayloadSize   = uint32(1 << 20) // 1 MiB
)

// DefaultFeeRate is the protocol fee applied to each settled payment.
var DefaultFeeRate = math.LegacyNewDecWithPrec(5, 2) // 5%

// Params defines the coordinator module parameters. FeeRate and
// FeeRecipient together form the fee registry: the split applied to every
// settled payment and the account receiving the protocol's share. The
// typed-data fields pin the EIP-712 domain used to verify delegated
// subscription signatures.
type Params struct {
	FeeRate          math.LegacyDec `json:"fee_rate"`
	FeeRecipient     string         `json:"fee_recipient"`
	TypedDataName    string         `json:"typed_data_name"`
	TypedDataVersion string         `json:"typed_data_version"`
	ChainId          uint64         `json:"chain_id"`
	MaxBatchReadSize uint32         `json:"max_batch_read_size"`
	MaxPayloadSize   uint32         `json:"max_payload_size"`
}

// DefaultParams returns the default coordinator parameters. The default fee
// recipient is the empty string; settlement burns no fee until governance
// sets one, sending the full amount to the node.
func DefaultParams() Params {
	return Params{
		FeeRate:          DefaultFeeRate,
		FeeRecipient:     "",
		TypedDataName:    DefaultTypedDataName,
		TypedDataVersion: DefaultTypedDataVersion,
		ChainId:          DefaultChainId,
		MaxBatchReadSize: DefaultMaxBatchReadSize,
		MaxPayloadSize:   DefaultMaxPayloadSize,
	}
}

// Validate performs basic validation of the parameters.
func (p Params) Validate() error {
	if p.FeeRate.IsNil() || p.FeeRate.IsNegative() || p.FeeRate.GT(math.LegacyOneDec()) {
		return fmt.Errorf("fee rate must be between 0 and 1, got %s", p.FeeRate)
	}
	if p.FeeRecipient != "" {
		if _, err := sdk.AccAddressFromBech32(p.FeeRecipient); err != nil {
			return fmt.Errorf("invalid fee recipient address %q: %w", p.FeeRecipient, err)
		}
	}
	if p.TypedDataName == "" {
		return fmt.Errorf("typed data name cannot be empty")
	}
	if p.TypedDataVersion == "" {
		return fmt.Errorf("typed data version cannot be empty")
	}
	if p.MaxBatchReadSize == 0 {
		return fmt.Errorf("max batch read size cannot be zero")
	}
	if p.MaxPayloadSize == 0 {
		return fmt.Errorf("max payload size cannot be zero")
	}
	return nil
}
