package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/coordinator/types"
)

// Flag names for coordinator transaction commands
const (
	FlagActiveAt      = "active-at"
	FlagPeriod        = "period"
	FlagFrequency     = "frequency"
	FlagRedundancy    = "redundancy"
	FlagLazy          = "lazy"
	FlagProver        = "prover"
	FlagPaymentToken  = "payment-token"
	FlagPaymentAmount = "payment-amount"
	FlagWallet        = "wallet"
	FlagInput         = "input"
	FlagOutput        = "output"
	FlagProof         = "proof"
)

// GetTxCmd returns the transaction commands for the coordinator module
func GetTxCmd() *cobra.Command {
	coordinatorTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Coordinator transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	coordinatorTxCmd.AddCommand(
		CmdCreateSubscription(),
		CmdCancelSubscription(),
		CmdDeliverCompute(),
		CmdFinalizeProofValidation(),
		CmdSetDelegateSigner(),
	)

	return coordinatorTxCmd
}

// CmdCreateSubscription returns a CLI command handler for creating a subscription
func CmdCreateSubscription() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-subscription [container-id]",
		Short: "Create a recurring compute subscription",
		Long: `Create a recurring compute subscription for the given container.
The subscription activates immediately unless --active-at is set.

Example:
  $ chimed tx coordinator create-subscription my-container \
      --period 60 --frequency 10 --redundancy 3 \
      --payment-token uchime --payment-amount 1000 --wallet chime1... \
      --from mykey`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			activeAt, err := cmd.Flags().GetInt64(FlagActiveAt)
			if err != nil {
				return err
			}
			period, err := cmd.Flags().GetUint32(FlagPeriod)
			if err != nil {
				return err
			}
			frequency, err := cmd.Flags().GetUint32(FlagFrequency)
			if err != nil {
				return err
			}
			redundancy, err := cmd.Flags().GetUint32(FlagRedundancy)
			if err != nil {
				return err
			}
			lazy, err := cmd.Flags().GetBool(FlagLazy)
			if err != nil {
				return err
			}
			prover, err := cmd.Flags().GetString(FlagProver)
			if err != nil {
				return err
			}
			paymentToken, err := cmd.Flags().GetString(FlagPaymentToken)
			if err != nil {
				return err
			}
			rawAmount, err := cmd.Flags().GetString(FlagPaymentAmount)
			if err != nil {
				return err
			}
			wallet, err := cmd.Flags().GetString(FlagWallet)
			if err != nil {
				return err
			}

			amount := math.ZeroInt()
			if rawAmount != "" {
				parsed, ok := math.NewIntFromString(rawAmount)
				if !ok {
					return fmt.Errorf("invalid payment amount %q", rawAmount)
				}
				amount = parsed
			}

			msg := &types.MsgCreateSubscription{
				Owner:         clientCtx.GetFromAddress().String(),
				ActiveAt:      activeAt,
				Period:        period,
				Frequency:     frequency,
				Redundancy:    redundancy,
				ContainerId:   args[0],
				Lazy:          lazy,
				Prover:        prover,
				PaymentToken:  paymentToken,
				PaymentAmount: amount,
				Wallet:        wallet,
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Int64(FlagActiveAt, 0, "Unix time the subscription activates (0 - immediately)")
	cmd.Flags().Uint32(FlagPeriod, 0, "Seconds between intervals (0 - one-shot)")
	cmd.Flags().Uint32(FlagFrequency, 1, "Number of intervals")
	cmd.Flags().Uint32(FlagRedundancy, 1, "Accepted deliveries per interval")
	cmd.Flags().Bool(FlagLazy, false, "Record deliveries in the delivery ledger instead of calling back")
	cmd.Flags().String(FlagProver, "", "Address of the proof-verification capability (empty - none)")
	cmd.Flags().String(FlagPaymentToken, "", "Denom paid per accepted delivery")
	cmd.Flags().String(FlagPaymentAmount, "", "Amount paid per accepted delivery")
	cmd.Flags().String(FlagWallet, "", "Escrow wallet funding the subscription")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCancelSubscription returns a CLI command handler for cancelling a subscription
func CmdCancelSubscription() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-subscription [id]",
		Short: "Cancel a subscription you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id: %w", err)
			}

			msg := &types.MsgCancelSubscription{
				Owner: clientCtx.GetFromAddress().String(),
				Id:    id,
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDeliverCompute returns a CLI command handler for submitting a compute delivery
func CmdDeliverCompute() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deliver-compute [subscription-id] [interval]",
		Short: "Deliver a compute result for an open interval",
		Long: `Deliver a compute result for the interval the node believes is
currently open. Payloads are hex-encoded.

Example:
  $ chimed tx coordinator deliver-compute 7 3 --output deadbeef --from mynode`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id: %w", err)
			}
			interval, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid interval: %w", err)
			}

			input, err := hexFlag(cmd, FlagInput)
			if err != nil {
				return err
			}
			output, err := hexFlag(cmd, FlagOutput)
			if err != nil {
				return err
			}
			proof, err := hexFlag(cmd, FlagProof)
			if err != nil {
				return err
			}

			msg := &types.MsgDeliverCompute{
				Node:           clientCtx.GetFromAddress().String(),
				SubscriptionId: id,
				Interval:       uint32(interval),
				Input:          input,
				Output:         output,
				Proof:          proof,
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagInput, "", "Hex-encoded input payload")
	cmd.Flags().String(FlagOutput, "", "Hex-encoded output payload")
	cmd.Flags().String(FlagProof, "", "Hex-encoded proof payload")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdFinalizeProofValidation returns a CLI command handler for a prover verdict
func CmdFinalizeProofValidation() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize-proof [subscription-id] [interval] [node] [valid]",
		Short: "Finalize a pending proof validation as its prover",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id: %w", err)
			}
			interval, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid interval: %w", err)
			}
			if _, err := sdk.AccAddressFromBech32(args[2]); err != nil {
				return fmt.Errorf("invalid node address: %w", err)
			}
			valid, err := strconv.ParseBool(args[3])
			if err != nil {
				return fmt.Errorf("invalid verdict: %w", err)
			}

			msg := &types.MsgFinalizeProofValidation{
				Prover:         clientCtx.GetFromAddress().String(),
				SubscriptionId: id,
				Interval:       uint32(interval),
				Node:           args[2],
				Valid:          valid,
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetDelegateSigner returns a CLI command handler for registering a delegate signer
func CmdSetDelegateSigner() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-delegate-signer [signer]",
		Short: "Register the 0x address allowed to sign delegated creations for you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgSetDelegateSigner{
				Owner:  clientCtx.GetFromAddress().String(),
				Signer: args[0],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// hexFlag reads and decodes a hex-encoded payload flag.
func hexFlag(cmd *cobra.Command, name string) ([]byte, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	bz, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid hex in --%s: %w", name, err)
	}
	return bz, nil
}
