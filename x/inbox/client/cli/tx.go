package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/chime-chain/chime/x/inbox/types"
)

// Flag names for inbox transaction commands
const (
	FlagInput  = "input"
	FlagOutput = "output"
	FlagProof  = "proof"
)

// GetTxCmd returns the transaction commands for the inbox module
func GetTxCmd() *cobra.Command {
	inboxTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Inbox transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	inboxTxCmd.AddCommand(
		CmdWriteInbox(),
	)

	return inboxTxCmd
}

// CmdWriteInbox returns a CLI command handler for publishing an untied item
func CmdWriteInbox() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write [container-id]",
		Short: "Publish a compute result to the delivery ledger",
		Long: `Publish a compute result to the delivery ledger outside any
subscription. Payloads are hex-encoded.

Example:
  $ chimed tx inbox write my-container --output deadbeef --from mynode`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
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

			msg := &types.MsgWriteInbox{
				Node:        clientCtx.GetFromAddress().String(),
				ContainerId: args[0],
				Input:       input,
				Output:      output,
				Proof:       proof,
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
