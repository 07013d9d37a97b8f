package cli

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/escrow/types"
)

// GetTxCmd returns the transaction commands for the escrow module
func GetTxCmd() *cobra.Command {
	escrowTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Escrow transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	escrowTxCmd.AddCommand(
		CmdCreateWallet(),
		CmdDeposit(),
		CmdWithdraw(),
		CmdApprove(),
	)

	return escrowTxCmd
}

// CmdCreateWallet returns a CLI command handler for creating an escrow wallet
func CmdCreateWallet() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-wallet [owner]",
		Short: "Create an escrow wallet owned by the given address",
		Long: `Create an escrow wallet through the wallet factory. The owner defaults
to the sender when omitted.

Example:
  $ chimed tx escrow create-wallet --from mykey`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			owner := clientCtx.GetFromAddress().String()
			if len(args) == 1 {
				if _, err := sdk.AccAddressFromBech32(args[0]); err != nil {
					return fmt.Errorf("invalid owner address: %w", err)
				}
				owner = args[0]
			}

			msg := &types.MsgCreateWallet{
				Creator: clientCtx.GetFromAddress().String(),
				Owner:   owner,
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDeposit returns a CLI command handler for funding an escrow wallet
func CmdDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [wallet] [amount]",
		Short: "Deposit funds into an escrow wallet",
		Long: `Deposit funds into an escrow wallet. Any account may fund any wallet.

Example:
  $ chimed tx escrow deposit chime1wallet... 1000000uchime --from mykey`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			amount, err := sdk.ParseCoinNormalized(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}

			msg := &types.MsgDeposit{
				Depositor: clientCtx.GetFromAddress().String(),
				Wallet:    args[0],
				Amount:    amount,
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdraw returns a CLI command handler for withdrawing unlocked funds
func CmdWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [wallet] [amount]",
		Short: "Withdraw unlocked funds from an escrow wallet you own",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			amount, err := sdk.ParseCoinNormalized(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}

			recipient, err := cmd.Flags().GetString(FlagRecipient)
			if err != nil {
				return err
			}

			msg := &types.MsgWithdraw{
				Owner:     clientCtx.GetFromAddress().String(),
				Wallet:    args[0],
				Recipient: recipient,
				Amount:    amount,
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagRecipient, "", "Recipient of the withdrawn funds (defaults to the owner)")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdApprove returns a CLI command handler for setting a spender allowance
func CmdApprove() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve [wallet] [spender] [denom] [amount]",
		Short: "Set a spender allowance on an escrow wallet you own",
		Long: `Set the allowance of (spender, denom) on a wallet to the given amount,
replacing any previous value.

Example:
  $ chimed tx escrow approve chime1wallet... chime1spender... uchime 5000000 --from mykey`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			amount, ok := math.NewIntFromString(args[3])
			if !ok {
				return fmt.Errorf("invalid amount %q", args[3])
			}

			msg := &types.MsgApprove{
				Owner:   clientCtx.GetFromAddress().String(),
				Wallet:  args[0],
				Spender: args[1],
				Denom:   args[2],
				Amount:  amount,
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
