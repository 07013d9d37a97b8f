package cli

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/escrow/keeper"
	"github.com/chime-chain/chime/x/escrow/types"
)

// GetQueryCmd returns the cli query commands for the escrow module
func GetQueryCmd() *cobra.Command {
	escrowQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the escrow module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	escrowQueryCmd.AddCommand(
		GetCmdQueryWallet(),
		GetCmdQueryBalance(),
		GetCmdQueryAllowance(),
	)

	return escrowQueryCmd
}

// GetCmdQueryWallet returns the command to query wallet metadata
func GetCmdQueryWallet() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet [address]",
		Short: "Query escrow wallet metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			addr, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("invalid wallet address: %w", err)
			}

			bz, _, err := clientCtx.QueryStore(keeper.WalletKey(addr), types.StoreKey)
			if err != nil {
				return err
			}
			if bz == nil {
				return fmt.Errorf("wallet %s not found", args[0])
			}

			var wallet types.Wallet
			if err := types.ModuleCdc.Unmarshal(bz, &wallet); err != nil {
				return err
			}
			return clientCtx.PrintObjectLegacy(wallet)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryBalance returns the command to query a wallet's balance rows
func GetCmdQueryBalance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance [wallet] [denom]",
		Short: "Query a wallet's total and locked balance of a denom",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			addr, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("invalid wallet address: %w", err)
			}
			denom := args[1]

			balance, err := queryAmount(clientCtx, keeper.BalanceKey(addr, denom))
			if err != nil {
				return err
			}
			locked, err := queryAmount(clientCtx, keeper.LockedKey(addr, denom))
			if err != nil {
				return err
			}

			return clientCtx.PrintString(fmt.Sprintf("balance: %s%s\nlocked: %s%s\nunlocked: %s%s\n",
				balance, denom, locked, denom, balance.Sub(locked), denom))
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryAllowance returns the command to query a spender allowance
func GetCmdQueryAllowance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allowance [wallet] [spender] [denom]",
		Short: "Query a (wallet, spender, denom) allowance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			wallet, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("invalid wallet address: %w", err)
			}
			spender, err := sdk.AccAddressFromBech32(args[1])
			if err != nil {
				return fmt.Errorf("invalid spender address: %w", err)
			}

			allowance, err := queryAmount(clientCtx, keeper.AllowanceKey(wallet, spender, args[2]))
			if err != nil {
				return err
			}
			return clientCtx.PrintString(fmt.Sprintf("%s%s\n", allowance, args[2]))
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// queryAmount reads a math.Int row from the escrow store, zero when unset.
func queryAmount(clientCtx client.Context, key []byte) (math.Int, error) {
	bz, _, err := clientCtx.QueryStore(key, types.StoreKey)
	if err != nil {
		return math.Int{}, err
	}
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		return math.Int{}, err
	}
	return amount, nil
}
