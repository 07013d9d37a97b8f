package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/inbox/keeper"
	"github.com/chime-chain/chime/x/inbox/types"
)

// GetQueryCmd returns the cli query commands for the inbox module
func GetQueryCmd() *cobra.Command {
	inboxQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the inbox module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	inboxQueryCmd.AddCommand(
		GetCmdQueryItem(),
		GetCmdQueryCount(),
	)

	return inboxQueryCmd
}

// GetCmdQueryItem returns the command to query one ledger item
func GetCmdQueryItem() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item [container-id] [node] [index]",
		Short: "Query a delivery ledger item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			node, err := sdk.AccAddressFromBech32(args[1])
			if err != nil {
				return fmt.Errorf("invalid node address: %w", err)
			}
			index, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid index: %w", err)
			}

			bz, _, err := clientCtx.QueryStore(keeper.ItemKey(args[0], node, index), types.StoreKey)
			if err != nil {
				return err
			}
			if bz == nil {
				return fmt.Errorf("item (%s, %s, %d) not found", args[0], args[1], index)
			}

			var item types.Item
			if err := types.ModuleCdc.Unmarshal(bz, &item); err != nil {
				return err
			}
			return clientCtx.PrintObjectLegacy(item)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryCount returns the command to query a pair's item count
func GetCmdQueryCount() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [container-id] [node]",
		Short: "Query the number of ledger items for a (container, node) pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			node, err := sdk.AccAddressFromBech32(args[1])
			if err != nil {
				return fmt.Errorf("invalid node address: %w", err)
			}

			bz, _, err := clientCtx.QueryStore(keeper.CountKey(args[0], node), types.StoreKey)
			if err != nil {
				return err
			}
			count := uint64(0)
			if bz != nil {
				count = sdk.BigEndianToUint64(bz)
			}
			return clientCtx.PrintString(fmt.Sprintf("%d\n", count))
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
