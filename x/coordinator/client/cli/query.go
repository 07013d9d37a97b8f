package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/chime-chain/chime/x/coordinator/keeper"
	"github.com/chime-chain/chime/x/coordinator/types"
)

// GetQueryCmd returns the cli query commands for the coordinator module
func GetQueryCmd() *cobra.Command {
	coordinatorQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the coordinator module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	coordinatorQueryCmd.AddCommand(
		GetCmdQuerySubscription(),
		GetCmdQueryTally(),
		GetCmdQueryProof(),
		GetCmdQueryDelegateSigner(),
		GetCmdQueryParams(),
	)

	return coordinatorQueryCmd
}

// GetCmdQuerySubscription returns the command to query a subscription record
func GetCmdQuerySubscription() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription [id]",
		Short: "Query a subscription by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id: %w", err)
			}

			bz, _, err := clientCtx.QueryStore(keeper.SubscriptionKey(id), types.StoreKey)
			if err != nil {
				return err
			}
			if bz == nil {
				return fmt.Errorf("subscription %d not found", id)
			}

			var sub types.Subscription
			if err := types.ModuleCdc.Unmarshal(bz, &sub); err != nil {
				return err
			}
			return clientCtx.PrintObjectLegacy(sub)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryTally returns the command to query an interval's delivery tally
func GetCmdQueryTally() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tally [id] [interval]",
		Short: "Query the delivery tally of a (subscription, interval)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
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

			bz, _, err := clientCtx.QueryStore(keeper.TallyKey(id, uint32(interval)), types.StoreKey)
			if err != nil {
				return err
			}

			var tally types.DeliveryTally
			if bz != nil {
				if err := types.ModuleCdc.Unmarshal(bz, &tally); err != nil {
					return err
				}
			}
			return clientCtx.PrintObjectLegacy(tally)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryProof returns the command to query a proof verification record
func GetCmdQueryProof() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proof [id] [interval] [node]",
		Short: "Query a proof verification record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
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
			node, err := sdk.AccAddressFromBech32(args[2])
			if err != nil {
				return fmt.Errorf("invalid node address: %w", err)
			}

			bz, _, err := clientCtx.QueryStore(keeper.ProofKey(id, uint32(interval), node), types.StoreKey)
			if err != nil {
				return err
			}
			if bz == nil {
				return fmt.Errorf("no proof record for subscription %d interval %d node %s", id, interval, args[2])
			}

			var record types.ProofVerification
			if err := types.ModuleCdc.Unmarshal(bz, &record); err != nil {
				return err
			}
			return clientCtx.PrintObjectLegacy(record)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryDelegateSigner returns the command to query an owner's delegate signer
func GetCmdQueryDelegateSigner() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delegate-signer [owner]",
		Short: "Query the delegate signer registered for an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			owner, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("invalid owner address: %w", err)
			}

			bz, _, err := clientCtx.QueryStore(keeper.DelegateSignerKey(owner), types.StoreKey)
			if err != nil {
				return err
			}
			if bz == nil {
				return fmt.Errorf("no delegate signer registered for %s", args[0])
			}

			return clientCtx.PrintString(common.BytesToAddress(bz).Hex() + "\n")
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryParams returns the command to query the module parameters
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the coordinator module parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			bz, _, err := clientCtx.QueryStore(keeper.ParamsKey, types.StoreKey)
			if err != nil {
				return err
			}

			params := types.DefaultParams()
			if bz != nil {
				if err := types.ModuleCdc.Unmarshal(bz, &params); err != nil {
					return err
				}
			}
			return clientCtx.PrintObjectLegacy(params)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
