package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/escrow/types"
)

// InitGenesis initializes the escrow module's state from a genesis state
func (k Keeper) InitGenesis(ctx sdk.Context, data types.GenesisState) error {
	for _, wallet := range data.Wallets {
		k.SetWallet(ctx, wallet)
	}

	for _, balance := range data.Balances {
		walletAddr, err := sdk.AccAddressFromBech32(balance.Wallet)
		if err != nil {
			return fmt.Errorf("invalid wallet address %s: %w", balance.Wallet, err)
		}
		k.setAmount(ctx, BalanceKey(walletAddr, balance.Denom), balance.Amount)
		k.setAmount(ctx, LockedKey(walletAddr, balance.Denom), balance.Locked)
	}

	for _, allowance := range data.Allowances {
		walletAddr, err := sdk.AccAddressFromBech32(allowance.Wallet)
		if err != nil {
			return fmt.Errorf("invalid wallet address %s: %w", allowance.Wallet, err)
		}
		spender, err := sdk.AccAddressFromBech32(allowance.Spender)
		if err != nil {
			return fmt.Errorf("invalid spender address %s: %w", allowance.Spender, err)
		}
		k.setAmount(ctx, AllowanceKey(walletAddr, spender, allowance.Denom), allowance.Amount)
	}

	nextWalletID := data.NextWalletId
	if nextWalletID == 0 {
		nextWalletID = 1
	}
	k.SetNextWalletID(ctx, nextWalletID)

	return nil
}

// ExportGenesis exports the escrow module's state to a genesis state
func (k Keeper) ExportGenesis(ctx sdk.Context) (*types.GenesisState, error) {
	genesis := types.GenesisState{
		Wallets:      []types.Wallet{},
		Balances:     []types.GenesisBalance{},
		Allowances:   []types.GenesisApproval{},
		NextWalletId: k.GetNextWalletID(ctx),
	}

	k.IterateWallets(ctx, func(wallet types.Wallet) bool {
		genesis.Wallets = append(genesis.Wallets, wallet)
		return false
	})

	// Balance rows carry both the total and locked amounts; a locked row
	// without a balance row cannot exist (locked <= balance).
	k.IterateBalances(ctx, func(wallet sdk.AccAddress, denom string, amount math.Int) bool {
		genesis.Balances = append(genesis.Balances, types.GenesisBalance{
			Wallet: wallet.String(),
			Denom:  denom,
			Amount: amount,
			Locked: k.GetLocked(ctx, wallet, denom),
		})
		return false
	})

	k.IterateAllowances(ctx, func(wallet, spender sdk.AccAddress, denom string, amount math.Int) bool {
		genesis.Allowances = append(genesis.Allowances, types.GenesisApproval{
			Wallet:  wallet.String(),
			Spender: spender.String(),
			Denom:   denom,
			Amount:  amount,
		})
		return false
	})

	return &genesis, nil
}
