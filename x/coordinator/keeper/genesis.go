package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/chime-chain/chime/x/coordinator/types"
)

// InitGenesis initializes the coordinator module's state from a genesis state
func (k *Keeper) InitGenesis(ctx sdk.Context, data types.GenesisState) error {
	if err := k.SetParams(ctx, data.Params); err != nil {
		return err
	}

	for _, sub := range data.Subscriptions {
		k.SetSubscription(ctx, sub)
	}

	nextID := data.NextSubscriptionId
	if nextID == 0 {
		nextID = 1
	}
	k.SetNextSubscriptionID(ctx, nextID)

	for _, tally := range data.Tallies {
		k.SetTally(ctx, tally.SubscriptionId, tally.Interval, types.DeliveryTally{
			Accepted: tally.Accepted,
			Pending:  tally.Pending,
		})
	}

	for _, d := range data.Delivered {
		node, err := sdk.AccAddressFromBech32(d.Node)
		if err != nil {
			return fmt.Errorf("invalid node address %s: %w", d.Node, err)
		}
		k.SetDelivered(ctx, d.SubscriptionId, d.Interval, node)
	}

	for _, record := range data.Proofs {
		k.SetProof(ctx, record)
	}

	for _, ds := range data.DelegateSigners {
		owner, err := sdk.AccAddressFromBech32(ds.Owner)
		if err != nil {
			return fmt.Errorf("invalid owner address %s: %w", ds.Owner, err)
		}
		store := ctx.KVStore(k.storeKey)
		store.Set(DelegateSignerKey(owner), common.HexToAddress(ds.Signer).Bytes())
	}

	for _, n := range data.ConsumedNonces {
		k.SetConsumedNonce(ctx, common.HexToAddress(n.Signer), n.Nonce)
	}

	return nil
}

// ExportGenesis exports the coordinator module's state to a genesis state
func (k *Keeper) ExportGenesis(ctx sdk.Context) (*types.GenesisState, error) {
	genesis := types.GenesisState{
		Params:             k.GetParams(ctx),
		Subscriptions:      []types.Subscription{},
		NextSubscriptionId: k.GetNextSubscriptionID(ctx),
		Tallies:            []types.GenesisTally{},
		Delivered:          []types.GenesisDelivered{},
		Proofs:             []types.ProofVerification{},
		DelegateSigners:    []types.GenesisDelegateSigner{},
		ConsumedNonces:     []types.GenesisNonce{},
	}

	k.IterateSubscriptions(ctx, func(sub types.Subscription) bool {
		genesis.Subscriptions = append(genesis.Subscriptions, sub)
		return false
	})

	k.IterateTallies(ctx, func(id uint64, interval uint32, tally types.DeliveryTally) bool {
		genesis.Tallies = append(genesis.Tallies, types.GenesisTally{
			SubscriptionId: id,
			Interval:       interval,
			Accepted:       tally.Accepted,
			Pending:        tally.Pending,
		})
		return false
	})

	k.IterateDelivered(ctx, func(id uint64, interval uint32, node sdk.AccAddress) bool {
		genesis.Delivered = append(genesis.Delivered, types.GenesisDelivered{
			SubscriptionId: id,
			Interval:       interval,
			Node:           node.String(),
		})
		return false
	})

	k.IterateProofs(ctx, func(record types.ProofVerification) bool {
		genesis.Proofs = append(genesis.Proofs, record)
		return false
	})

	k.IterateDelegateSigners(ctx, func(owner sdk.AccAddress, signer common.Address) bool {
		genesis.DelegateSigners = append(genesis.DelegateSigners, types.GenesisDelegateSigner{
			Owner:  owner.String(),
			Signer: signer.Hex(),
		})
		return false
	})

	k.IterateConsumedNonces(ctx, func(signer common.Address, n uint64) bool {
		genesis.ConsumedNonces = append(genesis.ConsumedNonces, types.GenesisNonce{
			Signer: signer.Hex(),
			Nonce:  n,
		})
		return false
	})

	return &genesis, nil
}
