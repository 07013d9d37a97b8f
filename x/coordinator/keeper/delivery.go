package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/chime-chain/chime/x/coordinator/types"
	inboxtypes "github.com/chime-chain/chime/x/inbox/types"
)

// DeliverCompute validates and records a node's compute result for the
// interval it declares. Validation order matters: each precondition has
// its own error so a rejected node can tell exactly why. Any error aborts
// the whole delivery transaction; there is no partial acceptance.
//
// Without a prover the delivery settles immediately: payment transfers,
// the accepted count increments and the consumer is notified (or the item
// is written to the inbox for a lazy subscription). With a prover the
// delivery is provisional: the payloads go to the inbox, payment is locked
// but not transferred, and settlement waits for FinalizeProofValidation.
func (k *Keeper) DeliverCompute(ctx sdk.Context, node sdk.AccAddress, id uint64, interval uint32, input, output, proof []byte) (uint32, bool, error) {
	sub, found := k.GetSubscription(ctx, id)
	if !found {
		k.metrics.DeliveriesRejected.WithLabelValues("not_found").Inc()
		return 0, false, types.ErrSubscriptionNotFound.Wrapf("subscription %d", id)
	}
	if sub.Cancelled {
		k.metrics.DeliveriesRejected.WithLabelValues("cancelled").Inc()
		return 0, false, types.ErrSubscriptionCancelled.Wrapf("subscription %d", id)
	}

	now := ctx.BlockTime().Unix()
	open := sub.IntervalAt(now)
	if open == 0 {
		k.metrics.DeliveriesRejected.WithLabelValues("not_active").Inc()
		return 0, false, types.ErrSubscriptionNotActive.Wrapf("subscription %d activates at %d, now %d", id, sub.ActiveAt, now)
	}
	if open > sub.Frequency {
		k.metrics.DeliveriesRejected.WithLabelValues("completed").Inc()
		return 0, false, types.ErrSubscriptionCompleted.Wrapf("subscription %d exhausted after %d intervals", id, sub.Frequency)
	}
	if interval != open {
		k.metrics.DeliveriesRejected.WithLabelValues("interval_mismatch").Inc()
		return 0, false, types.ErrIntervalMismatch.Wrapf("declared interval %d, open interval %d", interval, open)
	}

	if k.HasDelivered(ctx, id, interval, node) {
		k.metrics.DeliveriesRejected.WithLabelValues("already_delivered").Inc()
		return 0, false, types.ErrNodeAlreadyDelivered.Wrapf("node %s, subscription %d interval %d", node, id, interval)
	}

	tally := k.GetTally(ctx, id, interval)
	if interval == sub.Frequency && tally.Accepted >= sub.Redundancy {
		k.metrics.DeliveriesRejected.WithLabelValues("completed").Inc()
		return 0, false, types.ErrSubscriptionCompleted.Wrapf("subscription %d delivered its final interval", id)
	}
	if tally.Total() >= sub.Redundancy {
		k.metrics.DeliveriesRejected.WithLabelValues("redundancy_satisfied").Inc()
		return 0, false, types.ErrRedundancySatisfied.Wrapf("subscription %d interval %d has %d of %d deliveries", id, interval, tally.Total(), sub.Redundancy)
	}

	params := k.GetParams(ctx)
	for _, payload := range [][]byte{input, output, proof} {
		if uint32(len(payload)) > params.MaxPayloadSize {
			return 0, false, types.ErrPayloadTooLarge.Wrapf("payload of %d bytes exceeds limit %d", len(payload), params.MaxPayloadSize)
		}
	}

	if sub.HasProver() {
		return k.deliverProvisional(ctx, sub, node, interval, tally, input, output, proof)
	}
	return k.deliverImmediate(ctx, sub, node, interval, tally, input, output, proof)
}

// deliverImmediate settles an unproved delivery in one step: payment, tally
// increment and consumer notification, all in the same unit of work.
func (k *Keeper) deliverImmediate(ctx sdk.Context, sub types.Subscription, node sdk.AccAddress, interval uint32, tally types.DeliveryTally, input, output, proof []byte) (uint32, bool, error) {
	if sub.IsPaid() {
		if err := k.settle(ctx, sub, node, sub.PaymentAmount); err != nil {
			return 0, false, err
		}
	}

	tally.Accepted++
	k.SetTally(ctx, sub.Id, interval, tally)
	k.SetDelivered(ctx, sub.Id, interval, node)

	if sub.Lazy {
		if _, err := k.inboxKeeper.Append(ctx, inboxtypes.Item{
			ContainerId:    sub.ContainerId,
			Node:           node.String(),
			SubscriptionId: sub.Id,
			Interval:       interval,
			Input:          input,
			Output:         output,
			Proof:          proof,
		}); err != nil {
			return 0, false, err
		}
	} else {
		consumer, ok := k.GetConsumer(sub.Owner)
		if !ok {
			return 0, false, types.ErrConsumerNotRegistered.Wrapf("owner %s", sub.Owner)
		}
		if err := consumer.ReceiveCompute(ctx, types.ComputeDelivery{
			SubscriptionId: sub.Id,
			Interval:       interval,
			AcceptedCount:  tally.Accepted,
			Node:           node.String(),
			Input:          input,
			Output:         output,
			Proof:          proof,
			ContainerId:    sub.ContainerId,
		}); err != nil {
			return 0, false, err
		}
	}

	k.metrics.DeliveriesAccepted.Inc()
	k.emitDelivered(ctx, sub.Id, interval, node, tally.Accepted)
	return tally.Accepted, false, nil
}

// deliverProvisional records a proof-gated delivery: payloads to the inbox,
// payment locked, pending slot taken, then the prover is asked to validate.
// An atomic prover finalizes inline before this returns, so the tally and
// proof record are re-read for the response.
func (k *Keeper) deliverProvisional(ctx sdk.Context, sub types.Subscription, node sdk.AccAddress, interval uint32, tally types.DeliveryTally, input, output, proof []byte) (uint32, bool, error) {
	prover, ok := k.GetProver(sub.Prover)
	if !ok {
		return 0, false, types.ErrProverNotRegistered.Wrapf("prover %s", sub.Prover)
	}

	locked := math.ZeroInt()
	if sub.IsPaid() {
		if !prover.IsSupportedToken(sub.PaymentToken) {
			return 0, false, types.ErrUnsupportedToken.Wrapf("prover %s does not support %s", sub.Prover, sub.PaymentToken)
		}
		wallet, owner, err := sub.EscrowAddresses()
		if err != nil {
			return 0, false, types.ErrInvalidAddress.Wrap(err.Error())
		}
		if err := k.escrowKeeper.Lock(ctx, wallet, owner, sub.PaymentToken, sub.PaymentAmount); err != nil {
			return 0, false, err
		}
		locked = sub.PaymentAmount
	}

	// The payloads go to the inbox now so the post-proof callback can point
	// at them instead of re-carrying them.
	index, err := k.inboxKeeper.Append(ctx, inboxtypes.Item{
		ContainerId:    sub.ContainerId,
		Node:           node.String(),
		SubscriptionId: sub.Id,
		Interval:       interval,
		Input:          input,
		Output:         output,
		Proof:          proof,
	})
	if err != nil {
		return 0, false, err
	}

	k.SetProof(ctx, types.ProofVerification{
		SubscriptionId: sub.Id,
		Interval:       interval,
		Node:           node.String(),
		Status:         types.ProofStatusPending,
		Locked:         locked,
		ContainerId:    sub.ContainerId,
		InboxIndex:     index,
		RequestedAt:    ctx.BlockTime().Unix(),
	})

	tally.Pending++
	k.SetTally(ctx, sub.Id, interval, tally)
	k.SetDelivered(ctx, sub.Id, interval, node)

	k.metrics.ProofsRequested.Inc()
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProofRequested,
			sdk.NewAttribute(types.AttributeKeySubscriptionId, strconv.FormatUint(sub.Id, 10)),
			sdk.NewAttribute(types.AttributeKeyInterval, strconv.FormatUint(uint64(interval), 10)),
			sdk.NewAttribute(types.AttributeKeyNode, node.String()),
			sdk.NewAttribute(types.AttributeKeyProver, sub.Prover),
		),
	)

	if err := prover.RequestProofValidation(ctx, k, types.ProofRequest{
		SubscriptionId: sub.Id,
		Interval:       interval,
		Node:           node.String(),
		Proof:          proof,
	}); err != nil {
		return 0, false, err
	}

	record, _ := k.GetProof(ctx, sub.Id, interval, node)
	tally = k.GetTally(ctx, sub.Id, interval)
	return tally.Accepted, record.Pending(), nil
}

// settle applies the fee split to amount and transfers both shares through
// the escrow ledger: the protocol fee to the fee recipient, the remainder
// to the node. The two shares always sum to exactly amount; with no fee
// recipient configured the node receives everything.
func (k *Keeper) settle(ctx sdk.Context, sub types.Subscription, node sdk.AccAddress, amount math.Int) error {
	wallet, owner, err := sub.EscrowAddresses()
	if err != nil {
		return types.ErrInvalidAddress.Wrap(err.Error())
	}

	params := k.GetParams(ctx)
	fee := math.ZeroInt()
	if params.FeeRecipient != "" {
		fee = params.FeeRate.MulInt(amount).TruncateInt()
	}
	nodeShare := amount.Sub(fee)

	if fee.IsPositive() {
		recipient, err := sdk.AccAddressFromBech32(params.FeeRecipient)
		if err != nil {
			return types.ErrInvalidAddress.Wrapf("fee recipient: %v", err)
		}
		if err := k.escrowKeeper.Transfer(ctx, wallet, owner, sub.PaymentToken, recipient, fee); err != nil {
			return err
		}
	}
	if nodeShare.IsPositive() {
		if err := k.escrowKeeper.Transfer(ctx, wallet, owner, sub.PaymentToken, node, nodeShare); err != nil {
			return err
		}
	}

	k.metrics.PaymentsSettled.Inc()
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePaymentSettled,
			sdk.NewAttribute(types.AttributeKeySubscriptionId, strconv.FormatUint(sub.Id, 10)),
			sdk.NewAttribute(types.AttributeKeyNode, node.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, sub.PaymentToken),
			sdk.NewAttribute(types.AttributeKeyFeeAmount, fee.String()),
			sdk.NewAttribute(types.AttributeKeyNodeAmount, nodeShare.String()),
		),
	)
	return nil
}

func (k *Keeper) emitDelivered(ctx sdk.Context, id uint64, interval uint32, node sdk.AccAddress, accepted uint32) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeComputeDelivered,
			sdk.NewAttribute(types.AttributeKeySubscriptionId, strconv.FormatUint(id, 10)),
			sdk.NewAttribute(types.AttributeKeyInterval, strconv.FormatUint(uint64(interval), 10)),
			sdk.NewAttribute(types.AttributeKeyNode, node.String()),
			sdk.NewAttribute(types.AttributeKeyAcceptedCount, strconv.FormatUint(uint64(accepted), 10)),
		),
	)
}
