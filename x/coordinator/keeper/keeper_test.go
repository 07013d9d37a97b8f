package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chime-chain/chime/examples/capability"
	keepertest "github.com/chime-chain/chime/testutil/keeper"
	"github.com/chime-chain/chime/x/coordinator/types"
)

func TestGetContainerInputs(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)
	consumer := capability.NewRecordingConsumer()
	f.Coordinator.RegisterConsumer(ownerAddr.String(), consumer)

	id, err := f.Coordinator.CreateSubscription(f.Ctx, baseSubscription(ownerAddr))
	require.NoError(t, err)
	consumer.SetInput(id, 1, []byte("prompt"))

	input, err := f.Coordinator.GetContainerInputs(f.Ctx, id, 1, nodeAddr.String())
	require.NoError(t, err)
	require.Equal(t, []byte("prompt"), input)

	// Unconfigured intervals serve nil.
	input, err = f.Coordinator.GetContainerInputs(f.Ctx, id, 2, nodeAddr.String())
	require.NoError(t, err)
	require.Nil(t, input)

	_, err = f.Coordinator.GetContainerInputs(f.Ctx, 99, 1, nodeAddr.String())
	require.ErrorIs(t, err, types.ErrSubscriptionNotFound)
}

func TestGetContainerInputsNoConsumer(t *testing.T) {
	f := keepertest.CoordinatorKeeper(t)

	id, err := f.Coordinator.CreateSubscription(f.Ctx, baseSubscription(ownerAddr))
	require.NoError(t, err)

	_, err = f.Coordinator.GetContainerInputs(f.Ctx, id, 1, nodeAddr.String())
	require.ErrorIs(t, err, types.ErrConsumerNotRegistered)
}
