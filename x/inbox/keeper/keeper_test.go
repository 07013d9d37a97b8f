package keeper_test

import (
	"fmt"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	keepertest "github.com/chime-chain/chime/testutil/keeper"
	"github.com/chime-chain/chime/x/inbox/keeper"
	"github.com/chime-chain/chime/x/inbox/types"
)

func testItem(containerId string, node sdk.AccAddress) types.Item {
	return types.Item{
		ContainerId: containerId,
		Node:        node.String(),
		Output:      []byte("result"),
	}
}

func TestAppendAssignsDenseIndexes(t *testing.T) {
	k, ctx := keepertest.InboxKeeper(t)
	node := sdk.AccAddress("node________________")

	for want := uint64(0); want < 3; want++ {
		index, err := k.Append(ctx, testItem("container-a", node))
		require.NoError(t, err)
		require.Equal(t, want, index)
	}
	require.Equal(t, uint64(3), k.GetCount(ctx, "container-a", node))

	item, found := k.GetItem(ctx, "container-a", node, 1)
	require.True(t, found)
	require.Equal(t, uint64(1), item.Index)
	require.Equal(t, ctx.BlockTime().Unix(), item.Timestamp)
	require.Equal(t, []byte("result"), item.Output)
}

func TestAppendPairsIndependent(t *testing.T) {
	k, ctx := keepertest.InboxKeeper(t)
	nodeA := sdk.AccAddress("node-a______________")
	nodeB := sdk.AccAddress("node-b______________")

	_, err := k.Append(ctx, testItem("container-a", nodeA))
	require.NoError(t, err)
	_, err = k.Append(ctx, testItem("container-a", nodeA))
	require.NoError(t, err)

	// Same container, different node starts at 0.
	index, err := k.Append(ctx, testItem("container-a", nodeB))
	require.NoError(t, err)
	require.Equal(t, uint64(0), index)

	// Same node, different container starts at 0.
	index, err = k.Append(ctx, testItem("container-b", nodeA))
	require.NoError(t, err)
	require.Equal(t, uint64(0), index)

	require.Equal(t, uint64(2), k.GetCount(ctx, "container-a", nodeA))
	require.Equal(t, uint64(1), k.GetCount(ctx, "container-a", nodeB))
}

func TestAppendValidation(t *testing.T) {
	k, ctx := keepertest.InboxKeeper(t)
	node := sdk.AccAddress("node________________")

	_, err := k.Append(ctx, types.Item{ContainerId: "", Node: node.String()})
	require.ErrorIs(t, err, types.ErrInvalidItem)

	_, err = k.Append(ctx, types.Item{ContainerId: "container-a", Node: "not-bech32"})
	require.ErrorIs(t, err, types.ErrInvalidItem)
}

func TestGetItemMissing(t *testing.T) {
	k, ctx := keepertest.InboxKeeper(t)
	node := sdk.AccAddress("node________________")

	_, found := k.GetItem(ctx, "container-a", node, 0)
	require.False(t, found)
}

func TestIteratePairItems(t *testing.T) {
	k, ctx := keepertest.InboxKeeper(t)
	node := sdk.AccAddress("node________________")
	other := sdk.AccAddress("other_______________")

	for i := 0; i < 4; i++ {
		item := testItem("container-a", node)
		item.Output = []byte{byte(i)}
		_, err := k.Append(ctx, item)
		require.NoError(t, err)
	}
	_, err := k.Append(ctx, testItem("container-a", other))
	require.NoError(t, err)

	var indexes []uint64
	k.IteratePairItems(ctx, "container-a", node, func(item types.Item) bool {
		indexes = append(indexes, item.Index)
		return false
	})
	require.Equal(t, []uint64{0, 1, 2, 3}, indexes)
}

func TestWriteInboxMsg(t *testing.T) {
	k, ctx := keepertest.InboxKeeper(t)
	ms := keeper.NewMsgServerImpl(k)
	node := sdk.AccAddress("node________________")

	resp, err := ms.WriteInbox(ctx, &types.MsgWriteInbox{
		Node:        node.String(),
		ContainerId: "container-a",
		Output:      []byte("result"),
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.Index)

	// Direct writes are never tied to a subscription.
	item, found := k.GetItem(ctx, "container-a", node, 0)
	require.True(t, found)
	require.Equal(t, uint64(0), item.SubscriptionId)
	require.Equal(t, uint32(0), item.Interval)
}

func TestInboxGenesisRoundTrip(t *testing.T) {
	k, ctx := keepertest.InboxKeeper(t)
	nodeA := sdk.AccAddress("node-a______________")
	nodeB := sdk.AccAddress("node-b______________")

	for i := 0; i < 3; i++ {
		_, err := k.Append(ctx, testItem("container-a", nodeA))
		require.NoError(t, err)
	}
	_, err := k.Append(ctx, testItem("container-b", nodeB))
	require.NoError(t, err)

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Len(t, exported.Items, 4)
	require.NoError(t, exported.Validate())

	k2, ctx2 := keepertest.InboxKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))

	// Counters are rebuilt from item counts, so appends continue densely.
	require.Equal(t, uint64(3), k2.GetCount(ctx2, "container-a", nodeA))
	index, err := k2.Append(ctx2, testItem("container-a", nodeA))
	require.NoError(t, err)
	require.Equal(t, uint64(3), index)

	msg, broken := keeper.IndexDensityInvariant(k2)(ctx2)
	require.False(t, broken, msg)
}

func TestIndexDensityProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, ctx := keepertest.InboxKeeper(t)

		pairs := rapid.IntRange(1, 4).Draw(rt, "pairs")
		for p := 0; p < pairs; p++ {
			node := sdk.AccAddress(fmt.Sprintf("node-%02d_____________", p))
			writes := rapid.IntRange(0, 6).Draw(rt, "writes")
			for w := 0; w < writes; w++ {
				index, err := k.Append(ctx, testItem("container", node))
				if err != nil {
					rt.Fatalf("append failed: %v", err)
				}
				if index != uint64(w) {
					rt.Fatalf("pair %d write %d got index %d", p, w, index)
				}
			}
		}

		msg, broken := keeper.IndexDensityInvariant(k)(ctx)
		if broken {
			rt.Fatalf("invariant broken: %s", msg)
		}
	})
}
