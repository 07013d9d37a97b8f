package types_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/chime-chain/chime/x/coordinator/types"
)

var (
	testOwner  = sdk.AccAddress("owner_______________").String()
	testWallet = sdk.AccAddress("wallet______________").String()
	testProver = sdk.AccAddress("prover______________").String()
)

func validSubscription() types.Subscription {
	return types.Subscription{
		Owner:       testOwner,
		ActiveAt:    1000,
		Period:      60,
		Frequency:   10,
		Redundancy:  3,
		ContainerId: "container-a",
	}
}

func TestSubscriptionValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*types.Subscription)
		wantErr string
	}{
		{
			name:   "valid unpaid",
			mutate: func(*types.Subscription) {},
		},
		{
			name: "valid paid",
			mutate: func(s *types.Subscription) {
				s.PaymentToken = "uchime"
				s.PaymentAmount = math.NewInt(100)
				s.Wallet = testWallet
			},
		},
		{
			name:    "bad owner",
			mutate:  func(s *types.Subscription) { s.Owner = "not-bech32" },
			wantErr: "invalid owner address",
		},
		{
			name:    "zero frequency",
			mutate:  func(s *types.Subscription) { s.Frequency = 0 },
			wantErr: "frequency",
		},
		{
			name:    "zero redundancy",
			mutate:  func(s *types.Subscription) { s.Redundancy = 0 },
			wantErr: "redundancy",
		},
		{
			name:    "empty container",
			mutate:  func(s *types.Subscription) { s.ContainerId = "" },
			wantErr: "container id",
		},
		{
			name:    "negative activeAt",
			mutate:  func(s *types.Subscription) { s.ActiveAt = -1 },
			wantErr: "negative activeAt",
		},
		{
			name:    "bad prover",
			mutate:  func(s *types.Subscription) { s.Prover = "not-bech32" },
			wantErr: "invalid prover address",
		},
		{
			name: "paid without wallet",
			mutate: func(s *types.Subscription) {
				s.PaymentToken = "uchime"
				s.PaymentAmount = math.NewInt(100)
			},
			wantErr: "invalid wallet address",
		},
		{
			name:    "token without amount",
			mutate:  func(s *types.Subscription) { s.PaymentToken = "uchime" },
			wantErr: "without a payment amount",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubscription()
			tc.mutate(&sub)

			err := sub.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestIntervalAt(t *testing.T) {
	testCases := []struct {
		name     string
		activeAt int64
		period   uint32
		now      int64
		want     uint32
	}{
		{"before activation", 1000, 60, 999, 0},
		{"at activation", 1000, 60, 1000, 1},
		{"within first interval", 1000, 60, 1059, 1},
		{"second interval boundary", 1000, 60, 1060, 2},
		{"later interval", 1000, 60, 1300, 6},
		{"one shot before", 1000, 0, 999, 0},
		{"one shot at activation", 1000, 0, 1000, 1},
		{"one shot much later", 1000, 0, 99999, 1},
		{"activation at zero", 0, 100, 250, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubscription()
			sub.ActiveAt = tc.activeAt
			sub.Period = tc.period
			require.Equal(t, tc.want, sub.IntervalAt(tc.now))
		})
	}
}

func TestIntervalAtProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		sub := validSubscription()
		sub.ActiveAt = rapid.Int64Range(0, 1<<40).Draw(rt, "activeAt")
		sub.Period = rapid.Uint32Range(0, 1<<20).Draw(rt, "period")
		now := rapid.Int64Range(0, 1<<41).Draw(rt, "now")

		got := sub.IntervalAt(now)

		if now < sub.ActiveAt {
			if got != 0 {
				rt.Fatalf("interval %d before activation", got)
			}
			return
		}
		if got == 0 {
			rt.Fatal("interval 0 after activation")
		}
		if sub.Period == 0 && got != 1 {
			rt.Fatalf("one-shot interval %d", got)
		}
		if sub.Period > 0 {
			// The interval is monotone in now.
			later := sub.IntervalAt(now + int64(sub.Period))
			if later != got+1 {
				rt.Fatalf("interval did not advance by one period: %d then %d", got, later)
			}
		}
	})
}

func TestIsPaid(t *testing.T) {
	sub := validSubscription()
	require.False(t, sub.IsPaid())

	sub.PaymentAmount = math.ZeroInt()
	require.False(t, sub.IsPaid())

	sub.PaymentAmount = math.NewInt(1)
	require.True(t, sub.IsPaid())
}

func TestDeliveryTallyTotal(t *testing.T) {
	require.Equal(t, uint32(0), types.DeliveryTally{}.Total())
	require.Equal(t, uint32(5), types.DeliveryTally{Accepted: 3, Pending: 2}.Total())
}

func TestEscrowAddresses(t *testing.T) {
	sub := validSubscription()
	sub.Wallet = testWallet

	wallet, owner, err := sub.EscrowAddresses()
	require.NoError(t, err)
	require.Equal(t, testWallet, wallet.String())
	require.Equal(t, testOwner, owner.String())

	sub.Wallet = ""
	_, _, err = sub.EscrowAddresses()
	require.Error(t, err)
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())

	p := types.DefaultParams()
	p.FeeRate = math.LegacyNewDec(2)
	require.Error(t, p.Validate())

	p = types.DefaultParams()
	p.FeeRate = math.LegacyNewDec(-1)
	require.Error(t, p.Validate())

	p = types.DefaultParams()
	p.FeeRecipient = "not-bech32"
	require.Error(t, p.Validate())

	p = types.DefaultParams()
	p.FeeRecipient = testOwner
	require.NoError(t, p.Validate())

	p = types.DefaultParams()
	p.TypedDataName = ""
	require.Error(t, p.Validate())

	p = types.DefaultParams()
	p.MaxBatchReadSize = 0
	require.Error(t, p.Validate())
}
