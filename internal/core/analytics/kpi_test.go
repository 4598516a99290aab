package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKPIs(t *testing.T) {
	current := PeriodTotals{
		RevenueCents:     150000,
		PaidTransactions: 6,
		BookingCount:     12,
		NewClients:       3,
		Completed:        8,
		NoShow:           1,
		Cancelled:        1,
	}
	prior := PeriodTotals{
		RevenueCents:     100000,
		PaidTransactions: 5,
		BookingCount:     10,
		NewClients:       4,
		Completed:        6,
		NoShow:           2,
		Cancelled:        2,
	}

	k := BuildKPIs(current, prior, 2000)

	assert.Equal(t, int64(1500), k.RevenueMtd)
	require.NotNil(t, k.RevenueMtdDelta)
	assert.Equal(t, 50, *k.RevenueMtdDelta)

	assert.Equal(t, int64(12), k.BookingsMtd)
	require.NotNil(t, k.BookingsMtdDelta)
	assert.Equal(t, 20, *k.BookingsMtdDelta)

	assert.Equal(t, int64(3), k.NewClientsMtd)
	require.NotNil(t, k.NewClientsMtdDelta)
	assert.Equal(t, -25, *k.NewClientsMtdDelta)

	assert.Equal(t, 10, k.NoShowRate)
	require.NotNil(t, k.NoShowRateDelta)
	assert.Equal(t, -50, *k.NoShowRateDelta)

	assert.Equal(t, 80, k.FillRate)
	require.NotNil(t, k.FillRateDelta)
	assert.Equal(t, 33, *k.FillRateDelta)

	assert.Equal(t, int64(250), k.AvgTicket)
	require.NotNil(t, k.AvgTicketDelta)
	assert.Equal(t, 25, *k.AvgTicketDelta)

	assert.Equal(t, int64(2000), k.RevenueGoal)
	assert.Equal(t, 75, k.GoalProgress)
}

func TestBuildKPIs_EmptyPriorMonthHasNullDeltas(t *testing.T) {
	current := PeriodTotals{RevenueCents: 100000, PaidTransactions: 1, BookingCount: 1, Completed: 1}

	k := BuildKPIs(current, PeriodTotals{}, 0)

	assert.Equal(t, int64(1000), k.RevenueMtd)
	assert.Nil(t, k.RevenueMtdDelta)
	assert.Nil(t, k.BookingsMtdDelta)
	assert.Nil(t, k.NewClientsMtdDelta)
	assert.Nil(t, k.NoShowRateDelta)
	assert.Nil(t, k.FillRateDelta)
	assert.Nil(t, k.AvgTicketDelta)
	assert.Equal(t, 0, k.GoalProgress)
}

func TestBuildKPIs_NoFinalizedBookings(t *testing.T) {
	k := BuildKPIs(PeriodTotals{BookingCount: 4}, PeriodTotals{}, 0)

	assert.Equal(t, 0, k.NoShowRate)
	assert.Equal(t, 0, k.FillRate)
	assert.Equal(t, int64(0), k.AvgTicket)
}

func TestToStatCards(t *testing.T) {
	k := BuildKPIs(
		PeriodTotals{RevenueCents: 50000, PaidTransactions: 2, BookingCount: 1500},
		PeriodTotals{RevenueCents: 100000, PaidTransactions: 2, BookingCount: 1500},
		0,
	)

	cards := ToStatCards(k, "$")
	require.Len(t, cards, 6)

	assert.Equal(t, "Revenue", cards[0].Title)
	assert.Equal(t, "$ 500", cards[0].Value)
	assert.Equal(t, "down", cards[0].Trend)

	assert.Equal(t, "1.5K", cards[1].Value)
	assert.Equal(t, "neutral", cards[1].Trend)

	assert.Nil(t, cards[2].Change)
	assert.Equal(t, "neutral", cards[2].Trend)
	assert.Equal(t, "0%", cards[3].Value)
}
