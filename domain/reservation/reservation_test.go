package reservation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/giovaniif/device-rental/domain"
	"github.com/giovaniif/device-rental/domain/item"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

func speaker() item.Item {
	return item.Item{Id: "D001", Name: "Speaker", PricePerDay: decimal.NewFromInt(100), Stock: 10}
}

func TestNew_ComputesCost(t *testing.T) {
	r, err := New("r1", "cust1", speaker(), date(t, "2024-03-01"), date(t, "2024-03-03"), 2, time.Now())
	require.NoError(t, err)
	require.Equal(t, StatusPending, r.Status())
	require.Equal(t, int64(3), r.Days())
	require.True(t, r.TotalCost.Equal(decimal.NewFromFloat(600.0)), "got %s", r.TotalCost)
}

func TestNew_SingleDay(t *testing.T) {
	r, err := New("r1", "cust1", speaker(), date(t, "2024-03-01"), date(t, "2024-03-01"), 1, time.Now())
	require.NoError(t, err)
	require.True(t, r.TotalCost.Equal(decimal.NewFromInt(100)))
}

func TestNew_NormalisesToCalendarDays(t *testing.T) {
	start := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 15, 0, 0, time.UTC)
	r, err := New("r1", "cust1", speaker(), start, end, 1, time.Now())
	require.NoError(t, err)
	require.Equal(t, date(t, "2024-03-01"), r.StartDate)
	require.Equal(t, date(t, "2024-03-02"), r.EndDate)
	require.Equal(t, int64(2), r.Days())
}

func TestNew_CostIsPriceSnapshot(t *testing.T) {
	it := speaker()
	r, err := New("r1", "cust1", it, date(t, "2024-03-01"), date(t, "2024-03-03"), 2, time.Now())
	require.NoError(t, err)

	it.PricePerDay = decimal.NewFromInt(999)
	require.True(t, r.TotalCost.Equal(decimal.NewFromInt(600)))
}

func TestNew_InvalidRange(t *testing.T) {
	for _, qty := range []int32{-1, 0, 1, 5, 11} {
		_, err := New("r1", "cust1", speaker(), date(t, "2024-03-05"), date(t, "2024-03-01"), qty, time.Now())
		require.ErrorIs(t, err, domain.ErrInvalidRange, "quantity %d", qty)
	}
}

func TestNew_InvalidQuantity(t *testing.T) {
	_, err := New("r1", "cust1", speaker(), date(t, "2024-03-01"), date(t, "2024-03-02"), 0, time.Now())
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestNew_InsufficientStock(t *testing.T) {
	_, err := New("r1", "cust1", speaker(), date(t, "2024-03-01"), date(t, "2024-03-02"), 11, time.Now())
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestDays_CountsCalendarDaysOverLongRanges(t *testing.T) {
	require.Equal(t, int64(1), Days(date(t, "2024-02-29"), date(t, "2024-02-29")))
	require.Equal(t, int64(366), Days(date(t, "2024-01-01"), date(t, "2024-12-31")))
	require.Equal(t, int64(3652059), Days(date(t, "0001-01-01"), date(t, "9999-12-31")))
}
