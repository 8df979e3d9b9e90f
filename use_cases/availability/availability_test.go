package availability

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/giovaniif/device-rental/domain"
	"github.com/giovaniif/device-rental/domain/item"
	"github.com/giovaniif/device-rental/infra/repositories"
)

type mockMetrics struct {
	checks []bool
}

func (m *mockMetrics) RecordTransition(string, error) {}
func (m *mockMetrics) RecordAvailabilityCheck(available bool) {
	m.checks = append(m.checks, available)
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

func TestCheck(t *testing.T) {
	items := repositories.NewItemRepository()
	require.NoError(t, items.Add(item.Item{Id: "D001", Name: "Speaker", PricePerDay: decimal.NewFromInt(100), Stock: 10}))
	store := repositories.NewReservationRepository(items)
	it, err := items.GetItem("D001")
	require.NoError(t, err)
	a, err := store.Reserve(it, "cust1", day(t, "2024-05-01"), day(t, "2024-05-10"), 6)
	require.NoError(t, err)
	_, err = store.Approve(a.Id)
	require.NoError(t, err)
	_, err = store.Reserve(it, "cust2", day(t, "2024-05-05"), day(t, "2024-05-07"), 4)
	require.NoError(t, err)

	metrics := &mockMetrics{}
	uc := NewAvailability(items, store, metrics)

	out, err := uc.Check(Input{ItemId: "D001", StartDate: day(t, "2024-05-05"), EndDate: day(t, "2024-05-07"), Quantity: 5})
	require.NoError(t, err)
	require.False(t, out.Available)
	require.Equal(t, int32(4), out.Remaining, "pending requests do not hold stock")
	require.Equal(t, int32(10), out.Stock)
	require.Equal(t, "1500", out.Cost)

	out, err = uc.Check(Input{ItemId: "D001", StartDate: day(t, "2024-05-05"), EndDate: day(t, "2024-05-07"), Quantity: 4})
	require.NoError(t, err)
	require.True(t, out.Available)
	require.Equal(t, []bool{false, true}, metrics.checks)
	require.Len(t, store.GetByItem("D001"), 2, "checking does not reserve")
}

func TestCheck_Errors(t *testing.T) {
	items := repositories.NewItemRepository()
	require.NoError(t, items.Add(item.Item{Id: "D001", Name: "Speaker", PricePerDay: decimal.NewFromInt(100), Stock: 10}))
	uc := NewAvailability(items, repositories.NewReservationRepository(items), &mockMetrics{})

	_, err := uc.Check(Input{ItemId: "D404", StartDate: day(t, "2024-05-01"), EndDate: day(t, "2024-05-02"), Quantity: 1})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Check(Input{ItemId: "D001", StartDate: day(t, "2024-05-02"), EndDate: day(t, "2024-05-01"), Quantity: 1})
	require.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = uc.Check(Input{ItemId: "D001", StartDate: day(t, "2024-05-01"), EndDate: day(t, "2024-05-02"), Quantity: 0})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}
