package repositories

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/giovaniif/device-rental/domain"
	"github.com/giovaniif/device-rental/domain/item"
	"github.com/giovaniif/device-rental/domain/reservation"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

func newStore(t *testing.T) (*ItemRepository, *ReservationRepository) {
	t.Helper()
	items := seededItems(t)
	return items, NewReservationRepository(items)
}

func reserve(t *testing.T, items *ItemRepository, store *ReservationRepository, customer, itemId, start, end string, qty int32) *reservation.Reservation {
	t.Helper()
	it, err := items.GetItem(itemId)
	require.NoError(t, err)
	res, err := store.Reserve(it, customer, day(t, start), day(t, end), qty)
	require.NoError(t, err)
	return res
}

func TestReservationRepository_Reserve(t *testing.T) {
	items, store := newStore(t)

	res := reserve(t, items, store, "cust1", "D001", "2024-03-01", "2024-03-03", 2)
	require.NotEmpty(t, res.Id)
	require.Equal(t, reservation.StatusPending, res.Status())
	require.True(t, res.TotalCost.Equal(decimal.NewFromInt(600)))

	stored, err := store.GetReservation(res.Id)
	require.NoError(t, err)
	require.Equal(t, res.Id, stored.Id)
}

func TestReservationRepository_ReserveLeavesStoreUnchangedOnError(t *testing.T) {
	items, store := newStore(t)
	it, err := items.GetItem("D001")
	require.NoError(t, err)

	_, err = store.Reserve(it, "cust1", day(t, "2024-03-05"), day(t, "2024-03-01"), 1)
	require.ErrorIs(t, err, domain.ErrInvalidRange)
	_, err = store.Reserve(it, "cust1", day(t, "2024-03-01"), day(t, "2024-03-05"), 0)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = store.Reserve(it, "cust1", day(t, "2024-03-01"), day(t, "2024-03-05"), 11)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, err = store.Reserve(nil, "cust1", day(t, "2024-03-01"), day(t, "2024-03-05"), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.Empty(t, store.GetByItem("D001"))
}

func TestReservationRepository_OverlappingPendingRequestsCoexist(t *testing.T) {
	items, store := newStore(t)
	reserve(t, items, store, "cust1", "D001", "2024-05-01", "2024-05-10", 10)
	reserve(t, items, store, "cust2", "D001", "2024-05-01", "2024-05-10", 10)
	require.Len(t, store.GetByItem("D001"), 2)
}

func TestReservationRepository_ApproveScenario(t *testing.T) {
	items, store := newStore(t)
	a := reserve(t, items, store, "cust1", "D001", "2024-05-01", "2024-05-10", 6)
	b := reserve(t, items, store, "cust2", "D001", "2024-05-05", "2024-05-07", 5)
	c := reserve(t, items, store, "cust3", "D001", "2024-05-05", "2024-05-07", 4)

	approved, err := store.Approve(a.Id)
	require.NoError(t, err)
	require.Equal(t, reservation.StatusApproved, approved.Status())

	_, err = store.Approve(b.Id)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
	stillPending, err := store.GetReservation(b.Id)
	require.NoError(t, err)
	require.Equal(t, reservation.StatusPending, stillPending.Status())

	_, err = store.Approve(c.Id)
	require.NoError(t, err)
}

func TestReservationRepository_SecondApprovalOfSameRangeFails(t *testing.T) {
	items, store := newStore(t)
	first := reserve(t, items, store, "cust1", "D001", "2024-05-01", "2024-05-03", 6)
	second := reserve(t, items, store, "cust2", "D001", "2024-05-01", "2024-05-03", 6)

	_, err := store.Approve(first.Id)
	require.NoError(t, err)
	_, err = store.Approve(second.Id)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestReservationRepository_CancelFreesCapacity(t *testing.T) {
	items, store := newStore(t)
	first := reserve(t, items, store, "cust1", "D001", "2024-05-01", "2024-05-03", 10)
	second := reserve(t, items, store, "cust2", "D001", "2024-05-02", "2024-05-02", 1)

	_, err := store.Approve(first.Id)
	require.NoError(t, err)
	_, err = store.Approve(second.Id)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)

	cancelled, err := store.Cancel(first.Id)
	require.NoError(t, err)
	require.Equal(t, reservation.StatusCancelled, cancelled.Status())

	_, err = store.Approve(second.Id)
	require.NoError(t, err)
}

func TestReservationRepository_StaggeredBookingsCheckedOneByOne(t *testing.T) {
	items, store := newStore(t)
	a := reserve(t, items, store, "cust1", "D001", "2024-05-01", "2024-05-03", 6)
	b := reserve(t, items, store, "cust2", "D001", "2024-05-05", "2024-05-07", 6)
	c := reserve(t, items, store, "cust3", "D001", "2024-05-01", "2024-05-10", 4)

	for _, id := range []string{a.Id, b.Id, c.Id} {
		_, err := store.Approve(id)
		require.NoError(t, err)
	}
}

func TestReservationRepository_ChangeStock(t *testing.T) {
	items, store := newStore(t)
	res := reserve(t, items, store, "cust1", "D001", "2024-05-01", "2024-05-03", 8)
	_, err := store.Approve(res.Id)
	require.NoError(t, err)
	lowered := item.Item{Id: "D001", Name: "Speaker", PricePerDay: decimal.NewFromInt(100), Stock: 2}

	err = store.ChangeStock(lowered, items.Update)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
	current, err := items.GetItem("D001")
	require.NoError(t, err)
	require.Equal(t, int32(10), current.Stock)

	lowered.Stock = 8
	require.NoError(t, store.ChangeStock(lowered, items.Update))
	current, err = items.GetItem("D001")
	require.NoError(t, err)
	require.Equal(t, int32(8), current.Stock)

	_, err = store.Cancel(res.Id)
	require.NoError(t, err)
	lowered.Stock = 1
	require.NoError(t, store.ChangeStock(lowered, items.Update))
}

func TestReservationRepository_ApproveMissingItem(t *testing.T) {
	items, store := newStore(t)
	res := reserve(t, items, store, "cust1", "D002", "2024-05-01", "2024-05-03", 1)
	require.NoError(t, items.Remove("D002"))

	_, err := store.Approve(res.Id)
	require.ErrorIs(t, err, domain.ErrNotFound)
	stored, err := store.GetReservation(res.Id)
	require.NoError(t, err)
	require.Equal(t, reservation.StatusPending, stored.Status())
}

func TestReservationRepository_UnknownReservation(t *testing.T) {
	_, store := newStore(t)
	for name, op := range map[string]func(string) (*reservation.Reservation, error){
		"approve": store.Approve,
		"reject":  store.Reject,
		"cancel":  store.Cancel,
		"get":     store.GetReservation,
	} {
		_, err := op("nope")
		require.ErrorIs(t, err, domain.ErrNotFound, name)
	}
	_, err := store.Complete("nope", time.Now())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReservationRepository_RejectAndComplete(t *testing.T) {
	items, store := newStore(t)
	rejected := reserve(t, items, store, "cust1", "D001", "2024-05-01", "2024-05-03", 1)
	done := reserve(t, items, store, "cust1", "D001", "2024-05-01", "2024-05-03", 1)

	res, err := store.Reject(rejected.Id)
	require.NoError(t, err)
	require.Equal(t, reservation.StatusRejected, res.Status())
	_, err = store.Approve(rejected.Id)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = store.Complete(done.Id, day(t, "2024-06-01"))
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = store.Approve(done.Id)
	require.NoError(t, err)
	_, err = store.Complete(done.Id, day(t, "2024-05-02"))
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	res, err = store.Complete(done.Id, day(t, "2024-05-03"))
	require.NoError(t, err)
	require.Equal(t, reservation.StatusCompleted, res.Status())
}

func TestReservationRepository_Lookups(t *testing.T) {
	items, store := newStore(t)
	late := reserve(t, items, store, "cust1", "D001", "2024-06-01", "2024-06-03", 1)
	early := reserve(t, items, store, "cust1", "D002", "2024-05-01", "2024-05-03", 1)
	reserve(t, items, store, "cust2", "D001", "2024-05-01", "2024-05-03", 1)

	mine := store.GetByCustomer("cust1")
	require.Len(t, mine, 2)
	require.Equal(t, early.Id, mine[0].Id)
	require.Equal(t, late.Id, mine[1].Id)

	require.Len(t, store.GetByItem("D001"), 2)
	require.Empty(t, store.GetByCustomer("ghost"))
	require.Empty(t, store.GetByItem("D003"))
}

func TestReservationRepository_ConcurrentApprovalsNeverOversubscribe(t *testing.T) {
	items, store := newStore(t)
	ids := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		res := reserve(t, items, store, fmt.Sprintf("cust%d", i), "D001", "2024-05-01", "2024-05-10", 6)
		ids = append(ids, res.Id)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	approved := 0
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := store.Approve(id)
			if err == nil {
				mu.Lock()
				approved++
				mu.Unlock()
				return
			}
			if !errors.Is(err, domain.ErrCapacityExceeded) {
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	require.Equal(t, 1, approved)
	var held int32
	for _, res := range store.GetByItem("D001") {
		if res.Status() == reservation.StatusApproved {
			held += res.Quantity
		}
	}
	require.LessOrEqual(t, held, int32(10))
}
