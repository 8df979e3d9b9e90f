package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/giovaniif/device-rental/domain"
	"github.com/giovaniif/device-rental/domain/item"
	"github.com/giovaniif/device-rental/domain/reservation"
)

// ReservationRepository owns every reservation. A single lock covers the whole
// collection so an approval sees a consistent view of the item's bookings.
type ReservationRepository struct {
	mutex        sync.RWMutex
	reservations map[string]*reservation.Reservation
	items        item.Finder
	newId        func() string
	now          func() time.Time
}

func NewReservationRepository(items item.Finder) *ReservationRepository {
	return &ReservationRepository{
		reservations: make(map[string]*reservation.Reservation),
		items:        items,
		newId:        uuid.NewString,
		now:          time.Now,
	}
}

func (r *ReservationRepository) Reserve(reservationItem *item.Item, customerId string, start, end time.Time, quantity int32) (*reservation.Reservation, error) {
	if reservationItem == nil {
		return nil, domain.NewNotFoundError("item")
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	created, err := reservation.New(r.newId(), customerId, *reservationItem, start, end, quantity, r.now())
	if err != nil {
		return nil, err
	}
	r.reservations[created.Id] = created
	out := *created
	return &out, nil
}

func (r *ReservationRepository) Approve(reservationId string) (*reservation.Reservation, error) {
	return r.transition(reservationId, func(res *reservation.Reservation) error {
		// the catalog is read at decision time so a price or stock change is seen
		currentItem, err := r.items.GetItem(res.ItemId)
		if err != nil {
			return err
		}
		return res.Approve(*currentItem, r.byItemLocked(res.ItemId))
	})
}

func (r *ReservationRepository) Reject(reservationId string) (*reservation.Reservation, error) {
	return r.transition(reservationId, func(res *reservation.Reservation) error {
		return res.Reject()
	})
}

func (r *ReservationRepository) Cancel(reservationId string) (*reservation.Reservation, error) {
	return r.transition(reservationId, func(res *reservation.Reservation) error {
		return res.Cancel()
	})
}

func (r *ReservationRepository) Complete(reservationId string, today time.Time) (*reservation.Reservation, error) {
	return r.transition(reservationId, func(res *reservation.Reservation) error {
		return res.Complete(today)
	})
}

func (r *ReservationRepository) GetReservation(reservationId string) (*reservation.Reservation, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	stored, ok := r.reservations[reservationId]
	if !ok {
		return nil, domain.NewNotFoundError(fmt.Sprintf("reservation %s", reservationId))
	}
	out := *stored
	return &out, nil
}

func (r *ReservationRepository) GetByCustomer(customerId string) []reservation.Reservation {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.collect(func(res *reservation.Reservation) bool { return res.CustomerId == customerId })
}

func (r *ReservationRepository) GetByItem(itemId string) []reservation.Reservation {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.byItemLocked(itemId)
}

// ChangeStock hands it to apply unless its stock is below what APPROVED
// reservations already hold on some day. The store lock is held across apply so
// no approval can slip in between the check and the catalog write.
func (r *ReservationRepository) ChangeStock(it item.Item, apply func(item.Item) error) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if peak := reservation.PeakApproved(it.Id, r.byItemLocked(it.Id)); it.Stock < peak {
		return domain.NewCapacityExceededError(fmt.Sprintf("item %s has %d units approved on one day, stock %d is too low", it.Id, peak, it.Stock))
	}
	return apply(it)
}

// transition applies change to a copy and stores it only when change succeeds.
func (r *ReservationRepository) transition(reservationId string, change func(*reservation.Reservation) error) (*reservation.Reservation, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	stored, ok := r.reservations[reservationId]
	if !ok {
		return nil, domain.NewNotFoundError(fmt.Sprintf("reservation %s", reservationId))
	}
	updated := *stored
	if err := change(&updated); err != nil {
		return nil, err
	}
	r.reservations[reservationId] = &updated
	out := updated
	return &out, nil
}

func (r *ReservationRepository) byItemLocked(itemId string) []reservation.Reservation {
	return r.collect(func(res *reservation.Reservation) bool { return res.ItemId == itemId })
}

func (r *ReservationRepository) collect(match func(*reservation.Reservation) bool) []reservation.Reservation {
	results := make([]reservation.Reservation, 0)
	for _, res := range r.reservations {
		if match(res) {
			results = append(results, *res)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].StartDate.Equal(results[j].StartDate) {
			return results[i].StartDate.Before(results[j].StartDate)
		}
		return results[i].Id < results[j].Id
	})
	return results
}
