package reservation

import (
	"fmt"
	"time"

	"github.com/giovaniif/device-rental/domain"
	"github.com/giovaniif/device-rental/domain/item"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled, StatusCompleted},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Approve commits a PENDING reservation after re-checking capacity against
// others. The reservation itself is skipped if it appears in others.
func (r *Reservation) Approve(it item.Item, others []Reservation) error {
	if err := r.guard(StatusApproved); err != nil {
		return err
	}
	if it.Id != r.ItemId {
		return domain.NewNotFoundError(fmt.Sprintf("item %s for reservation %s", r.ItemId, r.Id))
	}

	competing := make([]Reservation, 0, len(others))
	for _, other := range others {
		if other.Id != r.Id {
			competing = append(competing, other)
		}
	}
	ok, err := CheckAvailability(it, r.StartDate, r.EndDate, r.Quantity, competing)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewCapacityExceededError(fmt.Sprintf("%d units of %s are not available from %s to %s",
			r.Quantity, it.Id, r.StartDate.Format(time.DateOnly), r.EndDate.Format(time.DateOnly)))
	}

	r.status = StatusApproved
	return nil
}

func (r *Reservation) Reject() error {
	return r.moveTo(StatusRejected)
}

func (r *Reservation) Cancel() error {
	return r.moveTo(StatusCancelled)
}

// Complete closes an APPROVED reservation whose last day is today or earlier.
func (r *Reservation) Complete(today time.Time) error {
	if err := r.guard(StatusCompleted); err != nil {
		return err
	}
	if r.EndDate.After(Day(today)) {
		return domain.NewInvalidTransitionError(fmt.Sprintf("reservation %s ends on %s", r.Id, r.EndDate.Format(time.DateOnly)))
	}
	r.status = StatusCompleted
	return nil
}

func (r *Reservation) moveTo(to Status) error {
	if err := r.guard(to); err != nil {
		return err
	}
	r.status = to
	return nil
}

func (r *Reservation) guard(to Status) error {
	if !CanTransition(r.status, to) {
		return domain.NewInvalidTransitionError(fmt.Sprintf("reservation %s cannot go from %s to %s", r.Id, r.status, to))
	}
	return nil
}
