package availability

import (
	"time"

	"github.com/giovaniif/device-rental/domain/item"
	"github.com/giovaniif/device-rental/domain/reservation"
	"github.com/giovaniif/device-rental/protocols"
)

type Availability struct {
	itemRepository        item.Finder
	reservationRepository reservation.Repository
	metrics               protocols.MetricsRecorder
}

func NewAvailability(itemRepository item.Finder, reservationRepository reservation.Repository, metrics protocols.MetricsRecorder) *Availability {
	return &Availability{
		itemRepository:        itemRepository,
		reservationRepository: reservationRepository,
		metrics:               metrics,
	}
}

// Check answers whether a request would fit right now. It reserves nothing.
func (a *Availability) Check(input Input) (Output, error) {
	it, err := a.itemRepository.GetItem(input.ItemId)
	if err != nil {
		return Output{}, err
	}
	existing := a.reservationRepository.GetByItem(input.ItemId)

	available, err := reservation.CheckAvailability(*it, input.StartDate, input.EndDate, input.Quantity, existing)
	if err != nil {
		return Output{}, err
	}
	remaining, err := reservation.Remaining(*it, input.StartDate, input.EndDate, existing)
	if err != nil {
		return Output{}, err
	}
	a.metrics.RecordAvailabilityCheck(available)

	return Output{
		Available: available,
		Remaining: remaining,
		Stock:     it.Stock,
		Cost:      reservation.Cost(it.PricePerDay, input.StartDate, input.EndDate, input.Quantity).String(),
	}, nil
}

type Input struct {
	ItemId    string
	StartDate time.Time
	EndDate   time.Time
	Quantity  int32
}

type Output struct {
	Available bool
	Remaining int32
	Stock     int32
	// Cost is what the request would be charged if created now.
	Cost string
}
