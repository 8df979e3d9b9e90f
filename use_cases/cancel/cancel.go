package cancel

import (
	"context"
	"log/slog"

	"github.com/giovaniif/device-rental/domain"
	"github.com/giovaniif/device-rental/domain/account"
	"github.com/giovaniif/device-rental/domain/reservation"
	"github.com/giovaniif/device-rental/protocols"
)

type Cancel struct {
	reservationRepository reservation.Repository
	eventPublisher        protocols.EventPublisher
	metrics               protocols.MetricsRecorder
	clock                 protocols.Clock
}

func NewCancel(reservationRepository reservation.Repository, eventPublisher protocols.EventPublisher, metrics protocols.MetricsRecorder, clock protocols.Clock) *Cancel {
	return &Cancel{
		reservationRepository: reservationRepository,
		eventPublisher:        eventPublisher,
		metrics:               metrics,
		clock:                 clock,
	}
}

// Cancel lets staff cancel any reservation and customers cancel their own.
func (c *Cancel) Cancel(ctx context.Context, input Input) (Output, error) {
	if !input.Actor.IsStaff() {
		existing, err := c.reservationRepository.GetReservation(input.ReservationId)
		if err != nil {
			return Output{}, err
		}
		if existing.CustomerId != input.Actor.Username {
			return Output{}, domain.NewForbiddenError("reservation " + input.ReservationId + " belongs to another customer")
		}
	}

	cancelled, err := c.reservationRepository.Cancel(input.ReservationId)
	c.metrics.RecordTransition("cancel", err)
	if err != nil {
		return Output{}, err
	}

	event := protocols.NewReservationEvent(protocols.EventReservationCancelled, *cancelled, c.clock.Now())
	if pubErr := c.eventPublisher.Publish(ctx, event); pubErr != nil {
		slog.WarnContext(ctx, "failed to publish reservation event", "reservation_id", cancelled.Id, "err", pubErr)
	}
	return Output{Reservation: *cancelled}, nil
}

type Input struct {
	ReservationId string
	Actor         account.Identity
}

type Output struct {
	Reservation reservation.Reservation
}
