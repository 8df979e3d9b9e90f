package complete

import (
	"context"
	"log/slog"

	"github.com/giovaniif/device-rental/domain/reservation"
	"github.com/giovaniif/device-rental/protocols"
)

type Complete struct {
	reservationRepository reservation.Repository
	eventPublisher        protocols.EventPublisher
	metrics               protocols.MetricsRecorder
	clock                 protocols.Clock
}

func NewComplete(reservationRepository reservation.Repository, eventPublisher protocols.EventPublisher, metrics protocols.MetricsRecorder, clock protocols.Clock) *Complete {
	return &Complete{
		reservationRepository: reservationRepository,
		eventPublisher:        eventPublisher,
		metrics:               metrics,
		clock:                 clock,
	}
}

func (c *Complete) Complete(ctx context.Context, input Input) (Output, error) {
	now := c.clock.Now()
	completed, err := c.reservationRepository.Complete(input.ReservationId, now)
	c.metrics.RecordTransition("complete", err)
	if err != nil {
		return Output{}, err
	}

	event := protocols.NewReservationEvent(protocols.EventReservationCompleted, *completed, now)
	if pubErr := c.eventPublisher.Publish(ctx, event); pubErr != nil {
		slog.WarnContext(ctx, "failed to publish reservation event", "reservation_id", completed.Id, "err", pubErr)
	}
	return Output{Reservation: *completed}, nil
}

type Input struct {
	ReservationId string
}

type Output struct {
	Reservation reservation.Reservation
}
