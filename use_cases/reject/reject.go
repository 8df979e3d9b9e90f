package reject

import (
	"context"
	"log/slog"

	"github.com/giovaniif/device-rental/domain/reservation"
	"github.com/giovaniif/device-rental/protocols"
)

type Reject struct {
	reservationRepository reservation.Repository
	eventPublisher        protocols.EventPublisher
	metrics               protocols.MetricsRecorder
	clock                 protocols.Clock
}

func NewReject(reservationRepository reservation.Repository, eventPublisher protocols.EventPublisher, metrics protocols.MetricsRecorder, clock protocols.Clock) *Reject {
	return &Reject{
		reservationRepository: reservationRepository,
		eventPublisher:        eventPublisher,
		metrics:               metrics,
		clock:                 clock,
	}
}

func (r *Reject) Reject(ctx context.Context, input Input) (Output, error) {
	rejected, err := r.reservationRepository.Reject(input.ReservationId)
	r.metrics.RecordTransition("reject", err)
	if err != nil {
		return Output{}, err
	}

	event := protocols.NewReservationEvent(protocols.EventReservationRejected, *rejected, r.clock.Now())
	if pubErr := r.eventPublisher.Publish(ctx, event); pubErr != nil {
		slog.WarnContext(ctx, "failed to publish reservation event", "reservation_id", rejected.Id, "err", pubErr)
	}
	return Output{Reservation: *rejected}, nil
}

type Input struct {
	ReservationId string
}

type Output struct {
	Reservation reservation.Reservation
}
