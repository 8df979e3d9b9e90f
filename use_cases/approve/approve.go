package approve

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/giovaniif/device-rental/domain/reservation"
	"github.com/giovaniif/device-rental/infra/tracing"
	"github.com/giovaniif/device-rental/protocols"
)

type Approve struct {
	reservationRepository reservation.Repository
	eventPublisher        protocols.EventPublisher
	metrics               protocols.MetricsRecorder
	clock                 protocols.Clock
}

func NewApprove(reservationRepository reservation.Repository, eventPublisher protocols.EventPublisher, metrics protocols.MetricsRecorder, clock protocols.Clock) *Approve {
	return &Approve{
		reservationRepository: reservationRepository,
		eventPublisher:        eventPublisher,
		metrics:               metrics,
		clock:                 clock,
	}
}

func (a *Approve) Approve(ctx context.Context, input Input) (output Output, err error) {
	ctx, span := tracing.Start(ctx, "approve", attribute.String("reservation.id", input.ReservationId))
	defer func() { tracing.End(span, err) }()

	approved, err := a.reservationRepository.Approve(input.ReservationId)
	a.metrics.RecordTransition("approve", err)
	if err != nil {
		return Output{}, err
	}

	event := protocols.NewReservationEvent(protocols.EventReservationApproved, *approved, a.clock.Now())
	if pubErr := a.eventPublisher.Publish(ctx, event); pubErr != nil {
		slog.WarnContext(ctx, "failed to publish reservation event", "reservation_id", approved.Id, "err", pubErr)
	}
	return Output{Reservation: *approved}, nil
}

type Input struct {
	ReservationId string
}

type Output struct {
	Reservation reservation.Reservation
}
