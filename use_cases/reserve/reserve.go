package reserve

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/giovaniif/device-rental/domain/item"
	"github.com/giovaniif/device-rental/domain/reservation"
	"github.com/giovaniif/device-rental/infra/tracing"
	"github.com/giovaniif/device-rental/protocols"
)

type Reserve struct {
	itemRepository        item.Finder
	reservationRepository reservation.Repository
	idempotencyGateway    protocols.IdempotencyGateway
	eventPublisher        protocols.EventPublisher
	clock                 protocols.Clock
}

func NewReserve(itemRepository item.Finder, reservationRepository reservation.Repository, idempotencyGateway protocols.IdempotencyGateway, eventPublisher protocols.EventPublisher, clock protocols.Clock) *Reserve {
	return &Reserve{
		itemRepository:        itemRepository,
		reservationRepository: reservationRepository,
		idempotencyGateway:    idempotencyGateway,
		eventPublisher:        eventPublisher,
		clock:                 clock,
	}
}

// Reserve records a PENDING request. With an idempotency key, a repeated call
// returns the reservation created by the first one.
func (r *Reserve) Reserve(ctx context.Context, input Input) (output Output, err error) {
	ctx, span := tracing.Start(ctx, "reserve",
		attribute.String("item.id", input.ItemId),
		attribute.Int("reservation.quantity", int(input.Quantity)),
	)
	defer func() { tracing.End(span, err) }()

	key := ""
	if input.IdempotencyKey != "" {
		key = input.CustomerId + ":" + input.IdempotencyKey
		result, keyErr := r.idempotencyGateway.ReserveIdempotencyKey(ctx, key)
		if keyErr != nil {
			return Output{}, keyErr
		}
		if result != nil {
			return r.replay(result.ReservationId)
		}
	}

	created, err := r.create(input)
	if key != "" {
		if err != nil {
			if markErr := r.idempotencyGateway.MarkFailure(ctx, key); markErr != nil {
				slog.WarnContext(ctx, "failed to release idempotency key", "err", markErr)
			}
		} else if markErr := r.idempotencyGateway.MarkSuccess(ctx, key, protocols.IdempotencyKeyResult{ReservationId: created.Id}); markErr != nil {
			slog.WarnContext(ctx, "failed to store idempotency result", "err", markErr)
		}
	}
	if err != nil {
		return Output{}, err
	}

	event := protocols.NewReservationEvent(protocols.EventReservationCreated, *created, r.clock.Now())
	if pubErr := r.eventPublisher.Publish(ctx, event); pubErr != nil {
		slog.WarnContext(ctx, "failed to publish reservation event", "reservation_id", created.Id, "err", pubErr)
	}
	return toOutput(*created, false), nil
}

func (r *Reserve) create(input Input) (*reservation.Reservation, error) {
	reservationItem, err := r.itemRepository.GetItem(input.ItemId)
	if err != nil {
		return nil, err
	}
	return r.reservationRepository.Reserve(reservationItem, input.CustomerId, input.StartDate, input.EndDate, input.Quantity)
}

func (r *Reserve) replay(reservationId string) (Output, error) {
	existing, err := r.reservationRepository.GetReservation(reservationId)
	if err != nil {
		return Output{}, err
	}
	return toOutput(*existing, true), nil
}

func toOutput(res reservation.Reservation, replayed bool) Output {
	return Output{
		ReservationId: res.Id,
		TotalCost:     res.TotalCost,
		Status:        res.Status(),
		Reservation:   res,
		Replayed:      replayed,
	}
}

type Input struct {
	CustomerId     string
	ItemId         string
	StartDate      time.Time
	EndDate        time.Time
	Quantity       int32
	IdempotencyKey string
}

type Output struct {
	ReservationId string
	TotalCost     decimal.Decimal
	Status        reservation.Status
	Reservation   reservation.Reservation
	Replayed      bool
}
