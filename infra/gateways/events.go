package gateways

import (
	"context"
	"log/slog"

	protocols "github.com/giovaniif/device-rental/protocols"
)

// EventPublisherLog writes reservation events to the structured log. It is
// used when no broker is configured.
type EventPublisherLog struct {
	logger *slog.Logger
}

func NewEventPublisherLog(logger *slog.Logger) *EventPublisherLog {
	return &EventPublisherLog{logger: logger}
}

func (p *EventPublisherLog) Publish(ctx context.Context, event protocols.ReservationEvent) error {
	p.logger.InfoContext(ctx, "reservation event",
		"type", event.Type,
		"reservation_id", event.ReservationId,
		"item_id", event.ItemId,
		"customer_id", event.CustomerId,
		"status", event.Status,
	)
	return nil
}
