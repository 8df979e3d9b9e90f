package protocols

import (
	"context"
	"time"

	"github.com/giovaniif/device-rental/domain/reservation"
)

const (
	EventReservationCreated   = "reservation.created"
	EventReservationApproved  = "reservation.approved"
	EventReservationRejected  = "reservation.rejected"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationCompleted = "reservation.completed"
)

type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationId string    `json:"reservationId"`
	ItemId        string    `json:"itemId"`
	CustomerId    string    `json:"customerId"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewReservationEvent(eventType string, r reservation.Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationId: r.Id,
		ItemId:        r.ItemId,
		CustomerId:    r.CustomerId,
		Status:        string(r.Status()),
		OccurredAt:    at,
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}
