package reservation

import (
	"time"

	"github.com/giovaniif/device-rental/domain/item"
)

type Repository interface {
	Reserve(reservationItem *item.Item, customerId string, start, end time.Time, quantity int32) (*Reservation, error)
	Approve(reservationId string) (*Reservation, error)
	Reject(reservationId string) (*Reservation, error)
	Cancel(reservationId string) (*Reservation, error)
	Complete(reservationId string, today time.Time) (*Reservation, error)
	GetReservation(reservationId string) (*Reservation, error)
	GetByCustomer(customerId string) []Reservation
	GetByItem(itemId string) []Reservation
}

// StockGuard serializes catalog stock changes with approvals.
type StockGuard interface {
	ChangeStock(it item.Item, apply func(item.Item) error) error
}
