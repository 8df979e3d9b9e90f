package reservation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/giovaniif/device-rental/domain"
	"github.com/giovaniif/device-rental/domain/item"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

type Reservation struct {
	Id         string
	CustomerId string
	ItemId     string
	StartDate  time.Time
	EndDate    time.Time
	Quantity   int32
	// TotalCost is fixed at creation from the item's price at that moment.
	TotalCost decimal.Decimal
	CreatedAt time.Time

	status Status
}

// New builds a PENDING reservation. It checks the request against the item's
// total stock only; overlap with other bookings is decided at approval.
func New(id, customerId string, it item.Item, start, end time.Time, quantity int32, now time.Time) (*Reservation, error) {
	start, end = Day(start), Day(end)
	if err := validateRequest(start, end, quantity); err != nil {
		return nil, err
	}
	if quantity > it.Stock {
		return nil, domain.NewInsufficientStockError(fmt.Sprintf("requested %d units of %s, stock is %d", quantity, it.Id, it.Stock))
	}

	return &Reservation{
		Id:         id,
		CustomerId: customerId,
		ItemId:     it.Id,
		StartDate:  start,
		EndDate:    end,
		Quantity:   quantity,
		TotalCost:  Cost(it.PricePerDay, start, end, quantity),
		CreatedAt:  now,
		status:     StatusPending,
	}, nil
}

func (r *Reservation) Status() Status {
	return r.status
}

func (r *Reservation) Days() int64 {
	return Days(r.StartDate, r.EndDate)
}

// Cost is price per day times inclusive day count times quantity.
func Cost(pricePerDay decimal.Decimal, start, end time.Time, quantity int32) decimal.Decimal {
	return pricePerDay.
		Mul(decimal.NewFromInt(Days(start, end))).
		Mul(decimal.NewFromInt(int64(quantity)))
}

// Day truncates t to its calendar date, expressed as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// Days counts calendar days in [start, end], both ends included.
func Days(start, end time.Time) int64 {
	return (Day(end).Unix()-Day(start).Unix())/secondsPerDay + 1
}

func validateRequest(start, end time.Time, quantity int32) error {
	if start.After(end) {
		return domain.NewInvalidRangeError(fmt.Sprintf("start %s is after end %s", start.Format(time.DateOnly), end.Format(time.DateOnly)))
	}
	if quantity < 1 {
		return domain.NewInvalidQuantityError(fmt.Sprintf("quantity %d must be at least 1", quantity))
	}
	return nil
}
