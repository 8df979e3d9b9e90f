package reservation

import (
	"time"

	"github.com/giovaniif/device-rental/domain/item"
)

// Overlaps reports whether the inclusive ranges [s1, e1] and [s2, e2] share a day.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}

// CheckAvailability reports whether quantity units of it fit in [start, end]
// next to the existing reservations. Each APPROVED reservation of the item that
// overlaps the range is checked on its own: the request fails when it exceeds
// the stock left beside that single booking. Bookings that overlap the request
// but not each other are never added together.
func CheckAvailability(it item.Item, start, end time.Time, quantity int32, existing []Reservation) (bool, error) {
	start, end = Day(start), Day(end)
	if err := validateRequest(start, end, quantity); err != nil {
		return false, err
	}
	if quantity > it.Stock {
		return false, nil
	}
	for _, r := range overlapping(it.Id, start, end, existing) {
		if int64(quantity) > int64(it.Stock)-int64(r.Quantity) {
			return false, nil
		}
	}
	return true, nil
}

// Remaining returns the largest quantity CheckAvailability would grant over
// [start, end]: stock minus the biggest overlapping APPROVED booking.
func Remaining(it item.Item, start, end time.Time, existing []Reservation) (int32, error) {
	start, end = Day(start), Day(end)
	if err := validateRequest(start, end, 1); err != nil {
		return 0, err
	}
	var largest int32
	for _, r := range overlapping(it.Id, start, end, existing) {
		if r.Quantity > largest {
			largest = r.Quantity
		}
	}
	if free := it.Stock - largest; free > 0 {
		return free, nil
	}
	return 0, nil
}

// PeakApproved is the highest number of units APPROVED reservations of itemId
// hold on any single day.
func PeakApproved(itemId string, existing []Reservation) int32 {
	var peak int64
	for _, r := range existing {
		if r.status != StatusApproved || r.ItemId != itemId {
			continue
		}
		// the busiest day always starts some booking
		var held int64
		for _, o := range overlapping(itemId, r.StartDate, r.StartDate, existing) {
			held += int64(o.Quantity)
		}
		if held > peak {
			peak = held
		}
	}
	return int32(peak)
}

func overlapping(itemId string, start, end time.Time, existing []Reservation) []Reservation {
	var out []Reservation
	for _, r := range existing {
		if r.status != StatusApproved || r.ItemId != itemId {
			continue
		}
		if Overlaps(start, end, r.StartDate, r.EndDate) {
			out = append(out, r)
		}
	}
	return out
}
