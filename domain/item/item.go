package item

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/giovaniif/device-rental/domain"
)

type Item struct {
	Id          string
	Name        string
	Description string
	PricePerDay decimal.Decimal
	Stock       int32
}

func New(id, name, description string, pricePerDay decimal.Decimal, stock int32) (*Item, error) {
	it := &Item{
		Id:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: description,
		PricePerDay: pricePerDay,
		Stock:       stock,
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return it, nil
}

// Validate checks the record-level invariants: an id, a name, a non-negative
// daily price and at least one unit of stock.
func (i Item) Validate() error {
	if i.Id == "" {
		return domain.NewInvalidItemError("id is required")
	}
	if i.Name == "" {
		return domain.NewInvalidItemError("name is required")
	}
	if i.PricePerDay.IsNegative() {
		return domain.NewInvalidItemError(fmt.Sprintf("price per day %s is negative", i.PricePerDay))
	}
	if i.Stock < 1 {
		return domain.NewInvalidItemError(fmt.Sprintf("stock %d must be positive", i.Stock))
	}
	return nil
}

func (i Item) MatchesKeyword(keyword string) bool {
	return strings.Contains(strings.ToLower(i.Name), strings.ToLower(keyword))
}
