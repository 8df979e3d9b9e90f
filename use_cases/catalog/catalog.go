package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/giovaniif/device-rental/domain/item"
	"github.com/giovaniif/device-rental/domain/reservation"
)

type Catalog struct {
	itemRepository item.Repository
	stockGuard     reservation.StockGuard
}

func NewCatalog(itemRepository item.Repository, stockGuard reservation.StockGuard) *Catalog {
	return &Catalog{itemRepository: itemRepository, stockGuard: stockGuard}
}

func (c *Catalog) Search(keyword string) []item.Item {
	return c.itemRepository.SearchItems(keyword)
}

func (c *Catalog) Get(itemId string) (*item.Item, error) {
	return c.itemRepository.GetItem(itemId)
}

func (c *Catalog) Add(input Input) (*item.Item, error) {
	it, err := item.New(input.Id, input.Name, input.Description, input.PricePerDay, input.Stock)
	if err != nil {
		return nil, err
	}
	if err := c.itemRepository.Add(*it); err != nil {
		return nil, err
	}
	return it, nil
}

// Update replaces the whole record. Existing reservations keep the cost they
// were created with. Stock may not drop below what approved reservations hold.
func (c *Catalog) Update(input Input) (*item.Item, error) {
	it, err := item.New(input.Id, input.Name, input.Description, input.PricePerDay, input.Stock)
	if err != nil {
		return nil, err
	}
	if err := c.stockGuard.ChangeStock(*it, c.itemRepository.Update); err != nil {
		return nil, err
	}
	return it, nil
}

func (c *Catalog) Remove(itemId string) error {
	return c.itemRepository.Remove(itemId)
}

type Input struct {
	Id          string
	Name        string
	Description string
	PricePerDay decimal.Decimal
	Stock       int32
}
