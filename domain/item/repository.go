package item

type Finder interface {
	GetItem(itemId string) (*Item, error)
}

type Repository interface {
	Finder
	SearchItems(keyword string) []Item
	Add(it Item) error
	Update(it Item) error
	Remove(itemId string) error
}
