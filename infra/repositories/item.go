package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/giovaniif/device-rental/domain"
	"github.com/giovaniif/device-rental/domain/item"
)

type ItemRepository struct {
	mutex sync.RWMutex
	items map[string]item.Item
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[string]item.Item)}
}

func (r *ItemRepository) GetItem(itemId string) (*item.Item, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	repositoryItem, ok := r.items[itemId]
	if !ok {
		return nil, domain.NewNotFoundError(fmt.Sprintf("item %s", itemId))
	}
	return &repositoryItem, nil
}

// SearchItems returns items whose name contains keyword, ignoring case,
// ordered by id. An empty keyword matches everything.
func (r *ItemRepository) SearchItems(keyword string) []item.Item {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	results := make([]item.Item, 0)
	for _, it := range r.items {
		if it.MatchesKeyword(keyword) {
			results = append(results, it)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Id < results[j].Id })
	return results
}

func (r *ItemRepository) Add(it item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.items[it.Id]; exists {
		return domain.NewAlreadyExistsError(fmt.Sprintf("item %s", it.Id))
	}
	r.items[it.Id] = it
	return nil
}

func (r *ItemRepository) Update(it item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.items[it.Id]; !exists {
		return domain.NewNotFoundError(fmt.Sprintf("item %s", it.Id))
	}
	r.items[it.Id] = it
	return nil
}

func (r *ItemRepository) Remove(itemId string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.items[itemId]; !exists {
		return domain.NewNotFoundError(fmt.Sprintf("item %s", itemId))
	}
	delete(r.items, itemId)
	return nil
}
