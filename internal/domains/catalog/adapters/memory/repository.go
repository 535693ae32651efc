package memory

import (
	"context"
	"sync"

	"github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/catalog/ports"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

var _ ports.Repository = (*Repository)(nil)

// Repository serves the menu from memory in display order.
type Repository struct {
	mu    sync.RWMutex
	order []string
	items map[string]domain.Item
}

// NewRepository loads the given items; with none it serves the static menu.
func NewRepository(items ...domain.Item) *Repository {
	if len(items) == 0 {
		items = domain.Menu()
	}
	r := &Repository{items: make(map[string]domain.Item, len(items))}
	for _, item := range items {
		if _, dup := r.items[item.ID]; !dup {
			r.order = append(r.order, item.ID)
		}
		r.items[item.ID] = item.Clone()
	}
	return r
}

func (r *Repository) List(_ context.Context, filter domain.Filter) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]domain.Item, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if filter.Matches(item) {
			list = append(list, item.Clone())
		}
	}
	return list, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return domain.Item{}, ports.ErrNotFound
	}
	return item.Clone(), nil
}

// SetPrice replaces the base price of an item. Carts see the change on their next read;
// placed orders keep the price they were frozen with.
func (r *Repository) SetPrice(id string, price money.Money) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return ports.ErrNotFound
	}
	item.BasePrice = price
	r.items[id] = item
	return nil
}
