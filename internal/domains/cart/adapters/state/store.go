package state

import (
	"context"

	"github.com/xtremepizzaria/storefront/internal/domains/cart/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/cart/ports"
	"github.com/xtremepizzaria/storefront/internal/platform/statestore"
)

// RecordName is the unversioned key suffix of the cart record.
const RecordName = "cart"

var _ ports.Store = (*Store)(nil)

// Store keeps the cart as a JSON array of line items.
type Store struct {
	record *statestore.Record[[]domain.LineItem]
}

func NewStore(store statestore.Store, namespace string, opts ...statestore.RecordOption) *Store {
	empty := func() []domain.LineItem { return []domain.LineItem{} }
	return &Store{record: statestore.NewRecord(store, statestore.Key(namespace, RecordName), empty, opts...)}
}

func (s *Store) Load(ctx context.Context) domain.Cart {
	items := s.record.Load(ctx)
	valid := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		if item.CatalogItemID == "" || item.Quantity < 1 {
			continue
		}
		valid = append(valid, item)
	}
	if len(valid) == 0 {
		return domain.Cart{}
	}
	return domain.Cart{Items: valid}
}

func (s *Store) Save(ctx context.Context, cart domain.Cart) error {
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return s.record.Save(ctx, items)
}
