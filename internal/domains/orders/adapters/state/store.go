package state

import (
	"context"

	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
	"github.com/xtremepizzaria/storefront/internal/platform/statestore"
)

// RecordName is the unversioned key suffix of the order record.
const RecordName = "orders"

var _ ports.Store = (*Store)(nil)

// Store keeps the order list as a JSON array, most recent first.
type Store struct {
	record *statestore.Record[[]*domain.Order]
}

func NewStore(store statestore.Store, namespace string, opts ...statestore.RecordOption) *Store {
	empty := func() []*domain.Order { return []*domain.Order{} }
	return &Store{record: statestore.NewRecord(store, statestore.Key(namespace, RecordName), empty, opts...)}
}

// Load drops entries too damaged to track: no id or an unknown status.
func (s *Store) Load(ctx context.Context) []*domain.Order {
	orders := s.record.Load(ctx)
	valid := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		if order == nil || order.ID == "" || !order.Status.Valid() {
			continue
		}
		valid = append(valid, order)
	}
	return valid
}

func (s *Store) Save(ctx context.Context, orders []*domain.Order) error {
	if orders == nil {
		orders = []*domain.Order{}
	}
	return s.record.Save(ctx, orders)
}
