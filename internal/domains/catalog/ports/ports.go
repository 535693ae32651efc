package ports

import (
	"context"
	"errors"

	"github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

var ErrNotFound = errors.New("catalog item not found")

// Repository exposes the read-only menu.
type Repository interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Item, error)
	GetByID(ctx context.Context, id string) (domain.Item, error)
}

// Quote is a priced configuration of a single menu item.
type Quote struct {
	Item      domain.Item
	Options   domain.Options
	Quantity  int
	UnitPrice money.Money
	Total     money.Money
}

// Service exposes catalog use cases to adapters.
type Service interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Item, error)
	Get(ctx context.Context, id string) (domain.Item, error)
	Quote(ctx context.Context, id string, options domain.Options, quantity int) (*Quote, error)
}
