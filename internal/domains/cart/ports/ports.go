package ports

import (
	"context"

	"github.com/xtremepizzaria/storefront/internal/domains/cart/domain"
	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

// Store loads and writes through the durable cart record.
type Store interface {
	Load(ctx context.Context) domain.Cart
	Save(ctx context.Context, cart domain.Cart) error
}

// Catalog resolves live menu entries for pricing.
type Catalog interface {
	GetByID(ctx context.Context, id string) (catalogdomain.Item, error)
}

// AddInput describes one add-to-cart action.
type AddInput struct {
	CatalogItemID string
	Quantity      int
	Options       catalogdomain.Options
	Notes         string
}

// Line is a cart line priced against the live catalog.
type Line struct {
	Index     int
	Item      domain.LineItem
	Name      string
	Available bool
	UnitPrice money.Money
	Subtotal  money.Money
}

// View is the priced cart as shown to the customer.
type View struct {
	Lines []Line
	Total money.Money
	// Added is true while the add-to-cart acknowledgement is showing.
	Added bool
}

// DrainFunc receives the current cart; returning nil lets the cart be cleared.
type DrainFunc func(ctx context.Context, cart domain.Cart) error

// Service exposes cart use cases to adapters.
type Service interface {
	View(ctx context.Context) (*View, error)
	Add(ctx context.Context, input AddInput) (*View, error)
	ChangeQuantity(ctx context.Context, index, delta int) (*View, error)
	Remove(ctx context.Context, index int) (*View, error)
	Clear(ctx context.Context) (*View, error)
	// Drain hands the cart to fn and clears it only if fn succeeds. No other cart
	// mutation interleaves with fn.
	Drain(ctx context.Context, fn DrainFunc) error
}
