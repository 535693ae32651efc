package ports

import (
	"context"
	"errors"
	"time"

	cartports "github.com/xtremepizzaria/storefront/internal/domains/cart/ports"
	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/handoff"
	profiledomain "github.com/xtremepizzaria/storefront/internal/domains/profile/domain"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

var ErrNotFound = errors.New("order not found")

// Store loads and writes through the durable order list, most recent first.
type Store interface {
	Load(ctx context.Context) []*domain.Order
	Save(ctx context.Context, orders []*domain.Order) error
}

// Cart hands the current cart to checkout and clears it when checkout succeeds.
type Cart interface {
	View(ctx context.Context) (*cartports.View, error)
	Drain(ctx context.Context, fn cartports.DrainFunc) error
}

// Catalog resolves menu entries when freezing order lines.
type Catalog interface {
	GetByID(ctx context.Context, id string) (catalogdomain.Item, error)
}

// Profile supplies the customer snapshot.
type Profile interface {
	Get(ctx context.Context) (profiledomain.CustomerProfile, error)
}

// StatusAdvancer applies one scheduled transition.
type StatusAdvancer interface {
	AdvanceStatus(ctx context.Context, orderID string, to domain.Status) (*domain.Order, error)
}

// Scheduler drives the status progression of placed orders.
type Scheduler interface {
	// Schedule registers the progression of orderID. Scheduling the same order twice is a no-op.
	Schedule(ctx context.Context, orderID string, createdAt time.Time) error
	Cancel(ctx context.Context, orderID string) error
	Close() error
}

// Notifier publishes order events to interested parties.
type Notifier interface {
	Publish(ctx context.Context, event domain.Event) error
}

// PaymentSelection is the checkout choice. CardNumber is only read to derive the last four digits.
type PaymentSelection struct {
	Method     domain.PaymentMethod
	CardNumber string
	TxID       string
}

// PixPreview is the payload checkout shows before the customer confirms.
type PixPreview struct {
	Amount  money.Money
	TxID    string
	Payload string
}

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, selection PaymentSelection) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	PixPreview(ctx context.Context, txid string) (*PixPreview, error)
	Handoff(ctx context.Context, id string) (*handoff.Message, error)
	StatusAdvancer
}
