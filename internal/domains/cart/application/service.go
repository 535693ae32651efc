package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/facebookgo/clock"

	"github.com/xtremepizzaria/storefront/internal/domains/cart/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/cart/ports"
	catalogports "github.com/xtremepizzaria/storefront/internal/domains/catalog/ports"
	"github.com/xtremepizzaria/storefront/internal/domains/pricing"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

// DefaultAddedSignalTTL is how long the add-to-cart acknowledgement stays visible.
const DefaultAddedSignalTTL = 1200 * time.Millisecond

// Service owns the in-memory cart and writes every mutation through to the store.
type Service struct {
	mu         sync.Mutex
	cart       domain.Cart
	store      ports.Store
	catalog    ports.Catalog
	clock      clock.Clock
	addedTTL   time.Duration
	addedUntil time.Time
}

// Option customizes the cart service.
type Option func(*Service)

// WithClock swaps the time source driving the added signal.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithAddedSignalTTL overrides DefaultAddedSignalTTL.
func WithAddedSignalTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.addedTTL = ttl
		}
	}
}

// NewService loads the stored cart, or starts empty when there is none.
func NewService(ctx context.Context, store ports.Store, catalog ports.Catalog, opts ...Option) *Service {
	s := &Service{
		store:    store,
		catalog:  catalog,
		clock:    clock.New(),
		addedTTL: DefaultAddedSignalTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.cart = store.Load(ctx).Clone()
	return s
}

func (s *Service) View(ctx context.Context) (*ports.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(ctx)
}

func (s *Service) Add(ctx context.Context, input ports.AddInput) (*ports.View, error) {
	item, err := s.catalog.GetByID(ctx, input.CatalogItemID)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownItem, input.CatalogItemID)
		}
		return nil, err
	}
	if err := pricing.Validate(item, input.Options); err != nil {
		return nil, mapError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.cart.Add(input.CatalogItemID, input.Quantity, input.Options, input.Notes); err != nil {
		return nil, mapError(err)
	}
	s.persistLocked(ctx)
	s.addedUntil = s.clock.Now().Add(s.addedTTL)
	return s.viewLocked(ctx)
}

func (s *Service) ChangeQuantity(ctx context.Context, index, delta int) (*ports.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.ChangeQuantity(index, delta); err != nil {
		return nil, mapError(err)
	}
	s.persistLocked(ctx)
	return s.viewLocked(ctx)
}

func (s *Service) Remove(ctx context.Context, index int) (*ports.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.Remove(index); err != nil {
		return nil, mapError(err)
	}
	s.persistLocked(ctx)
	return s.viewLocked(ctx)
}

func (s *Service) Clear(ctx context.Context) (*ports.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.persistLocked(ctx)
	return s.viewLocked(ctx)
}

func (s *Service) Drain(ctx context.Context, fn ports.DrainFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(ctx, s.cart.Clone()); err != nil {
		return err
	}
	s.cart.Clear()
	s.persistLocked(ctx)
	return nil
}

// Flush rewrites the durable cart from memory.
func (s *Service) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(ctx, s.cart.Clone())
}

// persistLocked writes through; a failed write leaves memory authoritative.
func (s *Service) persistLocked(ctx context.Context) {
	_ = s.store.Save(ctx, s.cart.Clone())
}

func (s *Service) viewLocked(ctx context.Context) (*ports.View, error) {
	view := &ports.View{
		Lines: make([]ports.Line, 0, len(s.cart.Items)),
		Total: money.Zero,
		Added: s.clock.Now().Before(s.addedUntil),
	}
	for i, line := range s.cart.Items {
		priced := ports.Line{Index: i, Item: line.Clone()}
		item, err := s.catalog.GetByID(ctx, line.CatalogItemID)
		switch {
		case err == nil:
			priced.Available = true
			priced.Name = item.Name
			priced.UnitPrice = pricing.Price(item, pricing.SelectionFrom(line.Options))
			priced.Subtotal = priced.UnitPrice.Mul(line.Quantity)
		case errors.Is(err, catalogports.ErrNotFound):
		default:
			return nil, err
		}
		view.Total = view.Total.Add(priced.Subtotal)
		view.Lines = append(view.Lines, priced)
	}
	return view, nil
}

var _ ports.Service = (*Service)(nil)
