package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/catalog/ports"
	"github.com/xtremepizzaria/storefront/internal/domains/pricing"
)

// Service orchestrates menu browsing and price previews.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter domain.Filter) ([]domain.Item, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, mapError(fmt.Errorf("%w: %q", domain.ErrInvalidCategory, filter.Category))
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Item, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Item{}, mapError(domain.ErrInvalidItemID)
	}
	return s.repo.GetByID(ctx, id)
}

// Quote prices a configuration of one item without touching the cart.
func (s *Service) Quote(ctx context.Context, id string, options domain.Options, quantity int) (*ports.Quote, error) {
	if quantity <= 0 || quantity > domain.MaxQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, domain.MaxQuantity)
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pricing.Validate(item, options); err != nil {
		return nil, mapError(err)
	}
	sel := pricing.SelectionFrom(options)
	unit := pricing.Price(item, sel)
	return &ports.Quote{
		Item:      item,
		Options:   options.Clone(),
		Quantity:  quantity,
		UnitPrice: unit,
		Total:     unit.Mul(quantity),
	}, nil
}

var _ ports.Service = (*Service)(nil)
