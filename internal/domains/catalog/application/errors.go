package application

import (
	"errors"
	"fmt"

	"github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/pricing"
)

var (
	// ErrInvalidInput signals the request violated a catalog or pricing rule.
	ErrInvalidInput = errors.New("invalid catalog input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, domain.ErrInvalidItemID) ||
		errors.Is(err, pricing.ErrUnknownVariant) ||
		errors.Is(err, pricing.ErrInvalidAddOn) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
