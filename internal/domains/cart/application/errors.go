package application

import (
	"errors"
	"fmt"

	"github.com/xtremepizzaria/storefront/internal/domains/cart/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/pricing"
)

var (
	// ErrInvalidInput signals the request violated a cart invariant.
	ErrInvalidInput = errors.New("invalid cart input")
	// ErrUnknownItem signals an add for an id the menu does not offer.
	ErrUnknownItem = errors.New("catalog item not found")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidItemID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, pricing.ErrUnknownVariant) ||
		errors.Is(err, pricing.ErrInvalidAddOn) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
