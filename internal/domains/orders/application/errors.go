package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingProfileFields = errors.New("profile is missing required fields")
	ErrUnknownItem          = errors.New("cart references an item no longer on the menu")
	ErrUnsupportedPayment   = errors.New("payment method is not supported")
)

// MissingProfileFieldsError lists the blank required profile fields that block checkout.
type MissingProfileFieldsError struct {
	Fields []string
}

func (e *MissingProfileFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingProfileFields, strings.Join(e.Fields, ", "))
}

func (e *MissingProfileFieldsError) Is(target error) bool {
	return target == ErrMissingProfileFields
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidInput):
		return err
	case errors.Is(err, domain.ErrInvalidCard),
		errors.Is(err, domain.ErrInvalidPayment),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrNoItems),
		errors.Is(err, ErrUnsupportedPayment):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
