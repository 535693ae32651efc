package domain

import (
	"errors"
	"strings"

	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

// Category groups menu items and selects the pricing rules that apply to them.
type Category string

const (
	CategoryPizza  Category = "pizza"
	CategoryBurger Category = "burger"
	CategoryDrink  Category = "drink"
)

// MaxQuantity is the largest quantity that can be ordered or quoted for one item.
const MaxQuantity = 99

var (
	ErrInvalidItemID   = errors.New("catalog item id must not be empty")
	ErrInvalidName     = errors.New("catalog item name must not be empty")
	ErrInvalidPrice    = errors.New("catalog item price must not be negative")
	ErrInvalidCategory = errors.New("catalog item category is invalid")
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPizza, CategoryBurger, CategoryDrink:
		return true
	default:
		return false
	}
}

// Categories lists the known categories in menu order.
func Categories() []Category {
	return []Category{CategoryPizza, CategoryBurger, CategoryDrink}
}

// Item is an immutable menu entry.
type Item struct {
	ID          string
	Name        string
	Description string
	BasePrice   money.Money
	ImageRef    string
	Category    Category
	Tags        []string
}

// Validate enforces invariants on the menu entry.
func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrInvalidItemID
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrInvalidName
	}
	if i.BasePrice.IsNegative() {
		return ErrInvalidPrice
	}
	if !i.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// Clone returns a copy that shares no slices with i.
func (i Item) Clone() Item {
	clone := i
	if i.Tags != nil {
		clone.Tags = append([]string(nil), i.Tags...)
	}
	return clone
}

// Filter narrows a menu listing. Zero values match everything.
type Filter struct {
	Category Category
	Query    string
}

// Matches applies the category tab and a case-insensitive search over name and description.
func (f Filter) Matches(item Item) bool {
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}
	haystack := strings.ToLower(item.Name + " " + item.Description)
	return strings.Contains(haystack, query)
}
