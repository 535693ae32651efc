// Package pricing computes line item prices from category-specific rule tables.
package pricing

import (
	"errors"
	"fmt"

	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

var (
	ErrUnknownVariant = errors.New("variant is not offered for this item")
	ErrInvalidAddOn   = errors.New("add-on must be a boolean")
)

// Variant is a size or weight choice and the amount it adds to the base price.
type Variant struct {
	Name  string
	Delta money.Money
}

// Selection is the priced part of a line item configuration.
type Selection struct {
	Variant     string
	ExtraCheese bool
}

// SelectionFrom extracts the priced options from a line item configuration.
func SelectionFrom(opts catalogdomain.Options) Selection {
	return Selection{Variant: opts.Size(), ExtraCheese: opts.ExtraCheese()}
}

type rule struct {
	variants       []Variant
	defaultVariant string
	extraCheese    money.Money
}

var rules = map[catalogdomain.Category]rule{
	catalogdomain.CategoryPizza: {
		variants: []Variant{
			{Name: "Pequena", Delta: money.FromCents(-500)},
			{Name: "Média", Delta: money.Zero},
			{Name: "Grande", Delta: money.FromCents(800)},
		},
		defaultVariant: "Média",
		extraCheese:    money.FromCents(500),
	},
	catalogdomain.CategoryBurger: {
		variants: []Variant{
			{Name: "120g", Delta: money.Zero},
			{Name: "160g", Delta: money.Zero},
			{Name: "200g", Delta: money.FromCents(500)},
		},
		defaultVariant: "160g",
		extraCheese:    money.FromCents(400),
	},
	catalogdomain.CategoryDrink: {
		variants:       []Variant{{Name: "Único", Delta: money.Zero}},
		defaultVariant: "Único",
		extraCheese:    money.FromCents(400),
	},
}

// Price returns the unit price of item under the given selection.
// Unknown categories and variants contribute no adjustment.
func Price(item catalogdomain.Item, sel Selection) money.Money {
	price := item.BasePrice
	r, ok := rules[item.Category]
	if !ok {
		return price
	}
	for _, v := range r.variants {
		if v.Name == sel.Variant {
			price = price.Add(v.Delta)
			break
		}
	}
	if sel.ExtraCheese {
		price = price.Add(r.extraCheese)
	}
	return price
}

// LineTotal returns the unit price multiplied by quantity.
func LineTotal(item catalogdomain.Item, sel Selection, quantity int) money.Money {
	return Price(item, sel).Mul(quantity)
}

// Variants lists the choices offered for a category in display order.
func Variants(category catalogdomain.Category) []Variant {
	r, ok := rules[category]
	if !ok {
		return nil
	}
	return append([]Variant(nil), r.variants...)
}

// DefaultVariant is the preselected choice for a category.
func DefaultVariant(category catalogdomain.Category) string {
	return rules[category].defaultVariant
}

// ExtraCheeseDelta is the add-on price for a category.
func ExtraCheeseDelta(category catalogdomain.Category) money.Money {
	return rules[category].extraCheese
}

// IsVariant reports whether name is offered for category.
func IsVariant(category catalogdomain.Category, name string) bool {
	for _, v := range rules[category].variants {
		if v.Name == name {
			return true
		}
	}
	return false
}

// Validate checks that the priced options of a configuration are offered for item.
// Options the rules do not price are accepted as-is.
func Validate(item catalogdomain.Item, opts catalogdomain.Options) error {
	if size, ok := opts[catalogdomain.OptionSize]; ok {
		if size.IsFlag() || !IsVariant(item.Category, size.Text()) {
			return fmt.Errorf("%w: %s %q", ErrUnknownVariant, item.ID, size.String())
		}
	}
	if cheese, ok := opts[catalogdomain.OptionExtraCheese]; ok && !cheese.IsFlag() {
		return fmt.Errorf("%w: %s", ErrInvalidAddOn, catalogdomain.OptionExtraCheese)
	}
	return nil
}
