package mapper

import (
	"strconv"
	"strings"

	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	catalogports "github.com/xtremepizzaria/storefront/internal/domains/catalog/ports"
	"github.com/xtremepizzaria/storefront/internal/domains/pricing"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

// Variant is the transport shape of a size or weight choice.
type Variant struct {
	Name       string      `json:"name"`
	PriceDelta money.Money `json:"priceDelta"`
}

// Item is the transport shape of a menu entry.
type Item struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	Price            money.Money `json:"price"`
	Image            string      `json:"image"`
	Category         string      `json:"category"`
	Tags             []string    `json:"tags"`
	Variants         []Variant   `json:"variants"`
	DefaultVariant   string      `json:"defaultVariant"`
	ExtraCheesePrice money.Money `json:"extraCheesePrice"`
}

// Quote is the transport shape of a price preview.
type Quote struct {
	ItemID    string                `json:"itemId"`
	Options   catalogdomain.Options `json:"options"`
	Quantity  int                   `json:"quantity"`
	UnitPrice money.Money           `json:"unitPrice"`
	Total     money.Money           `json:"total"`
}

// FromDomainItem converts a menu entry with its pricing choices.
func FromDomainItem(item catalogdomain.Item) Item {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	variants := pricing.Variants(item.Category)
	out := make([]Variant, 0, len(variants))
	for _, v := range variants {
		out = append(out, Variant{Name: v.Name, PriceDelta: v.Delta})
	}
	return Item{
		ID:               item.ID,
		Name:             item.Name,
		Description:      item.Description,
		Price:            item.BasePrice,
		Image:            item.ImageRef,
		Category:         string(item.Category),
		Tags:             append([]string(nil), tags...),
		Variants:         out,
		DefaultVariant:   pricing.DefaultVariant(item.Category),
		ExtraCheesePrice: pricing.ExtraCheeseDelta(item.Category),
	}
}

// FromDomainItems converts a menu listing.
func FromDomainItems(items []catalogdomain.Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		result = append(result, FromDomainItem(item))
	}
	return result
}

// FromQuote converts a price preview.
func FromQuote(quote *catalogports.Quote) Quote {
	if quote == nil {
		return Quote{}
	}
	opts := quote.Options
	if opts == nil {
		opts = catalogdomain.Options{}
	}
	return Quote{
		ItemID:    quote.Item.ID,
		Options:   opts,
		Quantity:  quote.Quantity,
		UnitPrice: quote.UnitPrice,
		Total:     quote.Total,
	}
}

// OptionsFromQuery builds a configuration from query parameters: size is a string,
// extraCheese is parsed as a boolean.
func OptionsFromQuery(size, extraCheese string) (catalogdomain.Options, error) {
	opts := catalogdomain.Options{}
	if s := strings.TrimSpace(size); s != "" {
		opts[catalogdomain.OptionSize] = catalogdomain.Text(s)
	}
	if raw := strings.TrimSpace(extraCheese); raw != "" {
		flag, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, catalogdomain.ErrInvalidOptionValue
		}
		opts[catalogdomain.OptionExtraCheese] = catalogdomain.Flag(flag)
	}
	return opts, nil
}
