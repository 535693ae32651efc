package mapper

import (
	cartports "github.com/xtremepizzaria/storefront/internal/domains/cart/ports"
	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

// AddItemRequest is the body of an add-to-cart call. Quantity defaults to one.
type AddItemRequest struct {
	ProductID string                `json:"productId" binding:"required"`
	Quantity  *int                  `json:"qty"`
	Options   catalogdomain.Options `json:"options"`
	Notes     string                `json:"notes"`
}

// ChangeQuantityRequest is the body of a quantity change.
type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

// Line is the transport shape of a priced cart line.
type Line struct {
	Index     int                   `json:"index"`
	ProductID string                `json:"productId"`
	Name      string                `json:"name"`
	Available bool                  `json:"available"`
	Quantity  int                   `json:"qty"`
	Options   catalogdomain.Options `json:"options"`
	Notes     string                `json:"notes,omitempty"`
	UnitPrice money.Money           `json:"unitPrice"`
	Subtotal  money.Money           `json:"subtotal"`
}

// Cart is the transport shape of the priced cart.
type Cart struct {
	Items []Line      `json:"items"`
	Count int         `json:"count"`
	Total money.Money `json:"total"`
	Added bool        `json:"added"`
}

// ToAddInput converts a transport request into the cart use case input.
func ToAddInput(req AddItemRequest) cartports.AddInput {
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	return cartports.AddInput{
		CatalogItemID: req.ProductID,
		Quantity:      qty,
		Options:       req.Options,
		Notes:         req.Notes,
	}
}

// FromView converts the priced cart into its transport shape.
func FromView(view *cartports.View) Cart {
	if view == nil {
		return Cart{Items: []Line{}}
	}
	lines := make([]Line, 0, len(view.Lines))
	for _, l := range view.Lines {
		opts := l.Item.Options
		if opts == nil {
			opts = catalogdomain.Options{}
		}
		lines = append(lines, Line{
			Index:     l.Index,
			ProductID: l.Item.CatalogItemID,
			Name:      l.Name,
			Available: l.Available,
			Quantity:  l.Item.Quantity,
			Options:   opts,
			Notes:     l.Item.Notes,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return Cart{Items: lines, Count: len(lines), Total: view.Total, Added: view.Added}
}
