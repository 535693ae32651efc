package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
)

// MaxQuantity caps a single line.
const MaxQuantity = catalogdomain.MaxQuantity

var (
	ErrInvalidItemID   = errors.New("catalog item id must not be empty")
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 99")
	ErrInvalidIndex    = errors.New("cart line index out of range")
)

// LineItem is one configured entry of the cart. Field names match the stored record.
type LineItem struct {
	CatalogItemID string                `json:"productId"`
	Quantity      int                   `json:"qty"`
	Options       catalogdomain.Options `json:"options,omitempty"`
	Notes         string                `json:"notes,omitempty"`
}

// MergeKey identifies the configuration of a line: item, option set and notes.
func (l LineItem) MergeKey() string {
	h := sha256.New()
	h.Write([]byte(l.CatalogItemID))
	h.Write([]byte{0})
	h.Write([]byte(l.Options.Fingerprint()))
	h.Write([]byte{0})
	h.Write([]byte(l.Notes))
	return hex.EncodeToString(h.Sum(nil))
}

// Clone returns a copy sharing no maps with l.
func (l LineItem) Clone() LineItem {
	clone := l
	clone.Options = l.Options.Clone()
	return clone
}

// Cart is the ordered list of line items awaiting checkout.
type Cart struct {
	Items []LineItem
}

// Add merges into the line with the same configuration, or appends a new one.
// It returns the index of the affected line. A merge past MaxQuantity is rejected.
func (c *Cart) Add(itemID string, quantity int, options catalogdomain.Options, notes string) (int, error) {
	if strings.TrimSpace(itemID) == "" {
		return -1, ErrInvalidItemID
	}
	if quantity <= 0 || quantity > MaxQuantity {
		return -1, ErrInvalidQuantity
	}
	candidate := LineItem{CatalogItemID: itemID, Quantity: quantity, Options: options.Clone(), Notes: notes}
	key := candidate.MergeKey()
	for i := range c.Items {
		if c.Items[i].MergeKey() == key {
			if c.Items[i].Quantity > MaxQuantity-quantity {
				return -1, ErrInvalidQuantity
			}
			c.Items[i].Quantity += quantity
			return i, nil
		}
	}
	c.Items = append(c.Items, candidate)
	return len(c.Items) - 1, nil
}

// ChangeQuantity adds delta to the line quantity, clamping to [1, MaxQuantity].
func (c *Cart) ChangeQuantity(index, delta int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	current := min(max(c.Items[index].Quantity, 1), MaxQuantity)
	switch {
	case delta > MaxQuantity-current:
		c.Items[index].Quantity = MaxQuantity
	case delta < 1-current:
		c.Items[index].Quantity = 1
	default:
		c.Items[index].Quantity = current + delta
	}
	return nil
}

// Remove deletes the line at index.
func (c *Cart) Remove(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.Items = append(c.Items[:index:index], c.Items[index+1:]...)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Len returns the number of lines.
func (c Cart) Len() int { return len(c.Items) }

// Clone returns a deep copy.
func (c Cart) Clone() Cart {
	if c.Items == nil {
		return Cart{}
	}
	items := make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, item.Clone())
	}
	return Cart{Items: items}
}

func (c *Cart) checkIndex(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrInvalidIndex
	}
	return nil
}
