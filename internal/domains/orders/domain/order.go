package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	profiledomain "github.com/xtremepizzaria/storefront/internal/domains/profile/domain"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

// Status enumerates order progression.
type Status string

const (
	StatusReceived       Status = "received"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

var (
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrInvalidTransition = errors.New("order status transition is not allowed")
	ErrNoItems           = errors.New("order must contain at least one item")
	ErrInvalidCard       = errors.New("card number must contain at least four digits")
	ErrInvalidPayment    = errors.New("payment method is invalid")
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Label is the customer-facing pt-BR name of the status.
func (s Status) Label() string {
	switch s {
	case StatusReceived:
		return "Recebido"
	case StatusPreparing:
		return "Em preparo"
	case StatusOutForDelivery:
		return "A caminho"
	case StatusDelivered:
		return "Entregue"
	case StatusCancelled:
		return "Cancelado"
	default:
		return string(s)
	}
}

// CanTransition reports whether an order may move from one status to another.
// Progress is strictly forward one step at a time; cancellation leaves any non-terminal status.
func CanTransition(from, to Status) bool {
	if from.Terminal() || !from.Valid() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	switch from {
	case StatusReceived:
		return to == StatusPreparing
	case StatusPreparing:
		return to == StatusOutForDelivery
	case StatusOutForDelivery:
		return to == StatusDelivered
	}
	return false
}

// Item is a line frozen at order time with the price it was sold for.
type Item struct {
	CatalogItemID string                `json:"productId"`
	Name          string                `json:"name"`
	Quantity      int                   `json:"qty"`
	Options       catalogdomain.Options `json:"options,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	UnitPrice     money.Money           `json:"unitPrice"`
	Subtotal      money.Money           `json:"subtotal"`
}

// PaymentMethod tags the payment variant.
type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "PIX"
	PaymentCard PaymentMethod = "CARD"
)

// Label is the customer-facing name of the method.
func (m PaymentMethod) Label() string {
	if m == PaymentCard {
		return "Cartão"
	}
	return string(m)
}

// Payment holds either a PIX payload or the last four card digits, never a full card number.
type Payment struct {
	Method     PaymentMethod `json:"method"`
	PixPayload string        `json:"pixPayload,omitempty"`
	TxID       string        `json:"txid,omitempty"`
	CardLast4  string        `json:"cardLast4,omitempty"`
}

// NewPixPayment builds a PIX payment carrying its display payload.
func NewPixPayment(payload, txid string) Payment {
	return Payment{Method: PaymentPix, PixPayload: payload, TxID: txid}
}

// NewCardPayment keeps only the last four digits of number.
func NewCardPayment(number string) (Payment, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	if len(digits) < 4 {
		return Payment{}, ErrInvalidCard
	}
	return Payment{Method: PaymentCard, CardLast4: digits[len(digits)-4:]}, nil
}

// Validate checks the payment variant is well formed.
func (p Payment) Validate() error {
	switch p.Method {
	case PaymentPix:
		if p.CardLast4 != "" {
			return ErrInvalidPayment
		}
		return nil
	case PaymentCard:
		if len(p.CardLast4) != 4 || p.PixPayload != "" {
			return ErrInvalidPayment
		}
		return nil
	default:
		return ErrInvalidPayment
	}
}

// Order is immutable after creation except for Status.
type Order struct {
	ID        string                        `json:"id"`
	Items     []Item                        `json:"items"`
	Total     money.Money                   `json:"total"`
	Status    Status                        `json:"status"`
	CreatedAt time.Time                     `json:"createdAt"`
	Customer  profiledomain.CustomerProfile `json:"customer"`
	Payment   Payment                       `json:"payment"`
}

// NewOrder freezes items and their summed total into a received order.
func NewOrder(id string, items []Item, createdAt time.Time, customer profiledomain.CustomerProfile, payment Payment) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("order id must not be empty")
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	frozen := make([]Item, 0, len(items))
	total := money.Zero
	for _, item := range items {
		item.Options = item.Options.Clone()
		total = total.Add(item.Subtotal)
		frozen = append(frozen, item)
	}
	return &Order{
		ID:        id,
		Items:     frozen,
		Total:     total,
		Status:    StatusReceived,
		CreatedAt: createdAt,
		Customer:  customer,
		Payment:   payment,
	}, nil
}

// Advance moves the order to status when the transition is allowed.
func (o *Order) Advance(to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	o.Status = to
	return nil
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = make([]Item, 0, len(o.Items))
	for _, item := range o.Items {
		item.Options = item.Options.Clone()
		clone.Items = append(clone.Items, item)
	}
	return &clone
}
