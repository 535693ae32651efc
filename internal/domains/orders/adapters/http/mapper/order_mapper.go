package mapper

import (
	"errors"
	"strings"
	"time"

	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/handoff"
	orderports "github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
	profilemapper "github.com/xtremepizzaria/storefront/internal/domains/profile/adapters/http/mapper"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

// ErrUnknownMethod is returned for payment methods other than PIX and card.
var ErrUnknownMethod = errors.New("payment method must be pix or card")

// PlaceOrderRequest is the checkout body. CardNumber is only read for card payments.
type PlaceOrderRequest struct {
	Method     string `json:"method" binding:"required"`
	CardNumber string `json:"cardNumber"`
	TxID       string `json:"txid"`
}

// Item is the transport shape of a frozen order line.
type Item struct {
	ProductID string                `json:"productId"`
	Name      string                `json:"name"`
	Quantity  int                   `json:"qty"`
	Options   catalogdomain.Options `json:"options"`
	Notes     string                `json:"notes,omitempty"`
	UnitPrice money.Money           `json:"unitPrice"`
	Subtotal  money.Money           `json:"subtotal"`
}

// Payment is the transport shape of the order payment.
type Payment struct {
	Method      string `json:"method"`
	MethodLabel string `json:"methodLabel"`
	PixPayload  string `json:"pixPayload,omitempty"`
	TxID        string `json:"txid,omitempty"`
	CardLast4   string `json:"cardLast4,omitempty"`
}

// Order is the transport shape of a placed order.
type Order struct {
	ID          string                `json:"id"`
	Items       []Item                `json:"items"`
	Total       money.Money           `json:"total"`
	Status      string                `json:"status"`
	StatusLabel string                `json:"statusLabel"`
	CreatedAt   time.Time             `json:"createdAt"`
	Customer    profilemapper.Profile `json:"customer"`
	Payment     Payment               `json:"payment"`
}

// PixPreview is the transport shape of the checkout PIX payload.
type PixPreview struct {
	Amount  money.Money `json:"amount"`
	TxID    string      `json:"txid"`
	Payload string      `json:"payload"`
}

// Handoff is the transport shape of the WhatsApp summary.
type Handoff struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// ToPaymentSelection converts a checkout body, accepting pix, card, and their display labels.
func ToPaymentSelection(req PlaceOrderRequest) (orderports.PaymentSelection, error) {
	var method domain.PaymentMethod
	switch strings.ToLower(strings.TrimSpace(req.Method)) {
	case "pix":
		method = domain.PaymentPix
	case "card", "cartão", "cartao":
		method = domain.PaymentCard
	default:
		return orderports.PaymentSelection{}, ErrUnknownMethod
	}
	return orderports.PaymentSelection{Method: method, CardNumber: req.CardNumber, TxID: req.TxID}, nil
}

// FromDomainOrder converts an order into its transport shape.
func FromDomainOrder(order *domain.Order) Order {
	items := make([]Item, 0, len(order.Items))
	for _, item := range order.Items {
		opts := item.Options
		if opts == nil {
			opts = catalogdomain.Options{}
		}
		items = append(items, Item{
			ProductID: item.CatalogItemID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Options:   opts,
			Notes:     item.Notes,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return Order{
		ID:          order.ID,
		Items:       items,
		Total:       order.Total,
		Status:      string(order.Status),
		StatusLabel: order.Status.Label(),
		CreatedAt:   order.CreatedAt,
		Customer:    profilemapper.FromDomainProfile(order.Customer),
		Payment: Payment{
			Method:      string(order.Payment.Method),
			MethodLabel: order.Payment.Method.Label(),
			PixPayload:  order.Payment.PixPayload,
			TxID:        order.Payment.TxID,
			CardLast4:   order.Payment.CardLast4,
		},
	}
}

// FromDomainOrders converts a list of orders, keeping their order.
func FromDomainOrders(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}

// FromPixPreview converts a preview into its transport shape.
func FromPixPreview(preview *orderports.PixPreview) PixPreview {
	return PixPreview{Amount: preview.Amount, TxID: preview.TxID, Payload: preview.Payload}
}

// FromHandoff converts a handoff message into its transport shape.
func FromHandoff(msg *handoff.Message) Handoff {
	return Handoff{Text: msg.Text, URL: msg.URL}
}
