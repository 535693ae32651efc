// Package handoff renders placed orders as a WhatsApp message link.
package handoff

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
)

const (
	DefaultBusinessNumber = "5531973163287"
	timestampLayout       = "02/01/2006 15:04:05"
)

// Message is the plain summary and the link carrying it.
type Message struct {
	Text string
	URL  string
}

// Builder renders orders for one business contact number in one time zone.
type Builder struct {
	number   string
	location *time.Location
}

// NewBuilder returns a builder; blank number and nil location fall back to the defaults.
func NewBuilder(number string, location *time.Location) *Builder {
	if strings.TrimSpace(number) == "" {
		number = DefaultBusinessNumber
	}
	if location == nil {
		location = time.UTC
	}
	return &Builder{number: number, location: location}
}

// Build summarizes order and embeds the encoded text in a wa.me link.
func (b *Builder) Build(order *domain.Order) Message {
	text := b.Text(order)
	return Message{
		Text: text,
		URL:  "https://wa.me/" + b.number + "?text=" + EncodeComponent(text),
	}
}

// Text renders the multi-line order summary.
func (b *Builder) Text(order *domain.Order) string {
	lines := []string{
		"Pedido #" + order.ID,
		order.CreatedAt.In(b.location).Format(timestampLayout),
		"Itens:",
	}
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("- %dx %s (%s)", item.Quantity, item.Name, item.Subtotal.BRL()))
		if item.Notes != "" {
			lines = append(lines, "  Obs: "+item.Notes)
		}
		for _, key := range item.Options.Keys() {
			lines = append(lines, fmt.Sprintf("  %s: %s", key, item.Options[key]))
		}
	}
	lines = append(lines,
		"Total: "+order.Total.BRL(),
		"Pagamento: "+order.Payment.Method.Label(),
		"Nome: "+order.Customer.Name,
		"Telefone: "+order.Customer.Phone,
		"Endereço: "+order.Customer.Address,
	)
	return strings.Join(lines, "\n")
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s leaving only unreserved marks readable; spaces become %20.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
