// Package pix renders the display-only PIX copy-and-paste payload shown at checkout.
package pix

import (
	"strings"

	"github.com/google/uuid"

	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

const (
	DefaultMerchantKey = "+5531999999995"
	DefaultName        = "Cliente"
	DefaultCity        = "Cidade"
	DefaultTxID        = "ABCD"

	maxNameLen = 13
	maxCityLen = 9
	txIDLen    = 6
)

const (
	header       = "00020126580014BR.GOV.BCB.PIX0114"
	amountPrefix = "2040000530398654"
	namePrefix   = "5802BR5913"
	cityPrefix   = "6009"
	txIDPrefix   = "62070503***6304"
)

// Input carries the segments that vary between payloads.
type Input struct {
	Amount money.Money
	Name   string
	City   string
	TxID   string
}

// Builder renders payloads for one merchant key.
type Builder struct {
	merchantKey string
}

// NewBuilder returns a builder for merchantKey, falling back to DefaultMerchantKey.
func NewBuilder(merchantKey string) *Builder {
	if strings.TrimSpace(merchantKey) == "" {
		merchantKey = DefaultMerchantKey
	}
	return &Builder{merchantKey: merchantKey}
}

// Payload concatenates the fixed fields with the input segments. Blank segments take
// their defaults; name and city are truncated by characters.
func (b *Builder) Payload(in Input) string {
	name := orDefault(in.Name, DefaultName)
	city := orDefault(in.City, DefaultCity)
	txid := orDefault(in.TxID, DefaultTxID)

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString(b.merchantKey)
	sb.WriteString(amountPrefix)
	sb.WriteString(in.Amount.Digits())
	sb.WriteString(namePrefix)
	sb.WriteString(truncate(name, maxNameLen))
	sb.WriteString(cityPrefix)
	sb.WriteString(truncate(city, maxCityLen))
	sb.WriteString(txIDPrefix)
	sb.WriteString(txid)
	return sb.String()
}

// NewTxID returns a six character upper-case transaction id.
func NewTxID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:txIDLen])
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func truncate(v string, n int) string {
	runes := []rune(v)
	if len(runes) <= n {
		return v
	}
	return string(runes[:n])
}
