package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	profiledomain "github.com/xtremepizzaria/storefront/internal/domains/profile/domain"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

func sampleItems() []Item {
	return []Item{
		{CatalogItemID: "pz-calabresa", Name: "Calabresa", Quantity: 2, Options: catalogdomain.Options{catalogdomain.OptionSize: catalogdomain.Text("Média")}, UnitPrice: money.MustParse("41.99"), Subtotal: money.MustParse("83.98")},
		{CatalogItemID: "dr-coca-2l", Name: "Coca-Cola 2L", Quantity: 1, UnitPrice: money.MustParse("12.99"), Subtotal: money.MustParse("12.99")},
	}
}

func TestNewOrder_FreezesTotal(t *testing.T) {
	order, err := NewOrder("id-1", sampleItems(), time.Unix(100, 0), profiledomain.CustomerProfile{Name: "Ana"}, NewPixPayment("payload", "ABC123"))
	require.NoError(t, err)
	assert.Equal(t, StatusReceived, order.Status)
	assert.Equal(t, "96.97", order.Total.String())

	_, err = NewOrder("id-2", nil, time.Now(), profiledomain.CustomerProfile{}, NewPixPayment("p", "t"))
	require.ErrorIs(t, err, ErrNoItems)
}

func TestAdvance_FollowsStateMachine(t *testing.T) {
	order, err := NewOrder("id-1", sampleItems(), time.Now(), profiledomain.CustomerProfile{}, NewPixPayment("p", "t"))
	require.NoError(t, err)

	require.ErrorIs(t, order.Advance(StatusDelivered), ErrInvalidTransition)
	require.NoError(t, order.Advance(StatusPreparing))
	require.ErrorIs(t, order.Advance(StatusPreparing), ErrInvalidTransition)
	require.NoError(t, order.Advance(StatusOutForDelivery))
	require.NoError(t, order.Advance(StatusDelivered))
	require.ErrorIs(t, order.Advance(StatusCancelled), ErrInvalidTransition)
	require.ErrorIs(t, order.Advance("lost"), ErrInvalidStatus)
}

func TestCancelledIsTerminal(t *testing.T) {
	for _, from := range []Status{StatusReceived, StatusPreparing, StatusOutForDelivery} {
		assert.True(t, CanTransition(from, StatusCancelled), from)
	}
	for _, to := range []Status{StatusReceived, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled} {
		assert.False(t, CanTransition(StatusCancelled, to), to)
		assert.False(t, CanTransition(StatusDelivered, to), to)
	}
}

func TestNewCardPayment_KeepsLastFour(t *testing.T) {
	payment, err := NewCardPayment("4111 1111 1111 1234")
	require.NoError(t, err)
	assert.Equal(t, "1234", payment.CardLast4)
	assert.Equal(t, "Cartão", payment.Method.Label())

	payload, err := json.Marshal(payment)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "4111")

	_, err = NewCardPayment("12-3")
	require.ErrorIs(t, err, ErrInvalidCard)
}

func TestOrder_JSONRoundTrip(t *testing.T) {
	order, err := NewOrder("0b7e7c1e-0000-4000-8000-000000000001", sampleItems(), time.Date(2026, 10, 18, 14, 3, 5, 0, time.UTC),
		profiledomain.CustomerProfile{Name: "Ana", Phone: "31999990000", Address: "Rua A"}, NewPixPayment("payload", "ABC123"))
	require.NoError(t, err)

	payload, err := json.Marshal([]*Order{order})
	require.NoError(t, err)
	var decoded []*Order
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, order, decoded[0])
}

func TestClone_IsDeep(t *testing.T) {
	order, err := NewOrder("id-1", sampleItems(), time.Now(), profiledomain.CustomerProfile{}, NewPixPayment("p", "t"))
	require.NoError(t, err)
	clone := order.Clone()
	clone.Items[0].Options[catalogdomain.OptionSize] = catalogdomain.Text("Grande")
	clone.Status = StatusCancelled
	assert.Equal(t, "Média", order.Items[0].Options.Size())
	assert.Equal(t, StatusReceived, order.Status)
}
