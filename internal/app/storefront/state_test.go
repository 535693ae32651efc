package storefront

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartports "github.com/xtremepizzaria/storefront/internal/domains/cart/ports"
	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	orderports "github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
	profiledomain "github.com/xtremepizzaria/storefront/internal/domains/profile/domain"
	"github.com/xtremepizzaria/storefront/internal/platform/statestore"
)

type fixedScheduler struct {
	scheduled []string
	closed    bool
}

func (s *fixedScheduler) Schedule(_ context.Context, orderID string, _ time.Time) error {
	s.scheduled = append(s.scheduled, orderID)
	return nil
}

func (s *fixedScheduler) Cancel(context.Context, string) error { return nil }

func (s *fixedScheduler) Close() error {
	s.closed = true
	return nil
}

func openState(t *testing.T, kv statestore.Store, mock *clock.Mock, opts ...Option) *State {
	t.Helper()
	opts = append([]Option{WithStore(kv), WithClock(mock)}, opts...)
	state := Open(context.Background(), Config{PixCity: "BH"}, opts...)
	t.Cleanup(func() { _ = state.Close(context.Background()) })
	return state
}

func placeCalabresaOrder(t *testing.T, state *State) *domain.Order {
	t.Helper()
	ctx := context.Background()
	_, err := state.Cart.Add(ctx, cartports.AddInput{CatalogItemID: "pz-calabresa", Quantity: 2})
	require.NoError(t, err)
	_, err = state.Profile.Replace(ctx, profiledomain.CustomerProfile{Name: "Ana", Phone: "31999990000", Address: "Rua A, 10"})
	require.NoError(t, err)
	order, err := state.Orders.PlaceOrder(ctx, orderports.PaymentSelection{Method: domain.PaymentPix, TxID: "ABCD"})
	require.NoError(t, err)
	return order
}

func TestOpen_EmptyStoreStartsBlank(t *testing.T) {
	state := openState(t, statestore.NewMemoryStore(), clock.NewMock())
	ctx := context.Background()

	view, err := state.Cart.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, "0.00", view.Total.String())

	orders, err := state.Orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	profile, err := state.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, profiledomain.CustomerProfile{}, profile)

	items, err := state.Catalog.List(ctx, catalogdomain.Filter{})
	require.NoError(t, err)
	assert.NotEmpty(t, items)
}

func TestState_CheckoutAndProgression(t *testing.T) {
	mock := clock.NewMock()
	state := openState(t, statestore.NewMemoryStore(), mock)
	ctx := context.Background()

	order := placeCalabresaOrder(t, state)
	assert.Equal(t, "83.98", order.Total.String())
	assert.Equal(t, domain.StatusReceived, order.Status)

	mock.Add(5 * time.Second)
	current, err := state.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, current.Status)

	mock.Add(25 * time.Second)
	current, err = state.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, current.Status)
}

func TestState_ReopenRestoresRecords(t *testing.T) {
	kv := statestore.NewMemoryStore()
	mock := clock.NewMock()
	ctx := context.Background()

	first := Open(ctx, Config{}, WithStore(kv), WithClock(mock))
	order := placeCalabresaOrder(t, first)
	_, err := first.Cart.Add(ctx, cartports.AddInput{CatalogItemID: "bg-xburger", Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, first.Close(ctx))

	second := openState(t, kv, mock)
	orders, err := second.Orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.Equal(t, order.Total, orders[0].Total)

	view, err := second.Cart.View(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "bg-xburger", view.Lines[0].Item.CatalogItemID)

	profile, err := second.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
}

func TestState_ResumesOpenOrdersOnOpen(t *testing.T) {
	kv := statestore.NewMemoryStore()
	mock := clock.NewMock()
	ctx := context.Background()

	first := Open(ctx, Config{}, WithStore(kv), WithClock(mock))
	order := placeCalabresaOrder(t, first)
	require.NoError(t, first.Close(ctx))

	second := openState(t, kv, mock)
	mock.Add(time.Minute)
	current, err := second.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, current.Status)
}

func TestState_CloseStopsProgression(t *testing.T) {
	mock := clock.NewMock()
	state := openState(t, statestore.NewMemoryStore(), mock)
	ctx := context.Background()

	order := placeCalabresaOrder(t, state)
	require.NoError(t, state.Close(ctx))
	require.NoError(t, state.Close(ctx))

	mock.Add(time.Minute)
	current, err := state.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReceived, current.Status)
}

func TestState_WriteFailureDegradesButSucceeds(t *testing.T) {
	kv := statestore.NewMemoryStore()
	state := openState(t, kv, clock.NewMock())
	ctx := context.Background()

	kv.FailWrites(errors.New("disk full"))
	view, err := state.Cart.Add(ctx, cartports.AddInput{CatalogItemID: "pz-calabresa", Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)

	degraded, cause := state.Health.Degraded()
	assert.True(t, degraded)
	require.Error(t, cause)

	kv.FailWrites(nil)
	_, err = state.Cart.Clear(ctx)
	require.NoError(t, err)
	degraded, _ = state.Health.Degraded()
	assert.False(t, degraded)
}

func TestState_CustomScheduler(t *testing.T) {
	custom := &fixedScheduler{}
	state := openState(t, statestore.NewMemoryStore(), clock.NewMock(),
		WithScheduler(func(orderports.StatusAdvancer) (orderports.Scheduler, error) { return custom, nil }),
	)

	order := placeCalabresaOrder(t, state)
	assert.Equal(t, []string{order.ID}, custom.scheduled)
	require.NoError(t, state.Close(context.Background()))
	assert.True(t, custom.closed)
}

func TestState_FailingSchedulerFallsBackToTimers(t *testing.T) {
	mock := clock.NewMock()
	state := openState(t, statestore.NewMemoryStore(), mock,
		WithScheduler(func(orderports.StatusAdvancer) (orderports.Scheduler, error) {
			return nil, errors.New("cluster unreachable")
		}),
	)
	ctx := context.Background()

	order := placeCalabresaOrder(t, state)
	mock.Add(5 * time.Second)
	current, err := state.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, current.Status)
}
