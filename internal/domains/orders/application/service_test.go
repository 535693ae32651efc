package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartstate "github.com/xtremepizzaria/storefront/internal/domains/cart/adapters/state"
	cartapp "github.com/xtremepizzaria/storefront/internal/domains/cart/application"
	cartports "github.com/xtremepizzaria/storefront/internal/domains/cart/ports"
	catalogmemory "github.com/xtremepizzaria/storefront/internal/domains/catalog/adapters/memory"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/adapters/scheduler"
	orderstate "github.com/xtremepizzaria/storefront/internal/domains/orders/adapters/state"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/pix"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
	profilestate "github.com/xtremepizzaria/storefront/internal/domains/profile/adapters/state"
	profileapp "github.com/xtremepizzaria/storefront/internal/domains/profile/application"
	profiledomain "github.com/xtremepizzaria/storefront/internal/domains/profile/domain"
	"github.com/xtremepizzaria/storefront/internal/platform/statestore"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (n *recordingNotifier) Publish(_ context.Context, event domain.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.EventName())
	}
	return out
}

type ordersFixture struct {
	svc       *Service
	cart      *cartapp.Service
	profile   *profileapp.Service
	catalog   *catalogmemory.Repository
	kv        *statestore.MemoryStore
	store     *orderstate.Store
	clock     *clock.Mock
	scheduler *scheduler.Inline
	notifier  *recordingNotifier
}

func newOrdersFixture(t *testing.T) *ordersFixture {
	t.Helper()
	ctx := context.Background()
	kv := statestore.NewMemoryStore()
	return newOrdersFixtureOn(t, ctx, kv)
}

func newOrdersFixtureOn(t *testing.T, ctx context.Context, kv *statestore.MemoryStore) *ordersFixture {
	t.Helper()
	mock := clock.NewMock()
	mock.Add(time.Hour)
	catalog := catalogmemory.NewRepository()
	cart := cartapp.NewService(ctx, cartstate.NewStore(kv, "delivery"), catalog, cartapp.WithClock(mock))
	profile := profileapp.NewService(ctx, profilestate.NewStore(kv, "delivery"))
	store := orderstate.NewStore(kv, "delivery")
	notifier := &recordingNotifier{}

	ids := 0
	svc := NewService(ctx, store, cart, catalog, profile,
		WithClock(mock),
		WithNotifier(notifier),
		WithPix(pix.NewBuilder(""), "BH"),
		WithIDGenerator(func() string {
			ids++
			return "order-" + string(rune('0'+ids))
		}),
	)
	sched := scheduler.NewInline(svc, scheduler.WithClock(mock))
	svc.SetScheduler(sched)
	t.Cleanup(func() { _ = sched.Close() })

	return &ordersFixture{svc: svc, cart: cart, profile: profile, catalog: catalog, kv: kv, store: store, clock: mock, scheduler: sched, notifier: notifier}
}

func (f *ordersFixture) completeProfile(t *testing.T) {
	t.Helper()
	_, err := f.profile.Replace(context.Background(), profiledomain.CustomerProfile{Name: "Ana", Phone: "31999990000", Address: "Rua A, 10"})
	require.NoError(t, err)
}

func (f *ordersFixture) addCalabresa(t *testing.T, qty int) {
	t.Helper()
	_, err := f.cart.Add(context.Background(), cartports.AddInput{CatalogItemID: "pz-calabresa", Quantity: qty})
	require.NoError(t, err)
}

func TestPlaceOrder_PixEndToEnd(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 2)
	f.completeProfile(t)

	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix, TxID: "a1b2c3"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusReceived, order.Status)
	assert.Equal(t, "83.98", order.Total.String())
	assert.Equal(t, domain.PaymentPix, order.Payment.Method)
	assert.Equal(t, "A1B2C3", order.Payment.TxID)
	assert.Equal(t, pix.NewBuilder("").Payload(pix.Input{Amount: money.MustParse("83.98"), Name: "Ana", City: "BH", TxID: "A1B2C3"}), order.Payment.PixPayload)
	assert.Equal(t, f.clock.Now(), order.CreatedAt)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Calabresa", order.Items[0].Name)

	view, err := f.cart.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	persisted := f.store.Load(ctx)
	require.Len(t, persisted, 1)
	assert.Equal(t, order.ID, persisted[0].ID)
	assert.Equal(t, []string{"orders.order.placed"}, f.notifier.names())
}

func TestPlaceOrder_MissingProfileFieldsLeavesStateUntouched(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 1)
	_, err := f.profile.Replace(ctx, profiledomain.CustomerProfile{Name: "Ana"})
	require.NoError(t, err)

	_, err = f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.ErrorIs(t, err, ErrMissingProfileFields)
	var missing *MissingProfileFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"phone", "address"}, missing.Fields)

	view, err := f.cart.View(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
	orders, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newOrdersFixture(t)
	f.completeProfile(t)
	_, err := f.svc.PlaceOrder(context.Background(), ports.PaymentSelection{Method: domain.PaymentPix})
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, f.scheduler.Pending())
}

func TestPlaceOrder_CardKeepsLastFourOnly(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 1)
	f.completeProfile(t)

	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: "card", CardNumber: "4111 1111 1111 9876"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCard, order.Payment.Method)
	assert.Equal(t, "9876", order.Payment.CardLast4)
	assert.Empty(t, order.Payment.PixPayload)

	raw, ok, err := f.kv.Get(ctx, "delivery.orders.v1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, string(raw), "4111")
}

func TestPlaceOrder_InvalidCardKeepsCart(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 1)
	f.completeProfile(t)

	_, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentCard, CardNumber: "12"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidCard)

	view, err := f.cart.View(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)

	_, err = f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: "boleto"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlaceOrder_TotalIsFrozen(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 2)
	f.completeProfile(t)

	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)
	require.NoError(t, f.catalog.SetPrice("pz-calabresa", money.MustParse("99.00")))

	reloaded, err := f.svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "83.98", reloaded.Total.String())
	assert.Equal(t, "41.99", reloaded.Items[0].UnitPrice.String())
}

func TestPlaceOrder_NewestFirst(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.completeProfile(t)

	f.addCalabresa(t, 1)
	first, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)
	f.addCalabresa(t, 1)
	second, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)

	orders, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestStatusProgression(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 1)
	f.completeProfile(t)
	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)

	status := func() domain.Status {
		current, err := f.svc.Get(ctx, order.ID)
		require.NoError(t, err)
		return current.Status
	}

	f.clock.Add(4 * time.Second)
	assert.Equal(t, domain.StatusReceived, status())
	f.clock.Add(time.Second)
	assert.Equal(t, domain.StatusPreparing, status())
	f.clock.Add(10 * time.Second)
	assert.Equal(t, domain.StatusOutForDelivery, status())
	f.clock.Add(15 * time.Second)
	assert.Equal(t, domain.StatusDelivered, status())
	assert.Zero(t, f.scheduler.Pending())

	assert.Equal(t, []string{
		"orders.order.placed",
		"orders.order.status_changed",
		"orders.order.status_changed",
		"orders.order.status_changed",
	}, f.notifier.names())
	assert.Equal(t, domain.StatusDelivered, f.store.Load(ctx)[0].Status)
}

func TestStatusProgression_SingleJumpKeepsOrder(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 1)
	f.completeProfile(t)
	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)

	f.clock.Add(time.Minute)
	current, err := f.svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, current.Status)

	var seen []domain.Status
	for _, e := range f.notifier.events {
		if changed, ok := e.(domain.OrderStatusChanged); ok {
			seen = append(seen, changed.ToStatus)
		}
	}
	assert.Equal(t, []domain.Status{domain.StatusPreparing, domain.StatusOutForDelivery, domain.StatusDelivered}, seen)
}

func TestStatusProgression_ScheduledOnce(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 1)
	f.completeProfile(t)
	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)

	require.NoError(t, f.scheduler.Schedule(ctx, order.ID, order.CreatedAt))
	f.addCalabresa(t, 1)
	_, err = f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)

	f.clock.Add(5 * time.Second)
	changes := 0
	for _, name := range f.notifier.names() {
		if name == "orders.order.status_changed" {
			changes++
		}
	}
	assert.Equal(t, 2, changes)
}

func TestStatusProgression_CancelledOrderStops(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 1)
	f.completeProfile(t)
	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)

	f.clock.Add(5 * time.Second)
	cancelled, err := f.svc.AdvanceStatus(ctx, order.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	f.clock.Add(time.Minute)
	current, err := f.svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, current.Status)
	assert.Zero(t, f.scheduler.Pending())
}

func TestClose_CancelsPendingTimers(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 1)
	f.completeProfile(t)
	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)

	require.NoError(t, f.scheduler.Close())
	f.clock.Add(time.Minute)

	current, err := f.svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReceived, current.Status)
	require.ErrorIs(t, f.scheduler.Schedule(ctx, "other", f.clock.Now()), scheduler.ErrClosed)
}

func TestAdvanceStatus_IsIdempotent(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 1)
	f.completeProfile(t)
	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)

	_, err = f.svc.AdvanceStatus(ctx, order.ID, domain.StatusPreparing)
	require.NoError(t, err)
	again, err := f.svc.AdvanceStatus(ctx, order.ID, domain.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, again.Status)

	_, err = f.svc.AdvanceStatus(ctx, "missing", domain.StatusPreparing)
	require.ErrorIs(t, err, ports.ErrNotFound)
	_, err = f.svc.AdvanceStatus(ctx, order.ID, "lost")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestResumeProgression_AfterRestart(t *testing.T) {
	ctx := context.Background()
	kv := statestore.NewMemoryStore()
	f := newOrdersFixtureOn(t, ctx, kv)
	f.addCalabresa(t, 1)
	f.completeProfile(t)
	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)
	f.clock.Add(6 * time.Second)
	require.NoError(t, f.scheduler.Close())

	restarted := newOrdersFixtureOn(t, ctx, kv)
	assert.Equal(t, 1, restarted.svc.ResumeProgression(ctx))
	restarted.clock.Add(time.Minute)

	current, err := restarted.svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, current.Status)
}

func TestPixPreview_UsesCartTotal(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 2)
	f.completeProfile(t)

	preview, err := f.svc.PixPreview(ctx, "zz9")
	require.NoError(t, err)
	assert.Equal(t, "83.98", preview.Amount.String())
	assert.Equal(t, "ZZ9", preview.TxID)

	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix, TxID: preview.TxID})
	require.NoError(t, err)
	assert.Equal(t, preview.Payload, order.Payment.PixPayload)
}

func TestHandoff(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	f.addCalabresa(t, 2)
	f.completeProfile(t)
	order, err := f.svc.PlaceOrder(ctx, ports.PaymentSelection{Method: domain.PaymentPix})
	require.NoError(t, err)

	msg, err := f.svc.Handoff(ctx, order.ID)
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "Pedido #"+order.ID)
	assert.Contains(t, msg.Text, "- 2x Calabresa (R$ 83,98)")
	assert.Contains(t, msg.URL, "https://wa.me/5531973163287?text=")

	_, err = f.svc.Handoff(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
