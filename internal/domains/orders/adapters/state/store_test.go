package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xtremepizzaria/storefront/internal/domains/orders/domain"
	profiledomain "github.com/xtremepizzaria/storefront/internal/domains/profile/domain"
	"github.com/xtremepizzaria/storefront/internal/platform/statestore"
	"github.com/xtremepizzaria/storefront/internal/shared/money"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := statestore.NewMemoryStore()
	store := NewStore(kv, "delivery")

	require.Empty(t, store.Load(ctx))

	order, err := domain.NewOrder("o-1", []domain.Item{{CatalogItemID: "pz-calabresa", Name: "Calabresa", Quantity: 1, UnitPrice: money.MustParse("41.99"), Subtotal: money.MustParse("41.99")}},
		time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC), profiledomain.CustomerProfile{Name: "Ana", Phone: "1", Address: "Rua"}, domain.NewPixPayment("payload", "ABC"))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, []*domain.Order{order}))

	_, ok, err := kv.Get(ctx, "delivery.orders.v1")
	require.NoError(t, err)
	require.True(t, ok)

	loaded := store.Load(ctx)
	require.Len(t, loaded, 1)
	require.Equal(t, order, loaded[0])
}

func TestStore_CorruptRecordLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := statestore.NewMemoryStore()
	require.NoError(t, kv.Put(ctx, "delivery.orders.v1", []byte("{not json")))
	require.Empty(t, NewStore(kv, "delivery").Load(ctx))
}

func TestStore_DropsUntrackableEntries(t *testing.T) {
	ctx := context.Background()
	kv := statestore.NewMemoryStore()
	require.NoError(t, kv.Put(ctx, "delivery.orders.v1", []byte(`[{"id":"","status":"received"},{"id":"x","status":"lost"},{"id":"ok","status":"preparing","total":10}]`)))

	loaded := NewStore(kv, "delivery").Load(ctx)
	require.Len(t, loaded, 1)
	require.Equal(t, "ok", loaded[0].ID)
	require.Equal(t, domain.StatusPreparing, loaded[0].Status)
}
