//go:build integration

package statestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/xtremepizzaria/storefront/internal/platform/migrations"
)

func setupStatePostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestPostgresStore_PutOverwrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupStatePostgresContainer(t)
	defer cleanup()

	store := NewPostgresStore(db)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "delivery.cart.v1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "delivery.cart.v1", []byte(`[{"a":1}]`)))
	require.NoError(t, store.Put(ctx, "delivery.cart.v1", []byte(`[]`)))

	raw, ok, err := store.Get(ctx, "delivery.cart.v1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(raw))
}

func TestPostgresStore_RecordRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupStatePostgresContainer(t)
	defer cleanup()

	rec := NewRecord(NewPostgresStore(db), Key("delivery", "profile"), emptySample)
	value := sample{Name: "João", Items: []string{"x"}}
	require.NoError(t, rec.Save(context.Background(), value))
	assert.Equal(t, value, rec.Load(context.Background()))
}
