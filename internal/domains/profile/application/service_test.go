package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	profilestate "github.com/xtremepizzaria/storefront/internal/domains/profile/adapters/state"
	"github.com/xtremepizzaria/storefront/internal/domains/profile/domain"
	"github.com/xtremepizzaria/storefront/internal/platform/statestore"
)

func TestGet_DefaultsToBlank(t *testing.T) {
	svc := NewService(context.Background(), profilestate.NewStore(statestore.NewMemoryStore(), "delivery"))
	profile, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.CustomerProfile{}, profile)
}

func TestReplace_NormalizesAndPersists(t *testing.T) {
	kv := statestore.NewMemoryStore()
	store := profilestate.NewStore(kv, "delivery")
	svc := NewService(context.Background(), store)

	saved, err := svc.Replace(context.Background(), domain.CustomerProfile{Name: "  Ana ", Phone: "31999990000", Address: "Rua A", UF: "mg"})
	require.NoError(t, err)
	require.Equal(t, "Ana", saved.Name)
	require.Equal(t, "MG", saved.UF)

	reloaded := NewService(context.Background(), store)
	profile, err := reloaded.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, saved, profile)

	_, ok, err := kv.Get(context.Background(), "delivery.profile.v1")
	require.NoError(t, err)
	require.True(t, ok)
}
