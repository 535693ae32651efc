package state

import (
	"context"

	"github.com/xtremepizzaria/storefront/internal/domains/profile/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/profile/ports"
	"github.com/xtremepizzaria/storefront/internal/platform/statestore"
)

// RecordName is the unversioned key suffix of the profile record.
const RecordName = "profile"

var _ ports.Store = (*Store)(nil)

// Store keeps the profile as a JSON object.
type Store struct {
	record *statestore.Record[domain.CustomerProfile]
}

func NewStore(store statestore.Store, namespace string, opts ...statestore.RecordOption) *Store {
	empty := func() domain.CustomerProfile { return domain.CustomerProfile{} }
	return &Store{record: statestore.NewRecord(store, statestore.Key(namespace, RecordName), empty, opts...)}
}

func (s *Store) Load(ctx context.Context) domain.CustomerProfile {
	return s.record.Load(ctx)
}

func (s *Store) Save(ctx context.Context, profile domain.CustomerProfile) error {
	return s.record.Save(ctx, profile)
}
