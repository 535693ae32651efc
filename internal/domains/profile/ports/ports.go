package ports

import (
	"context"

	"github.com/xtremepizzaria/storefront/internal/domains/profile/domain"
)

// Store loads and writes through the durable profile record.
type Store interface {
	Load(ctx context.Context) domain.CustomerProfile
	Save(ctx context.Context, profile domain.CustomerProfile) error
}

// Service exposes profile use cases to adapters.
type Service interface {
	Get(ctx context.Context) (domain.CustomerProfile, error)
	Replace(ctx context.Context, profile domain.CustomerProfile) (domain.CustomerProfile, error)
}
