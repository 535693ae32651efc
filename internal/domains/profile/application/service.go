package application

import (
	"context"
	"strings"
	"sync"

	"github.com/xtremepizzaria/storefront/internal/domains/profile/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/profile/ports"
)

// Service owns the in-memory profile and writes every change through to the store.
type Service struct {
	mu      sync.RWMutex
	profile domain.CustomerProfile
	store   ports.Store
}

// NewService loads the stored profile, or starts blank when there is none.
func NewService(ctx context.Context, store ports.Store) *Service {
	return &Service{store: store, profile: store.Load(ctx)}
}

func (s *Service) Get(_ context.Context) (domain.CustomerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, nil
}

// Replace stores the profile as given after trimming surrounding whitespace.
// Required fields are only enforced at checkout.
func (s *Service) Replace(ctx context.Context, profile domain.CustomerProfile) (domain.CustomerProfile, error) {
	profile = normalize(profile)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	_ = s.store.Save(ctx, profile)
	return profile, nil
}

// Flush rewrites the durable profile from memory.
func (s *Service) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Save(ctx, s.profile)
}

func normalize(p domain.CustomerProfile) domain.CustomerProfile {
	for _, field := range []*string{&p.Name, &p.Phone, &p.Address, &p.Number, &p.Complement, &p.District, &p.City, &p.UF, &p.CEP, &p.WhatsApp, &p.Email} {
		*field = strings.TrimSpace(*field)
	}
	p.UF = strings.ToUpper(p.UF)
	return p
}

var _ ports.Service = (*Service)(nil)
