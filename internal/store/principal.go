package store

import (
	"context"

	"lendhub/internal/domain"
)

// PrincipalRepo is the in-memory implementation of domain.PrincipalRepository.
type PrincipalRepo struct {
	s *Store
}

// NewPrincipalRepo creates a PrincipalRepo over the shared store.
func NewPrincipalRepo(s *Store) *PrincipalRepo {
	return &PrincipalRepo{s: s}
}

var _ domain.PrincipalRepository = (*PrincipalRepo)(nil)

// Register inserts a principal. Identifier uniqueness is enforced here.
func (r *PrincipalRepo) Register(_ context.Context, p *domain.Principal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.principalsByID[p.ID]; exists {
		return domain.ErrConflict("principal %q already exists", p.ID)
	}
	stored := clonePrincipal(p)
	r.s.principals = append(r.s.principals, stored)
	r.s.principalsByID[stored.ID] = stored
	return nil
}

// Get returns a copy of the principal.
func (r *PrincipalRepo) Get(_ context.Context, id string) (*domain.Principal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.principalsByID[id]
	if !ok {
		return nil, domain.ErrNotFound("principal %q not found", id)
	}
	return clonePrincipal(p), nil
}

// List returns an independent copy of all principals in registration order.
func (r *PrincipalRepo) List(_ context.Context) ([]domain.Principal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Principal, len(r.s.principals))
	for i, p := range r.s.principals {
		out[i] = *p
	}
	return out, nil
}
