package service

import (
	"context"

	"lendhub/internal/domain"
)

// DirectoryService provides principal registration and authentication.
type DirectoryService struct {
	repo domain.PrincipalRepository
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(repo domain.PrincipalRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

// Register validates and inserts a new principal.
func (s *DirectoryService) Register(ctx context.Context, req domain.RegisterPrincipalRequest) (*domain.Principal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := &domain.Principal{
		ID:     req.ID,
		Name:   req.Name,
		Role:   req.Role,
		Secret: req.Secret,
	}
	if err := s.repo.Register(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Authenticate returns the principal only when the identifier exists and the
// secret matches exactly. An unknown identifier and a wrong secret are
// indistinguishable to the caller. There is no lockout or rate limiting here.
func (s *DirectoryService) Authenticate(ctx context.Context, id, secret string) (*domain.Principal, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil || p.Secret != secret {
		return nil, domain.ErrAuth("invalid credentials")
	}
	return p, nil
}

// Get returns a principal by identifier.
func (s *DirectoryService) Get(ctx context.Context, id string) (*domain.Principal, error) {
	return s.repo.Get(ctx, id)
}
