// Package service provides the lending registry's operation surface:
// catalog management, principal directory, and the loan ledger.
package service

import (
	"context"
	"iter"

	"lendhub/internal/domain"
)

// CatalogService provides catalog management operations.
type CatalogService struct {
	repo domain.CatalogRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo domain.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Add validates and inserts a new catalog item. New items start available.
func (s *CatalogService) Add(ctx context.Context, req domain.AddItemRequest) (*domain.Item, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	item := &domain.Item{
		ID:        req.ID,
		Title:     req.Title,
		Author:    req.Author,
		Genre:     req.Genre,
		Available: true,
	}
	if err := s.repo.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes an item and reports whether a removal occurred.
func (s *CatalogService) Remove(ctx context.Context, itemID string) (bool, error) {
	return s.repo.Remove(ctx, itemID)
}

// Find returns an item by identifier.
func (s *CatalogService) Find(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.repo.Find(ctx, itemID)
}

// Search returns items matching the query by title or author.
func (s *CatalogService) Search(ctx context.Context, query string) (iter.Seq[domain.Item], error) {
	return s.repo.Search(ctx, query)
}

// List returns the full catalog in insertion order.
func (s *CatalogService) List(ctx context.Context) ([]domain.Item, error) {
	return s.repo.List(ctx)
}
