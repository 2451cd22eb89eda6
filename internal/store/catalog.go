package store

import (
	"context"
	"iter"
	"strings"

	"lendhub/internal/domain"
)

// CatalogRepo is the in-memory implementation of domain.CatalogRepository.
type CatalogRepo struct {
	s *Store
}

// NewCatalogRepo creates a CatalogRepo over the shared store.
func NewCatalogRepo(s *Store) *CatalogRepo {
	return &CatalogRepo{s: s}
}

var _ domain.CatalogRepository = (*CatalogRepo)(nil)

// Add inserts an item at the end of the catalog.
func (r *CatalogRepo) Add(_ context.Context, item *domain.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.itemsByID[item.ID]; exists {
		return domain.ErrConflict("item %q already exists", item.ID)
	}
	stored := cloneItem(item)
	r.s.items = append(r.s.items, stored)
	r.s.itemsByID[stored.ID] = stored
	return nil
}

// Remove deletes an item if present. Absence is a no-op, not an error.
func (r *CatalogRepo) Remove(_ context.Context, itemID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.itemsByID[itemID]; !exists {
		return false, nil
	}
	delete(r.s.itemsByID, itemID)
	for i, it := range r.s.items {
		if it.ID == itemID {
			r.s.items = append(r.s.items[:i], r.s.items[i+1:]...)
			break
		}
	}
	return true, nil
}

// Find returns a copy of the item.
func (r *CatalogRepo) Find(_ context.Context, itemID string) (*domain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	it, ok := r.s.itemsByID[itemID]
	if !ok {
		return nil, domain.ErrNotFound("item %q not found", itemID)
	}
	return cloneItem(it), nil
}

// Search yields catalog items whose title or author contains the query,
// case-insensitively, in insertion order. The snapshot is taken once under
// the read lock; the returned sequence can be ranged over repeatedly and is
// unaffected by later mutations.
func (r *CatalogRepo) Search(_ context.Context, query string) (iter.Seq[domain.Item], error) {
	q := strings.ToLower(query)

	r.s.mu.RLock()
	snapshot := make([]domain.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		if strings.Contains(strings.ToLower(it.Title), q) ||
			strings.Contains(strings.ToLower(it.Author), q) {
			snapshot = append(snapshot, *it)
		}
	}
	r.s.mu.RUnlock()

	return func(yield func(domain.Item) bool) {
		for _, it := range snapshot {
			if !yield(it) {
				return
			}
		}
	}, nil
}

// List returns an independent copy of the full catalog in insertion order.
func (r *CatalogRepo) List(_ context.Context) ([]domain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Item, len(r.s.items))
	for i, it := range r.s.items {
		out[i] = *it
	}
	return out, nil
}

// SetAvailability flips the availability flag of an item.
func (r *CatalogRepo) SetAvailability(_ context.Context, itemID string, available bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	it, ok := r.s.itemsByID[itemID]
	if !ok {
		return domain.ErrNotFound("item %q not found", itemID)
	}
	it.Available = available
	return nil
}
