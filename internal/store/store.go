// Package store implements the in-memory repositories backing the lending
// registry. There is exactly one Store per process; every repository created
// from it shares the same mutex, so a ledger mutation and the catalog state it
// touches always change together or not at all.
package store

import (
	"sync"

	"lendhub/internal/domain"
)

// Store holds all registry state behind a single mutual-exclusion scope.
// Writers hold the lock for the full duration of their mutation, including
// the combined loan/availability updates performed by the ledger; readers
// can never observe a half-applied issue or return.
type Store struct {
	mu sync.RWMutex

	items     []*domain.Item // insertion order
	itemsByID map[string]*domain.Item

	principals     []*domain.Principal // registration order
	principalsByID map[string]*domain.Principal

	loans      []*domain.Loan // creation order
	loansByID  map[string]*domain.Loan
	openByItem map[string]*domain.Loan
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		itemsByID:      make(map[string]*domain.Item),
		principalsByID: make(map[string]*domain.Principal),
		loansByID:      make(map[string]*domain.Loan),
		openByItem:     make(map[string]*domain.Loan),
	}
}

func cloneItem(it *domain.Item) *domain.Item {
	out := *it
	return &out
}

func clonePrincipal(p *domain.Principal) *domain.Principal {
	out := *p
	return &out
}

func cloneLoan(l *domain.Loan) *domain.Loan {
	out := *l
	if l.ReturnDate != nil {
		rd := *l.ReturnDate
		out.ReturnDate = &rd
	}
	return &out
}
