package store

import (
	"context"
	"time"

	"lendhub/internal/domain"
)

// LedgerRepo is the in-memory implementation of domain.LedgerRepository. It is
// the only component that touches item availability, and it does so inside the
// same critical section that creates or closes the loan record.
type LedgerRepo struct {
	s   *Store
	ids domain.IDGenerator
}

// NewLedgerRepo creates a LedgerRepo over the shared store.
func NewLedgerRepo(s *Store, ids domain.IDGenerator) *LedgerRepo {
	return &LedgerRepo{s: s, ids: ids}
}

var _ domain.LedgerRepository = (*LedgerRepo)(nil)

// Issue creates an OPEN loan and marks the item unavailable in one step.
func (r *LedgerRepo) Issue(_ context.Context, principalID, itemID string, issueDate time.Time) (*domain.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.itemsByID[itemID]
	if !ok {
		return nil, domain.ErrNotFound("item %q not found", itemID)
	}
	if !item.Available {
		return nil, domain.ErrUnavailable("item %q is currently on loan", itemID)
	}

	id := r.ids.NewID()
	for _, taken := r.s.loansByID[id]; taken; _, taken = r.s.loansByID[id] {
		id = r.ids.NewID()
	}

	loan := &domain.Loan{
		ID:          id,
		PrincipalID: principalID,
		ItemID:      itemID,
		IssueDate:   issueDate,
		Status:      domain.LoanOpen,
	}
	r.s.loans = append(r.s.loans, loan)
	r.s.loansByID[id] = loan
	r.s.openByItem[itemID] = loan
	item.Available = false
	return cloneLoan(loan), nil
}

// Close stamps the return date on the item's OPEN loan, moves it to CLOSED,
// and marks the item available again, all in one step. The item may have been
// removed from the catalog while on loan; the loan still closes.
func (r *LedgerRepo) Close(_ context.Context, itemID string, returnDate time.Time) (*domain.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	loan, ok := r.s.openByItem[itemID]
	if !ok {
		return nil, domain.ErrNoOpenLoan("no open loan for item %q", itemID)
	}

	rd := returnDate
	loan.ReturnDate = &rd
	loan.Status = domain.LoanClosed
	delete(r.s.openByItem, itemID)
	if item, ok := r.s.itemsByID[itemID]; ok {
		item.Available = true
	}
	return cloneLoan(loan), nil
}

// OpenByItem returns the item's OPEN loan, if any.
func (r *LedgerRepo) OpenByItem(_ context.Context, itemID string) (*domain.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	loan, ok := r.s.openByItem[itemID]
	if !ok {
		return nil, domain.ErrNoOpenLoan("no open loan for item %q", itemID)
	}
	return cloneLoan(loan), nil
}

// List returns an independent copy of all loans in creation order.
func (r *LedgerRepo) List(_ context.Context) ([]domain.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Loan, len(r.s.loans))
	for i, l := range r.s.loans {
		out[i] = *cloneLoan(l)
	}
	return out, nil
}
