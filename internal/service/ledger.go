package service

import (
	"context"

	"lendhub/internal/domain"
)

// LedgerService coordinates loan records with item availability. All failures
// are typed results reported to the caller; nothing is retried or swallowed.
type LedgerService struct {
	ledger domain.LedgerRepository
	clock  domain.Clock
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledger domain.LedgerRepository, clock domain.Clock) *LedgerService {
	return &LedgerService{ledger: ledger, clock: clock}
}

// Issue loans an item to a principal, dated today. The borrower identifier is
// recorded as given; the ledger does not consult the directory.
func (s *LedgerService) Issue(ctx context.Context, principalID, itemID string) (*domain.Loan, error) {
	return s.ledger.Issue(ctx, principalID, itemID, s.clock.Today())
}

// Return closes the item's open loan, dated today. Any caller may close any
// item's open loan; returns are identified by item only.
func (s *LedgerService) Return(ctx context.Context, itemID string) (*domain.Loan, error) {
	return s.ledger.Close(ctx, itemID, s.clock.Today())
}

// OpenByItem returns the item's open loan, if any.
func (s *LedgerService) OpenByItem(ctx context.Context, itemID string) (*domain.Loan, error) {
	return s.ledger.OpenByItem(ctx, itemID)
}

// List returns all loans in creation order.
func (s *LedgerService) List(ctx context.Context) ([]domain.Loan, error) {
	return s.ledger.List(ctx)
}
