package domain

import (
	"context"
	"iter"
	"time"
)

// Clock provides "today's date" so loan dating is substitutable in tests.
type Clock interface {
	Today() time.Time
}

// IDGenerator produces opaque loan identifiers. Implementations must make
// collisions practically impossible; the ledger still checks under its lock.
type IDGenerator interface {
	NewID() string
}

// CatalogRepository owns the item records.
type CatalogRepository interface {
	// Add inserts an item; duplicate identifiers are a ConflictError.
	Add(ctx context.Context, item *Item) error
	// Remove deletes an item if present and reports whether a removal occurred.
	Remove(ctx context.Context, itemID string) (bool, error)
	// Find returns the item or a NotFoundError.
	Find(ctx context.Context, itemID string) (*Item, error)
	// Search yields items whose title or author contains the query,
	// case-insensitively, in insertion order. The sequence is restartable and
	// iterates a snapshot, not live state. An empty query matches everything.
	Search(ctx context.Context, query string) (iter.Seq[Item], error)
	// List returns an independent copy of the full catalog in insertion order.
	List(ctx context.Context) ([]Item, error)
	// SetAvailability flips the availability flag. Ledger-internal.
	SetAvailability(ctx context.Context, itemID string, available bool) error
}

// PrincipalRepository owns the registered identities.
type PrincipalRepository interface {
	// Register inserts a principal; duplicate identifiers are a ConflictError.
	Register(ctx context.Context, p *Principal) error
	// Get returns the principal or a NotFoundError.
	Get(ctx context.Context, id string) (*Principal, error)
	// List returns an independent copy of all principals in registration order.
	List(ctx context.Context) ([]Principal, error)
}

// LedgerRepository owns the loan records and is the only component allowed to
// mutate item availability. Issue and Close are atomic with respect to each
// other and to all catalog reads.
type LedgerRepository interface {
	// Issue creates an OPEN loan and marks the item unavailable in one
	// indivisible step. Fails with NotFoundError when the item is absent and
	// UnavailableError when it is already on loan.
	Issue(ctx context.Context, principalID, itemID string, issueDate time.Time) (*Loan, error)
	// Close finds the item's OPEN loan, stamps the return date, moves it to
	// CLOSED, and marks the item available again, atomically. Fails with
	// NoOpenLoanError when no loan is open for the item.
	Close(ctx context.Context, itemID string, returnDate time.Time) (*Loan, error)
	// OpenByItem returns the item's OPEN loan or a NoOpenLoanError.
	OpenByItem(ctx context.Context, itemID string) (*Loan, error)
	// List returns an independent copy of all loans in creation order.
	List(ctx context.Context) ([]Loan, error)
}
