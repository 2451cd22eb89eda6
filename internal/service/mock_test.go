package service

import (
	"context"
	"iter"
	"time"

	"lendhub/internal/domain"
)

// === Catalog Repository Mock ===

type mockCatalogRepo struct {
	addFn             func(ctx context.Context, item *domain.Item) error
	removeFn          func(ctx context.Context, itemID string) (bool, error)
	findFn            func(ctx context.Context, itemID string) (*domain.Item, error)
	searchFn          func(ctx context.Context, query string) (iter.Seq[domain.Item], error)
	listFn            func(ctx context.Context) ([]domain.Item, error)
	setAvailabilityFn func(ctx context.Context, itemID string, available bool) error
}

func (m *mockCatalogRepo) Add(ctx context.Context, item *domain.Item) error {
	if m.addFn != nil {
		return m.addFn(ctx, item)
	}
	panic("unexpected call to mockCatalogRepo.Add")
}

func (m *mockCatalogRepo) Remove(ctx context.Context, itemID string) (bool, error) {
	if m.removeFn != nil {
		return m.removeFn(ctx, itemID)
	}
	panic("unexpected call to mockCatalogRepo.Remove")
}

func (m *mockCatalogRepo) Find(ctx context.Context, itemID string) (*domain.Item, error) {
	if m.findFn != nil {
		return m.findFn(ctx, itemID)
	}
	panic("unexpected call to mockCatalogRepo.Find")
}

func (m *mockCatalogRepo) Search(ctx context.Context, query string) (iter.Seq[domain.Item], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	panic("unexpected call to mockCatalogRepo.Search")
}

func (m *mockCatalogRepo) List(ctx context.Context) ([]domain.Item, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	panic("unexpected call to mockCatalogRepo.List")
}

func (m *mockCatalogRepo) SetAvailability(ctx context.Context, itemID string, available bool) error {
	if m.setAvailabilityFn != nil {
		return m.setAvailabilityFn(ctx, itemID, available)
	}
	panic("unexpected call to mockCatalogRepo.SetAvailability")
}

// === Principal Repository Mock ===

type mockPrincipalRepo struct {
	registerFn func(ctx context.Context, p *domain.Principal) error
	getFn      func(ctx context.Context, id string) (*domain.Principal, error)
	listFn     func(ctx context.Context) ([]domain.Principal, error)
}

func (m *mockPrincipalRepo) Register(ctx context.Context, p *domain.Principal) error {
	if m.registerFn != nil {
		return m.registerFn(ctx, p)
	}
	panic("unexpected call to mockPrincipalRepo.Register")
}

func (m *mockPrincipalRepo) Get(ctx context.Context, id string) (*domain.Principal, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	panic("unexpected call to mockPrincipalRepo.Get")
}

func (m *mockPrincipalRepo) List(ctx context.Context) ([]domain.Principal, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	panic("unexpected call to mockPrincipalRepo.List")
}

// === Ledger Repository Mock ===

type mockLedgerRepo struct {
	issueFn      func(ctx context.Context, principalID, itemID string, issueDate time.Time) (*domain.Loan, error)
	closeFn      func(ctx context.Context, itemID string, returnDate time.Time) (*domain.Loan, error)
	openByItemFn func(ctx context.Context, itemID string) (*domain.Loan, error)
	listFn       func(ctx context.Context) ([]domain.Loan, error)
}

func (m *mockLedgerRepo) Issue(ctx context.Context, principalID, itemID string, issueDate time.Time) (*domain.Loan, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, principalID, itemID, issueDate)
	}
	panic("unexpected call to mockLedgerRepo.Issue")
}

func (m *mockLedgerRepo) Close(ctx context.Context, itemID string, returnDate time.Time) (*domain.Loan, error) {
	if m.closeFn != nil {
		return m.closeFn(ctx, itemID, returnDate)
	}
	panic("unexpected call to mockLedgerRepo.Close")
}

func (m *mockLedgerRepo) OpenByItem(ctx context.Context, itemID string) (*domain.Loan, error) {
	if m.openByItemFn != nil {
		return m.openByItemFn(ctx, itemID)
	}
	panic("unexpected call to mockLedgerRepo.OpenByItem")
}

func (m *mockLedgerRepo) List(ctx context.Context) ([]domain.Loan, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	panic("unexpected call to mockLedgerRepo.List")
}

// fixedClock always reports the same date.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Today() time.Time { return c.t }
