package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendhub/internal/domain"
)

var today = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

func TestLedgerService_Issue_DatesWithClock(t *testing.T) {
	var gotDate time.Time
	repo := &mockLedgerRepo{
		issueFn: func(_ context.Context, principalID, itemID string, issueDate time.Time) (*domain.Loan, error) {
			gotDate = issueDate
			return &domain.Loan{ID: "abc12345", PrincipalID: principalID, ItemID: itemID, IssueDate: issueDate, Status: domain.LoanOpen}, nil
		},
	}
	svc := NewLedgerService(repo, fixedClock{t: today})

	loan, err := svc.Issue(context.Background(), "S001", "B001")
	require.NoError(t, err)
	assert.Equal(t, today, gotDate)
	assert.Equal(t, domain.LoanOpen, loan.Status)
}

func TestLedgerService_Issue_BorrowerNotChecked(t *testing.T) {
	repo := &mockLedgerRepo{
		issueFn: func(_ context.Context, principalID, itemID string, issueDate time.Time) (*domain.Loan, error) {
			return &domain.Loan{ID: "x", PrincipalID: principalID, ItemID: itemID, IssueDate: issueDate, Status: domain.LoanOpen}, nil
		},
	}
	svc := NewLedgerService(repo, fixedClock{t: today})

	// An identifier with no directory entry still gets a loan.
	loan, err := svc.Issue(context.Background(), "ghost", "B001")
	require.NoError(t, err)
	assert.Equal(t, "ghost", loan.PrincipalID)
}

func TestLedgerService_Return_DatesWithClock(t *testing.T) {
	var gotDate time.Time
	repo := &mockLedgerRepo{
		closeFn: func(_ context.Context, itemID string, returnDate time.Time) (*domain.Loan, error) {
			gotDate = returnDate
			return &domain.Loan{ID: "x", ItemID: itemID, ReturnDate: &returnDate, Status: domain.LoanClosed}, nil
		},
	}
	svc := NewLedgerService(repo, fixedClock{t: today})

	loan, err := svc.Return(context.Background(), "B001")
	require.NoError(t, err)
	assert.Equal(t, today, gotDate)
	assert.Equal(t, domain.LoanClosed, loan.Status)
}

func TestLedgerService_Return_PropagatesNoOpenLoan(t *testing.T) {
	repo := &mockLedgerRepo{
		closeFn: func(_ context.Context, itemID string, _ time.Time) (*domain.Loan, error) {
			return nil, domain.ErrNoOpenLoan("no open loan for item %q", itemID)
		},
	}
	svc := NewLedgerService(repo, fixedClock{t: today})

	_, err := svc.Return(context.Background(), "B001")
	require.Error(t, err)
	var noLoan *domain.NoOpenLoanError
	assert.ErrorAs(t, err, &noLoan)
}
