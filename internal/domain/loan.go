package domain

import "time"

// LoanStatus is the lifecycle state of a loan record.
type LoanStatus string

// Loan lifecycle: OPEN --return--> CLOSED. There is no transition out of
// CLOSED, and no way into OPEN except a fresh issue.
const (
	LoanOpen   LoanStatus = "OPEN"
	LoanClosed LoanStatus = "CLOSED"
)

// Loan links one principal to one item for an open-ended or closed period.
// Cross-entity relations are by identifier only; a loan never embeds the
// item or principal it refers to.
type Loan struct {
	ID          string
	PrincipalID string
	ItemID      string
	IssueDate   time.Time
	ReturnDate  *time.Time // nil while the loan is open
	Status      LoanStatus
}
