package api

import (
	"errors"
	"net/http"

	"lendhub/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
func httpStatusFromDomainError(err error) int {
	var notFound *domain.NotFoundError
	var conflict *domain.ConflictError
	var validation *domain.ValidationError
	var unavailable *domain.UnavailableError
	var auth *domain.AuthError
	var noLoan *domain.NoOpenLoanError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusConflict
	case errors.As(err, &auth):
		return http.StatusUnauthorized
	case errors.As(err, &noLoan):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorCodeFromDomainError maps domain errors to stable machine-readable codes
// so callers can tell taxonomy cases apart even when statuses coincide
// (duplicate identifiers, unavailable items, and missing open loans all map
// to 409).
func errorCodeFromDomainError(err error) string {
	var notFound *domain.NotFoundError
	var conflict *domain.ConflictError
	var validation *domain.ValidationError
	var unavailable *domain.UnavailableError
	var auth *domain.AuthError
	var noLoan *domain.NoOpenLoanError

	switch {
	case errors.As(err, &notFound):
		return "NOT_FOUND"
	case errors.As(err, &conflict):
		return "DUPLICATE_IDENTIFIER"
	case errors.As(err, &validation):
		return "INVALID_REQUEST"
	case errors.As(err, &unavailable):
		return "ITEM_UNAVAILABLE"
	case errors.As(err, &auth):
		return "AUTHENTICATION_FAILED"
	case errors.As(err, &noLoan):
		return "NO_ACTIVE_LOAN"
	default:
		return "INTERNAL"
	}
}
