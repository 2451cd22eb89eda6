package domain

// Role tags for principals. No authorization is derived from these beyond
// identity lookup; they are carried for display and reporting.
const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

// Principal represents an authenticated identity capable of holding loans.
// The secret is stored exactly as given at registration.
type Principal struct {
	ID     string
	Name   string
	Role   string
	Secret string
}

// RegisterPrincipalRequest holds parameters for registering a new principal.
type RegisterPrincipalRequest struct {
	ID     string
	Name   string
	Role   string // defaults to STUDENT
	Secret string
}

// Validate checks that the request is well-formed.
func (r *RegisterPrincipalRequest) Validate() error {
	if r.ID == "" {
		return ErrValidation("principal id is required")
	}
	if r.Name == "" {
		return ErrValidation("principal name is required")
	}
	if r.Secret == "" {
		return ErrValidation("principal secret is required")
	}
	if r.Role == "" {
		r.Role = RoleStudent
	}
	return nil
}
