package domain

// Item represents a single loanable catalog entry.
type Item struct {
	ID        string
	Title     string
	Author    string
	Genre     string
	Available bool
}

// AddItemRequest holds parameters for adding a new catalog item.
type AddItemRequest struct {
	ID     string
	Title  string
	Author string
	Genre  string
}

// Validate checks that the request is well-formed.
func (r *AddItemRequest) Validate() error {
	if r.ID == "" {
		return ErrValidation("item id is required")
	}
	if r.Title == "" {
		return ErrValidation("item title is required")
	}
	return nil
}
