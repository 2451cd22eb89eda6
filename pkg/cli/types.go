package cli

// Wire types mirroring the API's JSON responses.

type itemPayload struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	Available bool   `json:"available"`
}

type userPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type loanPayload struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	ItemID     string  `json:"item_id"`
	IssueDate  string  `json:"issue_date"`
	ReturnDate *string `json:"return_date"`
	Status     string  `json:"status"`
}

type loginPayload struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}
