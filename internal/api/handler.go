// Package api implements the HTTP surface of the lending registry.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lendhub/internal/domain"
	"lendhub/internal/middleware"
	"lendhub/internal/service"
)

const dateLayout = "2006-01-02"

// Handler holds the service dependencies for all API endpoints.
type Handler struct {
	catalog   *service.CatalogService
	directory *service.DirectoryService
	ledger    *service.LedgerService
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(
	catalog *service.CatalogService,
	directory *service.DirectoryService,
	ledger *service.LedgerService,
	jwtSecret []byte,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		directory: directory,
		ledger:    ledger,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

type itemResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Available bool   `json:"available"`
}

type principalResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type loanResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	ItemID     string  `json:"item_id"`
	IssueDate  string  `json:"issue_date"`
	ReturnDate *string `json:"return_date"`
	Status     string  `json:"status"`
}

func toItemResponse(it domain.Item) itemResponse {
	return itemResponse{
		ID:        it.ID,
		Title:     it.Title,
		Author:    it.Author,
		Genre:     it.Genre,
		Available: it.Available,
	}
}

func toLoanResponse(l domain.Loan) loanResponse {
	resp := loanResponse{
		ID:        l.ID,
		UserID:    l.PrincipalID,
		ItemID:    l.ItemID,
		IssueDate: l.IssueDate.Format(dateLayout),
		Status:    string(l.Status),
	}
	if l.ReturnDate != nil {
		d := l.ReturnDate.Format(dateLayout)
		resp.ReturnDate = &d
	}
	return resp
}

// Login authenticates a principal and mints a bearer token.
// POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body"))
		return
	}

	p, err := h.directory.Authenticate(r.Context(), req.UserID, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := middleware.SignPrincipalToken(h.jwtSecret, p, h.tokenTTL)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":  principalResponse{ID: p.ID, Name: p.Name, Role: p.Role},
		"token": token,
	})
}

// Register creates a new principal.
// POST /api/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body"))
		return
	}

	p, err := h.directory.Register(r.Context(), domain.RegisterPrincipalRequest{
		ID:     req.UserID,
		Name:   req.Name,
		Secret: req.Password,
		Role:   req.Role,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, principalResponse{ID: p.ID, Name: p.Name, Role: p.Role})
}

// ListItems returns the catalog, optionally filtered by the q query parameter
// matching title or author case-insensitively.
// GET /api/items
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	seq, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]itemResponse, 0)
	for it := range seq {
		items = append(items, toItemResponse(it))
	}
	h.writeJSON(w, http.StatusOK, items)
}

// GetItem returns a single catalog item.
// GET /api/items/{itemID}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	it, err := h.catalog.Find(r.Context(), itemID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toItemResponse(*it))
}

// AddItem inserts a new catalog item.
// POST /api/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Author string `json:"author"`
		Genre  string `json:"genre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body"))
		return
	}

	it, err := h.catalog.Add(r.Context(), domain.AddItemRequest{
		ID:     req.ID,
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toItemResponse(*it))
}

// RemoveItem deletes a catalog item. Removing an absent item is a no-op; the
// response reports whether anything was removed.
// DELETE /api/items/{itemID}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	removed, err := h.catalog.Remove(r.Context(), itemID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

// Issue loans an item to a principal. The borrower is the bearer token's
// subject when one is presented; otherwise an explicit user_id is required.
// POST /api/issue
func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"item_id"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body"))
		return
	}

	userID := req.UserID
	if p, ok := domain.PrincipalFromContext(r.Context()); ok {
		userID = p.ID
	}
	if userID == "" {
		h.writeError(w, r, domain.ErrValidation("user_id is required"))
		return
	}
	if req.ItemID == "" {
		h.writeError(w, r, domain.ErrValidation("item_id is required"))
		return
	}

	loan, err := h.ledger.Issue(r.Context(), userID, req.ItemID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toLoanResponse(*loan))
}

// Return closes the open loan for an item. Any caller may return any item.
// POST /api/return
func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrValidation("invalid request body"))
		return
	}
	if req.ItemID == "" {
		h.writeError(w, r, domain.ErrValidation("item_id is required"))
		return
	}

	loan, err := h.ledger.Return(r.Context(), req.ItemID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toLoanResponse(*loan))
}

// ListLoans returns the full loan ledger in creation order.
// GET /api/loans
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.ledger.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		resp = append(resp, toLoanResponse(l))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)
	code := errorCodeFromDomainError(err)

	if status >= 500 {
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", err,
		)
		// Internal details stay out of the response body.
		h.writeJSON(w, status, map[string]string{
			"code":    code,
			"message": "internal server error",
		})
		return
	}

	h.writeJSON(w, status, map[string]string{
		"code":    code,
		"message": err.Error(),
	})
}
