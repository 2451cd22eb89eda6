package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendhub/internal/config"
	"lendhub/internal/domain"
	"lendhub/internal/middleware"
	"lendhub/internal/service"
	"lendhub/internal/store"
)

const testSecret = "test-secret"

type staticClock struct{ t time.Time }

func (c staticClock) Today() time.Time { return c.t }

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	st := store.New()
	catalog := service.NewCatalogService(store.NewCatalogRepo(st))
	directory := service.NewDirectoryService(store.NewPrincipalRepo(st))
	ledger := service.NewLedgerService(
		store.NewLedgerRepo(st, domain.RandomIDGenerator{}),
		staticClock{t: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)},
	)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(catalog, directory, ledger, []byte(testSecret), time.Hour, logger)

	cfg := &config.Config{
		JWTSecret:          testSecret,
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
		CORSAllowedOrigins: []string{"*"},
	}
	srv := httptest.NewServer(NewRouter(h, cfg))
	t.Cleanup(srv.Close)

	ctx := t.Context()
	_, err := catalog.Add(ctx, domain.AddItemRequest{ID: "B001", Title: "Wings of Fire", Author: "A.P.J. Abdul Kalam", Genre: "Autobiography"})
	require.NoError(t, err)
	_, err = catalog.Add(ctx, domain.AddItemRequest{ID: "B002", Title: "The White Tiger", Author: "Aravind Adiga", Genre: "Fiction"})
	require.NoError(t, err)
	_, err = directory.Register(ctx, domain.RegisterPrincipalRequest{ID: "A001", Name: "Admin User", Role: domain.RoleAdmin, Secret: "admin123"})
	require.NoError(t, err)
	_, err = directory.Register(ctx, domain.RegisterPrincipalRequest{ID: "S001", Name: "John Doe", Role: domain.RoleStudent, Secret: "student123"})
	require.NoError(t, err)

	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &decoded))
	}
	return resp, decoded
}

func doJSONList(t *testing.T, url, token string) (*http.Response, []map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestAPI_Login(t *testing.T) {
	srv := setupServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/login", "", map[string]string{
		"user_id": "S001", "password": "student123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "John Doe", user["name"])
	assert.Equal(t, "STUDENT", user["role"])
}

func TestAPI_Login_WrongPassword(t *testing.T) {
	srv := setupServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/login", "", map[string]string{
		"user_id": "S001", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "AUTHENTICATION_FAILED", body["code"])
}

func TestAPI_Register_Duplicate(t *testing.T) {
	srv := setupServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/register", "", map[string]string{
		"user_id": "S001", "name": "Impostor", "password": "x",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_IDENTIFIER", body["code"])
}

func TestAPI_Register_DefaultsToStudent(t *testing.T) {
	srv := setupServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/register", "", map[string]string{
		"user_id": "S002", "name": "Jane Roe", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "STUDENT", body["role"])
}

func TestAPI_ListItems(t *testing.T) {
	srv := setupServer(t)

	resp, items := doJSONList(t, srv.URL+"/api/items", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, items, 2)
	assert.Equal(t, "B001", items[0]["id"])
	assert.Equal(t, true, items[0]["available"])
}

func TestAPI_ListItems_Query(t *testing.T) {
	srv := setupServer(t)

	resp, items := doJSONList(t, srv.URL+"/api/items?q=tiger", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, items, 1)
	assert.Equal(t, "B002", items[0]["id"])
}

func TestAPI_GetItem_NotFound(t *testing.T) {
	srv := setupServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/items/missing", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestAPI_AddItem_Duplicate(t *testing.T) {
	srv := setupServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/items", "", map[string]string{
		"id": "B001", "title": "Clone",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_IDENTIFIER", body["code"])
}

func TestAPI_RemoveItem(t *testing.T) {
	srv := setupServer(t)

	resp, body := doJSON(t, http.MethodDelete, srv.URL+"/api/items/B002", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["removed"])

	// Removing again is a no-op.
	resp, body = doJSON(t, http.MethodDelete, srv.URL+"/api/items/B002", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["removed"])
}

func TestAPI_IssueAndReturn(t *testing.T) {
	srv := setupServer(t)

	resp, loan := doJSON(t, http.MethodPost, srv.URL+"/api/issue", "", map[string]string{
		"item_id": "B001", "user_id": "S001",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "S001", loan["user_id"])
	assert.Equal(t, "B001", loan["item_id"])
	assert.Equal(t, "OPEN", loan["status"])
	assert.Equal(t, "2026-08-29", loan["issue_date"])
	assert.Nil(t, loan["return_date"])
	assert.Len(t, loan["id"].(string), domain.LoanIDLength)

	// The item shows as unavailable while on loan.
	_, items := doJSONList(t, srv.URL+"/api/items?q=wings", "")
	require.Len(t, items, 1)
	assert.Equal(t, false, items[0]["available"])

	// A second issue for the same item fails.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/issue", "", map[string]string{
		"item_id": "B001", "user_id": "A001",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ITEM_UNAVAILABLE", body["code"])

	// Return closes the loan and frees the item.
	resp, closed := doJSON(t, http.MethodPost, srv.URL+"/api/return", "", map[string]string{
		"item_id": "B001",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CLOSED", closed["status"])
	assert.Equal(t, "2026-08-29", closed["return_date"])

	_, items = doJSONList(t, srv.URL+"/api/items?q=wings", "")
	require.Len(t, items, 1)
	assert.Equal(t, true, items[0]["available"])
}

func TestAPI_Issue_TokenSubjectWins(t *testing.T) {
	srv := setupServer(t)

	_, login := doJSON(t, http.MethodPost, srv.URL+"/api/login", "", map[string]string{
		"user_id": "S001", "password": "student123",
	})
	token := login["token"].(string)

	// The body names A001, but the token subject takes precedence.
	resp, loan := doJSON(t, http.MethodPost, srv.URL+"/api/issue", token, map[string]string{
		"item_id": "B001", "user_id": "A001",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "S001", loan["user_id"])
}

func TestAPI_Issue_NoBorrower(t *testing.T) {
	srv := setupServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/issue", "", map[string]string{
		"item_id": "B001",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", body["code"])
}

func TestAPI_Issue_ItemNotFound(t *testing.T) {
	srv := setupServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/issue", "", map[string]string{
		"item_id": "missing", "user_id": "S001",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestAPI_Return_NoOpenLoan(t *testing.T) {
	srv := setupServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/return", "", map[string]string{
		"item_id": "B001",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "NO_ACTIVE_LOAN", body["code"])
}

func TestAPI_ListLoans(t *testing.T) {
	srv := setupServer(t)

	_, _ = doJSON(t, http.MethodPost, srv.URL+"/api/issue", "", map[string]string{
		"item_id": "B001", "user_id": "S001",
	})
	_, _ = doJSON(t, http.MethodPost, srv.URL+"/api/return", "", map[string]string{
		"item_id": "B001",
	})
	_, _ = doJSON(t, http.MethodPost, srv.URL+"/api/issue", "", map[string]string{
		"item_id": "B002", "user_id": "A001",
	})

	resp, loans := doJSONList(t, srv.URL+"/api/loans", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, loans, 2)
	assert.Equal(t, "CLOSED", loans[0]["status"])
	assert.Equal(t, "OPEN", loans[1]["status"])
}

func TestAPI_InvalidToken(t *testing.T) {
	srv := setupServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/issue", "garbage", map[string]string{
		"item_id": "B001", "user_id": "S001",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid bearer token", body["message"])
}

func TestAPI_TokenFromSignHelper(t *testing.T) {
	srv := setupServer(t)

	token, err := middleware.SignPrincipalToken([]byte(testSecret), &domain.Principal{
		ID: "S001", Name: "John Doe", Role: domain.RoleStudent,
	}, time.Hour)
	require.NoError(t, err)

	resp, loan := doJSON(t, http.MethodPost, srv.URL+"/api/issue", token, map[string]string{
		"item_id": "B002",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "S001", loan["user_id"])
}

func TestAPI_CORSHeaders(t *testing.T) {
	srv := setupServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/items", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAPI_RequestIDHeader(t *testing.T) {
	srv := setupServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/healthz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
