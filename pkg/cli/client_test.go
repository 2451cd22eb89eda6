package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:8080/", "")
	assert.Equal(t, "http://localhost:8080", c.BaseURL)
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok123")
	var out map[string]string
	require.NoError(t, c.get("/ping", &out))
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "ok", out["status"])
}

func TestClient_DecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "ITEM_UNAVAILABLE",
			"message": `item "B001" is currently on loan`,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.post("/api/issue", map[string]string{"item_id": "B001"}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
	assert.Equal(t, "ITEM_UNAVAILABLE", apiErr.Code)
	assert.Contains(t, apiErr.Error(), "ITEM_UNAVAILABLE")
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.get("/api/items", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusGatewayTimeout, apiErr.HTTPStatus)
	assert.Equal(t, "gateway timeout", apiErr.Message)
}

func TestClient_DeleteDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_ = json.NewEncoder(w).Encode(map[string]bool{"removed": true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	var out struct {
		Removed bool `json:"removed"`
	}
	require.NoError(t, c.delete("/api/items/B001", &out))
	assert.True(t, out.Removed)
}
