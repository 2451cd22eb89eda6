package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// maxRequestIDLength caps client-supplied X-Request-ID values. An oversized
// identifier is replaced outright rather than truncated so log fields never
// carry a value the caller did not actually send.
const maxRequestIDLength = 64

// RequestID tags each request with an identifier that handlers carry into
// their log lines, so a failed issue or return can be correlated across
// client and server logs. A reasonable incoming X-Request-ID is honored;
// otherwise a fresh UUID is minted. The identifier is echoed on the response
// and stored in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext extracts the request ID from the context.
// Returns an empty string if no request ID is present.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
