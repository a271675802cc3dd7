package middleware

import (
	"net/http"

	"github.com/alfagnish/demo-service/internal/identity"
)

// Identity attaches the header-derived identity label to the request context.
// It never rejects a request: a missing Authorization header is recorded as
// anonymous and passed through.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := identity.WithLabel(r.Context(), identity.Resolve(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
