package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout applies a deadline to every request context so store and
// notification calls fail with a context error instead of hanging.
// Handlers that observe the deadline surface 500/unavailable rather than
// holding the connection open.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
