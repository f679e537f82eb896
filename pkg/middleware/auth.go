package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/inbasree/weddingvista/pkg/auth"
	"github.com/inbasree/weddingvista/pkg/logger"
	"github.com/inbasree/weddingvista/pkg/response"
)

// ctxClaimsKey is the unexported context key for the authenticated identity.
type ctxClaimsKey struct{}

// Toucher refreshes a user's last-activity timestamp. Implemented by the
// user repository; the refresh is fire-and-forget relative to the response
// and may race harmlessly between concurrent requests (last write wins).
type Toucher interface {
	TouchLastActive(ctx context.Context, userID string) error
}

// ExtractToken pulls the session token from the request, in precedence
// order: Authorization bearer header, x-auth-token header, token cookie,
// token query parameter.
func ExtractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if strings.HasPrefix(strings.ToLower(h), "bearer ") {
			if t := strings.TrimSpace(h[len("bearer "):]); t != "" {
				return t
			}
		}
	}
	if t := r.Header.Get("x-auth-token"); t != "" {
		return t
	}
	if c, err := r.Cookie("token"); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}

// Auth verifies the session token and attaches the decoded identity to the
// request context. On success it refreshes the subject's lastActive
// timestamp in the background.
func Auth(users Toucher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				response.SuccessError(w, http.StatusUnauthorized, "No authentication token, authorization denied")
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.SuccessError(w, http.StatusUnauthorized, "Token is not valid or has expired")
				return
			}

			if users != nil {
				// Detached from the request context: the response must not
				// wait on this write.
				go func(id string) {
					ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
					defer cancel()
					if err := users.TouchLastActive(ctx, id); err != nil {
						logger.Warn("auth: lastActive refresh failed", "user_id", id, "error", err)
					}
				}(claims.UserID)
			}

			ctx := context.WithValue(r.Context(), ctxClaimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromCtx returns the authenticated identity attached by Auth.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(ctxClaimsKey{}).(*auth.Claims)
	return c, ok
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(ctx context.Context) (string, bool) {
	c, ok := ClaimsFromCtx(ctx)
	if !ok {
		return "", false
	}
	return c.Role, true
}
