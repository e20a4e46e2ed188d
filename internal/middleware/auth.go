package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/PaulBabatuyi/portfolio-cms/internal/auth"
)

// Auth gate messages. Clients show them verbatim.
const (
	MsgAuthRequired   = "Authentication required"
	MsgSessionExpired = "Session expired. Please login again."
)

// TokenVerifier checks an admin bearer token.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

type adminKey struct{}

// AdminFromContext returns the verified claims placed by RequireAdmin.
func AdminFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(adminKey{}).(*auth.Claims)
	return c, ok
}

// RequireAdmin lets a request through only with a valid admin token.
// A missing token answers 401; a token that fails verification answers 403
// so the client knows to send the admin back to the login screen.
func RequireAdmin(v TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, CodeUnauthorized, MsgAuthRequired)
				return
			}
			claims, err := v.VerifyToken(token)
			if err != nil {
				WriteError(w, http.StatusForbidden, CodeSessionExpired, MsgSessionExpired)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey{}, claims)))
		})
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
// The literal strings "null" and "undefined", which a browser client sends
// when its storage is empty, count as no token.
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	token = strings.TrimSpace(token)
	switch token {
	case "null", "undefined":
		return ""
	}
	return token
}
