package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys in this package. Only
// this package can create a key of this type, so no other package can read
// or shadow the account ID we store in the request context.
type contextKey string

const accountIDKey contextKey = "accountID"

var errNoAuthHeader = errors.New("auth: no authorization header")

// RequireAuth is the middleware guarding every protected route.
//
// It extracts the bearer credential from the Authorization header, verifies
// it with the TokenService and injects the resolved account ID into the
// request context. A missing header or any verification failure stops the
// chain with a 401.
//
// The response body is identical for every failure mode: whether the token
// was absent, expired, malformed or signed with the wrong key is logged
// server-side only. Distinguishing them in the response would hand an
// attacker an oracle for probing captured tokens.
func RequireAuth(tokens *TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, err := authenticate(r, tokens)
			if err != nil {
				logger.Warn("request rejected",
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				return
			}

			ctx := ContextWithAccountID(r.Context(), accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithAccountID returns a context carrying the account ID exactly
// as RequireAuth stores it. Handler tests use it to simulate an
// authenticated request.
func ContextWithAccountID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}

// AccountIDFromContext retrieves the authenticated account ID set by
// RequireAuth. Handlers on protected routes trust this value completely.
//
// Returns (0, false) if the request never passed the middleware.
func AccountIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(accountIDKey).(int)
	return id, ok && id != 0
}

// authenticate reads the Authorization header and verifies the token.
//
// Clients send the raw token; a "Bearer " scheme prefix is tolerated and
// stripped. Everything after the prefix goes to TokenService.Verify
// untouched.
func authenticate(r *http.Request, tokens *TokenService) (int, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return 0, errNoAuthHeader
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return tokens.Verify(tokenStr)
}
