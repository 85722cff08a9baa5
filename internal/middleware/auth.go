package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/crucial707/expense-tracker/internal/auth"
	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/crucial707/expense-tracker/internal/repo"
)

type ctxKey string

const userKey ctxKey = "current_user"

// Authenticate resolves the bearer credential on each request: it extracts the
// Authorization header, verifies the access token, and loads the subject user.
// Every defect — missing header, bad prefix, bad signature, expiry, or a
// subject with no matching user — produces the same 401, so the response never
// reveals which check failed. One token verification and at most one store
// lookup per request; nothing is cached.
func Authenticate(tokens *auth.TokenService, users *repo.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w)
				return
			}

			subject, err := tokens.VerifyAccess(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetByUsername(r.Context(), subject)
			if err == sql.ErrNoRows {
				unauthorized(w)
				return
			}
			if err != nil {
				slog.Error("auth: user lookup failed", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error":      "internal server error",
					"success":    false,
					"statuscode": http.StatusInternalServerError,
					"message":    "Something went wrong. Please try again.",
				})
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user placed in the context by Authenticate.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// WithUser returns a context carrying user. Test helper for handlers that run
// without the middleware chain.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      "Invalid authentication credentials",
		"success":    false,
		"statuscode": http.StatusUnauthorized,
		"message":    "Authentication required. Provide a valid bearer token.",
	})
}
