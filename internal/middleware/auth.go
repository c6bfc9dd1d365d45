package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// userIDKey carries the authenticated user's ID through the request context.
const userIDKey contextKey = "userID"

// NewUserAuth returns a middleware that requires an X-User-ID header carrying
// a valid UUID and places it in the request context. Requests without one are
// rejected with 401. Anonymous routes (health, share links) are mounted
// outside this middleware.
func NewUserAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("X-User-ID")
			if raw == "" {
				writeAuthError(w, "missing X-User-ID header")
				return
			}
			userID, err := uuid.Parse(raw)
			if err != nil {
				writeAuthError(w, "X-User-ID must be a valid UUID")
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's ID from the request context.
// The second return is false when the auth middleware did not run.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"` + msg + `"}}`))
}
