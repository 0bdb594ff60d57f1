package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ezzcrafts/testimania/internal/auth"
	"github.com/google/uuid"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// Auth resolves the caller's session token and places the user id in the
// request context. Every owner-scoped endpoint sits behind this.
func Auth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			// 1. Check Authorization header (API clients)
			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}

			// 2. Check cookie (browser sessions)
			if token == "" {
				if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
					token = cookie.Value
				}
			}

			if token == "" {
				unauthorized(w)
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized is a generic denial: no detail about why the session failed.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"User not logged-in"}`))
}

// GetUserID extracts the authenticated user id from the context.
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
