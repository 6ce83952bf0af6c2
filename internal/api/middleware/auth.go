package middleware

import (
	"context"
	"errors"
	"net/http"
	"wings_cafe/internal/common"
	"wings_cafe/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UsernameCtxKey contextKey = "username"
)

// Authenticator gates protected routes on the bearer token the Verifier
// middleware parsed. A missing token is 401; a token that fails signature
// or expiry checks is 403.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if errors.Is(err, jwtauth.ErrNoTokenFound) {
			common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if err != nil || token == nil {
			common.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusForbidden, "Invalid token claims: "+err.Error())
			return
		}
		username, err := security.GetUsernameFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusForbidden, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, UsernameCtxKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// Helper to get username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}
