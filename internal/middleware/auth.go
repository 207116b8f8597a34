package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/util"

	"github.com/rs/zerolog"
)

// Injected key type to avoid context collisions
type contextKey string

const (
	UserContextKey  = contextKey("user")
	EmailContextKey = contextKey("email")
)

// AuthMiddleware extracts the Bearer token, validates it, and puts the
// authenticated user ID and email into the request context. Failures get a
// 401 with an AUTHENTICATION_ERROR envelope.
func AuthMiddleware(jwtSecret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, logger, "Authorization header missing")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeAuthError(w, logger, "Invalid authorization header")
				return
			}
			claims, err := util.ValidateToken(parts[1], jwtSecret)
			if err != nil {
				logger.Debug().Err(err).Msg("Token validation failed")
				msg := "Invalid token"
				if errors.Is(err, util.ErrTokenExpired) {
					msg = "Token has expired"
				}
				writeAuthError(w, logger, msg)
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, claims.Subject)
			ctx = context.WithValue(ctx, EmailContextKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, logger zerolog.Logger, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(dto.ErrorResponse(dto.CodeAuthenticationError, message)); err != nil {
		logger.Error().Err(err).Msg("Failed to write auth error response")
	}
}
