// Package middleware provides HTTP middleware: bearer-token identity
// resolution, request IDs, and rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"finledger/internal/auth"
	"finledger/internal/domain"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// UserLookup resolves a verified token back to a live user row. Tokens are
// not self-sufficient proof of continued existence: a user deleted after
// issuance must stop authenticating immediately.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RequireAuth rejects any request without a valid Authorization: Bearer
// token before the handler runs. On success it re-fetches the user from the
// store and attaches a domain.ContextPrincipal to the request context.
//
// All rejection responses use the same generic message; the precise failure
// (expired, bad signature, malformed, deleted user) is logged only.
func RequireAuth(verifier TokenVerifier, users UserLookup, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w, "authentication required")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Info("token rejected",
					"reason", verifyReason(err),
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path)
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				var notFound *domain.NotFoundError
				if errors.As(err, &notFound) {
					logger.Info("token for deleted user rejected",
						"user_id", claims.UserID,
						"request_id", RequestIDFromContext(r.Context()))
					writeUnauthorized(w, "invalid or expired token")
					return
				}
				logger.Error("principal lookup failed",
					"user_id", claims.UserID, "error", err)
				writeStoreFault(w)
				return
			}

			ctx := domain.WithPrincipal(r.Context(), domain.ContextPrincipal{
				UserID: user.ID,
				Email:  user.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifyReason names the internal failure class for diagnostics.
func verifyReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "unauthorized",
		"error":   message,
		"data":    nil,
	})
}

func writeStoreFault(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "internal error",
		"error":   "internal error",
		"data":    nil,
	})
}
