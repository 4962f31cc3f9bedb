package middleware

import (
	"net/http"
	"strings"
	"time"

	"movie-review/internal/data/repository"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthSession rejects requests without a valid session token.
func AuthSession(sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return session(sessionRepo, logger, true)
}

// OptionalAuth resolves the session when a valid token is present. Missing,
// malformed, unknown or expired tokens and store failures all fall through
// as anonymous requests.
func OptionalAuth(sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return session(sessionRepo, logger, false)
}

func session(sessionRepo repository.SessionRepository, logger *zap.Logger, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// reject answers with status on required routes; optional routes
			// serve the request anonymously instead
			reject := func(status int, message string) {
				if !required {
					next.ServeHTTP(w, r)
					return
				}
				if status == http.StatusServiceUnavailable {
					utils.ResponseServiceUnavailable(w, message)
					return
				}
				utils.ResponseUnauthorized(w, message)
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				reject(http.StatusUnauthorized, "Missing authorization token")
				return
			}

			raw, ok := bearerToken(authHeader)
			if !ok {
				reject(http.StatusUnauthorized, "Invalid token format. Use: Bearer <token>")
				return
			}
			token, err := uuid.Parse(raw)
			if err != nil {
				reject(http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			found, err := sessionRepo.FindValid(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				reject(http.StatusServiceUnavailable, "Unable to validate session")
				return
			}

			if found == nil || !found.Active(time.Now()) {
				if required {
					logger.Warn("Invalid or expired session")
				}
				reject(http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), found.UserID)
			ctx = utils.SetTokenContext(ctx, token.String())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
