package middleware

import (
	"context"
	"net/http"

	"github.com/mehtaruchit28/ips-ui/backend/services/authgate"
	"github.com/mehtaruchit28/ips-ui/backend/storage"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
	"go.uber.org/zap"
)

// SessionAuthenticator reports whether a client's storage holds a session
type SessionAuthenticator interface {
	IsAuthenticated(ctx context.Context, store storage.KeyValueStore) (bool, error)
}

// AuthMiddleware guards protected pages
type AuthMiddleware struct {
	sessions SessionAuthenticator
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions SessionAuthenticator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// RequireSession runs the auth gate for the request. Without a session the
// client is redirected to the login page and next is never called.
// Must run after ClientMiddleware.Identify.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		store := GetClientStoreFromContext(ctx)
		checker := authgate.SessionCheckerFunc(func(ctx context.Context) (bool, error) {
			if store == nil {
				return false, nil
			}
			return m.sessions.IsAuthenticated(ctx, store)
		})
		navigator := authgate.NavigatorFunc(func(path string) {
			m.logger.Debug("session required, redirecting",
				zap.String("request_id", requestID),
				zap.String("path", r.URL.Path),
				zap.String("to", path))
			utils.Redirect(w, r, path, http.StatusFound)
		})

		authgate.New(checker, navigator, m.logger).Guard(ctx, func() {
			next.ServeHTTP(w, r)
		})
	})
}
