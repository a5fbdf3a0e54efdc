package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/mehtaruchit28/ips-ui/backend/storage"
	"go.uber.org/zap"
)

// ClientMiddleware gives every browser a stable id and a private slice of
// the key-value store, the server-side counterpart of its local storage.
type ClientMiddleware struct {
	store      storage.KeyValueStore
	cookieName string
	secure     bool
	logger     *zap.Logger
}

// NewClientMiddleware creates a new ClientMiddleware
func NewClientMiddleware(store storage.KeyValueStore, cookieName string, secure bool, logger *zap.Logger) *ClientMiddleware {
	return &ClientMiddleware{
		store:      store,
		cookieName: cookieName,
		secure:     secure,
		logger:     logger,
	}
}

// Identify resolves the client id cookie, issuing a new one when it is
// missing or malformed, and puts the id and namespaced store in the context.
func (m *ClientMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		clientID := ""
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			if id, err := uuid.Parse(cookie.Value); err == nil {
				clientID = id.String()
			}
		}

		if clientID == "" {
			clientID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    clientID,
				Path:     "/",
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
			m.logger.Debug("issued client id",
				zap.String("request_id", GetRequestIDFromContext(ctx)),
				zap.String("client_id", clientID))
		}

		ctx = WithClientID(ctx, clientID)
		ctx = WithClientStore(ctx, storage.Namespace(m.store, clientID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
