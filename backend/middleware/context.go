package middleware

import (
	"context"

	"github.com/mehtaruchit28/ips-ui/backend/storage"
)

// Context key type to avoid collisions
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"

	// ClientIDKey is the context key for the browser's client id
	ClientIDKey contextKey = "client_id"

	// ClientStoreKey is the context key for the client's key-value storage
	ClientStoreKey contextKey = "client_store"
)

// GetRequestIDFromContext retrieves the request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	if val := ctx.Value(RequestIDKey); val != nil {
		if requestID, ok := val.(string); ok {
			return requestID
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetClientIDFromContext retrieves the client id from context
func GetClientIDFromContext(ctx context.Context) string {
	if val := ctx.Value(ClientIDKey); val != nil {
		if clientID, ok := val.(string); ok {
			return clientID
		}
	}
	return ""
}

// WithClientID adds a client id to the context
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ClientIDKey, clientID)
}

// GetClientStoreFromContext retrieves the client's storage from context
func GetClientStoreFromContext(ctx context.Context) storage.KeyValueStore {
	if val := ctx.Value(ClientStoreKey); val != nil {
		if store, ok := val.(storage.KeyValueStore); ok {
			return store
		}
	}
	return nil
}

// WithClientStore adds the client's storage to the context
func WithClientStore(ctx context.Context, store storage.KeyValueStore) context.Context {
	return context.WithValue(ctx, ClientStoreKey, store)
}
