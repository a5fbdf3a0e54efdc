// Package storage provides the per-browser key-value store that stands in for
// the dashboard's local storage. Keys are scoped by client id so one browser
// never observes another browser's entries.
package storage

import (
	"context"
	"fmt"
)

// KeyValueStore is a persistent string key-value store
type KeyValueStore interface {
	// Get returns the value and whether the key was present
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key
	Set(ctx context.Context, key, value string) error

	// Remove deletes key; removing an absent key is not an error
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by stores that can report connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// namespaced scopes every key of an underlying store under a client id
type namespaced struct {
	store  KeyValueStore
	prefix string
}

// Namespace returns a view of store whose keys are prefixed with client:<clientID>:
func Namespace(store KeyValueStore, clientID string) KeyValueStore {
	return &namespaced{
		store:  store,
		prefix: fmt.Sprintf("client:%s:", clientID),
	}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Remove(ctx context.Context, key string) error {
	return n.store.Remove(ctx, n.prefix+key)
}
