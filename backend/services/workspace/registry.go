// Package workspace keeps the per-client page state: the role permission
// editor and the user list.
package workspace

import (
	"context"
	"sync"

	"github.com/mehtaruchit28/ips-ui/backend/repositories"
	"github.com/mehtaruchit28/ips-ui/backend/services"
	"github.com/mehtaruchit28/ips-ui/backend/services/permissions"
	"github.com/mehtaruchit28/ips-ui/backend/services/users"
	"go.uber.org/zap"
)

// Workspace is one client's page state
type Workspace struct {
	Permissions *permissions.Store
	Users       *users.Directory
}

// Registry maps client ids to workspaces
type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	repo       repositories.PermissionRepository
	logger     *zap.Logger
}

// NewRegistry creates an empty registry. repo may be nil, in which case
// every workspace starts from the default role mapping.
func NewRegistry(repo repositories.PermissionRepository, logger *zap.Logger) *Registry {
	return &Registry{
		workspaces: make(map[string]*Workspace),
		repo:       repo,
		logger:     logger,
	}
}

// Get returns the client's workspace, creating it on first use. The saved
// mapping is loaded without holding the lock; if two requests race to
// create the same workspace the first one stored wins.
func (r *Registry) Get(ctx context.Context, clientID string) *Workspace {
	if ws, ok := r.lookup(clientID); ok {
		return ws
	}

	ws := &Workspace{
		Permissions: r.newPermissionStore(ctx, clientID),
		Users:       users.NewDirectory(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.workspaces[clientID]; ok {
		return existing
	}
	r.workspaces[clientID] = ws
	return ws
}

func (r *Registry) lookup(clientID string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[clientID]
	return ws, ok
}

// Forget drops the client's workspace
func (r *Registry) Forget(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workspaces, clientID)
}

// Len returns the number of live workspaces
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

func (r *Registry) newPermissionStore(ctx context.Context, clientID string) *permissions.Store {
	store := permissions.NewStore()
	if r.repo == nil {
		return store
	}

	mapping, err := r.repo.Get(ctx)
	switch {
	case services.IsNotFoundError(err):
		return store
	case err != nil:
		r.logger.Warn("failed to load saved permissions, using defaults",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		return store
	}

	if err := store.Restore(mapping); err != nil {
		r.logger.Warn("saved permissions rejected, using defaults",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
	}
	return store
}
