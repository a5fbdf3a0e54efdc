// Package memory holds process-local repository implementations used when no
// database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/mehtaruchit28/ips-ui/backend/models"
	"github.com/mehtaruchit28/ips-ui/backend/repositories"
	"github.com/mehtaruchit28/ips-ui/backend/services"
	"go.uber.org/zap"
)

// PermissionRepository keeps the saved mapping in memory
type PermissionRepository struct {
	mu      sync.RWMutex
	mapping []models.RolePermissions
	saved   bool
	logger  *zap.Logger
}

// NewPermissionRepository creates an empty repository
func NewPermissionRepository(logger *zap.Logger) repositories.PermissionRepository {
	return &PermissionRepository{logger: logger}
}

// Get returns a copy of the saved mapping
func (r *PermissionRepository) Get(ctx context.Context) ([]models.RolePermissions, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.saved {
		return nil, services.ErrMappingNotFound
	}
	return cloneMapping(r.mapping), nil
}

// Put replaces the saved mapping with a copy of mapping
func (r *PermissionRepository) Put(ctx context.Context, mapping []models.RolePermissions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mapping = cloneMapping(mapping)
	r.saved = true
	r.logger.Debug("permissions saved", zap.Int("roles", len(mapping)))
	return nil
}

func cloneMapping(in []models.RolePermissions) []models.RolePermissions {
	out := make([]models.RolePermissions, len(in))
	for i, rp := range in {
		reports := make([]models.Report, len(rp.Reports))
		copy(reports, rp.Reports)
		out[i] = models.RolePermissions{Name: rp.Name, Builtin: rp.Builtin, Reports: reports}
	}
	return out
}
