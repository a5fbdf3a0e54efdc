package repositories

import (
	"context"

	"github.com/mehtaruchit28/ips-ui/backend/models"
)

// TransactionManager runs a unit of work atomically
type TransactionManager interface {
	// InTransaction runs fn inside one transaction. The ctx handed to fn
	// carries the transaction; a non-nil error from fn rolls it back.
	// Calls made with a ctx that already carries a transaction join it.
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PermissionRepository persists the role -> reports mapping.
// It is the external collaborator behind the permissions page's Save action.
type PermissionRepository interface {
	// Get returns the last saved mapping in role order.
	// Returns services.ErrMappingNotFound when nothing has been saved.
	Get(ctx context.Context) ([]models.RolePermissions, error)

	// Put replaces the saved mapping
	Put(ctx context.Context, mapping []models.RolePermissions) error
}

// Repositories groups every repository the application wires
type Repositories struct {
	Permissions PermissionRepository
}
