package postgres

import (
	"context"
	"fmt"

	"github.com/mehtaruchit28/ips-ui/backend/models"
	"github.com/mehtaruchit28/ips-ui/backend/repositories"
	"github.com/mehtaruchit28/ips-ui/backend/services"
	"go.uber.org/zap"
)

// PermissionRepository implements the repositories.PermissionRepository interface
type PermissionRepository struct {
	db     *DB
	txMgr  repositories.TransactionManager
	logger *zap.Logger
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *DB, txMgr repositories.TransactionManager, logger *zap.Logger) repositories.PermissionRepository {
	return &PermissionRepository{
		db:     db,
		txMgr:  txMgr,
		logger: logger,
	}
}

// Get loads the saved mapping, roles ordered by position. Both tables are
// read in one transaction so a concurrent Put is seen whole or not at all.
func (r *PermissionRepository) Get(ctx context.Context) ([]models.RolePermissions, error) {
	var mapping []models.RolePermissions
	err := r.txMgr.InTransaction(ctx, func(ctx context.Context) error {
		roles, err := r.loadRoles(ctx)
		if err != nil {
			return err
		}
		if len(roles) == 0 {
			return services.ErrMappingNotFound
		}
		if err := r.loadReports(ctx, roles); err != nil {
			return err
		}
		mapping = roles
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mapping, nil
}

func (r *PermissionRepository) loadRoles(ctx context.Context) ([]models.RolePermissions, error) {
	rows, err := r.db.executor(ctx).QueryContext(ctx, `
		SELECT name, builtin
		FROM permission_roles
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list permission roles: %w", err)
	}
	defer rows.Close()

	var roles []models.RolePermissions
	for rows.Next() {
		var rp models.RolePermissions
		if err := rows.Scan(&rp.Name, &rp.Builtin); err != nil {
			return nil, fmt.Errorf("failed to scan permission role: %w", err)
		}
		rp.Reports = []models.Report{}
		roles = append(roles, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating permission roles: %w", err)
	}
	return roles, nil
}

// loadReports fills in the reports of roles; rows for unknown roles are ignored
func (r *PermissionRepository) loadReports(ctx context.Context, roles []models.RolePermissions) error {
	index := make(map[string]int, len(roles))
	for i, rp := range roles {
		index[rp.Name] = i
	}

	rows, err := r.db.executor(ctx).QueryContext(ctx, `
		SELECT role_name, report
		FROM role_reports
		ORDER BY role_name, position
	`)
	if err != nil {
		return fmt.Errorf("failed to list role reports: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var roleName, report string
		if err := rows.Scan(&roleName, &report); err != nil {
			return fmt.Errorf("failed to scan role report: %w", err)
		}
		i, ok := index[roleName]
		if !ok {
			continue
		}
		parsed, ok := models.ParseReport(report)
		if !ok {
			r.logger.Warn("skipping saved report missing from catalog",
				zap.String("role", roleName),
				zap.String("report", report))
			continue
		}
		roles[i].Reports = append(roles[i].Reports, parsed)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating role reports: %w", err)
	}
	return nil
}

// Put replaces the saved mapping in a single transaction
func (r *PermissionRepository) Put(ctx context.Context, mapping []models.RolePermissions) error {
	err := r.txMgr.InTransaction(ctx, func(ctx context.Context) error {
		executor := r.db.executor(ctx)

		if _, err := executor.ExecContext(ctx, `DELETE FROM role_reports`); err != nil {
			return fmt.Errorf("failed to clear role reports: %w", err)
		}
		if _, err := executor.ExecContext(ctx, `DELETE FROM permission_roles`); err != nil {
			return fmt.Errorf("failed to clear permission roles: %w", err)
		}

		for pos, rp := range mapping {
			if _, err := executor.ExecContext(ctx,
				`INSERT INTO permission_roles (name, builtin, position) VALUES ($1, $2, $3)`,
				rp.Name, rp.Builtin, pos,
			); err != nil {
				return fmt.Errorf("failed to insert role %q: %w", rp.Name, err)
			}
			for i, report := range rp.Reports {
				if _, err := executor.ExecContext(ctx,
					`INSERT INTO role_reports (role_name, report, position) VALUES ($1, $2, $3)`,
					rp.Name, string(report), i,
				); err != nil {
					return fmt.Errorf("failed to insert report for role %q: %w", rp.Name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("permissions saved", zap.Int("roles", len(mapping)))
	return nil
}
