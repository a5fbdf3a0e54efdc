package postgres

import (
	"context"
	"database/sql"

	"github.com/mehtaruchit28/ips-ui/backend/config"
	"github.com/mehtaruchit28/ips-ui/backend/repositories"
	"go.uber.org/zap"
)

// RepositoryFactory owns the connection pool behind the PostgreSQL repositories
type RepositoryFactory struct {
	db     *DB
	txMgr  *TransactionManager
	logger *zap.Logger
}

// NewRepositoryFactory connects to the database described by cfg
func NewRepositoryFactory(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*RepositoryFactory, error) {
	db, err := NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	return newRepositoryFactory(db, logger), nil
}

// Saves replace both tables wholesale; serializable transactions keep
// concurrent saves from interleaving rows.
func newRepositoryFactory(db *DB, logger *zap.Logger) *RepositoryFactory {
	return &RepositoryFactory{
		db:     db,
		txMgr:  NewTransactionManager(db, logger, WithIsolation(sql.LevelSerializable)),
		logger: logger,
	}
}

// InitSchema creates the tables the repositories need
func (f *RepositoryFactory) InitSchema(ctx context.Context) error {
	return f.db.InitSchema(ctx)
}

// NewRepositories creates all repository instances
func (f *RepositoryFactory) NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Permissions: NewPermissionRepository(f.db, f.txMgr, f.logger),
	}
}

// TransactionManager returns the manager shared by the repositories
func (f *RepositoryFactory) TransactionManager() repositories.TransactionManager {
	return f.txMgr
}

// DB returns the connection pool
func (f *RepositoryFactory) DB() *DB {
	return f.db
}

// Close closes the connection pool
func (f *RepositoryFactory) Close() error {
	return f.db.Close()
}
