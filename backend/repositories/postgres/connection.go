package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/mehtaruchit28/ips-ui/backend/config"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB opens the pool and verifies the server answers
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (db *DB) Close() error {
	stats := db.DB.Stats()
	db.logger.Info("closing database connection",
		zap.Int("open_connections", stats.OpenConnections),
		zap.Int64("wait_count", stats.WaitCount))
	return db.DB.Close()
}

// HealthCheck pings the server and runs a trivial query
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// schema holds the saved-permissions tables, applied in order
var schema = []string{
	`CREATE TABLE IF NOT EXISTS permission_roles (
		name VARCHAR(100) PRIMARY KEY,
		builtin BOOLEAN NOT NULL DEFAULT false,
		position INTEGER NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS role_reports (
		role_name VARCHAR(100) NOT NULL REFERENCES permission_roles(name) ON DELETE CASCADE,
		report VARCHAR(100) NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (role_name, report)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_permission_roles_position ON permission_roles(position)`,
	`CREATE INDEX IF NOT EXISTS idx_role_reports_role_position ON role_reports(role_name, position)`,
}

// InitSchema creates the saved-permissions tables in one transaction
func (db *DB) InitSchema(ctx context.Context) error {
	err := NewTransactionManager(db, db.logger).InTransaction(ctx, func(ctx context.Context) error {
		for i, stmt := range schema {
			if _, err := db.executor(ctx).ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("database schema initialized", zap.Int("statements", len(schema)))
	return nil
}
