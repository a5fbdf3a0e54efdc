package app

import (
	"context"
	"fmt"

	"github.com/mehtaruchit28/ips-ui/backend/config"
	"github.com/mehtaruchit28/ips-ui/backend/middleware"
	"github.com/mehtaruchit28/ips-ui/backend/repositories"
	"github.com/mehtaruchit28/ips-ui/backend/repositories/memory"
	"github.com/mehtaruchit28/ips-ui/backend/repositories/postgres"
	"github.com/mehtaruchit28/ips-ui/backend/services/dashboard"
	"github.com/mehtaruchit28/ips-ui/backend/services/password"
	"github.com/mehtaruchit28/ips-ui/backend/services/session"
	"github.com/mehtaruchit28/ips-ui/backend/services/workspace"
	"github.com/mehtaruchit28/ips-ui/backend/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB // nil unless permissions are stored in PostgreSQL
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Storage
	SessionStore storage.KeyValueStore
	redisStore   *storage.RedisStore

	// Repositories
	Permissions repositories.PermissionRepository
	TxManager   repositories.TransactionManager

	// Services
	Sessions   *session.Service
	Workspaces *workspace.Registry
	Passwords  password.Service
	Content    *dashboard.Content

	// Middleware
	ClientMiddleware *middleware.ClientMiddleware
	AuthMiddleware   *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initSessionStore(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	if err := deps.initRepositories(ctx, cfg); err != nil {
		_ = deps.Close(ctx)
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	if err := deps.initServices(cfg); err != nil {
		_ = deps.Close(ctx)
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	deps.ClientMiddleware = middleware.NewClientMiddleware(deps.SessionStore, cfg.Session.ClientCookie, cfg.Session.CookieSecure, logger)
	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.Sessions, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initSessionStore selects the backing store for per-client storage
func (d *Dependencies) initSessionStore(ctx context.Context, cfg *config.Config) error {
	if cfg.Session.Store != config.StoreRedis {
		d.SessionStore = storage.NewMemoryStore()
		d.Logger.Info("session store initialized", zap.String("backend", config.StoreMemory))
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store := storage.NewRedisStore(client, cfg.Redis.KeyPrefix, d.Logger)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return err
	}

	d.redisStore = store
	d.SessionStore = store
	d.Logger.Info("session store initialized",
		zap.String("backend", config.StoreRedis),
		zap.String("addr", cfg.Redis.Addr))
	return nil
}

// initRepositories initializes the saved-permissions repository
func (d *Dependencies) initRepositories(ctx context.Context, cfg *config.Config) error {
	if !cfg.UsesDatabase() {
		d.Permissions = memory.NewPermissionRepository(d.Logger)
		d.Logger.Info("repositories initialized", zap.String("backend", config.StoreMemory))
		return nil
	}

	factory, err := postgres.NewRepositoryFactory(ctx, cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}
	d.RepoFactory = factory
	d.DB = factory.DB()

	if err := factory.InitSchema(ctx); err != nil {
		return err
	}

	repos := factory.NewRepositories()
	d.Permissions = repos.Permissions
	d.TxManager = factory.TransactionManager()

	d.Logger.Info("repositories initialized", zap.String("backend", config.StorePostgres))
	return nil
}

func (d *Dependencies) initServices(cfg *config.Config) error {
	content, err := dashboard.Load(cfg.Content.File)
	if err != nil {
		return err
	}
	d.Content = content

	d.Sessions = session.NewService(session.Credentials{
		Email:    cfg.Auth.Email,
		Password: cfg.Auth.Password,
	}, cfg.Session.TokenSecret, d.Logger)

	passwords, err := password.NewSimulatedService(cfg.Auth.Password, cfg.PasswordChange.Latency, d.Logger)
	if err != nil {
		return err
	}
	d.Passwords = passwords

	d.Workspaces = workspace.NewRegistry(d.Permissions, d.Logger)
	return nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.redisStore != nil {
		if err := d.redisStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		} else {
			d.Logger.Info("redis connection closed")
		}
	}

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	// Sync logger
	_ = d.Logger.Sync()

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
