package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"library-backend/internal/config"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	"library-backend/internal/domains/lending"
	lendingHandler "library-backend/internal/domains/lending/handler"
	lendingService "library-backend/internal/domains/lending/service"
	"library-backend/internal/domains/lending/store"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/middleware"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Exactly one of DB and
// SQLite is set, depending on Config.Storage.Driver.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	SQLite     *sqlx.DB
	Cache      *infraCache.RedisCache // nil when Redis is disabled
	JWTManager *jwt.Manager

	// Repositories (outside any transaction)
	UserRepo userRepo.Repository
	BookRepo bookRepo.RepositoryInterface
	Lending  lending.UnitOfWork

	// Services
	UserService    *userService.UserService
	BookService    *bookService.BookService
	LendingService *lendingService.LendingService

	// HTTP
	UserHandler    *userHandler.UserHandler
	BookHandler    *bookHandler.Handler
	LendingHandler *lendingHandler.Handler
	AuthLimiter    *middleware.IPRateLimiter
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph in dependency order:
// storage → cache → repositories → services → handlers.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger.Info("initializing container", map[string]interface{}{
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Driver,
	})

	c := &Container{Config: cfg}

	// STEP 1: STORAGE
	if err := c.initStorage(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	// STEP 2: CACHE (optional)
	c.initCache(ctx)

	// STEP 3: TOKENS
	c.JWTManager = jwt.NewManager(jwt.Config{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL,
	})

	// STEP 4: SERVICES
	if err := c.initServices(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	// STEP 5: HANDLERS
	c.initHandlers()

	logger.Info("container initialized", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.Storage.Driver {
	case config.DriverPostgres:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := db.Connect(connectCtx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db

		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}

		c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
		c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)
		c.Lending = store.NewPostgresStore(db.Pool)

	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, c.Config.Storage.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		c.SQLite = db

		c.UserRepo = userRepo.NewSQLiteRepository(db)
		c.BookRepo = bookRepo.NewSQLiteRepository(db)
		c.Lending = store.NewSQLiteStore(db)

	default:
		return fmt.Errorf("unknown storage driver %q", c.Config.Storage.Driver)
	}

	logger.Info("storage ready", map[string]interface{}{"driver": c.Config.Storage.Driver})
	return nil
}

// initCache connects Redis. Failure is not fatal: the client keeps retrying
// and login throttling fails open meanwhile.
func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Redis.Enabled {
		logger.Debug("redis disabled, login throttling off")
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		logger.Warn("redis connection failed (non-critical)", err)
	}
	c.Cache = rc
}

func (c *Container) initServices() error {
	var counter cache.Counter
	if c.Cache != nil {
		counter = c.Cache
	}

	users, err := userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		userService.NewLoginThrottle(counter, c.Config.Auth.MaxFailedLogins, c.Config.Auth.LockoutWindow),
		userService.Config{
			BcryptCost:      c.Config.Auth.BcryptCost,
			MaxFailedLogins: c.Config.Auth.MaxFailedLogins,
			LockoutWindow:   c.Config.Auth.LockoutWindow,
		},
	)
	if err != nil {
		return err
	}
	c.UserService = users

	c.BookService = bookService.NewService(c.BookRepo)
	c.LendingService = lendingService.NewService(c.Lending)
	return nil
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.LendingHandler = lendingHandler.NewHandler(c.LendingService)
	c.AuthLimiter = middleware.NewIPRateLimiter(c.Config.Auth.RateLimitPerMinute, c.Config.Auth.RateLimitBurst)
}

// ========================================
// HEALTH
// ========================================

// Health reports per-dependency status and whether the service can serve
// requests. Redis is advisory: its failure degrades but does not fail.
func (c *Container) Health(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{}
	healthy := true

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var dbErr error
	switch {
	case c.DB != nil:
		dbErr = c.DB.HealthCheck(ctx)
	case c.SQLite != nil:
		dbErr = c.SQLite.PingContext(ctx)
	default:
		dbErr = fmt.Errorf("no database configured")
	}
	if dbErr != nil {
		status["database"] = "error"
		healthy = false
		logger.Error("database health check failed", dbErr)
	} else {
		status["database"] = "ok"
	}

	switch {
	case c.Cache == nil:
		status["redis"] = "disabled"
	case c.Cache.Ping(ctx) != nil:
		status["redis"] = "error"
	default:
		status["redis"] = "ok"
	}

	return status, healthy
}

// Cleanup releases connections; safe on a partially built container
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Warn("failed to close database", err)
		}
	}
	if c.SQLite != nil {
		if err := c.SQLite.Close(); err != nil {
			logger.Warn("failed to close sqlite", err)
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Warn("failed to close redis", err)
		}
	}
	logger.Debug("container cleanup completed")
}
