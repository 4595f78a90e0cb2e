// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	mealplanapp "github.com/platebook/v1/internal/application/mealplan"
	recipeapp "github.com/platebook/v1/internal/application/recipe"
	shoppinglistapp "github.com/platebook/v1/internal/application/shoppinglist"
	"github.com/platebook/v1/internal/infrastructure/config"
	"github.com/platebook/v1/internal/infrastructure/http/server"
	"github.com/platebook/v1/internal/infrastructure/monitoring"
	gormRepo "github.com/platebook/v1/internal/infrastructure/persistence/gorm"
	"github.com/platebook/v1/internal/infrastructure/persistence/memory"
	"github.com/platebook/v1/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/platebook/v1/internal/infrastructure/persistence/redis"
	"github.com/platebook/v1/internal/infrastructure/persistence/sqlite"
	"github.com/platebook/v1/internal/ports/outbound"
	"github.com/platebook/v1/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	MonitoringModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
	func(log *zap.Logger) *zap.SugaredLogger {
		return log.Sugar()
	},
)

// DatabaseModule provides the GORM database connection for the configured
// driver and applies migrations and optional seed data
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		var db *gorm.DB
		var err error

		switch cfg.Database.Driver {
		case "postgres":
			db, err = postgres.Connect(cfg, log)
			if err != nil {
				return nil, err
			}
			if cfg.Database.AutoMigrate {
				if err := gormRepo.AutoMigrate(db); err != nil {
					return nil, err
				}
			}
		default:
			logLevel := gormLogger.Silent
			if cfg.App.Debug {
				logLevel = gormLogger.Info
			}

			db, err = sqlite.SetupDatabase(cfg.Database.Database, logLevel)
			if err != nil {
				return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
			}

			log.Info("Connected to SQLite database",
				zap.String("path", cfg.Database.Database),
			)
		}

		if cfg.Database.SeedData {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}
		}

		return db, nil
	},
)

// CacheModule provides the cache repository for the configured backend
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger, metrics *monitoring.MetricsCollector) (outbound.CacheRepository, error) {
		if cfg.Cache.Backend == "redis" {
			client, err := redisRepo.NewClient(cfg, log)
			if err != nil {
				return nil, err
			}
			return redisRepo.NewCacheRepository(client, log, metrics), nil
		}

		log.Info("Using in-memory cache")
		return memory.NewCacheRepository(), nil
	},
)

// MonitoringModule provides the Prometheus metrics collector
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
	gormRepo.NewMealPlanRepository,
	gormRepo.NewShoppingListRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	recipeapp.NewRecipeService,
	mealplanapp.NewMealPlanService,
	shoppinglistapp.NewShoppingListService,
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule registers start and stop hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
