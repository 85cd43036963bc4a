// Package server wires the recipebook server together: storage, services,
// the gateway and its HTTP transport. It handles graceful shutdown and
// periodically purges expired refresh tokens.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/logging"
	"github.com/dmitrijs2005/recipebook/internal/server/auth"
	"github.com/dmitrijs2005/recipebook/internal/server/config"
	"github.com/dmitrijs2005/recipebook/internal/server/gateway"
	"github.com/dmitrijs2005/recipebook/internal/server/httpapi"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipebook/internal/server/services"
)

const tokenPurgeInterval = time.Hour

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	userService *services.UserService
	handler     *httpapi.HTTPServer
}

func newLogger(level string) logging.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return logging.NewJSONLogger(os.Stdout, lvl)
}

func NewApp(c *config.Config) (*App, error) {
	logger := newLogger(c.LogLevel)

	app := &App{config: c, logger: logger}

	switch c.Storage {
	case config.StorageMemory:
		app.repomanager = repomanager.NewInMemoryRepositoryManager()
	case config.StoragePostgres:
		db, err := openDB(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		app.db = db
		app.repomanager = repomanager.NewPostgresRepositoryManager(db)
	default:
		return nil, fmt.Errorf("unknown storage %q", c.Storage)
	}

	revoked, err := auth.NewRevocationList(auth.DefaultRevocationCapacity)
	if err != nil {
		return nil, fmt.Errorf("revocation list init error: %w", err)
	}

	app.userService = services.NewUserService(app.repomanager, c, revoked)
	gw := gateway.New(
		app.userService,
		services.NewIngredientService(app.repomanager),
		services.NewRecipeService(app.repomanager),
		services.NewImageService(c),
		logger,
	)

	metrics := httpapi.NewMetrics()
	limiter, err := httpapi.NewRateLimiter(c.AuthRateLimit, c.AuthRateBurst, httpapi.DefaultLimiterCapacity, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("rate limiter init error: %w", err)
	}

	router := httpapi.NewRouter(gw, app.userService, logger, metrics, limiter)
	app.handler = httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, router)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) purgeTokens(ctx context.Context) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.userService.PurgeExpiredTokens(ctx)
			if err != nil {
				app.logger.Error(ctx, "refresh token purge failed", "error", err)
				continue
			}
			app.logger.Debug(ctx, "refresh tokens purged", "count", n)
		}
	}
}

// Run migrates storage and serves until ctx is cancelled or a termination
// signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	if err := app.repomanager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	defer app.closeDB(ctx)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	var runErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := app.handler.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			runErr = err
			cancelFunc()
		}
	}()
	go func() {
		defer wg.Done()
		app.purgeTokens(ctx)
	}()

	wg.Wait()
	app.logger.Info(ctx, "App stopped")
	return runErr
}

func (app *App) closeDB(ctx context.Context) {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
