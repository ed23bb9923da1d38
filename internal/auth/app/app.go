package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/vocabhq/vocab/internal/auth/http"
	"github.com/vocabhq/vocab/internal/auth/service"
	"github.com/vocabhq/vocab/internal/auth/store"
	redisdriver "github.com/vocabhq/vocab/internal/auth/store/drivers/redis"
	"github.com/vocabhq/vocab/internal/auth/store/drivers/sqlite"
	"github.com/vocabhq/vocab/pkg/cryptox"
	"github.com/vocabhq/vocab/pkg/jwtx"
	"github.com/vocabhq/vocab/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application wires the token authority together: credential store, refresh
// store, token services and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	refresh store.RefreshTokens
	codec   *jwtx.Codec

	tokenService *service.TokenService
	authService  *service.AuthService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	key, err := cryptox.DeriveSigningKey(cfg.SigningPassphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	app.codec, err = jwtx.NewCodec(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initRefreshStore(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.refresh.Close(); err != nil {
		app.logger.Error("error closing refresh store", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initRefreshStore() error {
	if app.cfg.RefreshStore == "redis" {
		app.refresh = redisdriver.NewRefreshTokens(redisdriver.Config{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})
		if err := app.refresh.Ping(context.Background()); err != nil {
			return fmt.Errorf("failed to reach redis refresh store: %w", err)
		}
		app.logger.Info("using redis refresh-token store", "addr", app.cfg.RedisAddr)
		return nil
	}

	sqliteStore, ok := app.db.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("sqlite refresh store requires the sqlite credential store")
	}
	app.refresh = sqliteStore.RefreshTokens()
	app.logger.Info("using sqlite refresh-token store")
	return nil
}

func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Codec:      app.codec,
		Users:      app.db.Users(),
		Refresh:    app.refresh,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	}
	app.authService = &service.AuthService{
		Users:  app.db.Users(),
		Tokens: app.tokenService,
	}
}

func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(app.codec, BuildVersion, app.db, app.refresh, app.logger)
	app.router.AuthService = app.authService
	app.router.TokenService = app.tokenService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
