// Package app wires the auth subsystem together: config, logging, storage,
// signers, the attempt limiter and the service itself. The embedding backend
// constructs an Application and mounts AuthService behind whatever transport
// it runs.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/tokoku/storeapi/internal/auth/limiter"
	"github.com/tokoku/storeapi/internal/auth/notify"
	"github.com/tokoku/storeapi/internal/auth/service"
	"github.com/tokoku/storeapi/internal/auth/store"
	"github.com/tokoku/storeapi/internal/auth/store/drivers/sqlite"
	"github.com/tokoku/storeapi/pkg/jwtx"
	"github.com/tokoku/storeapi/pkg/slogx"
)

// Application holds the wired auth subsystem.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          store.Store
	redisClient *redis.Client

	authService  *service.AuthService
	housekeeping *service.Housekeeping
}

// New builds an Application from config. The returned Application owns the
// store connection; call Close when done.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth",
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Auth exposes the wired service.
func (app *Application) Auth() *service.AuthService { return app.authService }

// Store exposes the underlying store, mainly for the embedding backend's own
// health checks.
func (app *Application) Store() store.Store { return app.db }

// Logger returns the application logger.
func (app *Application) Logger() *slog.Logger { return app.logger }

// StartHousekeeping launches the background token sweep. Call Close (or
// cancel ctx) to stop it.
func (app *Application) StartHousekeeping(ctx context.Context) {
	app.housekeeping.Start(ctx)
}

// Close stops background work and releases the store and limiter backends.
func (app *Application) Close() error {
	app.housekeeping.Stop()

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app.db = db
	return nil
}

func (app *Application) initServices() error {
	accessSigner, err := jwtx.NewSigner(app.cfg.AccessSecret, app.cfg.Issuer, app.cfg.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to build access signer: %w", err)
	}
	refreshSigner, err := jwtx.NewSigner(app.cfg.RefreshSecret, app.cfg.Issuer, app.cfg.RefreshTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to build refresh signer: %w", err)
	}

	app.authService = &service.AuthService{
		Store:         app.db,
		Notifier:      notify.LogNotifier{},
		Limiter:       app.buildLimiter(),
		AccessSigner:  accessSigner,
		RefreshSigner: refreshSigner,
		HashCost:      app.cfg.BcryptCost,
		ResetBaseURL:  app.cfg.ResetBaseURL,
		ResetTokenTTL: app.cfg.ResetTokenTTL,
		CallTimeout:   app.cfg.CallTimeout,
	}

	app.housekeeping = &service.Housekeeping{
		Store:    app.db,
		Interval: app.cfg.HousekeepingInterval,
	}

	return nil
}

// SetNotifier swaps the delivery mechanism in. The default LogNotifier only
// logs links, which is what dev and tests want; production wires a real
// mailer here.
func (app *Application) SetNotifier(n notify.Notifier) {
	app.authService.Notifier = n
}

func (app *Application) buildLimiter() limiter.Limiter {
	switch app.cfg.LimiterBackend {
	case "off":
		return limiter.Noop{}
	case "redis":
		app.redisClient = redis.NewClient(&redis.Options{Addr: app.cfg.RedisAddr})
		return limiter.NewRedis(app.redisClient, app.cfg.LimiterMaxAttempts, app.cfg.LimiterWindow)
	default:
		return limiter.NewMemory(app.cfg.LimiterMaxAttempts, app.cfg.LimiterWindow)
	}
}
