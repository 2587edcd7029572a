package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/arklim/contact-platform/internal/infra/config"
	"github.com/arklim/contact-platform/internal/infra/database"
	"github.com/arklim/contact-platform/internal/infra/logger"
	"github.com/arklim/contact-platform/internal/infra/security"
	postgresrepo "github.com/arklim/contact-platform/internal/repository/postgres"
	"github.com/arklim/contact-platform/internal/transport/http/middleware"
	"github.com/arklim/contact-platform/internal/transport/http/routes"
	"github.com/arklim/contact-platform/internal/usecase"
)

// Application owns the wired dependencies and the HTTP server lifecycle.
type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
}

// New wires configuration, storage, services, and transport into a
// runnable application.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	argonCfg := security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}
	if err := security.ConfigureArgon2(argonCfg); err != nil {
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	if err := database.Migrate(ctx, cfg.Postgres, log); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	userService := usecase.NewUserService(repos.Users, log)
	contactService := usecase.NewContactService(repos.Contacts, log)
	addressService := usecase.NewAddressService(repos.Addresses, contactService, log)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config: cfg,
		Logger: log,
		Services: routes.ServiceSet{
			Users:     userService,
			Contacts:  contactService,
			Addresses: addressService,
		},
		Metrics: metrics,
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
	}, nil
}

// Run serves HTTP until the context is cancelled, then drains in-flight
// requests within the configured shutdown window.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: a.cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       a.cfg.HTTP.ReadTimeout,
		WriteTimeout:      a.cfg.HTTP.WriteTimeout,
		IdleTimeout:       a.cfg.HTTP.IdleTimeout,
	}

	a.logger.Info("starting contact API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownTimeout := a.cfg.HTTP.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = 10 * time.Second
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}

		a.logger.Info("server stopped gracefully")
		return nil
	case err := <-serverErrCh:
		return err
	}
}
