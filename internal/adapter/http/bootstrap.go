package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.uber.org/zap"

	"blogapp/internal/adapter/database/postgres"
	pgrepository "blogapp/internal/adapter/database/postgres/repository"
	"blogapp/internal/adapter/database/sqlite"
	sqliterepository "blogapp/internal/adapter/database/sqlite/repository"
	"blogapp/internal/adapter/http/handler"
	"blogapp/internal/adapter/http/routes"
	"blogapp/internal/adapter/mail"
	"blogapp/internal/adapter/token"
	"blogapp/internal/core/port"
	"blogapp/internal/core/telemetry"
	"blogapp/pkg/config"
)

const shutdownTimeout = 10 * time.Second

type store struct {
	users      port.UserRepository
	categories port.CategoryRepository
	ping       handler.PingFunc
	close      func()
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (*store, error) {
	switch cfg.Driver {
	case "postgres":
		if err := postgres.RunMigrations(cfg.URL); err != nil {
			return nil, err
		}

		db, err := postgres.NewDB(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}

		return &store{
			users:      pgrepository.NewUserRepository(db),
			categories: pgrepository.NewCategoryRepository(db),
			ping:       db.Ping,
			close:      db.Close,
		}, nil
	case "sqlite":
		db, err := sqlite.NewDB(cfg.Path)
		if err != nil {
			return nil, err
		}

		return &store{
			users:      sqliterepository.NewUserRepository(db),
			categories: sqliterepository.NewCategoryRepository(db),
			ping:       db.PingContext,
			close:      func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func newMailer(cfg *config.AppConfig, metrics *telemetry.AppMetrics, logger *config.LokiLogger) (port.NotificationSender, error) {
	var sender port.NotificationSender

	switch cfg.Mail.Driver {
	case "smtp":
		smtp, err := mail.NewSMTPSender(cfg.Mail, cfg.Auth.CodeTTL)
		if err != nil {
			return nil, err
		}
		sender = smtp
	default:
		sender = mail.NewLogSender(logger, cfg.Auth.CodeTTL)
	}

	return mail.WithMetrics(sender, metrics), nil
}

// StartServerWithConfig serves the API until ctx is cancelled, then drains
// in-flight requests.
func StartServerWithConfig(ctx context.Context, cfg *config.AppConfig, metrics *telemetry.AppMetrics, probe port.Telemetry, logger *config.LokiLogger) error {
	st, err := openStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	defer st.close()

	mailer, err := newMailer(cfg, metrics, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}

	container := NewContainer(Dependencies{
		Users:      st.users,
		Categories: st.categories,
		Ping:       st.ping,
		Tokens:     token.NewJWTCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Mailer:     mailer,
		Probe:      probe,
		Logger:     logger,
		CodeTTL:    cfg.Auth.CodeTTL,
	})

	router := routes.SetupRouterWithConfig(container.Handlers(), metrics, logger, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	slog.Info("Server starting",
		"port", cfg.Server.Port,
		"environment", cfg.Environment,
		"database", cfg.Database.Driver,
		"mail", cfg.Mail.Driver,
		"https_enforced", cfg.EnforceHTTPS)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down gracefully...", zap.Duration("timeout", shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
