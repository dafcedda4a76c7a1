package electricchecker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/electric-checker/internal/config"
	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
	"github.com/magabrotheeeer/electric-checker/internal/lib/smtp"
	"github.com/magabrotheeeer/electric-checker/internal/lib/telegram"
	"github.com/magabrotheeeer/electric-checker/internal/migrations"
	"github.com/magabrotheeeer/electric-checker/internal/models"
	"github.com/magabrotheeeer/electric-checker/internal/scheduler"
	auditservice "github.com/magabrotheeeer/electric-checker/internal/services/audit"
	notifierservice "github.com/magabrotheeeer/electric-checker/internal/services/notifier"
	sweeperservice "github.com/magabrotheeeer/electric-checker/internal/services/sweeper"
	"github.com/magabrotheeeer/electric-checker/internal/storage/repository"
)

// App собирает все компоненты сервиса и управляет их жизненным циклом.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	audit     *auditservice.Service
	scheduler *scheduler.Scheduler
}

// New собирает приложение: хранилище, миграции, каналы доставки,
// журнал событий, обход неактивных пользователей, планировщик и HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	emailSender := smtp.NewSender(transport, logger)

	bot, err := telegram.New(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	audit := auditservice.New(db, logger)
	notifier := notifierservice.New(emailSender, bot, audit, logger, cfg.NotifyTimeout)
	sweeper := sweeperservice.New(db, notifier, audit, logger, cfg.Sweep, cfg.SMTP)

	sched := scheduler.New()
	if _, err = sched.ScheduleInterval(cfg.Interval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if _, err := sweeper.Run(ctx); err != nil {
			logger.Error("scheduled check failed", sl.Err(err))
		}
	}); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, audit, sweeper, emailSender, bot)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		audit:     audit,
		scheduler: sched,
	}, nil
}

// Run запускает HTTP-сервер и планировщик, при отмене ctx выполняет
// корректную остановку с таймаутом.
func (a *App) Run(ctx context.Context) error {
	if err := a.audit.Record(ctx, models.LevelInfo,
		"Application startup complete.", "", models.SystemStartup); err != nil {
		return err
	}

	a.scheduler.Start()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.scheduler.Stop()
		if auditErr := a.audit.Record(timeoutCtx, models.LevelInfo,
			"Application shutdown.", "", models.SystemShutdown); auditErr != nil {
			a.logger.Error("failed to record shutdown event", sl.Err(auditErr))
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		return err
	}
}
