package revenueaggregator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/revenue-aggregator/internal/cache"
	"github.com/magabrotheeeer/revenue-aggregator/internal/config"
	"github.com/magabrotheeeer/revenue-aggregator/internal/lib/jwt"
	"github.com/magabrotheeeer/revenue-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/revenue-aggregator/internal/migrations"
	"github.com/magabrotheeeer/revenue-aggregator/internal/rabbitmq"
	reportservice "github.com/magabrotheeeer/revenue-aggregator/internal/services/report"
	"github.com/magabrotheeeer/revenue-aggregator/internal/storage/repository"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	amqpConn *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	reportService := reportservice.NewReportService(db, cacheRedis, logger, cfg.HorizonMonths)

	amqpConn, err := rabbitmq.Connect(cfg.URL, cfg.ConnectRetries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	amqpChannel, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetInvalidationQueues())
	if err != nil {
		return nil, err
	}
	// Любое событие изменения записей сбрасывает все закэшированные отчёты
	err = rabbitmq.ConsumerMessage(ctx, amqpChannel, rabbitmq.InvalidationQueueName, func(body []byte) error {
		logger.Info("record change event received", slog.String("body", string(body)))
		return reportService.InvalidateReports()
	})
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, reportService, jwtMaker)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
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
		if closeErr := a.amqpConn.Close(); closeErr != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(closeErr))
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Warn("failed to close database connection", sl.Err(closeErr))
		}
		return err
	}
}
