package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/loddgo/loddgo-api/internal/api"
	"github.com/loddgo/loddgo-api/internal/api/middleware"
	"github.com/loddgo/loddgo-api/internal/config"
	"github.com/loddgo/loddgo-api/internal/db"
	"github.com/loddgo/loddgo-api/internal/logger"
	"github.com/loddgo/loddgo-api/internal/pkg/mq"
	"github.com/loddgo/loddgo-api/internal/pkg/obs"
	"github.com/loddgo/loddgo-api/internal/repository/cache"
)

const (
	configPath      = "./cmd/app/config.yml"
	shutdownTimeout = 10 * time.Second
)

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, conf.Tracing, conf.API.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing -> %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			zap.L().Warn("failed to flush traces", zap.Error(err))
		}
	}()

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL, conf.Postgres)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	deps := api.Dependencies{
		Admin: middleware.NewAdminAuthenticator(conf.Admin),
	}

	if conf.Redis != nil && conf.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		if err = client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis -> %w", err)
		}
		defer func() { _ = client.Close() }()

		deps.Cache = cache.NewRedisIdempotencyCache(client, conf.Redis.TTL)
		zap.L().Info("idempotency cache enabled", zap.String("addr", conf.Redis.Addr))
	}

	if conf.RabbitMQ != nil && conf.RabbitMQ.Enabled {
		publisher, err := mq.NewPublisher(conf.RabbitMQ.URL, conf.RabbitMQ.Exchange)
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq -> %w", err)
		}
		defer func() { _ = publisher.Close() }()

		deps.Publisher = publisher
		zap.L().Info("event publishing enabled", zap.String("exchange", conf.RabbitMQ.Exchange))
	}

	if err = config.Watch(configPath, func(c *config.AppConfig) {
		deps.Admin.Update(c.Admin)
	}); err != nil {
		zap.L().Warn("config watch disabled", zap.Error(err))
	}

	s := api.NewServer(conf, postgresDB, deps)
	go s.Live.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}
