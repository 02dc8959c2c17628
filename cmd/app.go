package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/TravelBuddy-Client/internal/config"
	"github.com/m04kA/TravelBuddy-Client/internal/infra/storage/tokens"
	"github.com/m04kA/TravelBuddy-Client/internal/integrations/travelbuddy"
	"github.com/m04kA/TravelBuddy-Client/internal/session"
	"github.com/m04kA/TravelBuddy-Client/internal/usecase/accounts"
	"github.com/m04kA/TravelBuddy-Client/internal/usecase/search_tickets"
	"github.com/m04kA/TravelBuddy-Client/pkg/clock"
	"github.com/m04kA/TravelBuddy-Client/pkg/logger"
	"github.com/m04kA/TravelBuddy-Client/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

// app зависимости, общие для всех команд
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	clock   clock.Clock
	metrics *metrics.Metrics

	client       *travelbuddy.Client
	clientTokens *session.Store
	adminTokens  *session.Store
	accounts     *accounts.UseCase
	lookup       *search_tickets.Lookup

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	a := &app{
		cfg:   cfg,
		log:   log,
		clock: clock.Real(),
	}

	// Метрики (если включены)
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		a.startMetricsServer()
	}

	// Хранилище сессий
	storage, err := a.openStorage(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.clientTokens = session.NewClient(storage, a.clock, log)
	a.adminTokens = session.NewAdmin(storage, a.clock, log)

	// Клиент бэкенда
	a.client = travelbuddy.NewClient(
		cfg.Backend.URL,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		log,
		travelbuddy.WithMetrics(a.metrics),
		travelbuddy.WithAdminTokens(a.adminTokens),
	)
	log.Info("Backend client initialized (url=%s, timeout=%ds)", cfg.Backend.URL, cfg.Backend.Timeout)

	a.accounts = accounts.NewUseCase(a.client, a.clientTokens, a.adminTokens, log, a.metrics)
	a.lookup = search_tickets.NewLookup(a.client, log)

	return a, nil
}

// openStorage подключает хранилище токенов по session.driver
func (a *app) openStorage(ctx context.Context) (session.Storage, error) {
	cfg := a.cfg.Session

	switch cfg.Driver {
	case config.SessionDriverMemory:
		a.log.Info("Session storage: memory")
		return tokens.NewMemory(), nil

	case config.SessionDriverFile:
		a.log.Info("Session storage: file (path=%s)", cfg.File.Path)
		return tokens.NewFile(cfg.File.Path), nil

	case config.SessionDriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, rdb.Close)

		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis %s: %w", cfg.Redis.Addr, err)
		}
		a.log.Info("Session storage: redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
		return tokens.NewRedis(rdb, cfg.Redis.Prefix), nil

	case config.SessionDriverPostgres:
		db, err := sql.Open("postgres", cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping postgres (host=%s, db=%s): %w",
				cfg.Postgres.Host, cfg.Postgres.DBName, err)
		}

		storage := tokens.NewPostgres(db, cfg.Postgres.Table)
		if err := storage.EnsureTable(ctx); err != nil {
			return nil, err
		}
		a.log.Info("Session storage: postgres (host=%s, port=%d, db=%s)",
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
		return storage, nil

	default:
		return nil, fmt.Errorf("%w: unknown session.driver %q", config.ErrInvalidConfig, cfg.Driver)
	}
}

// startMetricsServer поднимает эндпоинт prometheus на время работы команды
func (a *app) startMetricsServer() {
	r := mux.NewRouter()
	r.Handle(a.cfg.Metrics.Path, a.metrics.Handler()).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Metrics.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.log.Info("Prometheus metrics endpoint exposed at %s%s", srv.Addr, a.cfg.Metrics.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Metrics server failed: %v", err)
		}
	}()

	a.closers = append(a.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	})
}

// Close освобождает ресурсы в обратном порядке
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("Close: %v", err)
		}
	}
	a.closers = nil
}
