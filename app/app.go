package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	leaderboardservice "github.com/Broken-Tee-Society/trip-tracker/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Broken-Tee-Society/trip-tracker/app/modules/leaderboard/infrastructure/handlers"
	roundservice "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/application"
	roundevents "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/domain/events"
	roundhandlers "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/handlers"
	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	tripservice "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/application"
	tripevents "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/domain/events"
	triphandlers "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/handlers"
	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	walletservice "github.com/Broken-Tee-Society/trip-tracker/app/modules/wallet/application"
	walletevents "github.com/Broken-Tee-Society/trip-tracker/app/modules/wallet/domain/events"
	wallethandlers "github.com/Broken-Tee-Society/trip-tracker/app/modules/wallet/infrastructure/handlers"
	walletdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/wallet/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/config"
	"github.com/Broken-Tee-Society/trip-tracker/eventbus"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
	"github.com/Broken-Tee-Society/trip-tracker/pkg/jwt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.opentelemetry.io/otel"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-lived resource: database, event bus, HTTP servers.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *bun.DB
	EventBus eventbus.EventBus
	Registry *prometheus.Registry

	httpServer    *http.Server
	metricsServer *http.Server
}

// NewApp wires configuration, storage, the event bus, and every module into
// a runnable application.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := observability.NewLogger(cfg.Observability.Environment)

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	streams := map[string]string{
		tripevents.StreamName:   "trip.>",
		roundevents.StreamName:  "round.>",
		walletevents.StreamName: "wallet.>",
	}
	for name, subject := range streams {
		if err := bus.CreateStream(ctx, name, subject); err != nil {
			bus.Close()
			db.Close()
			return nil, fmt.Errorf("failed to create stream %s: %w", name, err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	tracer := otel.Tracer("trip-tracker")

	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL, cfg.JWT.MagicLinkTTL, cfg.JWT.AppBaseURL)

	tripRepo := &tripdb.TripDBImpl{DB: db}
	roundRepo := &rounddb.RoundDBImpl{DB: db}
	walletRepo := &walletdb.WalletDBImpl{DB: db}

	trips := tripservice.NewTripService(
		tripRepo, bus, logger, observability.NewOperationMetrics(registry, "trip"), tracer)
	rounds := roundservice.NewRoundService(
		roundRepo, tripRepo, bus, logger, observability.NewOperationMetrics(registry, "round"), tracer)
	wallet := walletservice.NewWalletService(
		walletRepo, bus, logger, observability.NewOperationMetrics(registry, "wallet"), tracer)
	leaderboard := leaderboardservice.NewLeaderboardService(
		rounds, tripRepo, logger, observability.NewOperationMetrics(registry, "leaderboard"), tracer)

	router := NewRouter(routerDeps{
		cfg:         cfg,
		logger:      logger,
		tokens:      tokens,
		trip:        triphandlers.NewHandlers(trips, logger),
		round:       roundhandlers.NewHandlers(rounds, logger),
		wallet:      wallethandlers.NewHandlers(wallet, logger),
		leaderboard: leaderboardhandlers.NewHandlers(leaderboard, logger),
	})

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		EventBus: bus,
		Registry: registry,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		metricsServer: &http.Server{
			Addr:              cfg.Observability.MetricsAddress,
			Handler:           metricsMux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Run serves the API and metrics endpoints until ctx is cancelled, then
// shuts both servers down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.Logger.InfoContext(ctx, "Starting API server", attr.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()

	go func() {
		a.Logger.InfoContext(ctx, "Starting metrics server", attr.String("addr", a.metricsServer.Addr))
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		firstErr = fmt.Errorf("api server shutdown: %w", err)
	}
	if err := a.metricsServer.Shutdown(shutdownCtx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("metrics server shutdown: %w", err)
	}
	return firstErr
}

// Close releases the event bus and database connections.
func (a *App) Close() {
	if err := a.EventBus.Close(); err != nil {
		a.Logger.Error("Failed to close event bus", attr.Error(err))
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Failed to close database", attr.Error(err))
	}
}
