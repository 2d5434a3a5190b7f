package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/posadmin/internal/api"
	"github.com/nikolayk812/posadmin/internal/config"
	"github.com/nikolayk812/posadmin/internal/dashboard"
	"github.com/nikolayk812/posadmin/internal/db"
	"github.com/nikolayk812/posadmin/internal/repository"
	"github.com/nikolayk812/posadmin/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("posadmin stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	applied, err := db.Migrate(ctx, pool)
	if err != nil {
		return fmt.Errorf("db.Migrate: %w", err)
	}
	logger.Info("migrations applied", "versions", applied)

	orders, err := service.NewOrderService(
		repository.NewUnitOfWork(pool),
		repository.NewOrder(pool),
		service.WithReversalPricing(cfg.ReversalPricing),
		service.WithIdempotencyCacheSize(cfg.IdempotencyCacheSize),
		service.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("service.NewOrderService: %w", err)
	}

	aggregator, err := dashboard.NewAggregator(
		repository.NewSales(pool),
		dashboard.WithLocation(cfg.Location),
		dashboard.WithCurrency(cfg.Currency),
	)
	if err != nil {
		return fmt.Errorf("dashboard.NewAggregator: %w", err)
	}

	if cfg.AuthToken == "" {
		logger.Warn("authentication disabled", "env", config.EnvAuthToken)
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(logger, cfg.AuthToken, orders, repository.NewProduct(pool), aggregator),
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "timezone", cfg.Location.String(), "pricing", cfg.ReversalPricing)
		errChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}

	return nil
}
