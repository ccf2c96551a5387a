package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/citydash/tripdash/config"
	httpserver "github.com/citydash/tripdash/internal/adapter/http/server"
	"github.com/citydash/tripdash/internal/adapter/parquet"
	"github.com/citydash/tripdash/internal/adapter/postgres"
	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/internal/domain/types"
	"github.com/citydash/tripdash/internal/service/access"
	"github.com/citydash/tripdash/internal/service/trips"
	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/metrics"
	postgresclient "github.com/citydash/tripdash/pkg/postgres"
	ws "github.com/citydash/tripdash/pkg/wsHub"
)

const serviceName = "tripdash"

type App struct {
	postgresDB *postgresclient.PostgreDB
	httpServer *httpserver.API
	hub        *ws.ConnectionHub

	cfg config.Config
	log logger.Logger
}

func New(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	ctx = wrap.WithAction(ctx, "app_init")

	var db *postgresclient.PostgreDB

	// The dataset is loaded once at startup and served read-only after that.
	var dataset *models.TripDataset

	switch cfg.Dataset.SourceType() {
	case types.FileSource:
		loader := parquet.NewLoader(cfg.Dataset.Path, log)

		ds, err := loader.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset from file: %w", err)
		}
		dataset = ds
	case types.PostgresSource:
		pg, err := postgresclient.New(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		db = pg

		repo := postgres.NewTripRepo(pg.Pool, cfg.Dataset.Table, serviceName, log)

		ds, err := repo.Load(ctx)
		if err != nil {
			pg.Pool.Close()
			return nil, fmt.Errorf("failed to load dataset from postgres: %w", err)
		}
		dataset = ds
	default:
		return nil, fmt.Errorf("unknown dataset source: %s", cfg.Dataset.Source)
	}

	metrics.DatasetRowsLoaded.WithLabelValues(serviceName, dataset.Source).Set(float64(dataset.Size()))
	log.Info(ctx, "dataset loaded",
		"source", cfg.Dataset.Source,
		"rows", dataset.Size(),
	)

	// services
	tripSvc := trips.New(serviceName, dataset, log)
	tokenSvc := access.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, log)
	gate := access.NewGate(serviceName, cfg.Auth.DashboardSecret, tokenSvc, log)

	hub := ws.NewConnHub(log)

	server, err := httpserver.New(cfg, tripSvc, gate, hub, dataset.Size, log)
	if err != nil {
		return nil, err
	}

	return &App{
		postgresDB: db,
		httpServer: server,
		hub:        hub,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "application closed")
	}()

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "application started")
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	a.hub.Close()

	if a.postgresDB != nil {
		a.postgresDB.Pool.Close()
	}
}
