package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/citydash/tripdash/config"
	"github.com/citydash/tripdash/internal/adapter/http/handler"
	"github.com/citydash/tripdash/internal/adapter/http/middleware"
	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	ws "github.com/citydash/tripdash/pkg/wsHub"
)

const serviceName = "tripdash"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	health    *handler.Health
	session   *handler.Session
	dashboard *handler.Dashboard
	socket    *handler.DashboardWS
}

func New(
	cfg config.Config,
	dashboardService handler.DashboardService,
	accessService handler.AccessService,
	hub *ws.ConnectionHub,
	datasetSize func() int,
	logger logger.Logger,
) (*API, error) {
	if accessService == nil {
		return nil, errors.New("access service is required")
	}
	if dashboardService == nil {
		return nil, errors.New("dashboard service is required")
	}

	routes := &handlers{
		health:    handler.NewHealth(serviceName, datasetSize, logger),
		session:   handler.NewSession(accessService, logger),
		dashboard: handler.NewDashboard(dashboardService, logger),
		socket:    handler.NewDashboardWS(serviceName, dashboardService, accessService, hub, logger),
	}

	mid := middleware.NewMiddleware(accessService, logger)

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      mid,
		addr:   cfg.Server.Addr(),
		cfg:    cfg,
		log:    logger,
	}

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	api.setupRoutes()

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Metrics(serviceName)(a.m.Logging(a.m.Auth(a.mux)))))
}
