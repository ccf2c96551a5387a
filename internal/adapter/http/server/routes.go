package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System Health
	a.mux.HandleFunc("/health", a.routes.health.HealthCheck)

	a.setupSwaggerRoutes()
	a.setupMetricsRoute()

	// Access gate
	a.mux.HandleFunc("POST /session", a.routes.session.Login)

	// Dashboard, requires an active session
	a.mux.Handle("GET /dashboard/summary", a.m.RequireSession(a.routes.dashboard.GetSummary))           // Summary metrics for the current selection
	a.mux.Handle("GET /dashboard/snapshot", a.m.RequireSession(a.routes.dashboard.GetSnapshot))         // Full recomputed snapshot
	a.mux.Handle("GET /dashboard/charts/geo", a.m.RequireSession(a.routes.dashboard.GetGeoSeries))      // Pickup/dropoff coordinates
	a.mux.Handle("GET /dashboard/charts/trips", a.m.RequireSession(a.routes.dashboard.GetTripSeries))   // Trips over time series
	a.mux.Handle("GET /dashboard/charts/fares", a.m.RequireSession(a.routes.dashboard.GetFareSeries))   // Fare histogram bins
	a.mux.Handle("GET /dashboard/charts/distances", a.m.RequireSession(a.routes.dashboard.GetDistanceSeries))
	a.mux.Handle("GET /dashboard/charts/trips.png", a.m.RequireSession(a.routes.dashboard.RenderTripSeriesPNG))
	a.mux.Handle("GET /dashboard/charts/fares.png", a.m.RequireSession(a.routes.dashboard.RenderFareHistogramPNG))
	a.mux.Handle("GET /dashboard/export.csv", a.m.RequireSession(a.routes.dashboard.ExportCSV))

	// WebSocket connection for live dashboard viewers, token passed as query param
	a.mux.HandleFunc("GET /ws/dashboard", a.routes.socket.HandleWS)
}

// setupSwaggerRoutes configures the Swagger UI endpoint
func (a *API) setupSwaggerRoutes() {
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler())
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func (a *API) setupMetricsRoute() {
	a.mux.Handle("/metrics", promhttp.Handler())
}
