package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/citydash/tripdash/internal/adapter/http/handler/dto"
	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/internal/domain/types"
	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/validator"
)

type DashboardService interface {
	FullRangeCriteria() models.FilterCriteria
	Filter(ctx context.Context, c models.FilterCriteria) []models.TripRecord
	Summary(ctx context.Context, c models.FilterCriteria) models.MetricsSummary
	Geo(ctx context.Context, c models.FilterCriteria) []models.GeoPoint
	TripSeries(ctx context.Context, c models.FilterCriteria, bucket types.TimeBucket) []models.TimeBucketCount
	FareSeries(ctx context.Context, c models.FilterCriteria, bins int) []models.HistogramBin
	DistanceSeries(ctx context.Context, c models.FilterCriteria, bins int) []models.HistogramBin
	Snapshot(ctx context.Context, c models.FilterCriteria, opts models.ChartOptions) *models.DashboardSnapshot
	ExportCSV(ctx context.Context, w io.Writer, view []models.TripRecord) error
}

type Dashboard struct {
	s DashboardService
	l logger.Logger
}

func NewDashboard(s DashboardService, l logger.Logger) *Dashboard {
	return &Dashboard{
		s: s,
		l: l,
	}
}

// parseCriteria reads the filter and chart parameters from the query
// string. Omitted bounds default to the dataset's full range, so a bare
// request means "everything".
func (h *Dashboard) parseCriteria(r *http.Request, v *validator.Validator) *dto.CriteriaRequest {
	qs := r.URL.Query()
	full := h.s.FullRangeCriteria()

	req := &dto.CriteriaRequest{
		From:     readDate(qs, "from", full.From, v),
		To:       readDate(qs, "to", full.To, v),
		MinMiles: readFloat(qs, "min_miles", full.MinMiles, v),
		MaxMiles: readFloat(qs, "max_miles", full.MaxMiles, v),
		Bucket:   readString(qs, "bucket", ""),
		Bins:     readInt(qs, "bins", 0, v),
	}

	req.Validate(v)
	return req
}

// GetSummary godoc
// @Summary      Metrics summary
// @Description  Returns trip count, total/average fare and average distance for the filtered view
// @Tags         Dashboard
// @Produce      json
// @Param        from       query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to         query  string  false  "End date (YYYY-MM-DD)"
// @Param        min_miles  query  number  false  "Minimum trip distance"
// @Param        max_miles  query  number  false  "Maximum trip distance"
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /dashboard/summary [get]
func (h *Dashboard) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_summary")

	v := validator.New()
	req := h.parseCriteria(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	summary := h.s.Summary(ctx, req.ToCriteria())

	if err := writeJSON(w, http.StatusOK, envelope{"summary": summary}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// GetSnapshot godoc
// @Summary      Full dashboard snapshot
// @Description  Runs the whole recompute pipeline: filter, metrics and all chart series
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /dashboard/snapshot [get]
func (h *Dashboard) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_snapshot")

	v := validator.New()
	req := h.parseCriteria(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	snap := h.s.Snapshot(ctx, req.ToCriteria(), req.ToChartOptions())

	if err := writeJSON(w, http.StatusOK, envelope{"snapshot": snap}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// GetGeoSeries godoc
// @Summary      Geographic scatter series
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /dashboard/charts/geo [get]
func (h *Dashboard) GetGeoSeries(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_geo_series")

	v := validator.New()
	req := h.parseCriteria(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	points := h.s.Geo(ctx, req.ToCriteria())

	if err := writeJSON(w, http.StatusOK, envelope{"geo_points": points}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// GetTripSeries godoc
// @Summary      Trips-over-time series
// @Tags         Dashboard
// @Produce      json
// @Param        bucket  query  string  false  "Bucket size: hour or day"
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /dashboard/charts/trips [get]
func (h *Dashboard) GetTripSeries(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_trip_series")

	v := validator.New()
	req := h.parseCriteria(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	series := h.s.TripSeries(ctx, req.ToCriteria(), req.ToChartOptions().Bucket)

	if err := writeJSON(w, http.StatusOK, envelope{"trips_over_time": series}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// GetFareSeries godoc
// @Summary      Fare histogram series
// @Tags         Dashboard
// @Produce      json
// @Param        bins  query  integer  false  "Number of histogram bins"
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /dashboard/charts/fares [get]
func (h *Dashboard) GetFareSeries(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_fare_series")

	v := validator.New()
	req := h.parseCriteria(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	series := h.s.FareSeries(ctx, req.ToCriteria(), req.ToChartOptions().Bins)

	if err := writeJSON(w, http.StatusOK, envelope{"fare_histogram": series}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// GetDistanceSeries godoc
// @Summary      Trip distance histogram series
// @Tags         Dashboard
// @Produce      json
// @Param        bins  query  integer  false  "Number of histogram bins"
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /dashboard/charts/distances [get]
func (h *Dashboard) GetDistanceSeries(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_distance_series")

	v := validator.New()
	req := h.parseCriteria(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	series := h.s.DistanceSeries(ctx, req.ToCriteria(), req.ToChartOptions().Bins)

	if err := writeJSON(w, http.StatusOK, envelope{"distance_histogram": series}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
