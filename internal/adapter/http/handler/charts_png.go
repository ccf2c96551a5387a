package handler

import (
	"fmt"
	"net/http"
	"time"

	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/validator"
	"github.com/wcharczuk/go-chart/v2"
)

// RenderTripSeriesPNG godoc
// @Summary      Trips-over-time line chart
// @Description  Renders the time-binned trip counts as a PNG line chart
// @Tags         Dashboard
// @Produce      image/png
// @Security     BearerAuth
// @Success      200  {string}  string  "png image"
// @Router       /dashboard/charts/trips.png [get]
func (h *Dashboard) RenderTripSeriesPNG(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "render_trip_series_png")

	v := validator.New()
	req := h.parseCriteria(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	series := h.s.TripSeries(ctx, req.ToCriteria(), req.ToChartOptions().Bucket)

	// A line chart needs at least two points; an empty filter result is
	// valid and renders as no content.
	if len(series) < 2 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	xs := make([]time.Time, len(series))
	ys := make([]float64, len(series))
	for i, b := range series {
		xs[i] = b.Bucket
		ys[i] = float64(b.Count)
	}

	graph := chart.Chart{
		Title:  "Trips Over Time",
		Width:  1024,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "trips",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	w.Header().Set("Content-Type", "image/png")
	if err := graph.Render(chart.PNG, w); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to render trips chart", err)
	}
}

// RenderFareHistogramPNG godoc
// @Summary      Fare distribution bar chart
// @Description  Renders the fare histogram as a PNG bar chart
// @Tags         Dashboard
// @Produce      image/png
// @Security     BearerAuth
// @Success      200  {string}  string  "png image"
// @Router       /dashboard/charts/fares.png [get]
func (h *Dashboard) RenderFareHistogramPNG(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "render_fare_histogram_png")

	v := validator.New()
	req := h.parseCriteria(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	series := h.s.FareSeries(ctx, req.ToCriteria(), req.ToChartOptions().Bins)

	if len(series) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	bars := make([]chart.Value, len(series))
	for i, bin := range series {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%.0f", bin.Low),
			Value: float64(bin.Count),
		}
	}

	graph := chart.BarChart{
		Title:    "Fare Distribution",
		Width:    1024,
		Height:   400,
		BarWidth: 12,
		Bars:     bars,
	}

	w.Header().Set("Content-Type", "image/png")
	if err := graph.Render(chart.PNG, w); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to render fares chart", err)
	}
}
