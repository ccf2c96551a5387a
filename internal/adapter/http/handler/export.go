package handler

import (
	"net/http"

	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/validator"
)

// ExportCSV godoc
// @Summary      Export the filtered view
// @Description  Downloads the current filtered view as a CSV attachment
// @Tags         Dashboard
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string  "csv file"
// @Router       /dashboard/export.csv [get]
func (h *Dashboard) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_export")

	v := validator.New()
	req := h.parseCriteria(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	view := h.s.Filter(ctx, req.ToCriteria())

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips_export.csv"`)

	// Headers are already sent once the first row is written, so a failure
	// here can only be logged, not reported to the client.
	if err := h.s.ExportCSV(ctx, w, view); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to export filtered view", err)
	}
}
