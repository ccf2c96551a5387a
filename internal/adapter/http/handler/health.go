package handler

import (
	"net/http"

	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
)

type Health struct {
	serviceName string
	datasetSize func() int
	log         logger.Logger
}

func NewHealth(serviceName string, datasetSize func() int, log logger.Logger) *Health {
	return &Health{
		serviceName: serviceName,
		datasetSize: datasetSize,
		log:         log,
	}
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Returns the health status of the service and the loaded dataset size
// @Tags         Health
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
// HealthCheck - returns system information.
func (a *Health) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "health_check")

	response := envelope{
		"status": "available",
		"system_info": map[string]any{
			"service-name": a.serviceName,
			"dataset_rows": a.datasetSize(),
		},
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		a.log.Error(ctx, "healthcheck", err)
		return
	}
}
