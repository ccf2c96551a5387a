package trips

import (
	"github.com/citydash/tripdash/internal/domain/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes the scalar aggregates over a filtered view. An empty
// view yields the zero-value summary; zero is the documented sentinel and
// no division ever happens for the empty case.
func Summarize(view []models.TripRecord) models.MetricsSummary {
	if len(view) == 0 {
		return models.MetricsSummary{}
	}

	fares := make([]float64, len(view))
	miles := make([]float64, len(view))
	for i, r := range view {
		fares[i] = r.BaseFare
		miles[i] = r.TripMiles
	}

	return models.MetricsSummary{
		TripCount: len(view),
		TotalFare: floats.Sum(fares),
		AvgFare:   stat.Mean(fares, nil),
		AvgMiles:  stat.Mean(miles, nil),
	}
}
