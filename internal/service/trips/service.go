package trips

import (
	"context"
	"time"

	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/metrics"
)

// Service owns the loaded dataset and derives every dashboard output from
// it. The dataset is read-only after construction, so the service is safe
// for concurrent use without locking.
type Service struct {
	serviceName string
	dataset     *models.TripDataset
	l           logger.Logger
}

func New(serviceName string, dataset *models.TripDataset, l logger.Logger) *Service {
	return &Service{
		serviceName: serviceName,
		dataset:     dataset,
		l:           l,
	}
}

func (s *Service) Dataset() *models.TripDataset {
	return s.dataset
}

// FullRangeCriteria returns criteria spanning the whole dataset, used when
// the client omits filter bounds. Distance defaults to [0, +maxMiles].
func (s *Service) FullRangeCriteria() models.FilterCriteria {
	c := models.FilterCriteria{MinMiles: 0}

	if min, max, ok := s.dataset.DateRange(); ok {
		c.From = models.DateOnly(min)
		c.To = models.DateOnly(max)
	}

	for _, r := range s.dataset.Records {
		if r.TripMiles > c.MaxMiles {
			c.MaxMiles = r.TripMiles
		}
	}
	return c
}

// Snapshot runs the whole recompute pipeline for one interaction: filter,
// aggregate, and build every chart series.
func (s *Service) Snapshot(ctx context.Context, c models.FilterCriteria, opts models.ChartOptions) *models.DashboardSnapshot {
	ctx = wrap.WithAction(ctx, "compute_snapshot")
	start := time.Now()

	view := s.Filter(ctx, c)

	snap := &models.DashboardSnapshot{
		Criteria: c,
		Summary:  Summarize(view),
		Geo:      GeoPoints(view),
		Trips:    TripsOverTime(view, opts.Bucket),
		Fares:    FareHistogram(view, opts.Bins),
		Miles:    DistanceHistogram(view, opts.Bins),
	}

	metrics.RecordSnapshot(s.serviceName, time.Since(start))
	s.l.Debug(ctx, "snapshot computed",
		"matched", snap.Summary.TripCount,
		"duration", time.Since(start),
	)

	return snap
}
