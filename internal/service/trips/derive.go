package trips

import (
	"context"

	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/internal/domain/types"
)

// Convenience wrappers running one chart builder or the aggregator against
// a freshly filtered view. Each is a pure function of the criteria.

func (s *Service) Summary(ctx context.Context, c models.FilterCriteria) models.MetricsSummary {
	return Summarize(s.Filter(ctx, c))
}

func (s *Service) Geo(ctx context.Context, c models.FilterCriteria) []models.GeoPoint {
	return GeoPoints(s.Filter(ctx, c))
}

func (s *Service) TripSeries(ctx context.Context, c models.FilterCriteria, bucket types.TimeBucket) []models.TimeBucketCount {
	return TripsOverTime(s.Filter(ctx, c), bucket)
}

func (s *Service) FareSeries(ctx context.Context, c models.FilterCriteria, bins int) []models.HistogramBin {
	return FareHistogram(s.Filter(ctx, c), bins)
}

func (s *Service) DistanceSeries(ctx context.Context, c models.FilterCriteria, bins int) []models.HistogramBin {
	return DistanceHistogram(s.Filter(ctx, c), bins)
}
