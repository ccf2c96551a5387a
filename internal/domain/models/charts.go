package models

import (
	"time"

	"github.com/citydash/tripdash/internal/domain/types"
)

// GeoPoint is one pickup or dropoff location for the map scatter.
type GeoPoint struct {
	Lat  float64         `json:"lat"`
	Lon  float64         `json:"lon"`
	Kind types.PointKind `json:"kind"`
}

// TimeBucketCount is one bucket of the trips-over-time series. Buckets are
// emitted in ascending time order with gaps zero-filled.
type TimeBucketCount struct {
	Bucket time.Time `json:"bucket"`
	Count  int       `json:"count"`
}

// HistogramBin is one equal-width bin of a value distribution, counting
// values in [Low, High) except for the last bin which is closed on both
// ends. Used for both the fare and the trip-distance histograms.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// DashboardSnapshot is the full output of one recompute pass: the metrics
// and every chart series for the current criteria. It is what the UI renders
// after each interaction.
type DashboardSnapshot struct {
	Criteria FilterCriteria    `json:"criteria"`
	Summary  MetricsSummary    `json:"summary"`
	Geo      []GeoPoint        `json:"geo_points"`
	Trips    []TimeBucketCount `json:"trips_over_time"`
	Fares    []HistogramBin    `json:"fare_histogram"`
	Miles    []HistogramBin    `json:"distance_histogram"`
}
