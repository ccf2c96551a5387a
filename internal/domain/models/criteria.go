package models

import (
	"time"

	"github.com/citydash/tripdash/internal/domain/types"
	"github.com/citydash/tripdash/pkg/validator"
)

// FilterCriteria narrows the dataset to trips whose pickup date falls inside
// [From, To] and whose distance falls inside [MinMiles, MaxMiles], all bounds
// inclusive. Dates are compared at calendar-day granularity, matching how the
// dashboard pickers work. An inverted range is valid and simply matches
// nothing.
type FilterCriteria struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	MinMiles float64   `json:"min_miles"`
	MaxMiles float64   `json:"max_miles"`
}

// Matches reports whether a single record satisfies the criteria.
func (c FilterCriteria) Matches(r TripRecord) bool {
	day := DateOnly(r.PickupAt)
	if day.Before(DateOnly(c.From)) || day.After(DateOnly(c.To)) {
		return false
	}
	return r.TripMiles >= c.MinMiles && r.TripMiles <= c.MaxMiles
}

func (c FilterCriteria) Validate(v *validator.Validator) {
	v.Check(!c.From.IsZero(), "from", "must be provided")
	v.Check(!c.To.IsZero(), "to", "must be provided")
	v.Check(c.MinMiles >= 0, "min_miles", "must not be negative")
	v.Check(c.MaxMiles >= 0, "max_miles", "must not be negative")
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ChartOptions tunes the derived chart series independent of the row filter.
type ChartOptions struct {
	Bucket types.TimeBucket `json:"bucket"`
	Bins   int              `json:"bins"`
}

// Defaults used when the client omits chart options: daily buckets and the
// dashboard's usual 50-bin histograms.
const DefaultHistogramBins = 50

func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Bucket: types.BucketDay,
		Bins:   DefaultHistogramBins,
	}
}

func (o ChartOptions) Validate(v *validator.Validator) {
	v.Check(validator.PermittedValue(o.Bucket, types.BucketHour, types.BucketDay), "bucket", "must be one of 'hour' or 'day'")
	v.Check(o.Bins > 0, "bins", "must be greater than zero")
	v.Check(o.Bins <= 1000, "bins", "must be a maximum of 1000")
}
