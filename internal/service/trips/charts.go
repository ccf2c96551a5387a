package trips

import (
	"time"

	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/internal/domain/types"
	"gonum.org/v1/gonum/floats"
)

// GeoPoints builds the map scatter series: one point per known pickup and
// dropoff location. Records without coordinates are skipped.
func GeoPoints(view []models.TripRecord) []models.GeoPoint {
	points := make([]models.GeoPoint, 0, 2*len(view))
	for _, r := range view {
		if r.HasPickupLocation() {
			points = append(points, models.GeoPoint{
				Lat:  *r.PickupLat,
				Lon:  *r.PickupLon,
				Kind: types.PickupPoint,
			})
		}
		if r.HasDropoffLocation() {
			points = append(points, models.GeoPoint{
				Lat:  *r.DropoffLat,
				Lon:  *r.DropoffLon,
				Kind: types.DropoffPoint,
			})
		}
	}
	return points
}

// TripsOverTime counts trips per time bucket, ascending, with gaps between
// the first and last bucket zero-filled so the line chart shows quiet
// periods instead of skipping them.
func TripsOverTime(view []models.TripRecord, bucket types.TimeBucket) []models.TimeBucketCount {
	if len(view) == 0 {
		return []models.TimeBucketCount{}
	}

	step := 24 * time.Hour
	if bucket == types.BucketHour {
		step = time.Hour
	}

	truncate := func(t time.Time) time.Time {
		if bucket == types.BucketHour {
			return t.UTC().Truncate(time.Hour)
		}
		return models.DateOnly(t)
	}

	counts := make(map[time.Time]int)
	first := truncate(view[0].PickupAt)
	last := first
	for _, r := range view {
		b := truncate(r.PickupAt)
		counts[b]++
		if b.Before(first) {
			first = b
		}
		if b.After(last) {
			last = b
		}
	}

	series := make([]models.TimeBucketCount, 0, len(counts))
	for b := first; !b.After(last); b = b.Add(step) {
		series = append(series, models.TimeBucketCount{
			Bucket: b,
			Count:  counts[b],
		})
	}
	return series
}

// FareHistogram bins base fares into equal-width bins over [min, max].
// Every bin is half-open [low, high) except the last, which also includes
// the maximum so no fare falls off the end.
func FareHistogram(view []models.TripRecord, bins int) []models.HistogramBin {
	return histogram(view, bins, func(r models.TripRecord) float64 { return r.BaseFare })
}

// DistanceHistogram bins trip miles the same way FareHistogram bins fares.
func DistanceHistogram(view []models.TripRecord, bins int) []models.HistogramBin {
	return histogram(view, bins, func(r models.TripRecord) float64 { return r.TripMiles })
}

func histogram(view []models.TripRecord, bins int, field func(models.TripRecord) float64) []models.HistogramBin {
	if len(view) == 0 || bins <= 0 {
		return []models.HistogramBin{}
	}

	values := make([]float64, len(view))
	for i, r := range view {
		values[i] = field(r)
	}

	min := floats.Min(values)
	max := floats.Max(values)

	// All values identical: a single degenerate bin holds everything.
	if min == max {
		return []models.HistogramBin{{Low: min, High: max, Count: len(values)}}
	}

	width := (max - min) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Low = min + float64(i)*width
		out[i].High = min + float64(i+1)*width
	}
	out[bins-1].High = max

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}
