package models

// MetricsSummary holds the scalar aggregates shown at the top of the
// dashboard. For an empty filtered view every field is zero; zero is the
// documented sentinel, an empty view is never an error.
type MetricsSummary struct {
	TripCount int     `json:"trip_count"`
	TotalFare float64 `json:"total_fare"`
	AvgFare   float64 `json:"avg_fare"`
	AvgMiles  float64 `json:"avg_miles"`
}
