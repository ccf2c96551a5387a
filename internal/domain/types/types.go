package types

// DatasetSource selects where the trip dataset is loaded from.
type DatasetSource string

const (
	FileSource     DatasetSource = "file"
	PostgresSource DatasetSource = "postgres"
)

// PointKind marks a geographic point as a pickup or dropoff location.
type PointKind string

func (k PointKind) String() string {
	return string(k)
}

const (
	PickupPoint  PointKind = "pickup"
	DropoffPoint PointKind = "dropoff"
)

// TimeBucket is the resolution of the trips-over-time series.
type TimeBucket string

const (
	BucketHour TimeBucket = "hour"
	BucketDay  TimeBucket = "day"
)

func (b TimeBucket) Valid() bool {
	switch b {
	case BucketHour, BucketDay:
		return true
	default:
		return false
	}
}
