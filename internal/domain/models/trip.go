package models

import "time"

// TripRecord is a single completed ride. Records are immutable once loaded.
// Geographic coordinates are optional columns in the source dataset; nil
// means the column was absent or null for this row.
type TripRecord struct {
	PickupAt     time.Time `json:"pickup_datetime"`
	DropoffAt    time.Time `json:"dropoff_datetime"`
	TripMiles    float64   `json:"trip_miles"`
	BaseFare     float64   `json:"base_passenger_fare"`
	DispatchBase string    `json:"dispatching_base_num"`

	PickupLat  *float64 `json:"pickup_latitude,omitempty"`
	PickupLon  *float64 `json:"pickup_longitude,omitempty"`
	DropoffLat *float64 `json:"dropoff_latitude,omitempty"`
	DropoffLon *float64 `json:"dropoff_longitude,omitempty"`
}

// HasPickupLocation reports whether the record carries pickup coordinates.
func (t TripRecord) HasPickupLocation() bool {
	return t.PickupLat != nil && t.PickupLon != nil
}

// HasDropoffLocation reports whether the record carries dropoff coordinates.
func (t TripRecord) HasDropoffLocation() bool {
	return t.DropoffLat != nil && t.DropoffLon != nil
}

// TripDataset is the ordered, read-only collection of trip records loaded
// once per process lifetime. Source names where the records came from
// ("file" or "postgres") for logging and metrics.
type TripDataset struct {
	Records  []TripRecord
	Source   string
	LoadedAt time.Time
}

// Size returns the number of records in the dataset.
func (d *TripDataset) Size() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// DateRange returns the earliest and latest pickup timestamps in the
// dataset. ok is false for an empty dataset.
func (d *TripDataset) DateRange() (min, max time.Time, ok bool) {
	if d.Size() == 0 {
		return time.Time{}, time.Time{}, false
	}

	min, max = d.Records[0].PickupAt, d.Records[0].PickupAt
	for _, r := range d.Records[1:] {
		if r.PickupAt.Before(min) {
			min = r.PickupAt
		}
		if r.PickupAt.After(max) {
			max = r.PickupAt
		}
	}
	return min, max, true
}
