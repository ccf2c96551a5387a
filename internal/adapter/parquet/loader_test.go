package parquet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/citydash/tripdash/internal/domain/types"
	"github.com/citydash/tripdash/pkg/logger"
	parquetgo "github.com/parquet-go/parquet-go"
)

func testLogger() logger.Logger {
	return logger.InitLogger("tripdash-test", logger.LevelError)
}

func writeRows[T any](t *testing.T, rows []T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trips.parquet")
	if err := parquetgo.WriteFile(path, rows); err != nil {
		t.Fatalf("failed to write test parquet file: %v", err)
	}
	return path
}

func TestLoad_RequiredColumnsOnly(t *testing.T) {
	rows := []tripRow{
		{
			PickupDatetime:    time.Date(2023, 1, 1, 8, 30, 0, 0, time.UTC),
			DropoffDatetime:   time.Date(2023, 1, 1, 8, 45, 0, 0, time.UTC),
			TripMiles:         1.0,
			BasePassengerFare: 10.0,
			DispatchingBase:   "B02512",
		},
		{
			PickupDatetime:    time.Date(2023, 1, 2, 17, 5, 0, 0, time.UTC),
			DropoffDatetime:   time.Date(2023, 1, 2, 17, 40, 0, 0, time.UTC),
			TripMiles:         5.0,
			BasePassengerFare: 20.0,
			DispatchingBase:   "B02764",
		},
	}
	path := writeRows(t, rows)

	ds, err := NewLoader(path, testLogger()).Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ds.Size() != len(rows) {
		t.Fatalf("row count: got %d want %d", ds.Size(), len(rows))
	}

	r := ds.Records[0]
	if !r.PickupAt.Equal(rows[0].PickupDatetime) || r.TripMiles != 1.0 || r.DispatchBase != "B02512" {
		t.Fatalf("unexpected first record: %+v", r)
	}
	if r.HasPickupLocation() || r.HasDropoffLocation() {
		t.Fatalf("file without coordinate columns must yield no locations")
	}
}

func TestLoad_WithGeoColumns(t *testing.T) {
	lat, lon := 40.7128, -74.0060
	rows := []tripRowGeo{
		{
			PickupDatetime:    time.Date(2023, 1, 1, 8, 30, 0, 0, time.UTC),
			DropoffDatetime:   time.Date(2023, 1, 1, 8, 45, 0, 0, time.UTC),
			TripMiles:         1.0,
			BasePassengerFare: 10.0,
			DispatchingBase:   "B02512",
			PickupLatitude:    &lat,
			PickupLongitude:   &lon,
		},
	}
	path := writeRows(t, rows)

	ds, err := NewLoader(path, testLogger()).Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	r := ds.Records[0]
	if !r.HasPickupLocation() {
		t.Fatalf("pickup coordinates were dropped: %+v", r)
	}
	if *r.PickupLat != lat || *r.PickupLon != lon {
		t.Fatalf("coordinate mismatch: got %v,%v", *r.PickupLat, *r.PickupLon)
	}
	if r.HasDropoffLocation() {
		t.Fatalf("null dropoff coordinates must stay absent")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.parquet")

	_, err := NewLoader(path, testLogger()).Load(context.Background())
	if !errors.Is(err, types.ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	type partialRow struct {
		PickupDatetime time.Time `parquet:"pickup_datetime"`
		TripMiles      float64   `parquet:"trip_miles"`
	}
	path := writeRows(t, []partialRow{
		{PickupDatetime: time.Date(2023, 1, 1, 8, 30, 0, 0, time.UTC), TripMiles: 1.0},
	})

	_, err := NewLoader(path, testLogger()).Load(context.Background())
	if !errors.Is(err, types.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.parquet")
	if err := os.WriteFile(path, []byte("this is not a parquet file"), 0o644); err != nil {
		t.Fatalf("failed to write garbage file: %v", err)
	}

	_, err := NewLoader(path, testLogger()).Load(context.Background())
	if !errors.Is(err, types.ErrDatasetMalformed) {
		t.Fatalf("expected ErrDatasetMalformed, got %v", err)
	}
}
