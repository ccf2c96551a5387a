package parquet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/internal/domain/types"
	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	parquetgo "github.com/parquet-go/parquet-go"
)

// requiredColumns are the dataset columns the dashboard cannot work
// without. The coordinate columns are optional; without them the geo
// scatter is simply empty.
var requiredColumns = []string{
	"pickup_datetime",
	"dropoff_datetime",
	"trip_miles",
	"base_passenger_fare",
	"dispatching_base_num",
}

var geoColumns = []string{
	"pickup_latitude",
	"pickup_longitude",
	"dropoff_latitude",
	"dropoff_longitude",
}

// tripRow mirrors the five required Parquet columns.
type tripRow struct {
	PickupDatetime    time.Time `parquet:"pickup_datetime"`
	DropoffDatetime   time.Time `parquet:"dropoff_datetime"`
	TripMiles         float64   `parquet:"trip_miles"`
	BasePassengerFare float64   `parquet:"base_passenger_fare"`
	DispatchingBase   string    `parquet:"dispatching_base_num"`
}

// tripRowGeo additionally carries the optional coordinate columns.
type tripRowGeo struct {
	PickupDatetime    time.Time `parquet:"pickup_datetime"`
	DropoffDatetime   time.Time `parquet:"dropoff_datetime"`
	TripMiles         float64   `parquet:"trip_miles"`
	BasePassengerFare float64   `parquet:"base_passenger_fare"`
	DispatchingBase   string    `parquet:"dispatching_base_num"`
	PickupLatitude    *float64  `parquet:"pickup_latitude,optional"`
	PickupLongitude   *float64  `parquet:"pickup_longitude,optional"`
	DropoffLatitude   *float64  `parquet:"dropoff_latitude,optional"`
	DropoffLongitude  *float64  `parquet:"dropoff_longitude,optional"`
}

// Loader reads the trip dataset from a Parquet file. Load is called once at
// startup; the resulting dataset is read-only afterwards.
type Loader struct {
	path string
	l    logger.Logger
}

func NewLoader(path string, l logger.Logger) *Loader {
	return &Loader{
		path: path,
		l:    l,
	}
}

func (ld *Loader) Load(ctx context.Context) (*models.TripDataset, error) {
	ctx = wrap.WithAction(ctx, "load_parquet_dataset")

	hasGeo, err := ld.validateSchema(ctx)
	if err != nil {
		return nil, err
	}

	var records []models.TripRecord
	if hasGeo {
		rows, err := parquetgo.ReadFile[tripRowGeo](ld.path)
		if err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%w: %v", types.ErrDatasetMalformed, err))
		}
		records = make([]models.TripRecord, len(rows))
		for i, r := range rows {
			records[i] = models.TripRecord{
				PickupAt:     r.PickupDatetime.UTC(),
				DropoffAt:    r.DropoffDatetime.UTC(),
				TripMiles:    r.TripMiles,
				BaseFare:     r.BasePassengerFare,
				DispatchBase: r.DispatchingBase,
				PickupLat:    r.PickupLatitude,
				PickupLon:    r.PickupLongitude,
				DropoffLat:   r.DropoffLatitude,
				DropoffLon:   r.DropoffLongitude,
			}
		}
	} else {
		rows, err := parquetgo.ReadFile[tripRow](ld.path)
		if err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%w: %v", types.ErrDatasetMalformed, err))
		}
		records = make([]models.TripRecord, len(rows))
		for i, r := range rows {
			records[i] = models.TripRecord{
				PickupAt:     r.PickupDatetime.UTC(),
				DropoffAt:    r.DropoffDatetime.UTC(),
				TripMiles:    r.TripMiles,
				BaseFare:     r.BasePassengerFare,
				DispatchBase: r.DispatchingBase,
			}
		}
	}

	ld.l.Info(ctx, "dataset loaded",
		"path", ld.path,
		"rows", len(records),
		"geo_columns", hasGeo,
	)

	return &models.TripDataset{
		Records:  records,
		Source:   string(types.FileSource),
		LoadedAt: time.Now().UTC(),
	}, nil
}

// validateSchema opens the file, checks the required columns exist, and
// reports whether all four coordinate columns are present.
func (ld *Loader) validateSchema(ctx context.Context) (bool, error) {
	f, err := os.Open(ld.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, wrap.Error(ctx, fmt.Errorf("%w: %s", types.ErrDatasetNotFound, ld.path))
		}
		return false, wrap.Error(ctx, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, wrap.Error(ctx, err)
	}

	pf, err := parquetgo.OpenFile(f, info.Size())
	if err != nil {
		return false, wrap.Error(ctx, fmt.Errorf("%w: %v", types.ErrDatasetMalformed, err))
	}

	schema := pf.Schema()
	for _, name := range requiredColumns {
		if _, ok := schema.Lookup(name); !ok {
			return false, wrap.Error(ctx, fmt.Errorf("%w: %s", types.ErrMissingColumn, name))
		}
	}

	hasGeo := true
	for _, name := range geoColumns {
		if _, ok := schema.Lookup(name); !ok {
			hasGeo = false
			break
		}
	}
	return hasGeo, nil
}
