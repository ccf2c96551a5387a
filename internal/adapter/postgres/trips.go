package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/internal/domain/types"
	"github.com/citydash/tripdash/pkg/logger"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/metrics"
)

// TripRepo reads the trip dataset out of a Postgres table. It is an
// alternative one-time loader backend, not an online store: the table is
// read once at startup and never written.
type TripRepo struct {
	db          *pgxpool.Pool
	table       string
	serviceName string
	l           logger.Logger
}

func NewTripRepo(db *pgxpool.Pool, table, serviceName string, l logger.Logger) *TripRepo {
	return &TripRepo{
		db:          db,
		table:       table,
		serviceName: serviceName,
		l:           l,
	}
}

func (r *TripRepo) Load(ctx context.Context) (*models.TripDataset, error) {
	ctx = wrap.WithAction(ctx, "load_postgres_dataset")
	start := time.Now()

	query := fmt.Sprintf(`SELECT pickup_datetime, dropoff_datetime, trip_miles, base_passenger_fare,
	                             dispatching_base_num,
	                             pickup_latitude, pickup_longitude, dropoff_latitude, dropoff_longitude
	                      FROM %s
	                      ORDER BY pickup_datetime;`, r.table)

	rows, err := r.db.Query(ctx, query)
	metrics.RecordDatabaseQuery(r.serviceName, "load_trips", err, time.Since(start))
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("trip repo: Load: %w", err))
	}
	defer rows.Close()

	var records []models.TripRecord
	for rows.Next() {
		var rec models.TripRecord
		err := rows.Scan(
			&rec.PickupAt,
			&rec.DropoffAt,
			&rec.TripMiles,
			&rec.BaseFare,
			&rec.DispatchBase,
			&rec.PickupLat,
			&rec.PickupLon,
			&rec.DropoffLat,
			&rec.DropoffLon,
		)
		if err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("trip repo: Load (scan): %w", err))
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("trip repo: Load (rows): %w", err))
	}

	r.l.Info(ctx, "dataset loaded from postgres",
		"table", r.table,
		"rows", len(records),
		"duration", time.Since(start),
	)

	return &models.TripDataset{
		Records:  records,
		Source:   string(types.PostgresSource),
		LoadedAt: time.Now().UTC(),
	}, nil
}
