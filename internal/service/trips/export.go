package trips

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/citydash/tripdash/internal/domain/models"
	wrap "github.com/citydash/tripdash/pkg/logger/wrapper"
	"github.com/citydash/tripdash/pkg/metrics"
	"github.com/go-gota/gota/dataframe"
)

// exportRow is the CSV shape of a trip record: the five dataset columns,
// timestamps in RFC 3339.
type exportRow struct {
	PickupDatetime    string  `dataframe:"pickup_datetime"`
	DropoffDatetime   string  `dataframe:"dropoff_datetime"`
	TripMiles         float64 `dataframe:"trip_miles"`
	BasePassengerFare float64 `dataframe:"base_passenger_fare"`
	DispatchingBase   string  `dataframe:"dispatching_base_num"`
}

var exportHeader = []string{
	"pickup_datetime",
	"dropoff_datetime",
	"trip_miles",
	"base_passenger_fare",
	"dispatching_base_num",
}

// ExportCSV serializes a filtered view as CSV for download.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, view []models.TripRecord) (err error) {
	ctx = wrap.WithAction(ctx, "export_csv")
	defer func() { metrics.RecordExport(s.serviceName, err) }()

	// gota refuses to load an empty slice; an empty view still gets a
	// well-formed header-only file.
	if len(view) == 0 {
		_, err = io.WriteString(w, strings.Join(exportHeader, ",")+"\n")
		return err
	}

	rows := make([]exportRow, len(view))
	for i, r := range view {
		rows[i] = exportRow{
			PickupDatetime:    r.PickupAt.UTC().Format(time.RFC3339),
			DropoffDatetime:   r.DropoffAt.UTC().Format(time.RFC3339),
			TripMiles:         r.TripMiles,
			BasePassengerFare: r.BaseFare,
			DispatchingBase:   r.DispatchBase,
		}
	}

	df := dataframe.LoadStructs(rows)
	if df.Error() != nil {
		err = fmt.Errorf("failed to build export dataframe: %w", df.Error())
		return err
	}

	if err = df.WriteCSV(w); err != nil {
		err = fmt.Errorf("failed to write export csv: %w", err)
		return err
	}

	s.l.Debug(ctx, "exported filtered view", "rows", len(view))
	return nil
}

// ParseCSV reads an exported CSV back into trip records. Together with
// ExportCSV it round-trips a filtered view modulo formatting.
func ParseCSV(r io.Reader) ([]models.TripRecord, error) {
	df := dataframe.ReadCSV(r)
	if df.Error() != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", df.Error())
	}

	records := df.Records()
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, name := range exportHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("csv is missing column %q", name)
		}
	}

	out := make([]models.TripRecord, 0, len(records)-1)
	for _, row := range records[1:] {
		pickup, err := time.Parse(time.RFC3339, row[col["pickup_datetime"]])
		if err != nil {
			return nil, fmt.Errorf("invalid pickup_datetime: %w", err)
		}
		dropoff, err := time.Parse(time.RFC3339, row[col["dropoff_datetime"]])
		if err != nil {
			return nil, fmt.Errorf("invalid dropoff_datetime: %w", err)
		}
		miles, err := strconv.ParseFloat(row[col["trip_miles"]], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid trip_miles: %w", err)
		}
		fare, err := strconv.ParseFloat(row[col["base_passenger_fare"]], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid base_passenger_fare: %w", err)
		}

		out = append(out, models.TripRecord{
			PickupAt:     pickup,
			DropoffAt:    dropoff,
			TripMiles:    miles,
			BaseFare:     fare,
			DispatchBase: row[col["dispatching_base_num"]],
		})
	}
	return out, nil
}
