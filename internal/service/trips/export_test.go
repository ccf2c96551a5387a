package trips

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestExportCSV_RoundTrip(t *testing.T) {
	s := testService()
	view := s.Filter(context.Background(), s.FullRangeCriteria())

	var buf bytes.Buffer
	if err := s.ExportCSV(context.Background(), &buf, view); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	parsed, err := ParseCSV(&buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(parsed) != len(view) {
		t.Fatalf("round trip lost rows: got %d want %d", len(parsed), len(view))
	}
	for i := range view {
		if !parsed[i].PickupAt.Equal(view[i].PickupAt) {
			t.Fatalf("row %d pickup mismatch: got %v want %v", i, parsed[i].PickupAt, view[i].PickupAt)
		}
		if parsed[i].TripMiles != view[i].TripMiles || parsed[i].BaseFare != view[i].BaseFare {
			t.Fatalf("row %d value mismatch: got %+v want %+v", i, parsed[i], view[i])
		}
		if parsed[i].DispatchBase != view[i].DispatchBase {
			t.Fatalf("row %d base mismatch: got %q want %q", i, parsed[i].DispatchBase, view[i].DispatchBase)
		}
	}
}

func TestExportCSV_EmptyViewIsHeaderOnly(t *testing.T) {
	s := testService()

	var buf bytes.Buffer
	if err := s.ExportCSV(context.Background(), &buf, nil); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := strings.TrimRight(buf.String(), "\n")
	if out != strings.Join(exportHeader, ",") {
		t.Fatalf("empty view must export only the header, got %q", out)
	}
}

func TestExportCSV_Header(t *testing.T) {
	s := testService()
	view := s.Filter(context.Background(), s.FullRangeCriteria())

	var buf bytes.Buffer
	if err := s.ExportCSV(context.Background(), &buf, view); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if lines[0] != strings.Join(exportHeader, ",") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
}

func TestParseCSV_MissingColumn(t *testing.T) {
	in := strings.NewReader("pickup_datetime,trip_miles\n2023-01-01T08:30:00Z,1.0\n")
	if _, err := ParseCSV(in); err == nil {
		t.Fatalf("expected an error for missing columns")
	}
}
