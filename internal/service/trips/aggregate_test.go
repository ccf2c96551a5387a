package trips

import (
	"math"
	"testing"

	"github.com/citydash/tripdash/internal/domain/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize_Values(t *testing.T) {
	view := testDataset().Records

	got := Summarize(view)
	if got.TripCount != 3 {
		t.Fatalf("trip count: got %d want 3", got.TripCount)
	}
	if !almostEqual(got.TotalFare, 75.0) {
		t.Fatalf("total fare: got %v want 75.0", got.TotalFare)
	}
	if !almostEqual(got.AvgFare, 25.0) {
		t.Fatalf("avg fare: got %v want 25.0", got.AvgFare)
	}
	if !almostEqual(got.AvgMiles, 16.0/3.0) {
		t.Fatalf("avg miles: got %v want %v", got.AvgMiles, 16.0/3.0)
	}
}

func TestSummarize_EmptyViewIsZero(t *testing.T) {
	got := Summarize(nil)
	if got != (models.MetricsSummary{}) {
		t.Fatalf("empty view must produce the zero summary, got %+v", got)
	}
}

func TestSummarize_SingleRecord(t *testing.T) {
	view := testDataset().Records[:1]

	got := Summarize(view)
	if got.TripCount != 1 || !almostEqual(got.TotalFare, 10.0) || !almostEqual(got.AvgFare, 10.0) {
		t.Fatalf("unexpected single-record summary: %+v", got)
	}
}
