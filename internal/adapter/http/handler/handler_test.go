package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/internal/domain/types"
	"github.com/citydash/tripdash/internal/service/access"
	"github.com/citydash/tripdash/internal/service/trips"
	"github.com/citydash/tripdash/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.InitLogger("tripdash-test", logger.LevelError)
}

func testTripService() *trips.Service {
	dataset := &models.TripDataset{
		Records: []models.TripRecord{
			{
				PickupAt:     time.Date(2023, 1, 1, 8, 30, 0, 0, time.UTC),
				DropoffAt:    time.Date(2023, 1, 1, 8, 45, 0, 0, time.UTC),
				TripMiles:    1.0,
				BaseFare:     10.0,
				DispatchBase: "B02512",
			},
			{
				PickupAt:     time.Date(2023, 1, 2, 17, 5, 0, 0, time.UTC),
				DropoffAt:    time.Date(2023, 1, 2, 17, 40, 0, 0, time.UTC),
				TripMiles:    5.0,
				BaseFare:     20.0,
				DispatchBase: "B02764",
			},
		},
		Source:   string(types.FileSource),
		LoadedAt: time.Now().UTC(),
	}
	return trips.New("tripdash-test", dataset, testLogger())
}

func testGate(secret string) *access.Gate {
	log := testLogger()
	tokens := access.NewTokenService("test-jwt-secret", time.Hour, log)
	return access.NewGate("tripdash-test", secret, tokens, log)
}

func TestSessionLogin_CorrectPassword(t *testing.T) {
	h := NewSession(testGate("hunter2"), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"password":"hunter2"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		SessionToken string    `json:"session_token"`
		ExpiresAt    time.Time `json:"expires_at"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.SessionToken == "" {
		t.Fatalf("response must carry a session token")
	}
	if !body.ExpiresAt.After(time.Now()) {
		t.Fatalf("token must expire in the future, got %v", body.ExpiresAt)
	}
}

func TestSessionLogin_WrongPassword(t *testing.T) {
	h := NewSession(testGate("hunter2"), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"password":"nope"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestSessionLogin_UnconfiguredSecretLooksLikeWrongPassword(t *testing.T) {
	h := NewSession(testGate(""), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"password":"hunter2"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "access denied") {
		t.Fatalf("denial must use the generic message, got %s", rec.Body.String())
	}
}

func TestSessionLogin_MissingPassword(t *testing.T) {
	h := NewSession(testGate("hunter2"), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestGetSummary_DefaultsToFullRange(t *testing.T) {
	h := NewDashboard(testTripService(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	h.GetSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Summary models.MetricsSummary `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Summary.TripCount != 2 {
		t.Fatalf("bare request must cover the whole dataset, got %d trips", body.Summary.TripCount)
	}
}

func TestGetSummary_AppliesFilter(t *testing.T) {
	h := NewDashboard(testTripService(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary?from=2023-01-01&to=2023-01-01", nil)
	rec := httptest.NewRecorder()
	h.GetSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Summary models.MetricsSummary `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Summary.TripCount != 1 {
		t.Fatalf("single-day filter must match one trip, got %d", body.Summary.TripCount)
	}
}

func TestGetSummary_InvalidDate(t *testing.T) {
	h := NewDashboard(testTripService(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary?from=yesterday", nil)
	rec := httptest.NewRecorder()
	h.GetSummary(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestGetFareSeries_RejectsBadBins(t *testing.T) {
	h := NewDashboard(testTripService(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/dashboard/charts/fares?bins=-1", nil)
	rec := httptest.NewRecorder()
	h.GetFareSeries(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestGetDistanceSeries_BinsCoverAllTrips(t *testing.T) {
	h := NewDashboard(testTripService(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/dashboard/charts/distances?bins=4", nil)
	rec := httptest.NewRecorder()
	h.GetDistanceSeries(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Bins []models.HistogramBin `json:"distance_histogram"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Bins) != 4 {
		t.Fatalf("bins: got %d want 4", len(body.Bins))
	}
	total := 0
	for _, b := range body.Bins {
		total += b.Count
	}
	if total != 2 {
		t.Fatalf("bin counts must sum to the trip count, got %d", total)
	}
}

func TestGetTripSeries_RejectsUnknownBucket(t *testing.T) {
	h := NewDashboard(testTripService(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/dashboard/charts/trips?bucket=week", nil)
	rec := httptest.NewRecorder()
	h.GetTripSeries(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestExportCSV_Headers(t *testing.T) {
	h := NewDashboard(testTripService(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/dashboard/export.csv", nil)
	rec := httptest.NewRecorder()
	h.ExportCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type: got %q want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "trips_export.csv") {
		t.Fatalf("unexpected content disposition: %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "pickup_datetime,") {
		t.Fatalf("csv body must start with the header row, got %q", rec.Body.String()[:40])
	}
}
