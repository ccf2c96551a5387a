package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/citydash/tripdash/config"
	"github.com/citydash/tripdash/internal/domain/models"
	"github.com/citydash/tripdash/internal/domain/types"
	"github.com/citydash/tripdash/internal/service/access"
	"github.com/citydash/tripdash/internal/service/trips"
	"github.com/citydash/tripdash/pkg/logger"
	ws "github.com/citydash/tripdash/pkg/wsHub"
	"github.com/gorilla/websocket"
)

// newTestAPI wires the real service stack through New and serves the fully
// assembled handler, middleware chain included, so requests here travel the
// same path they would in production.
func newTestAPI(t *testing.T) (*httptest.Server, *access.Gate) {
	t.Helper()

	log := logger.InitLogger("tripdash-test", logger.LevelError)

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

	tripSvc := trips.New("tripdash-test", dataset, log)
	tokens := access.NewTokenService("test-jwt-secret", time.Hour, log)
	gate := access.NewGate("tripdash-test", "hunter2", tokens, log)
	hub := ws.NewConnHub(log)
	t.Cleanup(hub.Close)

	api, err := New(config.Config{}, tripSvc, gate, hub, dataset.Size, log)
	if err != nil {
		t.Fatalf("failed to build API: %v", err)
	}

	srv := httptest.NewServer(api.server.Handler)
	t.Cleanup(srv.Close)
	return srv, gate
}

func sessionToken(t *testing.T, gate *access.Gate) string {
	t.Helper()
	token, err := gate.Login(context.Background(), "hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return token.Token
}

func TestAPI_HealthCheck(t *testing.T) {
	srv, _ := newTestAPI(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestAPI_SessionLogin(t *testing.T) {
	srv, _ := newTestAPI(t)

	resp, err := http.Post(srv.URL+"/session", "application/json", strings.NewReader(`{"password":"hunter2"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.SessionToken == "" {
		t.Fatalf("response must carry a session token")
	}
}

func TestAPI_DashboardRequiresSession(t *testing.T) {
	srv, _ := newTestAPI(t)

	resp, err := http.Get(srv.URL + "/dashboard/summary")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestAPI_DashboardWithSession(t *testing.T) {
	srv, gate := newTestAPI(t)
	token := sessionToken(t, gate)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/dashboard/summary", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Summary models.MetricsSummary `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Summary.TripCount != 2 {
		t.Fatalf("summary trips: got %d want 2", body.Summary.TripCount)
	}
}

// The websocket upgrade hijacks the connection, so every writer wrapper in
// the middleware chain must pass Hijack through to the real ResponseWriter.
func TestAPI_WebSocketUpgradeThroughMiddleware(t *testing.T) {
	srv, gate := newTestAPI(t)
	token := sessionToken(t, gate)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/dashboard?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("dial through the middleware chain failed: %v (status %d)", err, status)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"from": "2023-01-01", "to": "2023-01-02"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var reply struct {
		Snapshot *models.DashboardSnapshot `json:"snapshot"`
	}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if reply.Snapshot == nil {
		t.Fatalf("reply must carry a snapshot")
	}
	if reply.Snapshot.Summary.TripCount != 2 {
		t.Fatalf("snapshot trips: got %d want 2", reply.Snapshot.Summary.TripCount)
	}
}
