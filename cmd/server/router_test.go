package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/ridesplit/internal/auth"
	"github.com/mmynk/ridesplit/internal/config"
	"github.com/mmynk/ridesplit/internal/models"
	"github.com/mmynk/ridesplit/internal/service"
	"github.com/mmynk/ridesplit/internal/storage/sqlite"
	"github.com/mmynk/ridesplit/pkg/api"
)

func setupRouter(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()

	store, err := sqlite.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	staticDir := filepath.Join(dir, "static")
	if err := os.MkdirAll(staticDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>RideSplit</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	shares := auth.NewShareManager("test-secret", time.Hour)
	server := httptest.NewServer(newRouter(service.NewRideService(store, shares, nil), shares, staticDir))
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRouter_Endpoints(t *testing.T) {
	server := setupRouter(t)

	tests := []struct {
		path     string
		wantCode int
		contains string
	}{
		{"/health", http.StatusOK, `"ok"`},
		{"/", http.StatusOK, "RideSplit"},
		{"/ride/abc", http.StatusOK, "RideSplit"}, // falls back to index.html
		{"/" + api.RideServiceName + "/Unknown", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := get(t, server.URL+tt.path)
			if code != tt.wantCode {
				t.Errorf("status = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body %q does not contain %q", body, tt.contains)
			}
		})
	}
}

func TestRouter_RPCAndMetrics(t *testing.T) {
	server := setupRouter(t)
	client := api.NewRideServiceClient(http.DefaultClient, server.URL)

	trip := models.Trip{
		Stops: []models.Stop{
			{Name: "A", Entering: []string{"p1"}},
			{Name: "B", Exiting: []string{"p1"}},
		},
		Distances: []float64{4},
		TotalCost: 20,
	}
	_, err := client.Calculate(context.Background(), connect.NewRequest(&api.CalculateRequest{
		Participants: []models.Participant{{ID: "p1", Name: "Alice"}},
		Outbound:     models.Some(trip),
	}))
	if err != nil {
		t.Fatalf("Calculate through router failed: %v", err)
	}

	code, body := get(t, server.URL+"/metrics")
	if code != http.StatusOK {
		t.Fatalf("metrics status = %d", code)
	}
	if !strings.Contains(body, `ridesplit_rpc_requests_total{code="ok",procedure="`+api.RideServiceCalculateProcedure+`"}`) {
		t.Error("metrics missing Calculate request counter")
	}
}

func TestNewDistanceLookup_Disabled(t *testing.T) {
	lookup, closeFn, err := newDistanceLookup(context.Background(), config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()
	if lookup != nil {
		t.Error("expected nil lookup without an API key")
	}
}
