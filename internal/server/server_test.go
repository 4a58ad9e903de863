package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sanixdarker/gqlg/internal/app"
)

func newTestServer(t *testing.T, withDB bool) *httptest.Server {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.RateLimit = 0
	if withDB {
		cfg.DBPath = filepath.Join(t.TempDir(), "server.db")
	}
	application, err := app.New(cfg)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	application.Logger.SetOutput(io.Discard)
	t.Cleanup(func() { application.Close() })

	srv := httptest.NewServer(New(application).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer(t, true)

	resp, err := http.Post(srv.URL+"/api/generate?save=1", "application/graphql", strings.NewReader("type Query { ping: String }"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}
	if resp.Header.Get("X-RateLimit-Limit") == "" {
		t.Error("expected rate limit headers on /api/generate")
	}

	for _, path := range []string{"/", "/healthz", "/api/runs"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestServer_NoHistoryRoutes(t *testing.T) {
	srv := newTestServer(t, false)

	resp, err := http.Get(srv.URL + "/api/runs")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 without history, got %d", resp.StatusCode)
	}
}
