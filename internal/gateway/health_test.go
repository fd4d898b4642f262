package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckHealth_FirstCandidateHealthy(t *testing.T) {
	var probed []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probed = append(probed, r.URL.Path)
		if r.URL.Path == "/health" {
			w.WriteHeader(200)
			return
		}
		w.WriteHeader(404)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/v1")
	if !c.CheckHealth(context.Background()) {
		t.Fatal("expected healthy")
	}
	if len(probed) != 1 || probed[0] != "/health" {
		t.Errorf("expected a single probe of /health, got %v", probed)
	}
}

func TestCheckHealth_FallsBackToSecondCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/repos/health" {
			w.WriteHeader(200)
			return
		}
		w.WriteHeader(500)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/v1")
	if !c.CheckHealth(context.Background()) {
		t.Fatal("expected healthy via second candidate")
	}
}

func TestCheckHealth_AllCandidatesFail(t *testing.T) {
	var probed []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probed = append(probed, r.URL.Path)
		w.WriteHeader(503)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/v1")
	if c.CheckHealth(context.Background()) {
		t.Fatal("expected unhealthy")
	}
	want := []string{"/health", "/api/v1/repos/health", "/api/v1/ai/health"}
	if len(probed) != len(want) {
		t.Fatalf("expected %d probes, got %v", len(want), probed)
	}
	for i, p := range want {
		if probed[i] != p {
			t.Errorf("probe %d = %q, want %q", i, probed[i], p)
		}
	}
}

func TestCheckHealth_UnreachableNeverErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL + "/api/v1")
	if c.CheckHealth(context.Background()) {
		t.Fatal("expected unhealthy for unreachable backend")
	}
}
