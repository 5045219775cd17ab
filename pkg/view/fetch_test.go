package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetcherSendsNoCacheHeadersAndDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cache-Control") != "no-cache" || r.Header.Get("Pragma") != "no-cache" {
			t.Errorf("missing no-cache headers: %v", r.Header)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"home.hero_title":"Truck Repair"}}`))
	}))
	defer srv.Close()

	var out map[string]string
	if err := NewFetcher(srv.URL).Fetch(context.Background(), "/api/content", &out); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if out["home.hero_title"] != "Truck Repair" {
		t.Fatalf("decoded %v", out)
	}
}

func TestFetcherRejectsFailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"database unavailable"}`))
	}))
	defer srv.Close()

	var out map[string]string
	if err := NewFetcher(srv.URL).Fetch(context.Background(), "/api/content", &out); err == nil {
		t.Fatal("expected error for success=false envelope")
	}
}

func TestFetcherRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var out []string
	if err := NewFetcher(srv.URL).Fetch(context.Background(), "/api/services", &out); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
