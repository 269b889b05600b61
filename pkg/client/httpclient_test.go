package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBackendRequest(t *testing.T) {
	var gotAuth, gotContentType, gotMethod, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		gotPath = r.URL.RequestURI()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"status": "SUCCESS", "results": []any{}})
	}))
	defer server.Close()

	backend := NewBackend(server.URL, 2*time.Second)

	resp, err := backend.Post(context.Background(), "/sign-in", "tok-123", map[string]string{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected status 201, got %d", resp.StatusCode)
	}
	if !resp.OK() {
		t.Error("expected 201 to count as OK")
	}
	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotPath != "/sign-in" {
		t.Errorf("expected path /sign-in, got %s", gotPath)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected json content type, got %q", gotContentType)
	}
}

func TestBackendGetOmitsAuthWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("expected no Authorization header, got %q", h)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	backend := NewBackend(server.URL, 0)
	if _, err := backend.Get(context.Background(), "/", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
