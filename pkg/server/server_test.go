package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestServer_StartShutdown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	srv := New(Config{Address: "127.0.0.1:0"}, mux, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !srv.IsRunning() || srv.Addr() == "" {
		t.Fatalf("expected running server with address, got %q", srv.Addr())
	}
	if err := srv.Start(); err == nil {
		t.Error("expected error starting a running server")
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + srv.Addr() + "/ping")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "pong" {
		t.Errorf("body = %q", body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if srv.IsRunning() {
		t.Error("expected server to be stopped")
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown = %v", err)
	}
}

func TestServer_AddressInUse(t *testing.T) {
	first := New(Config{Address: "127.0.0.1:0"}, http.NotFoundHandler(), nil)
	if err := first.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer first.Shutdown(context.Background())

	second := New(Config{Address: first.Addr()}, http.NotFoundHandler(), nil)
	if err := second.Start(); err == nil {
		second.Shutdown(context.Background())
		t.Fatal("expected error for address in use")
	}
}

func TestAccessLog_KeepsRequestID(t *testing.T) {
	srv := New(Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("code = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", got)
	}
}

func TestRecovery(t *testing.T) {
	srv := New(Config{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), nil)

	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("panic value must not leak to the client")
	}
}
