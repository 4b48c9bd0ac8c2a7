// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tallerradar/internal/handlers"
	"tallerradar/internal/session"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// newTestRouter builds the router with empty handler groups. Routes that
// would touch a backend are not invoked by these tests; they only
// exercise the middleware guards in front of them.
func newTestRouter() http.Handler {
	return New(
		session.NewStore(nil, false),
		handlers.NewPublic(nil, nil, nil, nil),
		handlers.NewAdmin(nil, nil, nil, nil, nil),
		handlers.NewAuth(nil, nil),
		handlers.NewIngest(nil, ""),
		false,
	)
}

func TestRouterGuards(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{"health is open", http.MethodGet, "/health", http.StatusOK},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound},
		{"me requires a session", http.MethodGet, "/admin/api/me", http.StatusUnauthorized},
		{"moderation requires CSRF", http.MethodPost, "/admin/api/workshops", http.StatusForbidden},
		{"moderation delete requires CSRF", http.MethodDelete, "/admin/api/workshops/x", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Errorf("%s %s: got %d, want %d", tt.method, tt.path, rr.Code, tt.wantCode)
			}
		})
	}
}
