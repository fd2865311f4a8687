// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/config"
)

func newTestGate(t *testing.T) (*Gate, *auth.TokenManager) {
	t.Helper()
	tm, err := auth.NewTokenManager(&config.SecurityConfig{
		JWTSecret:  "test-secret-0123456789-0123456789",
		SessionTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	return NewGate(tm, auth.NewSessionWriter(time.Hour, false)), tm
}

func TestGateRedirectMatrix(t *testing.T) {
	gate, tm := newTestGate(t)
	handler := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	issue := func(role string) string {
		token, err := tm.Issue("u1", "u@example.com", role)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		return token
	}

	tests := []struct {
		name         string
		path         string
		token        string
		wantStatus   int
		wantLocation string
	}{
		{"public path anonymous", "/products", "", http.StatusOK, ""},
		{"login page anonymous", "/auth/login", "", http.StatusOK, ""},
		{
			"dashboard anonymous",
			"/dashboard", "",
			http.StatusFound, "/auth/login?redirect=%2Fdashboard",
		},
		{
			"manage anonymous",
			"/products/manage", "",
			http.StatusFound, "/auth/login?redirect=%2Fproducts%2Fmanage",
		},
		{
			"dashboard invalid token",
			"/dashboard", "not-a-jwt",
			http.StatusFound, "/auth/login?redirect=%2Fdashboard",
		},
		{"dashboard artisan", "/dashboard", issue("artisan"), http.StatusOK, ""},
		{"dashboard customer", "/dashboard", issue("customer"), http.StatusOK, ""},
		{"manage artisan", "/products/manage", issue("artisan"), http.StatusOK, ""},
		{
			"manage customer bounced",
			"/products/manage", issue("customer"),
			http.StatusFound, "/profiles/customer",
		},
		{"customer profile customer", "/profiles/customer", issue("customer"), http.StatusOK, ""},
		{
			"customer profile artisan bounced",
			"/profiles/customer", issue("artisan"),
			http.StatusFound, "/dashboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: tt.token})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" {
				if got := rec.Header().Get("Location"); got != tt.wantLocation {
					t.Errorf("Location = %q, want %q", got, tt.wantLocation)
				}
			}
		})
	}
}

func TestGateClearsInvalidCookie(t *testing.T) {
	gate, _ := newTestGate(t)
	handler := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "expired-or-garbage"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d Set-Cookie headers, want 1", len(cookies))
	}
	if c := cookies[0]; c.Name != auth.SessionCookieName || c.MaxAge >= 0 {
		t.Errorf("cookie = %q MaxAge %d, want cleared session cookie", c.Name, c.MaxAge)
	}
}

func TestPageShells(t *testing.T) {
	gate, tm := newTestGate(t)
	h := NewHandler(gate)
	router := h.Routes()

	// Public page renders without a session.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	// Protected page renders for a signed-in user.
	token, err := tm.Issue("u1", "maya@example.com", "artisan")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /dashboard status = %d", rec.Code)
	}
}
