// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/config"
)

func TestMiddleware(t *testing.T) {
	e, err := NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	tm, err := auth.NewTokenManager(&config.SecurityConfig{
		JWTSecret:  "test-secret-0123456789-0123456789",
		SessionTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	am := auth.NewMiddleware(tm)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := am.Authenticate(Middleware(e)(ok))

	tests := []struct {
		name       string
		role       string
		method     string
		path       string
		wantStatus int
	}{
		{"artisan posts product", "artisan", http.MethodPost, "/api/products", http.StatusOK},
		{"customer posts product", "customer", http.MethodPost, "/api/products", http.StatusForbidden},
		{"customer posts review", "customer", http.MethodPost, "/api/reviews", http.StatusOK},
		{"artisan posts review", "artisan", http.MethodPost, "/api/reviews", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tm.Issue("u1", "u@example.com", tt.role)
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}

			r := httptest.NewRequest(tt.method, tt.path, nil)
			r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMiddlewareNoClaims(t *testing.T) {
	e, err := NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	handler := Middleware(e)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/products", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when claims are absent", rec.Code)
	}
}
