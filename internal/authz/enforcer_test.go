// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package authz

import (
	"net/http"
	"testing"
)

func TestEnforcePolicy(t *testing.T) {
	e, err := NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	tests := []struct {
		name   string
		role   string
		path   string
		method string
		want   bool
	}{
		{"artisan creates product", "artisan", "/api/products", http.MethodPost, true},
		{"artisan updates own product", "artisan", "/api/products/abc-123", http.MethodPut, true},
		{"artisan deletes product", "artisan", "/api/products/abc-123", http.MethodDelete, true},
		{"customer cannot create product", "customer", "/api/products", http.MethodPost, false},
		{"customer cannot delete product", "customer", "/api/products/abc-123", http.MethodDelete, false},
		{"customer creates review", "customer", "/api/reviews", http.MethodPost, true},
		{"customer updates review", "customer", "/api/reviews/r-1", http.MethodPut, true},
		{"customer deletes review", "customer", "/api/reviews/r-1", http.MethodDelete, true},
		{"artisan cannot create review", "artisan", "/api/reviews", http.MethodPost, false},
		{"artisan cannot update review", "artisan", "/api/reviews/r-1", http.MethodPut, false},
		{"customer reads own orders", "customer", "/api/customers/u-1/orders", http.MethodGet, true},
		{"customer reads own reviews", "customer", "/api/customers/u-1/reviews", http.MethodGet, true},
		{"artisan cannot read customer orders", "artisan", "/api/customers/u-1/orders", http.MethodGet, false},
		{"unknown role denied", "admin", "/api/products", http.MethodPost, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Enforce(tt.role, tt.path, tt.method)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce(%s, %s, %s) = %v, want %v", tt.role, tt.path, tt.method, got, tt.want)
			}
		})
	}
}
