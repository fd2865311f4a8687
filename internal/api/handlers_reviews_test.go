// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cmorton/haven/internal/models"
)

func createReview(t *testing.T, env *testEnv, token, productID string, rating int) models.Review {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/reviews", token, map[string]interface{}{
		"productId": productID,
		"rating":    rating,
		"comment":   "Beautiful work",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create review status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	var review models.Review
	decode(t, rec, &review)
	return review
}

func TestCreateReview(t *testing.T) {
	env := newTestEnv(t)
	_, artisanToken := env.signup(t, "maya@example.com", "Maya", "artisan")
	customer, customerToken := env.signup(t, "casey@example.com", "Casey", "customer")
	product := createProduct(t, env, artisanToken, mugBody())

	review := createReview(t, env, customerToken, product.ID, 5)
	if review.UserID != customer.ID || review.Reviewer != "Casey" {
		t.Errorf("review author = %q/%q", review.UserID, review.Reviewer)
	}
	// Product name is derived server-side.
	if review.ProductName != "Stoneware Mug" {
		t.Errorf("ProductName = %q", review.ProductName)
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	env := newTestEnv(t)
	_, artisanToken := env.signup(t, "maya@example.com", "Maya", "artisan")
	_, customerToken := env.signup(t, "casey@example.com", "Casey", "customer")
	product := createProduct(t, env, artisanToken, mugBody())

	createReview(t, env, customerToken, product.ID, 5)

	rec := env.do(t, http.MethodPost, "/api/reviews", customerToken, map[string]interface{}{
		"productId": product.ID,
		"rating":    1,
		"comment":   "Changed my mind",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate review status = %d, want 409", rec.Code)
	}
}

func TestCreateReviewRules(t *testing.T) {
	env := newTestEnv(t)
	_, artisanToken := env.signup(t, "maya@example.com", "Maya", "artisan")
	_, customerToken := env.signup(t, "casey@example.com", "Casey", "customer")
	product := createProduct(t, env, artisanToken, mugBody())

	draftBody := mugBody()
	draftBody["status"] = "draft"
	draft := createProduct(t, env, artisanToken, draftBody)

	tests := []struct {
		name       string
		token      string
		body       map[string]interface{}
		wantStatus int
	}{
		{
			"artisan cannot review",
			artisanToken,
			map[string]interface{}{"productId": product.ID, "rating": 5, "comment": "Nice"},
			http.StatusForbidden,
		},
		{
			"anonymous cannot review",
			"",
			map[string]interface{}{"productId": product.ID, "rating": 5, "comment": "Nice"},
			http.StatusUnauthorized,
		},
		{
			"missing product is 404",
			customerToken,
			map[string]interface{}{"productId": "ghost", "rating": 5, "comment": "Nice"},
			http.StatusNotFound,
		},
		{
			"draft product is 404",
			customerToken,
			map[string]interface{}{"productId": draft.ID, "rating": 5, "comment": "Nice"},
			http.StatusNotFound,
		},
		{
			"rating above range",
			customerToken,
			map[string]interface{}{"productId": product.ID, "rating": 6, "comment": "Nice"},
			http.StatusBadRequest,
		},
		{
			"rating below range",
			customerToken,
			map[string]interface{}{"productId": product.ID, "rating": 0, "comment": "Nice"},
			http.StatusBadRequest,
		},
		{
			"missing comment",
			customerToken,
			map[string]interface{}{"productId": product.ID, "rating": 5},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/reviews", tt.token, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestListReviewsLimit(t *testing.T) {
	env := newTestEnv(t)
	_, artisanToken := env.signup(t, "maya@example.com", "Maya", "artisan")
	product := createProduct(t, env, artisanToken, mugBody())

	for i := 0; i < 25; i++ {
		_, token := env.signup(t, fmt.Sprintf("c%d@example.com", i), fmt.Sprintf("C%d", i), "customer")
		createReview(t, env, token, product.ID, 4)
	}

	// Default limit is 20.
	rec := env.do(t, http.MethodGet, "/api/reviews?productId="+product.ID, "", nil)
	var reviews []models.Review
	decode(t, rec, &reviews)
	if len(reviews) != 20 {
		t.Errorf("default limit returned %d reviews, want 20", len(reviews))
	}

	// Explicit limit is honored and capped at 100.
	rec = env.do(t, http.MethodGet, "/api/reviews?productId="+product.ID+"&limit=5", "", nil)
	decode(t, rec, &reviews)
	if len(reviews) != 5 {
		t.Errorf("limit=5 returned %d reviews", len(reviews))
	}

	rec = env.do(t, http.MethodGet, "/api/reviews?productId="+product.ID+"&limit=500", "", nil)
	decode(t, rec, &reviews)
	if len(reviews) != 25 {
		t.Errorf("limit=500 returned %d reviews, want all 25 (cap is 100)", len(reviews))
	}
}

func TestUpdateReviewOwnership(t *testing.T) {
	env := newTestEnv(t)
	_, artisanToken := env.signup(t, "maya@example.com", "Maya", "artisan")
	_, ownerToken := env.signup(t, "casey@example.com", "Casey", "customer")
	_, otherToken := env.signup(t, "drew@example.com", "Drew", "customer")
	product := createProduct(t, env, artisanToken, mugBody())
	review := createReview(t, env, ownerToken, product.ID, 5)

	// Foreign customer gets 404.
	rec := env.do(t, http.MethodPut, "/api/reviews/"+review.ID, otherToken, map[string]interface{}{"rating": 1})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign update status = %d, want 404", rec.Code)
	}

	// Invalid rating on update is rejected.
	rec = env.do(t, http.MethodPut, "/api/reviews/"+review.ID, ownerToken, map[string]interface{}{"rating": 9})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad rating status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodPut, "/api/reviews/"+review.ID, ownerToken, map[string]interface{}{"rating": 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("owner update status = %d", rec.Code)
	}
	var got models.Review
	decode(t, rec, &got)
	if got.Rating != 3 || got.Comment != "Beautiful work" {
		t.Errorf("updated review = %+v", got)
	}
}

func TestDeleteReviewOwnership(t *testing.T) {
	env := newTestEnv(t)
	_, artisanToken := env.signup(t, "maya@example.com", "Maya", "artisan")
	_, ownerToken := env.signup(t, "casey@example.com", "Casey", "customer")
	_, otherToken := env.signup(t, "drew@example.com", "Drew", "customer")
	product := createProduct(t, env, artisanToken, mugBody())
	review := createReview(t, env, ownerToken, product.ID, 5)

	rec := env.do(t, http.MethodDelete, "/api/reviews/"+review.ID, otherToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign delete status = %d, want 404", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/reviews/"+review.ID, ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/reviews/"+review.ID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted review still readable, status = %d", rec.Code)
	}
}
