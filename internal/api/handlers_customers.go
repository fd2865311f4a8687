// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/database"
)

// requireOwnCustomerID confirms the URL's customer ID matches the
// caller. Returns false after writing 403.
func requireOwnCustomerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims := auth.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if claims == nil || claims.UserID != id {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions", nil)
		return "", false
	}
	return id, true
}

// ListCustomerOrders serves the caller's own order history.
func (h *Handler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := requireOwnCustomerID(w, r)
	if !ok {
		return
	}

	orders, err := h.store.FindOrdersByUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, orders)
}

// ListCustomerReviews serves the caller's own reviews.
func (h *Handler) ListCustomerReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := requireOwnCustomerID(w, r)
	if !ok {
		return
	}

	reviews, err := h.store.FindReviews(r.Context(), database.ReviewFilter{UserID: id}, 0)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, reviews)
}
