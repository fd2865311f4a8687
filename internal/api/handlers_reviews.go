// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/database"
	"github.com/cmorton/haven/internal/events"
	"github.com/cmorton/haven/internal/models"
)

const (
	defaultReviewLimit = 20
	maxReviewLimit     = 100
)

// CreateReviewRequest is the POST /api/reviews body.
type CreateReviewRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"required"`
}

// UpdateReviewRequest is the PUT /api/reviews/{id} body.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// ListReviews serves reviews, optionally filtered by product or author.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	filter := database.ReviewFilter{
		ProductID: r.URL.Query().Get("productId"),
		UserID:    r.URL.Query().Get("userId"),
	}
	limit := clampLimit(getIntParam(r, "limit", defaultReviewLimit), defaultReviewLimit, maxReviewLimit)

	reviews, err := h.store.FindReviews(r.Context(), filter, limit)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, reviews)
}

// GetReview serves one review; 404 when absent.
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.store.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, review)
}

// CreateReview adds a customer's review. The product must exist and be
// published; the product name is recorded server-side. One review per
// customer per product.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	var req CreateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	product, err := h.store.GetProduct(r.Context(), req.ProductID)
	if err != nil || product.Status != models.StatusPublished {
		if err == nil || errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
			return
		}
		respondStoreError(w, err)
		return
	}

	reviewer, err := h.store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	now := time.Now().UTC()
	review := &models.Review{
		ProductID:   product.ID,
		ProductName: product.Name,
		UserID:      reviewer.ID,
		Reviewer:    reviewer.Name,
		Rating:      req.Rating,
		Comment:     req.Comment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.store.CreateReview(r.Context(), review); err != nil {
		respondStoreError(w, err)
		return
	}

	h.bus.Emit(r.Context(), events.New(events.EventReviewCreated, reviewer.ID, review.ID))
	respondSuccess(w, http.StatusCreated, review)
}

// UpdateReview edits a review its author owns; 404 otherwise. A rating,
// when provided, is revalidated.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req UpdateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5", nil)
		return
	}

	if _, err := h.store.GetOwnedReview(r.Context(), id, claims.UserID); err != nil {
		respondStoreError(w, err)
		return
	}

	review, err := h.store.UpdateReview(r.Context(), id, func(rv *models.Review) error {
		if req.Rating != nil {
			rv.Rating = *req.Rating
		}
		if req.Comment != nil {
			rv.Comment = *req.Comment
		}
		rv.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.bus.Emit(r.Context(), events.New(events.EventReviewUpdated, claims.UserID, review.ID))
	respondSuccess(w, http.StatusOK, review)
}

// DeleteReview removes a review its author owns; 404 otherwise.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if _, err := h.store.GetOwnedReview(r.Context(), id, claims.UserID); err != nil {
		respondStoreError(w, err)
		return
	}
	if err := h.store.DeleteReview(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	h.bus.Emit(r.Context(), events.New(events.EventReviewDeleted, claims.UserID, id))
	respondSuccess(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}
