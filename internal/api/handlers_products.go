// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/database"
	"github.com/cmorton/haven/internal/events"
	"github.com/cmorton/haven/internal/models"
)

// CreateProductRequest is the POST /api/products body.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Image       string   `json:"image" validate:"required"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
}

// UpdateProductRequest is the PUT /api/products/{id} body. Pointer
// fields distinguish absent from zero.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
}

// normalizeStatus collapses anything that is not "published" to draft.
func normalizeStatus(s string) string {
	if s == models.StatusPublished {
		return models.StatusPublished
	}
	return models.StatusDraft
}

// ListProducts serves the public catalog. An authenticated artisan
// listing their own products may also see drafts; everyone else is
// confined to published listings.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := database.ProductFilter{
		ArtisanID: q.Get("artisanId"),
		Category:  q.Get("category"),
		Search:    q.Get("search"),
		Status:    q.Get("status"),
	}

	claims := auth.ClaimsFromContext(r.Context())
	ownView := claims != nil && filter.ArtisanID != "" && filter.ArtisanID == claims.UserID
	if !ownView {
		filter.Status = models.StatusPublished
	} else if filter.Status == "" {
		filter.Status = models.StatusPublished
	}

	products, err := h.store.FindProducts(r.Context(), filter, 0)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, products)
}

// GetProduct serves one listing; absent IDs are 404.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.store.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, product)
}

// CreateProduct adds a listing for the authenticated artisan. The
// display name comes from the artisan's studio name, never the request.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	var req CreateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	owner, err := h.store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	now := time.Now().UTC()
	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Artisan:     owner.StudioName(),
		ArtisanID:   owner.ID,
		Description: req.Description,
		Image:       req.Image,
		Status:      normalizeStatus(req.Status),
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.store.CreateProduct(r.Context(), product); err != nil {
		respondStoreError(w, err)
		return
	}

	h.bus.Emit(r.Context(), events.New(events.EventProductCreated, owner.ID, product.ID))
	respondSuccess(w, http.StatusCreated, product)
}

// UpdateProduct partially updates a listing the artisan owns. A foreign
// or missing ID is a 404 either way.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req UpdateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// Ownership check happens before any mutation.
	if _, err := h.store.GetOwnedProduct(r.Context(), id, claims.UserID); err != nil {
		respondStoreError(w, err)
		return
	}

	product, err := h.store.UpdateProduct(r.Context(), id, func(p *models.Product) error {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Price != nil {
			p.Price = *req.Price
			if p.Price < 0 {
				p.Price = 0
			}
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Image != nil {
			p.Image = *req.Image
		}
		if req.Status != nil {
			p.Status = normalizeStatus(*req.Status)
		}
		if req.Tags != nil {
			p.Tags = *req.Tags
		}
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.bus.Emit(r.Context(), events.New(events.EventProductUpdated, claims.UserID, product.ID))
	respondSuccess(w, http.StatusOK, product)
}

// DeleteProduct removes a listing the artisan owns; 404 otherwise.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if _, err := h.store.GetOwnedProduct(r.Context(), id, claims.UserID); err != nil {
		respondStoreError(w, err)
		return
	}
	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	h.bus.Emit(r.Context(), events.New(events.EventProductDeleted, claims.UserID, id))
	respondSuccess(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
