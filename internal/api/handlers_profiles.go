// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/database"
	"github.com/cmorton/haven/internal/events"
	"github.com/cmorton/haven/internal/models"
)

// UpdateProfileRequest is the PUT /api/profiles/{id} body.
type UpdateProfileRequest struct {
	Name       *string   `json:"name"`
	StudioName *string   `json:"studioName"`
	Location   *string   `json:"location"`
	Specialty  *string   `json:"specialty"`
	Story      *string   `json:"story"`
	Tags       *[]string `json:"tags"`
}

// artisanProfileResponse pairs a sanitized artisan with their published
// products.
type artisanProfileResponse struct {
	User     models.PublicUser `json:"user"`
	Products []*models.Product `json:"products"`
}

// ListProfiles serves the public member directory, optionally filtered
// by role.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role != "" && !models.ValidRole(role) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "role must be one of: artisan customer", nil)
		return
	}

	users, err := h.store.FindUsers(r.Context(), database.UserFilter{Role: role})
	if err != nil {
		respondStoreError(w, err)
		return
	}

	public := make([]models.PublicUser, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}
	respondSuccess(w, http.StatusOK, public)
}

// GetProfile serves an artisan's profile with their published products.
// Non-artisan IDs are 404.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if user.Role != models.RoleArtisan {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Artisan not found", nil)
		return
	}
	h.respondArtisanProfile(w, r, user)
}

// GetArtisanBySlug resolves an artisan by studio name, falling back to
// display name.
func (h *Handler) GetArtisanBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if decoded, err := url.PathUnescape(slug); err == nil {
		slug = decoded
	}

	user, err := h.store.FindArtisanBySlug(r.Context(), slug)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	h.respondArtisanProfile(w, r, user)
}

func (h *Handler) respondArtisanProfile(w http.ResponseWriter, r *http.Request, user *models.User) {
	filter := database.ProductFilter{ArtisanID: user.ID, Status: models.StatusPublished}
	products, err := h.store.FindProducts(r.Context(), filter, 0)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, artisanProfileResponse{
		User:     user.Public(),
		Products: products,
	})
}

// UpdateProfile lets an artisan edit their own storefront fields. Any
// other ID is a 403, not a 404: the directory is public so existence is
// not a secret.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if claims.Role != models.RoleArtisan {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions", nil)
		return
	}
	if claims.UserID != id {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "You can only update your own profile", nil)
		return
	}

	var req UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.store.UpdateUser(r.Context(), id, func(u *models.User) error {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if u.ArtisanProfile == nil {
			u.ArtisanProfile = &models.ArtisanProfile{}
		}
		if req.StudioName != nil {
			u.ArtisanProfile.StudioName = *req.StudioName
		}
		if req.Location != nil {
			u.ArtisanProfile.Location = *req.Location
		}
		if req.Specialty != nil {
			u.ArtisanProfile.Specialty = *req.Specialty
		}
		if req.Story != nil {
			u.ArtisanProfile.Story = *req.Story
		}
		if req.Tags != nil {
			u.ArtisanProfile.Tags = *req.Tags
		}
		u.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.bus.Emit(r.Context(), events.New(events.EventProfileUpdated, claims.UserID, id))
	respondSuccess(w, http.StatusOK, user.Public())
}
