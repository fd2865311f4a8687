// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/database"
	"github.com/cmorton/haven/internal/events"
	"github.com/cmorton/haven/internal/logging"
	"github.com/cmorton/haven/internal/metrics"
	"github.com/cmorton/haven/internal/models"
)

// SignupRequest is the POST /api/auth/signup body.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=artisan customer"`
}

// Signup registers an account, starts a session, and returns the public
// user. Artisans get a profile seeded with their name as studio name.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		metrics.RecordAuthAttempt("signup", "invalid")
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Role == models.RoleArtisan {
		user.ArtisanProfile = &models.ArtisanProfile{StudioName: req.Name}
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			metrics.RecordAuthAttempt("signup", "duplicate")
		}
		respondStoreError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
		return
	}
	h.session.Set(w, token)

	metrics.RecordAuthAttempt("signup", "success")
	logging.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("User registered")
	h.bus.Emit(r.Context(), events.New(events.EventUserSignup, user.ID, user.ID))

	respondSuccess(w, http.StatusCreated, user.Public())
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and replaces the session. Wrong email and
// wrong password produce the same 401.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		metrics.RecordAuthAttempt("login", "invalid")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			metrics.RecordAuthAttempt("login", "failure")
			respondError(w, http.StatusUnauthorized, "AUTH_INVALID", "Invalid email or password", nil)
			return
		}
		respondStoreError(w, err)
		return
	}

	if !h.hasher.Verify(user.PasswordHash, req.Password) {
		metrics.RecordAuthAttempt("login", "failure")
		respondError(w, http.StatusUnauthorized, "AUTH_INVALID", "Invalid email or password", nil)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
		return
	}
	h.session.Set(w, token)

	metrics.RecordAuthAttempt("login", "success")
	logging.Info().Str("user_id", user.ID).Msg("User logged in")
	h.bus.Emit(r.Context(), events.New(events.EventUserLogin, user.ID, user.ID))

	respondSuccess(w, http.StatusOK, user.Public())
}

// Logout clears the session cookie. Always succeeds, session or not.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Clear(w)
	respondSuccess(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the authenticated principal's account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required", nil)
		return
	}

	user, err := h.store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, user.Public())
}
