// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package authz

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/logging"
	"github.com/cmorton/haven/internal/models"
)

// Middleware enforces the role policy on routes it wraps. It must run
// after auth.Middleware.Authenticate so claims are in the context.
func Middleware(e *Enforcer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.ClaimsFromContext(r.Context())
			if claims == nil {
				respondDenied(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
				return
			}

			allowed, err := e.Enforce(claims.Role, r.URL.Path, r.Method)
			if err != nil {
				logging.Error().Err(err).
					Str("role", claims.Role).
					Str("path", r.URL.Path).
					Msg("Authorization check failed")
				respondDenied(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}
			if !allowed {
				logging.Debug().
					Str("role", claims.Role).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Request denied by policy")
				respondDenied(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondDenied(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := models.APIResponse{
		Status:   "error",
		Error:    &models.APIError{Code: code, Message: message},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode authz error response")
	}
}
