// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/cmorton/haven/internal/logging"
	"github.com/cmorton/haven/internal/metrics"
	"github.com/cmorton/haven/internal/models"
)

type contextKey string

// claimsContextKey holds the *Claims of the authenticated caller.
const claimsContextKey contextKey = "claims"

// ClaimsFromContext returns the authenticated caller's claims, or nil
// when the request carried no valid session.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey).(*Claims)
	return claims
}

// WithClaims returns a child context carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// Middleware enforces authentication on API routes.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware creates the authentication middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate requires a valid session cookie. A missing cookie yields
// 401 "Authentication required"; a present but invalid or expired token
// yields 401 "Invalid token". On success the claims are stored in the
// request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ReadToken(r)
		if token == "" {
			metrics.RecordAuthAttempt("verify", "missing")
			unauthorized(w, "AUTH_REQUIRED", "Authentication required")
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			metrics.RecordAuthAttempt("verify", "invalid")
			logging.Debug().Err(err).Msg("Session token rejected")
			unauthorized(w, "AUTH_INVALID", "Invalid token")
			return
		}

		metrics.RecordAuthAttempt("verify", "success")
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireRole requires the authenticated caller to hold the given role.
// Must run after Authenticate. The wrong role yields 403.
func (m *Middleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				unauthorized(w, "AUTH_REQUIRED", "Authentication required")
				return
			}
			if claims.Role != role {
				forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth attaches claims when a valid session is present and
// otherwise passes the request through anonymously. Invalid tokens are
// ignored rather than rejected.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := ReadToken(r); token != "" {
			if claims, err := m.tokens.Verify(token); err == nil {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, code, message string) {
	writeAuthError(w, http.StatusUnauthorized, code, message)
}

func forbidden(w http.ResponseWriter) {
	writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
}

// writeAuthError emits the standard error envelope. The auth package
// keeps its own responder to stay below the api package in the import
// graph.
func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode auth error response")
	}
}
