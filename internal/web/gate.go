// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

// Package web serves the server-rendered pages and the navigation gate
// that keeps unauthenticated visitors out of protected pages.
package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/logging"
	"github.com/cmorton/haven/internal/models"
)

// Page protection categories. Anything not listed is public.
var (
	protectedAny      = []string{"/dashboard"}
	protectedArtisan  = []string{"/products/manage"}
	protectedCustomer = []string{"/profiles/customer"}
)

// Gate redirects browsers instead of returning API errors. It wraps the
// page routes only; the JSON API has its own middleware.
type Gate struct {
	tokens  *auth.TokenManager
	session *auth.SessionWriter
}

// NewGate builds the navigation gate.
func NewGate(tokens *auth.TokenManager, session *auth.SessionWriter) *Gate {
	return &Gate{tokens: tokens, session: session}
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Middleware applies the gate:
//   - public paths pass through untouched
//   - protected paths without a session redirect to the login page with
//     the original path in the redirect query parameter
//   - an invalid token is cleared before the redirect so the browser
//     does not resubmit it
//   - role-restricted pages bounce a valid session of the wrong role to
//     its home page
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		needsAuth := matchesAny(path, protectedAny) ||
			matchesAny(path, protectedArtisan) ||
			matchesAny(path, protectedCustomer)
		if !needsAuth {
			next.ServeHTTP(w, r)
			return
		}

		token := auth.ReadToken(r)
		if token == "" {
			g.toLogin(w, r, path)
			return
		}

		claims, err := g.tokens.Verify(token)
		if err != nil {
			logging.Debug().Err(err).Str("path", path).Msg("Gate rejected session token")
			g.session.Clear(w)
			g.toLogin(w, r, path)
			return
		}

		switch {
		case matchesAny(path, protectedArtisan) && claims.Role != models.RoleArtisan:
			http.Redirect(w, r, "/profiles/customer", http.StatusFound)
			return
		case matchesAny(path, protectedCustomer) && claims.Role != models.RoleCustomer:
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

func (g *Gate) toLogin(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, "/auth/login?redirect="+url.QueryEscape(path), http.StatusFound)
}
