// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package web

import (
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmorton/haven/internal/auth"
)

// Handler serves minimal page shells. The pages exist so the gate has
// routes to protect; the client renders everything meaningful from the
// JSON API.
type Handler struct {
	gate *Gate
}

// NewHandler builds the page handler.
func NewHandler(gate *Gate) *Handler {
	return &Handler{gate: gate}
}

// Routes mounts the page routes behind the navigation gate.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.gate.Middleware)

	r.Get("/", h.page("Haven", "Handcrafted goods from independent artisans."))
	r.Get("/auth/login", h.page("Sign in", "Sign in to your Haven account."))
	r.Get("/auth/signup", h.page("Create account", "Join Haven as an artisan or customer."))
	r.Get("/products", h.page("Browse", "Browse handcrafted products."))
	r.Get("/dashboard", h.authedPage("Dashboard"))
	r.Get("/products/manage", h.authedPage("Manage products"))
	r.Get("/profiles/customer", h.authedPage("My account"))
	return r
}

func (h *Handler) page(title, blurb string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeShell(w, title, blurb)
	}
}

// authedPage greets the signed-in user; the gate guarantees claims are
// present by the time this runs.
func (h *Handler) authedPage(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.ClaimsFromContext(r.Context())
		blurb := "Signed in"
		if claims != nil {
			blurb = "Signed in as " + claims.Email
		}
		writeShell(w, title, blurb)
	}
}

func writeShell(w http.ResponseWriter, title, blurb string) {
	title = html.EscapeString(title)
	blurb = html.EscapeString(blurb)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>%s - Haven</title></head>
<body><h1>%s</h1><p>%s</p></body>
</html>
`, title, title, blurb)
}
