// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

// Package api implements the JSON API: request decoding, validation,
// the standardized response envelope, and the Chi route tree.
package api

import (
	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/database"
	"github.com/cmorton/haven/internal/events"
)

// Handler holds the dependencies shared by all endpoint methods. One
// instance serves all requests; it carries no per-request state.
type Handler struct {
	store   *database.Store
	hasher  *auth.Hasher
	tokens  *auth.TokenManager
	session *auth.SessionWriter
	bus     *events.Bus
}

// NewHandler wires the handler dependencies.
func NewHandler(store *database.Store, hasher *auth.Hasher, tokens *auth.TokenManager, session *auth.SessionWriter, bus *events.Bus) *Handler {
	return &Handler{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		session: session,
		bus:     bus,
	}
}
