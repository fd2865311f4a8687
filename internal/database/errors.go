// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package database

import "errors"

// Store errors. Handlers translate these into the API error taxonomy.
var (
	// ErrNotFound is returned when a document is absent. Ownership-scoped
	// lookups also return it when the document exists but belongs to
	// someone else, so absence and foreign ownership are indistinguishable
	// to callers.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateEmail is returned when inserting a user whose email is
	// already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateReview is returned when a customer has already reviewed
	// the product.
	ErrDuplicateReview = errors.New("product already reviewed by this user")
)
