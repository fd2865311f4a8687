// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package database

import (
	"sort"
	"strings"

	"github.com/cmorton/haven/internal/models"
)

// ProductFilter maps optional listing/search parameters to a matching
// predicate. Zero-valued fields impose no constraint; all supplied fields
// are ANDed together. Search is an OR across name, description, and the
// artisan display name, case-insensitive substring.
type ProductFilter struct {
	ArtisanID string
	Category  string
	Status    string
	Artisan   string // case-insensitive substring on display name
	Search    string
	MinPrice  *float64 // inclusive
	MaxPrice  *float64 // inclusive
}

// Match reports whether p satisfies every supplied constraint.
func (f ProductFilter) Match(p *models.Product) bool {
	if f.ArtisanID != "" && p.ArtisanID != f.ArtisanID {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Artisan != "" && !containsFold(p.Artisan, f.Artisan) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Search != "" {
		if !containsFold(p.Name, f.Search) &&
			!containsFold(p.Description, f.Search) &&
			!containsFold(p.Artisan, f.Search) {
			return false
		}
	}
	return true
}

// ReviewFilter matches reviews on equality of the supplied fields.
type ReviewFilter struct {
	ProductID string
	UserID    string
}

// Match reports whether r satisfies every supplied constraint.
func (f ReviewFilter) Match(r *models.Review) bool {
	if f.ProductID != "" && r.ProductID != f.ProductID {
		return false
	}
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	return true
}

// UserFilter matches users on role equality.
type UserFilter struct {
	Role string
}

// Match reports whether u satisfies every supplied constraint.
func (f UserFilter) Match(u *models.User) bool {
	return f.Role == "" || u.Role == f.Role
}

// containsFold is a case-insensitive substring test.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// sortProductsNewestFirst orders products by CreatedAt descending.
// ID breaks ties so ordering is deterministic.
func sortProductsNewestFirst(products []*models.Product) {
	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ID < products[j].ID
	})
}

// sortReviewsNewestFirst orders reviews by CreatedAt descending.
func sortReviewsNewestFirst(reviews []*models.Review) {
	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID < reviews[j].ID
	})
}

// sortOrdersNewestFirst orders orders by CreatedAt descending.
func sortOrdersNewestFirst(orders []*models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID < orders[j].ID
	})
}
