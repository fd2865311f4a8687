// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package database

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/cmorton/haven/internal/models"
)

// CreateProduct inserts a new product, assigning an ID when unset.
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return insertDoc(ctx, s, ColProducts, product.ID, product)
}

// GetProduct fetches a product by ID.
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return getDoc[models.Product](ctx, s, ColProducts, id)
}

// GetOwnedProduct fetches a product only when artisanID owns it. A product
// that exists but is owned by someone else yields ErrNotFound, keeping
// absence and foreign ownership indistinguishable.
func (s *Store) GetOwnedProduct(ctx context.Context, id, artisanID string) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.ArtisanID != artisanID {
		return nil, ErrNotFound
	}
	return product, nil
}

// FindProducts returns products matching the filter, newest first.
// A non-positive limit returns everything.
func (s *Store) FindProducts(ctx context.Context, filter ProductFilter, limit int) ([]*models.Product, error) {
	products, err := scanDocs(ctx, s, ColProducts, filter.Match)
	if err != nil {
		return nil, err
	}
	sortProductsNewestFirst(products)
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

// UpdateProduct applies mutate to the stored product atomically.
func (s *Store) UpdateProduct(ctx context.Context, id string, mutate func(*models.Product) error) (*models.Product, error) {
	return updateDoc(ctx, s, ColProducts, id, mutate)
}

// DeleteProduct removes a product by ID.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return deleteDoc(ctx, s, ColProducts, id)
}

// Categories returns the distinct categories of published products,
// sorted, for the search filter facet.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	published := ProductFilter{Status: models.StatusPublished}
	products, err := scanDocs(ctx, s, ColProducts, published.Match)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(products))
	var categories []string
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}
