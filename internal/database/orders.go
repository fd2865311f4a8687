// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/cmorton/haven/internal/models"
)

// CreateOrder inserts a new order, assigning an ID when unset.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	return insertDoc(ctx, s, ColOrders, order.ID, order)
}

// FindOrdersByUser returns a customer's orders, newest first.
func (s *Store) FindOrdersByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	orders, err := scanDocs(ctx, s, ColOrders, func(o *models.Order) bool {
		return o.UserID == userID
	})
	if err != nil {
		return nil, err
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}
