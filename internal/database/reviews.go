// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/cmorton/haven/internal/metrics"
	"github.com/cmorton/haven/internal/models"
)

// reviewIdxKey is the secondary-index key enforcing one review per
// (product, user) pair. Written in the same transaction as the review.
func reviewIdxKey(productID, userID string) []byte {
	return []byte("idx:reviews:product_user:" + productID + ":" + userID)
}

// CreateReview inserts a new review, assigning an ID when unset. A second
// review by the same user for the same product fails with
// ErrDuplicateReview.
func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if review.ID == "" {
		review.ID = uuid.New().String()
	}

	data, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		idxKey := reviewIdxKey(review.ProductID, review.UserID)
		if _, err := txn.Get(idxKey); err == nil {
			return ErrDuplicateReview
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check review index: %w", err)
		}

		if err := txn.Set(docKey(ColReviews, review.ID), data); err != nil {
			return fmt.Errorf("set review: %w", err)
		}
		return txn.Set(idxKey, []byte(review.ID))
	})
	metrics.RecordStoreOperation("insert", ColReviews, err)
	return err
}

// GetReview fetches a review by ID.
func (s *Store) GetReview(ctx context.Context, id string) (*models.Review, error) {
	return getDoc[models.Review](ctx, s, ColReviews, id)
}

// GetOwnedReview fetches a review only when userID wrote it; foreign
// ownership yields ErrNotFound.
func (s *Store) GetOwnedReview(ctx context.Context, id, userID string) (*models.Review, error) {
	review, err := s.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrNotFound
	}
	return review, nil
}

// FindReviews returns reviews matching the filter, newest first.
// A non-positive limit returns everything.
func (s *Store) FindReviews(ctx context.Context, filter ReviewFilter, limit int) ([]*models.Review, error) {
	reviews, err := scanDocs(ctx, s, ColReviews, filter.Match)
	if err != nil {
		return nil, err
	}
	sortReviewsNewestFirst(reviews)
	if limit > 0 && len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews, nil
}

// UpdateReview applies mutate to the stored review atomically.
func (s *Store) UpdateReview(ctx context.Context, id string, mutate func(*models.Review) error) (*models.Review, error) {
	return updateDoc(ctx, s, ColReviews, id, mutate)
}

// DeleteReview removes a review and its uniqueness index entry.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		key := docKey(ColReviews, id)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var review models.Review
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &review)
		}); err != nil {
			return fmt.Errorf("decode review: %w", err)
		}

		if err := txn.Delete(reviewIdxKey(review.ProductID, review.UserID)); err != nil {
			return fmt.Errorf("delete review index: %w", err)
		}
		return txn.Delete(key)
	})
	metrics.RecordStoreOperation("delete", ColReviews, err)
	return err
}
