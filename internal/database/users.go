// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/cmorton/haven/internal/metrics"
	"github.com/cmorton/haven/internal/models"
)

// emailIdxKey is the secondary-index key mapping a lowercased email to the
// owning user ID. Written in the same transaction as the user document so
// uniqueness holds under concurrent signups.
func emailIdxKey(email string) []byte {
	return []byte("idx:users:email:" + strings.ToLower(email))
}

// CreateUser inserts a new user, assigning an ID when unset. Emails are
// stored lowercased and must be unique; a second registration for the same
// address fails with ErrDuplicateEmail.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Email = strings.ToLower(user.Email)

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		idxKey := emailIdxKey(user.Email)
		if _, err := txn.Get(idxKey); err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check email index: %w", err)
		}

		if err := txn.Set(docKey(ColUsers, user.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		return txn.Set(idxKey, []byte(user.ID))
	})
	metrics.RecordStoreOperation("insert", ColUsers, err)
	return err
}

// GetUser fetches a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return getDoc[models.User](ctx, s, ColUsers, id)
}

// GetUserByEmail fetches a user by email via the email index.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailIdxKey(email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get email index: %w", err)
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// UpdateUser applies mutate to the stored user atomically.
func (s *Store) UpdateUser(ctx context.Context, id string, mutate func(*models.User) error) (*models.User, error) {
	return updateDoc(ctx, s, ColUsers, id, mutate)
}

// FindUsers returns users matching the filter, ordered by name for stable
// directory listings.
func (s *Store) FindUsers(ctx context.Context, filter UserFilter) ([]*models.User, error) {
	users, err := scanDocs(ctx, s, ColUsers, filter.Match)
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

// FindArtisanBySlug resolves an artisan by studio name, falling back to the
// account name. Comparison is exact after URL-decoding by the caller.
func (s *Store) FindArtisanBySlug(ctx context.Context, slug string) (*models.User, error) {
	users, err := scanDocs(ctx, s, ColUsers, func(u *models.User) bool {
		if u.Role != models.RoleArtisan {
			return false
		}
		if u.ArtisanProfile != nil && u.ArtisanProfile.StudioName == slug {
			return true
		}
		return u.Name == slug
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	// Prefer a studio-name match over a plain name match.
	for _, u := range users {
		if u.ArtisanProfile != nil && u.ArtisanProfile.StudioName == slug {
			return u, nil
		}
	}
	return users[0], nil
}
