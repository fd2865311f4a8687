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

// AppendAudit records one audit trail entry.
func (s *Store) AppendAudit(ctx context.Context, entry *models.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return insertDoc(ctx, s, ColAudit, entry.ID, entry)
}

// FindAudit returns all audit entries; intended for tests and operators.
func (s *Store) FindAudit(ctx context.Context) ([]*models.AuditEntry, error) {
	return scanDocs[models.AuditEntry](ctx, s, ColAudit, nil)
}
