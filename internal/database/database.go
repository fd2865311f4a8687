// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

// Package database implements Haven's embedded document store: named
// collections of JSON documents over BadgerDB.
//
// Collections are key prefixes ("users:", "products:", ...); values are
// JSON-encoded documents. Reads and writes run inside Badger transactions,
// which gives every single-document operation atomicity. The application
// layer performs no multi-document transactions beyond the secondary-index
// writes that share a transaction with their document.
//
// The Store is constructed once at process start, injected into handlers,
// and closed at shutdown. There is no package-level store instance.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/cmorton/haven/internal/config"
	"github.com/cmorton/haven/internal/logging"
	"github.com/cmorton/haven/internal/metrics"
)

// Collection names.
const (
	ColUsers    = "users"
	ColProducts = "products"
	ColReviews  = "reviews"
	ColOrders   = "orders"
	ColAudit    = "audit"
)

// Store is the embedded document store handle.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store at the configured path. An empty path
// selects an in-memory store, used by tests and local development.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	var opts badger.Options
	if cfg.Path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	// Badger logs through its own interface; route it to zerolog.
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", cfg.Path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying Badger database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the store is usable. Used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error { return nil })
}

// RunGC triggers one value-log garbage collection cycle. Badger returns
// ErrNoRewrite when there was nothing to collect; that is not a failure.
func (s *Store) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return err
	}
	return nil
}

// docKey builds the primary key for a document.
func docKey(col, id string) []byte {
	return []byte(col + ":" + id)
}

// colPrefix is the scan prefix for a collection.
func colPrefix(col string) []byte {
	return []byte(col + ":")
}

// insertDoc writes a new document. The caller assigns the ID.
func insertDoc[T any](ctx context.Context, s *Store, col, id string, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s document: %w", col, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(col, id), data)
	})
	metrics.RecordStoreOperation("insert", col, err)
	return err
}

// getDoc reads one document by ID. Returns ErrNotFound when absent.
func getDoc[T any](ctx context.Context, s *Store, col, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var doc T
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(col, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s/%s: %w", col, id, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
	})
	metrics.RecordStoreOperation("get", col, err)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// scanDocs iterates a collection and returns documents matching pred.
// A nil pred matches everything.
func scanDocs[T any](ctx context.Context, s *Store, col string, pred func(*T) bool) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*T
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = colPrefix(col)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var doc T
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			})
			if err != nil {
				return fmt.Errorf("decode %s document: %w", col, err)
			}
			if pred == nil || pred(&doc) {
				out = append(out, &doc)
			}
		}
		return nil
	})
	metrics.RecordStoreOperation("scan", col, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// updateDoc applies mutate to the stored document in a single read-modify-
// write transaction. Returns the updated document, or ErrNotFound.
func updateDoc[T any](ctx context.Context, s *Store, col, id string, mutate func(*T) error) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var doc T
	err := s.db.Update(func(txn *badger.Txn) error {
		key := docKey(col, id)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s/%s: %w", col, id, err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		}); err != nil {
			return fmt.Errorf("decode %s/%s: %w", col, id, err)
		}
		if err := mutate(&doc); err != nil {
			return err
		}
		data, err := json.Marshal(&doc)
		if err != nil {
			return fmt.Errorf("marshal %s/%s: %w", col, id, err)
		}
		return txn.Set(key, data)
	})
	metrics.RecordStoreOperation("update", col, err)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// deleteDoc removes a document. Returns ErrNotFound when absent so callers
// can distinguish a no-op delete.
func deleteDoc(ctx context.Context, s *Store, col, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		key := docKey(col, id)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
	metrics.RecordStoreOperation("delete", col, err)
	return err
}

// badgerLogger adapts Badger's logger interface to zerolog. Badger is
// chatty at INFO; its operational detail maps better to debug level.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Msgf("badger: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Msgf("badger: "+format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}

// GCLoop runs value-log GC on the configured interval until ctx is
// canceled. Run under the supervision tree.
func (s *Store) GCLoop(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("Value log GC failed")
			}
		}
	}
}
