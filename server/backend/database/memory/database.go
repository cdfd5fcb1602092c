/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package memory implements the database interface using in-memory database.
package memory

import (
	"context"
	"fmt"
	gotime "time"

	"github.com/hashicorp/go-memdb"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yorkie-team/coedit/server/backend/database"
)

// DB is an in-memory database for testing or temporarily.
type DB struct {
	db *memdb.MemDB
}

// New returns a new in-memory database.
func New() (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	return &DB{
		db: memDB,
	}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

// FindSnapshotInfo returns the latest snapshot of the given document.
func (d *DB) FindSnapshotInfo(_ context.Context, docID string) (*database.SnapshotInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblSnapshots, "doc_id", docID)
	if err != nil {
		return nil, fmt.Errorf("find snapshot of %s: %w", docID, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", docID, database.ErrSnapshotNotFound)
	}

	return raw.(*database.SnapshotInfo).DeepCopy(), nil
}

// UpdateSnapshotInfo stores the given snapshot.
func (d *DB) UpdateSnapshotInfo(_ context.Context, info *database.SnapshotInfo) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblSnapshots, "doc_id", info.DocID)
	if err != nil {
		return fmt.Errorf("find snapshot of %s: %w", info.DocID, err)
	}

	stored := info.DeepCopy()
	stored.UpdatedAt = gotime.Now()
	if raw != nil {
		prev := raw.(*database.SnapshotInfo)
		if prev.Version > info.Version {
			return fmt.Errorf("%s: stored %d > %d: %w", info.DocID, prev.Version, info.Version, database.ErrConflictOnUpdate)
		}
		stored.ID = prev.ID
	} else {
		stored.ID = newID()
	}

	if err := txn.Insert(tblSnapshots, stored); err != nil {
		return fmt.Errorf("update snapshot of %s: %w", info.DocID, err)
	}
	txn.Commit()

	info.ID = stored.ID
	info.UpdatedAt = stored.UpdatedAt
	return nil
}

// ListSnapshotInfos returns the snapshots of all documents without content.
func (d *DB) ListSnapshotInfos(_ context.Context) ([]*database.SnapshotInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblSnapshots, "doc_id")
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	var infos []*database.SnapshotInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		info := raw.(*database.SnapshotInfo).DeepCopy()
		info.Content = ""
		infos = append(infos, info)
	}

	return infos, nil
}

func newID() string {
	return bson.NewObjectID().Hex()
}
