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

// Package database provides the storage of document snapshots. Snapshots
// let a document keep its content and version across the periods where no
// collaborator is editing it.
package database

import (
	"context"

	"github.com/yorkie-team/coedit/pkg/errors"
)

var (
	// ErrSnapshotNotFound is returned when the snapshot could not be found.
	ErrSnapshotNotFound = errors.NotFound("snapshot not found").WithCode("ErrSnapshotNotFound")

	// ErrConflictOnUpdate is returned when a snapshot older than the stored
	// one is saved.
	ErrConflictOnUpdate = errors.FailedPrecond("conflict on update").WithCode("ErrConflictOnUpdate")
)

// Database represents the storage of snapshots.
type Database interface {
	// Close all resources of this database.
	Close() error

	// FindSnapshotInfo returns the latest snapshot of the given document.
	FindSnapshotInfo(ctx context.Context, docID string) (*SnapshotInfo, error)

	// UpdateSnapshotInfo stores the given snapshot, replacing the previous
	// snapshot of the same document unless it has a newer version.
	UpdateSnapshotInfo(ctx context.Context, info *SnapshotInfo) error

	// ListSnapshotInfos returns the snapshots of all documents without
	// content, sorted by document id.
	ListSnapshotInfos(ctx context.Context) ([]*SnapshotInfo, error)
}
