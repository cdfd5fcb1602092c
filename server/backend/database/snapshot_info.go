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

package database

import (
	"time"
)

// SnapshotInfo is a structure representing information of the snapshot.
type SnapshotInfo struct {
	// ID is the unique ID of the snapshot.
	ID string `bson:"_id"`

	// DocID is the ID of the document which the snapshot belongs to.
	DocID string `bson:"doc_id"`

	// Content is the content of the document.
	Content string `bson:"content"`

	// Version is the version of the document when the snapshot was taken.
	Version int64 `bson:"version"`

	// LastModified is the time of the last edit included in the snapshot.
	LastModified time.Time `bson:"last_modified"`

	// LastModifiedBy is the collaborator of the last edit.
	LastModifiedBy string `bson:"last_modified_by"`

	// UpdatedAt is the time when the snapshot was stored.
	UpdatedAt time.Time `bson:"updated_at"`
}

// DeepCopy returns a deep copy of the SnapshotInfo.
func (i *SnapshotInfo) DeepCopy() *SnapshotInfo {
	if i == nil {
		return nil
	}

	clone := *i
	return &clone
}
