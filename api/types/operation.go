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

package types

import "time"

// OperationType is the kind of an edit.
type OperationType string

// Belows are the types of operations.
const (
	Insert OperationType = "insert"
	Delete OperationType = "delete"
	Retain OperationType = "retain"
)

// Operation is a single edit submitted by a collaborator. Once accepted by
// the server, Version and Timestamp are replaced with the server-assigned
// values.
type Operation struct {
	// Type is the kind of the edit.
	Type OperationType `json:"type" validate:"required,oneof=insert delete retain"`

	// Content is the inserted text.
	Content string `json:"content,omitempty"`

	// Length is the number of characters the edit covers.
	Length int `json:"length"`

	// Version is the document version the client based the edit on. For a
	// stamped operation it is the version the edit produced.
	Version int64 `json:"version" validate:"min=0"`

	// UserID is the id of the collaborator who submitted the edit.
	UserID string `json:"userId"`

	// Timestamp is the time the edit was made or accepted.
	Timestamp time.Time `json:"timestamp"`
}
