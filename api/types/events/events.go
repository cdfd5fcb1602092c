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

// Package events defines the events that the server delivers to the
// connections of a document.
package events

import (
	"time"

	"github.com/yorkie-team/coedit/api/types"
)

// DocEventType represents the type of the DocEvent.
type DocEventType string

const (
	// DocStateEvent carries the full state of a document. It is sent only to
	// the connection that joined.
	DocStateEvent DocEventType = "document-state"

	// UserJoinedEvent is an event that occurs when a collaborator joins.
	UserJoinedEvent DocEventType = "user-joined"

	// UserLeftEvent is an event that occurs when a collaborator leaves.
	UserLeftEvent DocEventType = "user-left"

	// CursorUpdatedEvent is an event that occurs when a collaborator moves
	// the cursor.
	CursorUpdatedEvent DocEventType = "cursor-updated"

	// ContentChangedEvent is an event that occurs when an operation is
	// applied to the document.
	ContentChangedEvent DocEventType = "content-changed"

	// DocLockedEvent is an event that occurs when the document is locked, or
	// when an edit is rejected because another collaborator holds the lock.
	DocLockedEvent DocEventType = "document-locked"

	// DocUnlockedEvent is an event that occurs when the lock is released.
	DocUnlockedEvent DocEventType = "document-unlocked"

	// ErrorEvent reports a rejected message to its sender.
	ErrorEvent DocEventType = "error"
)

// DocEvent represents an event that occurs in the document.
type DocEvent struct {
	// Type is the type of the event.
	Type DocEventType

	// DocumentID is the id of the document that the event occurred.
	DocumentID string

	// Payload is one of the payload types of this package.
	Payload interface{}
}

// DocStatePayload is the payload of DocStateEvent.
type DocStatePayload struct {
	Content       string                `json:"content"`
	Version       int64                 `json:"version"`
	Collaborators []*types.Collaborator `json:"collaborators"`
	LockedBy      string                `json:"lockedBy,omitempty"`
}

// UserJoinedPayload is the payload of UserJoinedEvent.
type UserJoinedPayload struct {
	User          types.User            `json:"user"`
	Collaborators []*types.Collaborator `json:"collaborators"`
}

// UserLeftPayload is the payload of UserLeftEvent.
type UserLeftPayload struct {
	UserID        string                `json:"userId"`
	Collaborators []*types.Collaborator `json:"collaborators"`
	LockedBy      string                `json:"lockedBy,omitempty"`
}

// CursorUpdatedPayload is the payload of CursorUpdatedEvent.
type CursorUpdatedPayload struct {
	UserID string        `json:"userId"`
	Cursor *types.Cursor `json:"cursor"`
}

// ContentChangedPayload is the payload of ContentChangedEvent.
type ContentChangedPayload struct {
	Operation      types.Operation `json:"operation"`
	Version        int64           `json:"version"`
	LastModified   time.Time       `json:"lastModified"`
	LastModifiedBy string          `json:"lastModifiedBy"`
}

// DocLockedPayload is the payload of DocLockedEvent.
type DocLockedPayload struct {
	LockedBy string `json:"lockedBy"`
	Message  string `json:"message"`
}

// DocUnlockedPayload is the payload of DocUnlockedEvent.
type DocUnlockedPayload struct {
	UnlockedBy string `json:"unlockedBy"`
	Message    string `json:"message"`
}

// ErrorPayload is the payload of ErrorEvent.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
