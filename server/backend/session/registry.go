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

// Package session maps live connections to the document and collaborator
// they joined, so that a disconnect can be resolved without the client.
package session

import (
	"github.com/yorkie-team/coedit/pkg/cmap"
)

// Session is the association of a connection.
type Session struct {
	ConnID         string
	DocumentID     string
	CollaboratorID string
}

// Registry holds at most one Session per connection.
type Registry struct {
	sessions *cmap.Map[string, Session]
}

// NewRegistry creates a new Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: cmap.New[string, Session](),
	}
}

// RecordJoin records the association of the connection, replacing any
// prior one.
func (r *Registry) RecordJoin(connID, docID, collaboratorID string) {
	r.sessions.Set(connID, Session{
		ConnID:         connID,
		DocumentID:     docID,
		CollaboratorID: collaboratorID,
	})
}

// Resolve returns the association of the connection.
func (r *Registry) Resolve(connID string) (Session, bool) {
	return r.sessions.Get(connID)
}

// Clear removes the association of the connection. Unknown connections are
// ignored.
func (r *Registry) Clear(connID string) {
	r.sessions.Delete(connID)
}

// ClearIf removes the association of the connection only if it still
// points at the given collaborator of the given document.
func (r *Registry) ClearIf(connID, docID, collaboratorID string) bool {
	return r.sessions.DeleteIf(connID, func(s Session) bool {
		return s.DocumentID == docID && s.CollaboratorID == collaboratorID
	})
}

// Len returns the number of associations.
func (r *Registry) Len() int {
	return r.sessions.Len()
}
