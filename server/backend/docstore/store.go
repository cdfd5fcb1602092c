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

// Package docstore holds the in-memory state of the documents being edited.
package docstore

import (
	"sort"

	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/pkg/cmap"
)

// Store is the authoritative map of document id to State. A State exists
// only while it has collaborators; it is created on the first join and
// removed explicitly with RemoveIfEmpty.
type Store struct {
	docs *cmap.Map[string, *State]
}

// New creates a new Store.
func New() *Store {
	return &Store{
		docs: cmap.New[string, *State](),
	}
}

// GetOrCreate returns the state of the document, creating an empty one if
// it does not exist. The bool result reports whether it was created.
func (s *Store) GetOrCreate(docID string) (*State, bool) {
	return s.docs.LoadOrStore(docID, func() *State {
		return newState(docID)
	})
}

// Get returns the state of the document without creating it.
func (s *Store) Get(docID string) (*State, bool) {
	return s.docs.Get(docID)
}

// RemoveIfEmpty deletes the document if it has no collaborators. It
// reports whether the document was deleted.
func (s *Store) RemoveIfEmpty(docID string) bool {
	return s.docs.DeleteIf(docID, func(state *State) bool {
		return state.Len() == 0
	})
}

// AddCollaborator inserts or refreshes the collaborator of an existing
// document, taking lastSeen from c. It returns false if the document does
// not exist.
func (s *Store) AddCollaborator(docID string, c types.Collaborator) bool {
	state, ok := s.docs.Get(docID)
	if !ok {
		return false
	}

	state.UpsertCollaborator(c, c.LastSeen)
	return true
}

// RemoveCollaborator removes the collaborator from the document. The
// document itself is kept even if it becomes empty.
func (s *Store) RemoveCollaborator(docID, collaboratorID string) bool {
	state, ok := s.docs.Get(docID)
	if !ok {
		return false
	}

	return state.RemoveCollaborator(collaboratorID)
}

// DocumentIDs returns the ids of all documents in sorted order.
func (s *Store) DocumentIDs() []string {
	ids := s.docs.Keys()
	sort.Strings(ids)
	return ids
}

// Len returns the number of documents.
func (s *Store) Len() int {
	return s.docs.Len()
}

// CollaboratorCount returns the number of collaborators of all documents.
func (s *Store) CollaboratorCount() int {
	count := 0
	s.docs.Range(func(_ string, state *State) bool {
		count += state.Len()
		return true
	})
	return count
}

// Summaries returns the summaries of all documents sorted by id.
func (s *Store) Summaries() []types.DocumentSummary {
	summaries := make([]types.DocumentSummary, 0, s.docs.Len())
	s.docs.Range(func(_ string, state *State) bool {
		summaries = append(summaries, state.Summary())
		return true
	})
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ID < summaries[j].ID
	})
	return summaries
}
