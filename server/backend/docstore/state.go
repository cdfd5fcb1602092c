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

package docstore

import (
	"sort"
	"sync"
	"time"

	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/server/backend/ot"
)

// State is the authoritative record of one document. Operations that must
// be atomic across several calls are serialized by the caller with the
// document's lock; the internal mutex only guards memory access.
type State struct {
	mu sync.RWMutex

	id             string
	content        string
	version        int64
	lastModified   time.Time
	lastModifiedBy string
	lockedBy       string
	collaborators  map[string]*types.Collaborator

	// dirty is true when the content changed since the last checkpoint.
	dirty bool
}

func newState(id string) *State {
	return &State{
		id:            id,
		collaborators: make(map[string]*types.Collaborator),
	}
}

// ID returns the id of the document.
func (s *State) ID() string {
	return s.id
}

// Content returns the current content.
func (s *State) Content() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// Version returns the current version.
func (s *State) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// LastModified returns the time and the collaborator of the last edit.
func (s *State) LastModified() (time.Time, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastModified, s.lastModifiedBy
}

// LockedBy returns the id of the lock holder, or "" if unlocked.
func (s *State) LockedBy() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lockedBy
}

// Seed replaces the content and version, typically from a snapshot, before
// anyone edits the document.
func (s *State) Seed(content string, version int64, lastModified time.Time, lastModifiedBy string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.content = content
	s.version = version
	s.lastModified = lastModified
	s.lastModifiedBy = lastModifiedBy
	s.dirty = false
}

// Len returns the number of collaborators.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collaborators)
}

// Collaborators returns copies of the collaborators sorted by id.
func (s *State) Collaborators() []*types.Collaborator {
	s.mu.RLock()
	defer s.mu.RUnlock()

	collaborators := make([]*types.Collaborator, 0, len(s.collaborators))
	for _, c := range s.collaborators {
		collaborators = append(collaborators, c.DeepCopy())
	}
	sort.Slice(collaborators, func(i, j int) bool {
		return collaborators[i].ID < collaborators[j].ID
	})
	return collaborators
}

// Collaborator returns a copy of the collaborator of the given id.
func (s *State) Collaborator(id string) (*types.Collaborator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collaborators[id]
	if !ok {
		return nil, false
	}
	return c.DeepCopy(), true
}

// HasCollaborator reports whether the collaborator is tracked.
func (s *State) HasCollaborator(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.collaborators[id]
	return ok
}

// UpsertCollaborator inserts or replaces the collaborator and sets its
// lastSeen to now. A re-joining collaborator keeps its last cursor unless
// a new one is given. It reports whether the collaborator was added.
func (s *State) UpsertCollaborator(c types.Collaborator, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := c.DeepCopy()
	clone.LastSeen = now

	prev, exists := s.collaborators[c.ID]
	if exists && clone.Cursor == nil {
		clone.Cursor = prev.Cursor
	}
	s.collaborators[c.ID] = clone
	return !exists
}

// RemoveCollaborator removes the collaborator and releases the lock if it
// held it. It reports whether the collaborator was tracked.
func (s *State) RemoveCollaborator(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collaborators[id]; !ok {
		return false
	}

	delete(s.collaborators, id)
	if s.lockedBy == id {
		s.lockedBy = ""
	}
	return true
}

// Touch refreshes the lastSeen of the collaborator.
func (s *State) Touch(id string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collaborators[id]
	if !ok {
		return false
	}
	c.LastSeen = now
	return true
}

// SetCursor updates the cursor and lastSeen of the collaborator.
func (s *State) SetCursor(id string, cursor *types.Cursor, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collaborators[id]
	if !ok {
		return false
	}
	c.Cursor = cursor.DeepCopy()
	c.LastSeen = now
	return true
}

// Apply stamps the operation against the current version, applies it to
// the content, and records the submitter. It returns the stamped
// operation.
func (s *State) Apply(op types.Operation, collaboratorID string, now time.Time) types.Operation {
	s.mu.Lock()
	defer s.mu.Unlock()

	op.UserID = collaboratorID
	stamped := ot.Stamp(op, s.version, now)
	s.content = ot.Apply(s.content, stamped)
	s.version = stamped.Version
	s.lastModified = now
	s.lastModifiedBy = collaboratorID
	s.dirty = true

	if c, ok := s.collaborators[collaboratorID]; ok {
		c.LastSeen = now
	}

	return stamped
}

// Lock grants the lock to the collaborator if nobody holds it. Only
// tracked collaborators can lock.
func (s *State) Lock(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lockedBy != "" {
		return false
	}
	if _, ok := s.collaborators[id]; !ok {
		return false
	}
	s.lockedBy = id
	return true
}

// Unlock releases the lock if the collaborator holds it.
func (s *State) Unlock(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lockedBy == "" || s.lockedBy != id {
		return false
	}
	s.lockedBy = ""
	return true
}

// EvictIdle removes the collaborators last seen before the given time and
// returns their ids in sorted order. A lock held by an evicted collaborator
// is released.
func (s *State) EvictIdle(before time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []string
	for id, c := range s.collaborators {
		if c.LastSeen.Before(before) {
			evicted = append(evicted, id)
		}
	}
	sort.Strings(evicted)

	for _, id := range evicted {
		delete(s.collaborators, id)
		if s.lockedBy == id {
			s.lockedBy = ""
		}
	}
	return evicted
}

// Checkpoint returns the persistent part of the state and marks it clean.
// The bool result reports whether the state changed since the last
// checkpoint.
func (s *State) Checkpoint() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirty := s.dirty
	s.dirty = false
	return Snapshot{
		DocumentID:     s.id,
		Content:        s.content,
		Version:        s.version,
		LastModified:   s.lastModified,
		LastModifiedBy: s.lastModifiedBy,
	}, dirty
}

// MarkDirty marks the state as changed since the last checkpoint, so a
// failed checkpoint is retried.
func (s *State) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
}

// Summary returns a summary of the state.
func (s *State) Summary() types.DocumentSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return types.DocumentSummary{
		ID:             s.id,
		Version:        s.version,
		ContentLength:  len([]rune(s.content)),
		Collaborators:  len(s.collaborators),
		LockedBy:       s.lockedBy,
		LastModified:   s.lastModified,
		LastModifiedBy: s.lastModifiedBy,
	}
}

// Snapshot is the persistent part of a document.
type Snapshot struct {
	DocumentID     string
	Content        string
	Version        int64
	LastModified   time.Time
	LastModifiedBy string
}
