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

package collab

import (
	"context"
	"errors"

	"github.com/yorkie-team/coedit/server/backend/database"
	"github.com/yorkie-team/coedit/server/backend/docstore"
	"github.com/yorkie-team/coedit/server/backend/messagebroker"
	"github.com/yorkie-team/coedit/server/backend/sync"
	"github.com/yorkie-team/coedit/server/logging"
)

const (
	snapshotLoad = "load"
	snapshotSave = "save"

	resultOK       = "ok"
	resultConflict = "conflict"
	resultError    = "error"
)

// seed loads the latest snapshot of a newly created document.
func (c *Coordinator) seed(ctx context.Context, state *docstore.State) {
	if c.database == nil {
		return
	}

	info, err := c.database.FindSnapshotInfo(ctx, state.ID())
	if err != nil {
		if isNotFound(err) {
			return
		}
		c.metrics.AddSnapshot(snapshotLoad, resultError)
		logging.From(ctx).Errorf("load snapshot of %s: %v", state.ID(), err)
		return
	}

	state.Seed(info.Content, info.Version, info.LastModified, info.LastModifiedBy)
	c.metrics.AddSnapshot(snapshotLoad, resultOK)
}

// checkpoint saves the state if it changed since the last checkpoint. It
// must be called inside the critical section of the document.
func (c *Coordinator) checkpoint(ctx context.Context, state *docstore.State) bool {
	if c.database == nil {
		return false
	}

	snapshot, dirty := state.Checkpoint()
	if !dirty {
		return false
	}

	err := c.database.UpdateSnapshotInfo(ctx, &database.SnapshotInfo{
		DocID:          snapshot.DocumentID,
		Content:        snapshot.Content,
		Version:        snapshot.Version,
		LastModified:   snapshot.LastModified,
		LastModifiedBy: snapshot.LastModifiedBy,
	})
	if err != nil {
		if errors.Is(err, database.ErrConflictOnUpdate) {
			c.metrics.AddSnapshot(snapshotSave, resultConflict)
			logging.From(ctx).Warnf("save snapshot of %s: %v", snapshot.DocumentID, err)
			return false
		}

		state.MarkDirty()
		c.metrics.AddSnapshot(snapshotSave, resultError)
		logging.From(ctx).Errorf("save snapshot of %s: %v", snapshot.DocumentID, err)
		return false
	}

	c.metrics.AddSnapshot(snapshotSave, resultOK)
	return true
}

// Checkpoint saves the documents changed since their last checkpoint and
// returns the number of saved documents.
func (c *Coordinator) Checkpoint(ctx context.Context) (int, error) {
	if c.database == nil {
		return 0, nil
	}

	return c.fanOut.each(ctx, c.store.DocumentIDs(), func(ctx context.Context, docID string) (int, error) {
		saved := 0
		err := c.locker.WithLock(sync.DocKey(docID), func() error {
			state, ok := c.store.Get(docID)
			if !ok {
				return nil
			}
			if c.checkpoint(ctx, state) {
				saved = 1
			}
			return nil
		})
		return saved, err
	})
}

// SweepIdle evicts the collaborators silent for longer than the stale
// threshold and removes the documents left without collaborators. Nothing
// is broadcast: the connections of evicted collaborators are presumed gone.
// A connection that is still open keeps its room subscription and session
// until it leaves or disconnects. It returns the number of evicted
// collaborators.
func (c *Coordinator) SweepIdle(ctx context.Context) (int, error) {
	before := c.options.Now().Add(-c.options.StaleThreshold)

	total := 0
	for _, docID := range c.store.DocumentIDs() {
		if err := c.locker.WithLock(sync.DocKey(docID), func() error {
			state, ok := c.store.Get(docID)
			if !ok {
				return nil
			}

			evicted := state.EvictIdle(before)
			for _, collaboratorID := range evicted {
				c.produce(ctx, messagebroker.DocumentEvictedEvent, state, collaboratorID, c.options.Now())
			}
			total += len(evicted)

			c.removeIfEmpty(ctx, state)
			return nil
		}); err != nil {
			return total, err
		}
	}

	if total > 0 {
		logging.From(ctx).Infof("SWEEP: evicted %d idle collaborators", total)
	}
	c.metrics.AddEvictions(total)
	c.updateGauges()
	return total, nil
}
