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

// Package collab coordinates the collaborators of the documents: it applies
// their messages to the document states and fans the results out to the
// rooms of the documents.
//
// Every operation on a document runs inside the critical section of the
// document, so the operations on one document are applied in the order they
// acquire the lock. Stale references, like an unknown document or an
// untracked collaborator, are logged and dropped. The only rejection visible
// to users is the document-locked event sent when an edit hits a lock held
// by someone else.
package collab

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/api/types/events"
	pkgerrors "github.com/yorkie-team/coedit/pkg/errors"
	"github.com/yorkie-team/coedit/server/backend/database"
	"github.com/yorkie-team/coedit/server/backend/docstore"
	"github.com/yorkie-team/coedit/server/backend/messagebroker"
	"github.com/yorkie-team/coedit/server/backend/pubsub"
	"github.com/yorkie-team/coedit/server/backend/session"
	"github.com/yorkie-team/coedit/server/backend/sync"
	"github.com/yorkie-team/coedit/server/logging"
	"github.com/yorkie-team/coedit/server/profiling/prometheus"
)

var (
	// ErrTooManyCollaborators is returned when a join exceeds the
	// collaborator limit of the document.
	ErrTooManyCollaborators = pkgerrors.ResourceExhausted(
		"too many collaborators",
	).WithCode("ErrTooManyCollaborators")
)

const (
	// DefaultStaleThreshold is the default time after which a silent
	// collaborator is evicted by SweepIdle.
	DefaultStaleThreshold = 5 * time.Minute

	lockConflictMessage = "Document is currently locked by another user"
	lockedMessage       = "Document locked for editing"
	unlockedMessage     = "Document unlocked"
)

// Options are the options of the Coordinator.
type Options struct {
	// StaleThreshold is how long a collaborator may stay silent before
	// SweepIdle evicts it.
	StaleThreshold time.Duration

	// MaxCollaboratorsPerDocument limits the collaborators of a document.
	// Zero means unlimited.
	MaxCollaboratorsPerDocument int

	// FanOutConcurrency limits the documents checkpointed at once.
	FanOutConcurrency int

	// Now returns the current time. It defaults to time.Now.
	Now func() time.Time
}

// Coordinator handles the messages of the collaborators.
type Coordinator struct {
	options Options

	store    *docstore.Store
	registry *session.Registry
	locker   *sync.LockerManager
	fanOut   *fanOut

	rooms    *pubsub.PubSub
	database database.Database
	broker   messagebroker.Broker
	metrics  *prometheus.Metrics
}

// New creates a new Coordinator. The database is optional; without it
// documents start empty and are forgotten once the last collaborator
// leaves.
func New(
	options Options,
	rooms *pubsub.PubSub,
	db database.Database,
	broker messagebroker.Broker,
	metrics *prometheus.Metrics,
) *Coordinator {
	if options.StaleThreshold <= 0 {
		options.StaleThreshold = DefaultStaleThreshold
	}
	if options.FanOutConcurrency <= 0 {
		options.FanOutConcurrency = DefaultFanOutConcurrency
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if broker == nil {
		broker = &messagebroker.DummyBroker{}
	}

	return &Coordinator{
		options:  options,
		store:    docstore.New(),
		registry: session.NewRegistry(),
		locker:   sync.New(),
		fanOut:   newFanOut(int64(options.FanOutConcurrency)),
		rooms:    rooms,
		database: db,
		broker:   broker,
		metrics:  metrics,
	}
}

// Store returns the document store.
func (c *Coordinator) Store() *docstore.Store {
	return c.store
}

// Registry returns the session registry.
func (c *Coordinator) Registry() *session.Registry {
	return c.registry
}

// Documents returns the summaries of the live documents.
func (c *Coordinator) Documents() []types.DocumentSummary {
	return c.store.Summaries()
}

// Join adds the collaborator to the document, creating the document if
// needed, and subscribes the connection to the room of the document. The
// other members of the room receive user-joined and the connection receives
// the full document-state. Joining again refreshes the collaborator.
//
// A connection is in at most one document as one collaborator: joining
// another document, or the same document as another collaborator, leaves
// the previous one first.
func (c *Coordinator) Join(
	ctx context.Context,
	connID string,
	docID string,
	collaborator types.Collaborator,
) error {
	if prev, ok := c.registry.Resolve(connID); ok &&
		(prev.DocumentID != docID || prev.CollaboratorID != collaborator.ID) {
		if err := c.Leave(ctx, connID, prev.DocumentID, prev.CollaboratorID); err != nil {
			return err
		}
	}

	return c.locker.WithLock(sync.DocKey(docID), func() error {
		now := c.options.Now()

		state, created := c.store.GetOrCreate(docID)
		if created {
			c.seed(ctx, state)
		}

		limit := c.options.MaxCollaboratorsPerDocument
		if limit > 0 && !state.HasCollaborator(collaborator.ID) && state.Len() >= limit {
			if created {
				c.store.RemoveIfEmpty(docID)
			}
			return fmt.Errorf("join %s to %s: %w", collaborator.ID, docID, ErrTooManyCollaborators)
		}

		state.UpsertCollaborator(collaborator, now)
		c.registry.RecordJoin(connID, docID, collaborator.ID)
		c.rooms.Join(docID, connID)

		collaborators := state.Collaborators()
		c.broadcast(ctx, events.DocEvent{
			Type:       events.UserJoinedEvent,
			DocumentID: docID,
			Payload: events.UserJoinedPayload{
				User:          collaborator.User,
				Collaborators: collaborators,
			},
		}, connID)

		c.send(ctx, connID, events.DocEvent{
			Type:       events.DocStateEvent,
			DocumentID: docID,
			Payload: events.DocStatePayload{
				Content:       state.Content(),
				Version:       state.Version(),
				Collaborators: collaborators,
				LockedBy:      state.LockedBy(),
			},
		})

		c.produce(ctx, messagebroker.DocumentJoinedEvent, state, collaborator.ID, now)
		c.updateGauges()
		return nil
	})
}

// Leave removes the collaborator from the document, releasing the lock if
// it held it. The connection is unsubscribed from the room only when it
// joined as that collaborator. The document is removed once it has no
// collaborators.
func (c *Coordinator) Leave(
	ctx context.Context,
	connID string,
	docID string,
	collaboratorID string,
) error {
	return c.locker.WithLock(sync.DocKey(docID), func() error {
		c.leave(ctx, connID, docID, collaboratorID)
		c.updateGauges()
		return nil
	})
}

func (c *Coordinator) leave(ctx context.Context, connID, docID, collaboratorID string) {
	defer func() {
		if c.registry.ClearIf(connID, docID, collaboratorID) {
			c.rooms.Leave(docID, connID)
		}
	}()

	state, ok := c.store.Get(docID)
	if !ok {
		c.drop(ctx, "leave", docID, collaboratorID, "unknown document")
		return
	}

	if !state.RemoveCollaborator(collaboratorID) {
		c.drop(ctx, "leave", docID, collaboratorID, "untracked collaborator")
		c.removeIfEmpty(ctx, state)
		return
	}

	c.broadcast(ctx, events.DocEvent{
		Type:       events.UserLeftEvent,
		DocumentID: docID,
		Payload: events.UserLeftPayload{
			UserID:        collaboratorID,
			Collaborators: state.Collaborators(),
			LockedBy:      state.LockedBy(),
		},
	})
	c.produce(ctx, messagebroker.DocumentLeftEvent, state, collaboratorID, c.options.Now())
	c.removeIfEmpty(ctx, state)
}

// Disconnect resolves the document of the connection and leaves it. It is
// a no-op for a connection that is not in any document.
func (c *Coordinator) Disconnect(ctx context.Context, connID string) error {
	s, ok := c.registry.Resolve(connID)
	if !ok {
		return nil
	}

	return c.Leave(ctx, connID, s.DocumentID, s.CollaboratorID)
}

// CursorMove updates the cursor of the collaborator and broadcasts it to
// the room, including the sender.
func (c *Coordinator) CursorMove(
	ctx context.Context,
	connID string,
	docID string,
	collaboratorID string,
	cursor *types.Cursor,
) error {
	return c.locker.WithLock(sync.DocKey(docID), func() error {
		state, ok := c.store.Get(docID)
		if !ok {
			c.drop(ctx, "cursor-move", docID, collaboratorID, "unknown document")
			return nil
		}

		if !state.SetCursor(collaboratorID, cursor, c.options.Now()) {
			c.drop(ctx, "cursor-move", docID, collaboratorID, "untracked collaborator")
			return nil
		}

		c.broadcast(ctx, events.DocEvent{
			Type:       events.CursorUpdatedEvent,
			DocumentID: docID,
			Payload: events.CursorUpdatedPayload{
				UserID: collaboratorID,
				Cursor: cursor.DeepCopy(),
			},
		})
		return nil
	})
}

// ContentChange applies the operation to the document and broadcasts the
// stamped operation to the room, including the sender. If another
// collaborator holds the lock, the operation is rejected and the room is
// told who holds it.
func (c *Coordinator) ContentChange(
	ctx context.Context,
	connID string,
	docID string,
	collaboratorID string,
	op types.Operation,
) error {
	return c.locker.WithLock(sync.DocKey(docID), func() error {
		state, ok := c.store.Get(docID)
		if !ok {
			c.drop(ctx, "content-change", docID, collaboratorID, "unknown document")
			return nil
		}
		if !state.HasCollaborator(collaboratorID) {
			c.drop(ctx, "content-change", docID, collaboratorID, "untracked collaborator")
			return nil
		}

		if lockedBy := state.LockedBy(); lockedBy != "" && lockedBy != collaboratorID {
			c.metrics.AddLockConflict()
			c.broadcast(ctx, events.DocEvent{
				Type:       events.DocLockedEvent,
				DocumentID: docID,
				Payload: events.DocLockedPayload{
					LockedBy: lockedBy,
					Message:  lockConflictMessage,
				},
			})
			return nil
		}

		now := c.options.Now()
		stamped := state.Apply(op, collaboratorID, now)
		c.metrics.AddOperation(string(stamped.Type))

		lastModified, lastModifiedBy := state.LastModified()
		c.broadcast(ctx, events.DocEvent{
			Type:       events.ContentChangedEvent,
			DocumentID: docID,
			Payload: events.ContentChangedPayload{
				Operation:      stamped,
				Version:        stamped.Version,
				LastModified:   lastModified,
				LastModifiedBy: lastModifiedBy,
			},
		})
		c.produce(ctx, messagebroker.DocumentChangedEvent, state, collaboratorID, now)
		return nil
	})
}

// Lock grants the lock of the document to the collaborator if nobody holds
// it. There is no queue: a lock request on a locked document is ignored.
func (c *Coordinator) Lock(
	ctx context.Context,
	connID string,
	docID string,
	collaboratorID string,
) error {
	return c.locker.WithLock(sync.DocKey(docID), func() error {
		state, ok := c.store.Get(docID)
		if !ok {
			c.drop(ctx, "lock-document", docID, collaboratorID, "unknown document")
			return nil
		}

		if !state.Lock(collaboratorID) {
			c.drop(ctx, "lock-document", docID, collaboratorID, "already locked or untracked")
			return nil
		}

		c.broadcast(ctx, events.DocEvent{
			Type:       events.DocLockedEvent,
			DocumentID: docID,
			Payload: events.DocLockedPayload{
				LockedBy: collaboratorID,
				Message:  lockedMessage,
			},
		})
		c.produce(ctx, messagebroker.DocumentLockedEvent, state, collaboratorID, c.options.Now())
		return nil
	})
}

// Unlock releases the lock of the document if the collaborator holds it.
func (c *Coordinator) Unlock(
	ctx context.Context,
	connID string,
	docID string,
	collaboratorID string,
) error {
	return c.locker.WithLock(sync.DocKey(docID), func() error {
		state, ok := c.store.Get(docID)
		if !ok {
			c.drop(ctx, "unlock-document", docID, collaboratorID, "unknown document")
			return nil
		}

		if !state.Unlock(collaboratorID) {
			c.drop(ctx, "unlock-document", docID, collaboratorID, "not the lock holder")
			return nil
		}

		c.broadcast(ctx, events.DocEvent{
			Type:       events.DocUnlockedEvent,
			DocumentID: docID,
			Payload: events.DocUnlockedPayload{
				UnlockedBy: collaboratorID,
				Message:    unlockedMessage,
			},
		})
		c.produce(ctx, messagebroker.DocumentUnlockedEvent, state, collaboratorID, c.options.Now())
		return nil
	})
}

// removeIfEmpty saves the final snapshot of an empty document and removes
// it from the store. It must be called inside the critical section of the
// document.
func (c *Coordinator) removeIfEmpty(ctx context.Context, state *docstore.State) {
	if state.Len() > 0 {
		return
	}

	c.checkpoint(ctx, state)
	c.store.RemoveIfEmpty(state.ID())
}

func (c *Coordinator) broadcast(ctx context.Context, event events.DocEvent, except ...string) {
	sent, dropped := c.rooms.Broadcast(ctx, event, except...)
	c.metrics.AddDocEvents(string(event.Type), sent, dropped)
}

func (c *Coordinator) send(ctx context.Context, connID string, event events.DocEvent) {
	if c.rooms.Send(ctx, connID, event) {
		c.metrics.AddDocEvents(string(event.Type), 1, 0)
	} else {
		c.metrics.AddDocEvents(string(event.Type), 0, 1)
	}
}

func (c *Coordinator) produce(
	ctx context.Context,
	eventType messagebroker.DocumentEventType,
	state *docstore.State,
	collaboratorID string,
	now time.Time,
) {
	if err := c.broker.Produce(ctx, messagebroker.DocumentEventMessage{
		DocumentID:     state.ID(),
		EventType:      eventType,
		CollaboratorID: collaboratorID,
		Version:        state.Version(),
		Timestamp:      now,
	}); err != nil {
		logging.From(ctx).Warnf("produce %s of %s: %v", eventType, state.ID(), err)
	}
}

func (c *Coordinator) drop(ctx context.Context, msgType, docID, collaboratorID, reason string) {
	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf("DROP: %s(%s,%s): %s", msgType, docID, collaboratorID, reason)
	}
}

func (c *Coordinator) updateGauges() {
	c.metrics.SetDocuments(c.store.Len())
	c.metrics.SetCollaborators(c.store.CollaboratorCount())
}

// isNotFound reports whether the error is a missing snapshot.
func isNotFound(err error) bool {
	return errors.Is(err, database.ErrSnapshotNotFound)
}
