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

package collab_test

import (
	"context"
	"strings"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/api/types/events"
	"github.com/yorkie-team/coedit/server/backend/collab"
	"github.com/yorkie-team/coedit/server/backend/database"
	"github.com/yorkie-team/coedit/server/backend/messagebroker"
	"github.com/yorkie-team/coedit/server/backend/pubsub"
	"github.com/yorkie-team/coedit/server/profiling/prometheus"
)

type clock struct {
	mu  gosync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingBroker struct {
	mu       gosync.Mutex
	messages []messagebroker.DocumentEventMessage
}

func (b *recordingBroker) Produce(_ context.Context, msg messagebroker.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, msg.(messagebroker.DocumentEventMessage))
	return nil
}

func (b *recordingBroker) Close() error {
	return nil
}

func (b *recordingBroker) Types() []messagebroker.DocumentEventType {
	b.mu.Lock()
	defer b.mu.Unlock()

	var eventTypes []messagebroker.DocumentEventType
	for _, msg := range b.messages {
		eventTypes = append(eventTypes, msg.EventType)
	}
	return eventTypes
}

type env struct {
	coordinator *collab.Coordinator
	rooms       *pubsub.PubSub
	broker      *recordingBroker
	clock       *clock
}

func newEnv(t *testing.T, options collab.Options, db database.Database) *env {
	metrics, err := prometheus.NewMetrics()
	require.NoError(t, err)

	c := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	options.Now = c.Now

	rooms := pubsub.New(pubsub.Options{BufferSize: 256, PublishTimeout: 10 * time.Millisecond})
	broker := &recordingBroker{}
	t.Cleanup(rooms.Close)

	return &env{
		coordinator: collab.New(options, rooms, db, broker, metrics),
		rooms:       rooms,
		broker:      broker,
		clock:       c,
	}
}

func (e *env) connect(t *testing.T, connID string) *pubsub.Subscription[events.DocEvent] {
	sub, err := e.rooms.Connect(connID)
	require.NoError(t, err)
	return sub
}

func collaborator(id string) types.Collaborator {
	return types.Collaborator{User: types.User{
		ID:    id,
		Name:  strings.ToUpper(id),
		Email: id + "@coedit.dev",
	}}
}

func insert(content string) types.Operation {
	return types.Operation{Type: types.Insert, Content: content, Length: len([]rune(content))}
}

func drain(sub *pubsub.Subscription[events.DocEvent]) []events.DocEvent {
	var evs []events.DocEvent
	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return evs
			}
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func eventTypes(evs []events.DocEvent) []events.DocEventType {
	var result []events.DocEventType
	for _, ev := range evs {
		result = append(result, ev.Type)
	}
	return result
}

func TestCoordinator(t *testing.T) {
	ctx := context.Background()

	t.Run("basic collaboration test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		subA := e.connect(t, "c1")
		subB := e.connect(t, "c2")

		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		evs := drain(subA)
		require.Equal(t, []events.DocEventType{events.DocStateEvent}, eventTypes(evs))
		state := evs[0].Payload.(events.DocStatePayload)
		assert.Equal(t, "", state.Content)
		assert.Equal(t, int64(0), state.Version)

		require.NoError(t, e.coordinator.ContentChange(ctx, "c1", "d1", "alice", insert("Hello")))
		evs = drain(subA)
		require.Equal(t, []events.DocEventType{events.ContentChangedEvent}, eventTypes(evs))
		changed := evs[0].Payload.(events.ContentChangedPayload)
		assert.Equal(t, int64(1), changed.Version)
		assert.Equal(t, int64(1), changed.Operation.Version)
		assert.Equal(t, "alice", changed.Operation.UserID)
		assert.Equal(t, "alice", changed.LastModifiedBy)
		assert.Equal(t, e.clock.Now(), changed.LastModified)

		require.NoError(t, e.coordinator.Join(ctx, "c2", "d1", collaborator("bob")))
		evs = drain(subB)
		require.Equal(t, []events.DocEventType{events.DocStateEvent}, eventTypes(evs))
		state = evs[0].Payload.(events.DocStatePayload)
		assert.Equal(t, "Hello", state.Content)
		assert.Equal(t, int64(1), state.Version)
		assert.Len(t, state.Collaborators, 2)

		evs = drain(subA)
		require.Equal(t, []events.DocEventType{events.UserJoinedEvent}, eventTypes(evs))
		joined := evs[0].Payload.(events.UserJoinedPayload)
		assert.Equal(t, "bob", joined.User.ID)
		assert.Len(t, joined.Collaborators, 2)
	})

	t.Run("lock conflict test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		subA := e.connect(t, "c1")
		subB := e.connect(t, "c2")

		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		require.NoError(t, e.coordinator.Lock(ctx, "c1", "d1", "alice"))
		evs := drain(subA)
		require.Equal(t, []events.DocEventType{events.DocStateEvent, events.DocLockedEvent}, eventTypes(evs))
		assert.Equal(t, "alice", evs[1].Payload.(events.DocLockedPayload).LockedBy)

		require.NoError(t, e.coordinator.Join(ctx, "c2", "d1", collaborator("bob")))
		evs = drain(subB)
		require.Len(t, evs, 1)
		assert.Equal(t, "alice", evs[0].Payload.(events.DocStatePayload).LockedBy)
		drain(subA)

		require.NoError(t, e.coordinator.ContentChange(ctx, "c2", "d1", "bob", insert("Hi")))
		for _, sub := range []*pubsub.Subscription[events.DocEvent]{subA, subB} {
			evs = drain(sub)
			require.Equal(t, []events.DocEventType{events.DocLockedEvent}, eventTypes(evs))
			assert.Equal(t, "alice", evs[0].Payload.(events.DocLockedPayload).LockedBy)
		}

		state, ok := e.coordinator.Store().Get("d1")
		require.True(t, ok)
		assert.Equal(t, "", state.Content())
		assert.Equal(t, int64(0), state.Version())

		require.NoError(t, e.coordinator.ContentChange(ctx, "c1", "d1", "alice", insert("Hi")))
		assert.Equal(t, "Hi", state.Content())
		assert.Equal(t, int64(1), state.Version())

		require.NoError(t, e.coordinator.Unlock(ctx, "c1", "d1", "alice"))
		require.NoError(t, e.coordinator.ContentChange(ctx, "c2", "d1", "bob", insert("Yo")))
		assert.Equal(t, "YoHi", state.Content())
		assert.Equal(t, int64(2), state.Version())
	})

	t.Run("cleanup test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		e.connect(t, "c1")

		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		require.NoError(t, e.coordinator.Leave(ctx, "c1", "d1", "alice"))

		_, ok := e.coordinator.Store().Get("d1")
		assert.False(t, ok)
		_, ok = e.coordinator.Registry().Resolve("c1")
		assert.False(t, ok)
		assert.Empty(t, e.rooms.Members("d1"))
	})

	t.Run("idempotent join test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		e.connect(t, "c1")

		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		e.clock.Advance(time.Minute)
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))

		state, ok := e.coordinator.Store().Get("d1")
		require.True(t, ok)
		assert.Equal(t, 1, state.Len())
		c, ok := state.Collaborator("alice")
		require.True(t, ok)
		assert.Equal(t, e.clock.Now(), c.LastSeen)
	})

	t.Run("version monotonicity test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		sub := e.connect(t, "c1")
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		drain(sub)

		const workers, edits = 8, 25
		wg := gosync.WaitGroup{}
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < edits; j++ {
					assert.NoError(t, e.coordinator.ContentChange(ctx, "c1", "d1", "alice", insert("a")))
				}
			}()
		}
		wg.Wait()

		state, ok := e.coordinator.Store().Get("d1")
		require.True(t, ok)
		assert.Equal(t, int64(workers*edits), state.Version())
		assert.Equal(t, strings.Repeat("a", workers*edits), state.Content())

		evs := drain(sub)
		require.Len(t, evs, workers*edits)
		for i, ev := range evs {
			assert.Equal(t, int64(i+1), ev.Payload.(events.ContentChangedPayload).Version)
		}
	})

	t.Run("single active lock test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		subA := e.connect(t, "c1")
		e.connect(t, "c2")
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		require.NoError(t, e.coordinator.Join(ctx, "c2", "d1", collaborator("bob")))
		state, _ := e.coordinator.Store().Get("d1")
		drain(subA)

		require.NoError(t, e.coordinator.Lock(ctx, "c1", "d1", "alice"))
		assert.Equal(t, "alice", state.LockedBy())

		require.NoError(t, e.coordinator.Lock(ctx, "c2", "d1", "bob"))
		assert.Equal(t, "alice", state.LockedBy())

		require.NoError(t, e.coordinator.Unlock(ctx, "c2", "d1", "bob"))
		assert.Equal(t, "alice", state.LockedBy())
		assert.Equal(t, []events.DocEventType{events.DocLockedEvent}, eventTypes(drain(subA)))

		require.NoError(t, e.coordinator.Unlock(ctx, "c1", "d1", "alice"))
		assert.Equal(t, "", state.LockedBy())
		evs := drain(subA)
		require.Equal(t, []events.DocEventType{events.DocUnlockedEvent}, eventTypes(evs))
		assert.Equal(t, "alice", evs[0].Payload.(events.DocUnlockedPayload).UnlockedBy)

		require.NoError(t, e.coordinator.Lock(ctx, "c2", "d1", "bob"))
		assert.Equal(t, "bob", state.LockedBy())
	})

	t.Run("leave clears lock test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		e.connect(t, "c1")
		subB := e.connect(t, "c2")
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		require.NoError(t, e.coordinator.Join(ctx, "c2", "d1", collaborator("bob")))
		require.NoError(t, e.coordinator.Lock(ctx, "c1", "d1", "alice"))
		drain(subB)

		require.NoError(t, e.coordinator.Leave(ctx, "c1", "d1", "alice"))
		evs := drain(subB)
		require.Equal(t, []events.DocEventType{events.UserLeftEvent}, eventTypes(evs))
		left := evs[0].Payload.(events.UserLeftPayload)
		assert.Equal(t, "alice", left.UserID)
		assert.Equal(t, "", left.LockedBy)
		require.Len(t, left.Collaborators, 1)
		assert.Equal(t, "bob", left.Collaborators[0].ID)

		require.NoError(t, e.coordinator.Lock(ctx, "c2", "d1", "bob"))
		state, _ := e.coordinator.Store().Get("d1")
		assert.Equal(t, "bob", state.LockedBy())
	})

	t.Run("disconnect clears lock test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		e.connect(t, "c1")
		subB := e.connect(t, "c2")
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		require.NoError(t, e.coordinator.Join(ctx, "c2", "d1", collaborator("bob")))
		require.NoError(t, e.coordinator.Lock(ctx, "c1", "d1", "alice"))
		drain(subB)

		require.NoError(t, e.coordinator.Disconnect(ctx, "c1"))
		assert.Equal(t, []events.DocEventType{events.UserLeftEvent}, eventTypes(drain(subB)))
		assert.Equal(t, []string{"c2"}, e.rooms.Members("d1"))

		require.NoError(t, e.coordinator.Lock(ctx, "c2", "d1", "bob"))
		state, _ := e.coordinator.Store().Get("d1")
		assert.Equal(t, "bob", state.LockedBy())

		// disconnecting an unknown connection is a no-op.
		assert.NoError(t, e.coordinator.Disconnect(ctx, "c1"))
		assert.NoError(t, e.coordinator.Disconnect(ctx, "unknown"))
	})

	t.Run("idle eviction test", func(t *testing.T) {
		e := newEnv(t, collab.Options{StaleThreshold: 5 * time.Minute}, nil)
		subA := e.connect(t, "c1")
		subB := e.connect(t, "c2")
		e.connect(t, "c3")

		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		require.NoError(t, e.coordinator.Lock(ctx, "c1", "d1", "alice"))
		require.NoError(t, e.coordinator.Join(ctx, "c3", "d2", collaborator("carol")))
		e.clock.Advance(4 * time.Minute)
		require.NoError(t, e.coordinator.Join(ctx, "c2", "d1", collaborator("bob")))
		e.clock.Advance(2 * time.Minute)
		drain(subA)
		drain(subB)

		evicted, err := e.coordinator.SweepIdle(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, evicted)

		state, ok := e.coordinator.Store().Get("d1")
		require.True(t, ok)
		assert.False(t, state.HasCollaborator("alice"))
		assert.True(t, state.HasCollaborator("bob"))
		assert.Equal(t, "", state.LockedBy())

		_, ok = e.coordinator.Store().Get("d2")
		assert.False(t, ok)

		assert.Empty(t, drain(subA))
		assert.Empty(t, drain(subB))

		// the still open connection keeps receiving the document.
		_, ok = e.coordinator.Registry().Resolve("c1")
		assert.True(t, ok)
		assert.ElementsMatch(t, []string{"c1", "c2"}, e.rooms.Members("d1"))

		require.NoError(t, e.coordinator.ContentChange(ctx, "c2", "d1", "bob", insert("hi")))
		assert.Equal(t, []events.DocEventType{events.ContentChangedEvent}, eventTypes(drain(subA)))

		// rejoining after eviction tracks the collaborator again.
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		assert.True(t, state.HasCollaborator("alice"))

		require.NoError(t, e.coordinator.Disconnect(ctx, "c3"))
		_, ok = e.coordinator.Registry().Resolve("c3")
		assert.False(t, ok)
		assert.Empty(t, e.rooms.Members("d2"))
	})

	t.Run("leave of another collaborator test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		subA := e.connect(t, "c1")
		e.connect(t, "c2")
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		require.NoError(t, e.coordinator.Join(ctx, "c2", "d1", collaborator("bob")))
		require.NoError(t, e.coordinator.Lock(ctx, "c1", "d1", "alice"))
		drain(subA)

		// an untracked collaborator is a no-op for the sender.
		require.NoError(t, e.coordinator.Leave(ctx, "c1", "d1", "ghost"))
		assert.Empty(t, drain(subA))

		s, ok := e.coordinator.Registry().Resolve("c1")
		require.True(t, ok)
		assert.Equal(t, "alice", s.CollaboratorID)
		assert.ElementsMatch(t, []string{"c1", "c2"}, e.rooms.Members("d1"))

		require.NoError(t, e.coordinator.ContentChange(ctx, "c1", "d1", "alice", insert("hi")))
		assert.Equal(t, []events.DocEventType{events.ContentChangedEvent}, eventTypes(drain(subA)))

		// leaving as someone else removes that collaborator only.
		require.NoError(t, e.coordinator.Leave(ctx, "c1", "d1", "bob"))
		assert.Equal(t, []events.DocEventType{events.UserLeftEvent}, eventTypes(drain(subA)))
		_, ok = e.coordinator.Registry().Resolve("c1")
		assert.True(t, ok)
		assert.ElementsMatch(t, []string{"c1", "c2"}, e.rooms.Members("d1"))

		require.NoError(t, e.coordinator.Disconnect(ctx, "c1"))
		_, ok = e.coordinator.Store().Get("d1")
		assert.False(t, ok)

		require.NoError(t, e.coordinator.Disconnect(ctx, "c2"))
		assert.Equal(t, 0, e.coordinator.Registry().Len())
		assert.Empty(t, e.rooms.Members("d1"))
	})

	t.Run("rejoin as another collaborator test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		e.connect(t, "c1")
		subB := e.connect(t, "c2")
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		require.NoError(t, e.coordinator.Lock(ctx, "c1", "d1", "alice"))
		require.NoError(t, e.coordinator.Join(ctx, "c2", "d1", collaborator("carol")))
		drain(subB)

		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("bob")))
		assert.Equal(
			t,
			[]events.DocEventType{events.UserLeftEvent, events.UserJoinedEvent},
			eventTypes(drain(subB)),
		)

		state, ok := e.coordinator.Store().Get("d1")
		require.True(t, ok)
		assert.False(t, state.HasCollaborator("alice"))
		assert.True(t, state.HasCollaborator("bob"))
		assert.Equal(t, "", state.LockedBy())
		s, _ := e.coordinator.Registry().Resolve("c1")
		assert.Equal(t, "bob", s.CollaboratorID)
		assert.ElementsMatch(t, []string{"c1", "c2"}, e.rooms.Members("d1"))

		require.NoError(t, e.coordinator.Disconnect(ctx, "c1"))
		assert.False(t, state.HasCollaborator("bob"))
		assert.Equal(t, 1, state.Len())
	})

	t.Run("stale reference test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		sub := e.connect(t, "c1")
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		drain(sub)

		assert.NoError(t, e.coordinator.CursorMove(ctx, "c1", "d1", "ghost", &types.Cursor{Position: 1}))
		assert.NoError(t, e.coordinator.CursorMove(ctx, "c1", "unknown", "alice", &types.Cursor{Position: 1}))
		assert.NoError(t, e.coordinator.ContentChange(ctx, "c1", "d1", "ghost", insert("x")))
		assert.NoError(t, e.coordinator.ContentChange(ctx, "c1", "unknown", "alice", insert("x")))
		assert.NoError(t, e.coordinator.Lock(ctx, "c1", "d1", "ghost"))
		assert.NoError(t, e.coordinator.Unlock(ctx, "c1", "unknown", "alice"))
		assert.NoError(t, e.coordinator.Leave(ctx, "c1", "unknown", "alice"))
		assert.Empty(t, drain(sub))

		state, _ := e.coordinator.Store().Get("d1")
		assert.Equal(t, int64(0), state.Version())
		assert.Equal(t, "", state.LockedBy())
		_, ok := e.coordinator.Store().Get("unknown")
		assert.False(t, ok)
	})

	t.Run("cursor move test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		subA := e.connect(t, "c1")
		subB := e.connect(t, "c2")
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		require.NoError(t, e.coordinator.Join(ctx, "c2", "d1", collaborator("bob")))
		drain(subA)
		drain(subB)

		e.clock.Advance(time.Second)
		cursor := &types.Cursor{Position: 3, Selection: &types.Selection{Start: 1, End: 3}}
		require.NoError(t, e.coordinator.CursorMove(ctx, "c1", "d1", "alice", cursor))

		for _, sub := range []*pubsub.Subscription[events.DocEvent]{subA, subB} {
			evs := drain(sub)
			require.Equal(t, []events.DocEventType{events.CursorUpdatedEvent}, eventTypes(evs))
			updated := evs[0].Payload.(events.CursorUpdatedPayload)
			assert.Equal(t, "alice", updated.UserID)
			assert.Equal(t, cursor, updated.Cursor)
		}

		state, _ := e.coordinator.Store().Get("d1")
		c, _ := state.Collaborator("alice")
		assert.Equal(t, cursor, c.Cursor)
		assert.Equal(t, e.clock.Now(), c.LastSeen)
	})

	t.Run("join another document test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		e.connect(t, "c1")
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d2", collaborator("alice")))

		_, ok := e.coordinator.Store().Get("d1")
		assert.False(t, ok)
		s, ok := e.coordinator.Registry().Resolve("c1")
		require.True(t, ok)
		assert.Equal(t, "d2", s.DocumentID)
		assert.Empty(t, e.rooms.Members("d1"))
		assert.Equal(t, []string{"c1"}, e.rooms.Members("d2"))
	})

	t.Run("max collaborators test", func(t *testing.T) {
		e := newEnv(t, collab.Options{MaxCollaboratorsPerDocument: 1}, nil)
		e.connect(t, "c1")
		e.connect(t, "c2")
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))

		err := e.coordinator.Join(ctx, "c2", "d1", collaborator("bob"))
		assert.ErrorIs(t, err, collab.ErrTooManyCollaborators)
		assert.Equal(t, []string{"c1"}, e.rooms.Members("d1"))

		// re-joining does not count against the limit.
		assert.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
	})

	t.Run("document events test", func(t *testing.T) {
		e := newEnv(t, collab.Options{}, nil)
		e.connect(t, "c1")
		require.NoError(t, e.coordinator.Join(ctx, "c1", "d1", collaborator("alice")))
		require.NoError(t, e.coordinator.Lock(ctx, "c1", "d1", "alice"))
		require.NoError(t, e.coordinator.ContentChange(ctx, "c1", "d1", "alice", insert("a")))
		require.NoError(t, e.coordinator.Unlock(ctx, "c1", "d1", "alice"))
		require.NoError(t, e.coordinator.Leave(ctx, "c1", "d1", "alice"))

		assert.Equal(t, []messagebroker.DocumentEventType{
			messagebroker.DocumentJoinedEvent,
			messagebroker.DocumentLockedEvent,
			messagebroker.DocumentChangedEvent,
			messagebroker.DocumentUnlockedEvent,
			messagebroker.DocumentLeftEvent,
		}, e.broker.Types())
	})
}
