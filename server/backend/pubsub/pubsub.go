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

// Package pubsub delivers document events to connections. A connection
// owns one Subscription; rooms group the connections of a document.
package pubsub

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yorkie-team/coedit/api/types/events"
	"github.com/yorkie-team/coedit/pkg/cmap"
	"github.com/yorkie-team/coedit/pkg/errors"
	"github.com/yorkie-team/coedit/server/logging"
)

var (
	// ErrAlreadyConnected is returned when the connection already has a subscription.
	ErrAlreadyConnected = errors.AlreadyExists("already connected").WithCode("ErrAlreadyConnected")
)

// Options are the options of PubSub.
type Options struct {
	// BufferSize is the number of events buffered per connection.
	BufferSize int

	// PublishTimeout is how long a publish waits on a full buffer before the
	// event is dropped.
	PublishTimeout time.Duration
}

// room is the set of connections subscribed to one document.
type room struct {
	mu      sync.RWMutex
	members map[string]struct{}
}

func (r *room) add(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[connID] = struct{}{}
}

func (r *room) remove(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, connID)
}

func (r *room) has(connID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[connID]
	return ok
}

func (r *room) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *room) list() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PubSub is the memory implementation of rooms, used for single server.
type PubSub struct {
	options Options
	subs    *cmap.Map[string, *Subscription[events.DocEvent]]
	rooms   *cmap.Map[string, *room]
}

// New creates an instance of PubSub.
func New(options Options) *PubSub {
	return &PubSub{
		options: options,
		subs:    cmap.New[string, *Subscription[events.DocEvent]](),
		rooms:   cmap.New[string, *room](),
	}
}

// Connect creates the subscription of the given connection.
func (m *PubSub) Connect(connID string) (*Subscription[events.DocEvent], error) {
	sub, created := m.subs.LoadOrStore(connID, func() *Subscription[events.DocEvent] {
		return NewSubscription[events.DocEvent](connID, m.options.BufferSize, m.options.PublishTimeout)
	})
	if !created {
		return nil, fmt.Errorf("connect %s: %w", connID, ErrAlreadyConnected)
	}

	return sub, nil
}

// Disconnect closes the subscription of the given connection and removes
// the connection from every room.
func (m *PubSub) Disconnect(connID string) {
	var docIDs []string
	m.rooms.Range(func(docID string, r *room) bool {
		if r.has(connID) {
			docIDs = append(docIDs, docID)
		}
		return true
	})
	for _, docID := range docIDs {
		m.Leave(docID, connID)
	}

	m.subs.DeleteIf(connID, func(sub *Subscription[events.DocEvent]) bool {
		sub.Close()
		return true
	})
}

// Join adds the connection to the room of the given document.
func (m *PubSub) Join(docID, connID string) {
	m.rooms.Upsert(docID, func(r *room, exists bool) *room {
		if !exists {
			r = &room{members: make(map[string]struct{})}
		}
		r.add(connID)
		return r
	})
}

// Leave removes the connection from the room of the given document. The
// room is dropped once empty.
func (m *PubSub) Leave(docID, connID string) {
	m.rooms.DeleteIf(docID, func(r *room) bool {
		r.remove(connID)
		return r.len() == 0
	})
}

// Members returns the sorted ids of the connections in the given room.
func (m *PubSub) Members(docID string) []string {
	r, ok := m.rooms.Get(docID)
	if !ok {
		return nil
	}
	return r.list()
}

// Connections returns the number of connected subscriptions.
func (m *PubSub) Connections() int {
	return m.subs.Len()
}

// Send delivers the event to a single connection. It reports whether the
// event was delivered.
func (m *PubSub) Send(ctx context.Context, connID string, event events.DocEvent) bool {
	sub, ok := m.subs.Get(connID)
	if !ok {
		if logging.Enabled(zap.DebugLevel) {
			logging.From(ctx).Debugf("Send(%s,%s) unknown connection", event.Type, connID)
		}
		return false
	}

	if !sub.Publish(event) {
		logging.From(ctx).Warnf("Send(%s,%s) dropped", event.Type, connID)
		return false
	}

	return true
}

// Broadcast delivers the event to every connection in the room of the
// event's document except the given ones. It returns the number of
// delivered and dropped events.
func (m *PubSub) Broadcast(
	ctx context.Context,
	event events.DocEvent,
	except ...string,
) (sent int, dropped int) {
	for _, connID := range m.Members(event.DocumentID) {
		if contains(except, connID) {
			continue
		}

		if m.Send(ctx, connID, event) {
			sent++
		} else {
			dropped++
		}
	}

	return sent, dropped
}

// Close closes every subscription and drops every room.
func (m *PubSub) Close() {
	for _, connID := range m.subs.Keys() {
		m.Disconnect(connID)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
