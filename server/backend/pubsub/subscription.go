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

package pubsub

import (
	"sync"
	"time"

	"github.com/rs/xid"
)

// Subscription represents a subscription of a subscriber to events of type E.
type Subscription[E any] struct {
	id             string
	subscriber     string
	publishTimeout time.Duration

	mu     sync.Mutex
	closed bool
	events chan E
}

// NewSubscription creates a new instance of Subscription with the given
// buffer size and publish timeout.
func NewSubscription[E any](subscriber string, bufSize int, publishTimeout time.Duration) *Subscription[E] {
	return &Subscription[E]{
		id:             xid.New().String(),
		subscriber:     subscriber,
		publishTimeout: publishTimeout,
		events:         make(chan E, bufSize),
	}
}

// ID returns the id of this subscription.
func (s *Subscription[E]) ID() string {
	return s.id
}

// Events returns the event channel of this subscription. It is closed when
// the subscription is closed.
func (s *Subscription[E]) Events() <-chan E {
	return s.events
}

// Subscriber returns the subscriber of this subscription.
func (s *Subscription[E]) Subscriber() string {
	return s.subscriber
}

// Close closes all resources of this Subscription.
func (s *Subscription[E]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

// Closed reports whether this subscription is closed.
func (s *Subscription[E]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// Publish publishes the given event to the subscriber. It returns false if
// the subscription is closed or the buffer stays full for the publish
// timeout.
func (s *Subscription[E]) Publish(event E) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.events <- event:
		return true
	default:
	}

	timer := time.NewTimer(s.publishTimeout)
	defer timer.Stop()

	select {
	case s.events <- event:
		return true
	case <-timer.C:
		return false
	}
}
