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

// Package sync provides per-key mutual exclusion for document operations.
package sync

import (
	"fmt"

	"github.com/moby/locker"
)

// Key represents key of Locker.
type Key string

// NewKey creates a new instance of Key.
func NewKey(key string) Key {
	return Key(key)
}

// DocKey returns the key used to serialize operations on a document.
func DocKey(docID string) Key {
	return Key("doc/" + docID)
}

// String returns a string representation of this Key.
func (k Key) String() string {
	return string(k)
}

// LockerManager manages Lockers. Lockers of the same key share one mutex,
// which is released from memory once nobody holds or waits for it.
type LockerManager struct {
	locks *locker.Locker
}

// New creates a new instance of LockerManager.
func New() *LockerManager {
	return &LockerManager{
		locks: locker.New(),
	}
}

// Locker creates locker of the given key.
func (m *LockerManager) Locker(key Key) Locker {
	return &internalLocker{
		key:   key.String(),
		locks: m.locks,
	}
}

// WithLock runs fn while holding the lock of the given key.
func (m *LockerManager) WithLock(key Key, fn func() error) (err error) {
	l := m.Locker(key)
	l.Lock()
	defer func() {
		if unlockErr := l.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}()

	return fn()
}

// A Locker represents an object that can be locked and unlocked.
type Locker interface {
	// Lock locks the mutex, blocking until it is available.
	Lock()

	// Unlock unlocks the mutex.
	Unlock() error
}

type internalLocker struct {
	key   string
	locks *locker.Locker
}

// Lock locks the mutex.
func (il *internalLocker) Lock() {
	il.locks.Lock(il.key)
}

// Unlock unlocks the mutex.
func (il *internalLocker) Unlock() error {
	if err := il.locks.Unlock(il.key); err != nil {
		return fmt.Errorf("unlock %s: %w", il.key, err)
	}

	return nil
}
