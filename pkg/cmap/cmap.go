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

// Package cmap provides a sharded concurrent map.
package cmap

import (
	"fmt"
	"hash/fnv"
	"sync"
)

const numShards = 32

type shard[K comparable, V any] struct {
	sync.RWMutex
	items map[K]V
}

// Map is a concurrent map split into shards so that writers of unrelated
// keys rarely contend.
type Map[K comparable, V any] struct {
	shards [numShards]shard[K, V]
}

// New creates a new Map.
func New[K comparable, V any]() *Map[K, V] {
	m := &Map[K, V]{}
	for i := range m.shards {
		m.shards[i].items = make(map[K]V)
	}
	return m
}

func (m *Map[K, V]) shardFor(key K) *shard[K, V] {
	hash := fnv.New32a()
	if k, ok := any(key).(string); ok {
		_, _ = hash.Write([]byte(k))
	} else {
		_, _ = hash.Write([]byte(fmt.Sprint(key)))
	}
	return &m.shards[hash.Sum32()%numShards]
}

// Set sets a key-value pair.
func (m *Map[K, V]) Set(key K, value V) {
	s := m.shardFor(key)
	s.Lock()
	defer s.Unlock()

	s.items[key] = value
}

// LoadOrStore returns the existing value for the key if present. Otherwise,
// it stores the value produced by create and returns it. The bool result
// reports whether the value was created.
func (m *Map[K, V]) LoadOrStore(key K, create func() V) (V, bool) {
	s := m.shardFor(key)

	s.RLock()
	if v, ok := s.items[key]; ok {
		s.RUnlock()
		return v, false
	}
	s.RUnlock()

	s.Lock()
	defer s.Unlock()
	if v, ok := s.items[key]; ok {
		return v, false
	}
	v := create()
	s.items[key] = v
	return v, true
}

// Upsert inserts or updates a key-value pair with the result of fn.
func (m *Map[K, V]) Upsert(key K, fn func(value V, exists bool) V) V {
	s := m.shardFor(key)
	s.Lock()
	defer s.Unlock()

	v, exists := s.items[key]
	res := fn(v, exists)
	s.items[key] = res
	return res
}

// Get retrieves a value from the map.
func (m *Map[K, V]) Get(key K) (V, bool) {
	s := m.shardFor(key)
	s.RLock()
	defer s.RUnlock()

	v, ok := s.items[key]
	return v, ok
}

// Delete removes the key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	return m.DeleteIf(key, func(V) bool { return true })
}

// DeleteIf removes the key when it exists and cond returns true for its
// value. cond runs while the shard is locked.
func (m *Map[K, V]) DeleteIf(key K, cond func(value V) bool) bool {
	s := m.shardFor(key)
	s.Lock()
	defer s.Unlock()

	v, ok := s.items[key]
	if !ok || !cond(v) {
		return false
	}
	delete(s.items, key)
	return true
}

// Has checks if a key exists in the map.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of items in the map.
func (m *Map[K, V]) Len() int {
	count := 0
	for i := range m.shards {
		s := &m.shards[i]
		s.RLock()
		count += len(s.items)
		s.RUnlock()
	}
	return count
}

// Keys returns a snapshot of all keys in the map.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0)
	m.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns a snapshot of all values in the map.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0)
	m.Range(func(_ K, v V) bool {
		values = append(values, v)
		return true
	})
	return values
}

// Range calls fn for each item until fn returns false. Each shard is
// read-locked while its items are visited, so fn must not write to the map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for i := range m.shards {
		s := &m.shards[i]
		s.RLock()
		for k, v := range s.items {
			if !fn(k, v) {
				s.RUnlock()
				return
			}
		}
		s.RUnlock()
	}
}
