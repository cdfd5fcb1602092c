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

// Package cache provides an expiring LRU cache.
package cache

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrInvalidMaxSize is returned when the given size is not positive.
var ErrInvalidMaxSize = errors.New("max size must be > 0")

// Stats holds hit and miss counters of a cache.
type Stats struct {
	hits   int64
	misses int64
}

// Hits returns the number of cache hits.
func (s *Stats) Hits() int64 {
	return atomic.LoadInt64(&s.hits)
}

// Misses returns the number of cache misses.
func (s *Stats) Misses() int64 {
	return atomic.LoadInt64(&s.misses)
}

// LRUWithExpires is an LRU cache whose entries expire after a fixed ttl.
type LRUWithExpires[K comparable, V any] struct {
	cache *expirable.LRU[K, V]
	stats Stats
	name  string
}

// NewLRUWithExpires creates a new expirable LRU with the given size and ttl.
func NewLRUWithExpires[K comparable, V any](
	name string,
	size int,
	ttl time.Duration,
) (*LRUWithExpires[K, V], error) {
	if size <= 0 {
		return nil, ErrInvalidMaxSize
	}

	return &LRUWithExpires[K, V]{
		cache: expirable.NewLRU[K, V](size, nil, ttl),
		name:  name,
	}, nil
}

// Get retrieves a value from the cache and records a hit or a miss.
func (c *LRUWithExpires[K, V]) Get(key K) (V, bool) {
	value, ok := c.cache.Get(key)
	if ok {
		atomic.AddInt64(&c.stats.hits, 1)
	} else {
		atomic.AddInt64(&c.stats.misses, 1)
	}
	return value, ok
}

// Add adds a value to the cache. It returns true if an eviction occurred.
func (c *LRUWithExpires[K, V]) Add(key K, value V) bool {
	return c.cache.Add(key, value)
}

// Remove removes a key from the cache.
func (c *LRUWithExpires[K, V]) Remove(key K) bool {
	return c.cache.Remove(key)
}

// Len returns the number of items in the cache.
func (c *LRUWithExpires[K, V]) Len() int {
	return c.cache.Len()
}

// Stats returns the cache statistics.
func (c *LRUWithExpires[K, V]) Stats() *Stats {
	return &c.stats
}

// Name returns the cache name.
func (c *LRUWithExpires[K, V]) Name() string {
	return c.name
}
