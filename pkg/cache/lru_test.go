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

package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/coedit/pkg/cache"
)

func TestLRUWithExpires(t *testing.T) {
	t.Run("create test", func(t *testing.T) {
		c, err := cache.NewLRUWithExpires[string, string]("test", 0, time.Second)
		assert.ErrorIs(t, err, cache.ErrInvalidMaxSize)
		assert.Nil(t, c)
	})

	t.Run("add and evict test", func(t *testing.T) {
		c, err := cache.NewLRUWithExpires[string, string]("test", 1, time.Minute)
		require.NoError(t, err)

		c.Add("token1", "alice")
		v, ok := c.Get("token1")
		assert.True(t, ok)
		assert.Equal(t, "alice", v)

		c.Add("token2", "bob")
		_, ok = c.Get("token1")
		assert.False(t, ok)
		assert.Equal(t, 1, c.Len())

		assert.Equal(t, int64(1), c.Stats().Hits())
		assert.Equal(t, int64(1), c.Stats().Misses())
		assert.Equal(t, "test", c.Name())
	})

	t.Run("expire test", func(t *testing.T) {
		c, err := cache.NewLRUWithExpires[string, string]("test", 10, 10*time.Millisecond)
		require.NoError(t, err)

		c.Add("token", "alice")
		assert.Eventually(t, func() bool {
			_, ok := c.Get("token")
			return !ok
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("remove test", func(t *testing.T) {
		c, err := cache.NewLRUWithExpires[string, int]("test", 10, time.Minute)
		require.NoError(t, err)

		c.Add("a", 1)
		assert.True(t, c.Remove("a"))
		assert.False(t, c.Remove("a"))
	})
}
