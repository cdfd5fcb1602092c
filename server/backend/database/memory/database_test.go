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

package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/coedit/server/backend/database"
	"github.com/yorkie-team/coedit/server/backend/database/memory"
)

func TestDB(t *testing.T) {
	ctx := context.Background()

	t.Run("find missing snapshot test", func(t *testing.T) {
		db, err := memory.New()
		require.NoError(t, err)

		_, err = db.FindSnapshotInfo(ctx, "d1")
		assert.ErrorIs(t, err, database.ErrSnapshotNotFound)
	})

	t.Run("update and find snapshot test", func(t *testing.T) {
		db, err := memory.New()
		require.NoError(t, err)
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		first := &database.SnapshotInfo{DocID: "d1", Content: "Hello", Version: 1, LastModified: now, LastModifiedBy: "a"}
		require.NoError(t, db.UpdateSnapshotInfo(ctx, first))
		assert.NotEmpty(t, first.ID)

		require.NoError(t, db.UpdateSnapshotInfo(ctx, &database.SnapshotInfo{DocID: "d1", Content: "Hello!", Version: 2}))

		info, err := db.FindSnapshotInfo(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, info.ID)
		assert.Equal(t, "Hello!", info.Content)
		assert.Equal(t, int64(2), info.Version)
	})

	t.Run("reject older snapshot test", func(t *testing.T) {
		db, err := memory.New()
		require.NoError(t, err)

		require.NoError(t, db.UpdateSnapshotInfo(ctx, &database.SnapshotInfo{DocID: "d1", Version: 5}))
		err = db.UpdateSnapshotInfo(ctx, &database.SnapshotInfo{DocID: "d1", Version: 4})
		assert.ErrorIs(t, err, database.ErrConflictOnUpdate)
	})

	t.Run("list snapshots test", func(t *testing.T) {
		db, err := memory.New()
		require.NoError(t, err)

		require.NoError(t, db.UpdateSnapshotInfo(ctx, &database.SnapshotInfo{DocID: "b", Content: "x", Version: 1}))
		require.NoError(t, db.UpdateSnapshotInfo(ctx, &database.SnapshotInfo{DocID: "a", Content: "y", Version: 2}))

		infos, err := db.ListSnapshotInfos(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, "a", infos[0].DocID)
		assert.Equal(t, "", infos[0].Content)
	})
}
