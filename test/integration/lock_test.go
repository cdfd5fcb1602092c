//go:build integration

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

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/api/types/events"
	"github.com/yorkie-team/coedit/test/helper"
)

func TestLock(t *testing.T) {
	clients := activeClients(t, 2)
	defer deactivateAndCloseClients(t, clients)
	c1, c2 := clients[0], clients[1]

	t.Run("edit of a locked document test", func(t *testing.T) {
		ctx := context.Background()
		docID := helper.TestDocID(t)
		users := joinAll(t, clients, docID)

		require.NoError(t, c1.LockDocument(ctx, docID, users[0].ID))
		for _, cli := range clients {
			locked := helper.ReceiveEventOf(t, cli, events.DocLockedEvent).Payload.(*events.DocLockedPayload)
			assert.Equal(t, users[0].ID, locked.LockedBy)
		}

		// the edit of the other collaborator is rejected with the holder.
		require.NoError(t, c2.ChangeContent(ctx, docID, users[1].ID, types.Operation{
			Type:    types.Insert,
			Content: "x",
			Length:  1,
		}))
		for _, cli := range clients {
			locked := helper.ReceiveEventOf(t, cli, events.DocLockedEvent).Payload.(*events.DocLockedPayload)
			assert.Equal(t, users[0].ID, locked.LockedBy)
			assert.Equal(t, "Document is currently locked by another user", locked.Message)
		}

		// the holder still edits.
		require.NoError(t, c1.ChangeContent(ctx, docID, users[0].ID, types.Operation{
			Type:    types.Insert,
			Content: "y",
			Length:  1,
		}))
		changed := helper.ReceiveEventOf(t, c2, events.ContentChangedEvent).Payload.(*events.ContentChangedPayload)
		assert.Equal(t, int64(1), changed.Version)

		require.NoError(t, c1.UnlockDocument(ctx, docID, users[0].ID))
		unlocked := helper.ReceiveEventOf(t, c2, events.DocUnlockedEvent).Payload.(*events.DocUnlockedPayload)
		assert.Equal(t, users[0].ID, unlocked.UnlockedBy)
	})

	t.Run("lock request on a locked document test", func(t *testing.T) {
		ctx := context.Background()
		docID := helper.TestDocID(t)
		users := joinAll(t, clients, docID)

		require.NoError(t, c1.LockDocument(ctx, docID, users[0].ID))
		helper.ReceiveEventOf(t, c2, events.DocLockedEvent)
		helper.ReceiveEventOf(t, c1, events.DocLockedEvent)

		// nobody queues for the lock.
		require.NoError(t, c2.LockDocument(ctx, docID, users[1].ID))
		helper.AssertNoEvent(t, c1, 300*time.Millisecond)
	})

	t.Run("disconnect releases the lock test", func(t *testing.T) {
		ctx := context.Background()
		docID := helper.TestDocID(t)
		holders := activeClients(t, 1)
		holder := holders[0]

		others := joinAll(t, clients[:1], docID)
		require.NoError(t, holder.JoinDocument(ctx, docID, types.User{ID: "holder", Name: "Holder"}))
		helper.ReceiveEventOf(t, holder, events.DocStateEvent)
		require.NoError(t, holder.LockDocument(ctx, docID, "holder"))
		helper.ReceiveEventOf(t, c1, events.DocLockedEvent)

		require.NoError(t, holder.Close())
		left := helper.ReceiveEventOf(t, c1, events.UserLeftEvent).Payload.(*events.UserLeftPayload)
		assert.Equal(t, "holder", left.UserID)
		assert.Empty(t, left.LockedBy)

		// the document is editable again.
		require.NoError(t, c1.ChangeContent(ctx, docID, others[0].ID, types.Operation{
			Type:    types.Insert,
			Content: "z",
			Length:  1,
		}))
		helper.ReceiveEventOf(t, c1, events.ContentChangedEvent)
	})
}
