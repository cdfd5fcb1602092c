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

package types_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/coedit/api/types"
)

func TestID(t *testing.T) {
	t.Run("new id test", func(t *testing.T) {
		id := types.NewID()
		assert.NoError(t, id.Validate())
		assert.NotEqual(t, id, types.NewID())
	})

	t.Run("invalid id test", func(t *testing.T) {
		assert.ErrorIs(t, types.ID("not-an-id").Validate(), types.ErrInvalidID)
	})
}

func TestCollaborator(t *testing.T) {
	t.Run("deep copy test", func(t *testing.T) {
		c := &types.Collaborator{
			User:   types.User{ID: "a", Name: "A"},
			Cursor: &types.Cursor{Position: 1, Selection: &types.Selection{Start: 1, End: 3}},
		}
		clone := c.DeepCopy()
		clone.Cursor.Selection.End = 10
		clone.Name = "B"

		assert.Equal(t, 3, c.Cursor.Selection.End)
		assert.Equal(t, "A", c.Name)
		assert.Nil(t, (*types.Collaborator)(nil).DeepCopy())
	})
}

func TestAuthWebhook(t *testing.T) {
	t.Run("response round trip test", func(t *testing.T) {
		var buf bytes.Buffer
		res := &types.AuthWebhookResponse{Allowed: true, User: &types.User{ID: "a", Name: "A"}}
		_, err := res.Write(&buf)
		require.NoError(t, err)

		decoded, err := types.NewAuthWebhookResponse(&buf)
		require.NoError(t, err)
		assert.Equal(t, res, decoded)
	})

	t.Run("invalid request test", func(t *testing.T) {
		_, err := types.NewAuthWebhookRequest(bytes.NewBufferString("{"))
		assert.ErrorIs(t, err, types.ErrInvalidWebhookRequest)
	})
}
