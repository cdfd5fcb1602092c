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

package api_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/coedit/api"
	"github.com/yorkie-team/coedit/internal/validation"
)

func decode(t *testing.T, raw string) *api.ClientMessage {
	msg := &api.ClientMessage{}
	require.NoError(t, json.Unmarshal([]byte(raw), msg))
	return msg
}

func TestClientMessageValidation(t *testing.T) {
	t.Run("valid messages test", func(t *testing.T) {
		for _, raw := range []string{
			`{"type":"join-document","documentId":"article:42","collaborator":{"id":"a","name":"Alice","email":"a@example.com"}}`,
			`{"type":"leave-document","documentId":"d1","collaboratorId":"a"}`,
			`{"type":"cursor-move","documentId":"d1","collaboratorId":"a","cursor":{"position":3,"selection":{"start":1,"end":3}}}`,
			`{"type":"content-change","documentId":"d1","collaboratorId":"a","operation":{"type":"insert","content":"Hi","length":2,"version":0,"userId":"a","timestamp":"2026-01-01T00:00:00Z"}}`,
			`{"type":"lock-document","documentId":"d1","collaboratorId":"a"}`,
			`{"type":"unlock-document","documentId":"d1","collaboratorId":"a"}`,
		} {
			assert.NoError(t, validation.ValidateStruct(decode(t, raw)), raw)
		}
	})

	t.Run("invalid messages test", func(t *testing.T) {
		for _, raw := range []string{
			`{"type":"shout","documentId":"d1","collaboratorId":"a"}`,
			`{"type":"lock-document","collaboratorId":"a"}`,
			`{"type":"join-document","documentId":"d1"}`,
			`{"type":"join-document","documentId":"d1","collaborator":{"id":"a"}}`,
			`{"type":"leave-document","documentId":"d1"}`,
			`{"type":"cursor-move","documentId":"d1","collaboratorId":"a"}`,
			`{"type":"cursor-move","documentId":"d1","collaboratorId":"a","cursor":{"position":-1}}`,
			`{"type":"cursor-move","documentId":"d1","collaboratorId":"a","cursor":{"position":1,"selection":{"start":3,"end":1}}}`,
			`{"type":"content-change","documentId":"d1","collaboratorId":"a"}`,
			`{"type":"content-change","documentId":"d1","collaboratorId":"a","operation":{"type":"move"}}`,
			`{"type":"lock-document","documentId":"d 1","collaboratorId":"a"}`,
		} {
			assert.Error(t, validation.ValidateStruct(decode(t, raw)), raw)
		}
	})
}
