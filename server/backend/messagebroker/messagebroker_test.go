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

package messagebroker_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/coedit/server/backend/messagebroker"
)

func TestMessageBroker(t *testing.T) {
	t.Run("marshal document event test", func(t *testing.T) {
		now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		msg := messagebroker.DocumentEventMessage{
			DocumentID:     "d1",
			EventType:      messagebroker.DocumentChangedEvent,
			CollaboratorID: "alice",
			Version:        3,
			Timestamp:      now,
		}
		assert.Equal(t, "d1", msg.Key())

		encoded, err := msg.Marshal()
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, "d1", decoded["document_id"])
		assert.Equal(t, "changed", decoded["event_type"])
		assert.Equal(t, "alice", decoded["collaborator_id"])
		assert.Equal(t, float64(3), decoded["version"])
	})

	t.Run("ensure without config test", func(t *testing.T) {
		broker := messagebroker.Ensure(nil)
		assert.IsType(t, &messagebroker.DummyBroker{}, broker)
		assert.NoError(t, broker.Produce(context.Background(), messagebroker.DocumentEventMessage{}))
		assert.NoError(t, broker.Close())

		broker = messagebroker.Ensure(&messagebroker.Config{Addresses: "localhost:9092"})
		assert.IsType(t, &messagebroker.DummyBroker{}, broker)
	})

	t.Run("ensure with config test", func(t *testing.T) {
		broker := messagebroker.Ensure(&messagebroker.Config{
			Addresses: "localhost:9092",
			Topic:     "coedit",
		})
		assert.IsType(t, &messagebroker.KafkaBroker{}, broker)
		assert.NoError(t, broker.Close())
	})
}
