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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/coedit/server/backend/messagebroker"
)

func TestConfig(t *testing.T) {
	t.Run("validate test", func(t *testing.T) {
		validConf := messagebroker.Config{
			Addresses:    "localhost:9092",
			Topic:        "coedit",
			WriteTimeout: "1s",
		}
		assert.NoError(t, validConf.Validate())

		conf1 := validConf
		conf1.Addresses = ""
		assert.ErrorIs(t, conf1.Validate(), messagebroker.ErrEmptyAddress)

		conf2 := validConf
		conf2.Addresses = "localhost:9092,"
		assert.ErrorIs(t, conf2.Validate(), messagebroker.ErrEmptyAddress)
		assert.Contains(t, conf2.Validate().Error(), conf2.Addresses)

		conf3 := validConf
		conf3.Topic = ""
		assert.ErrorIs(t, conf3.Validate(), messagebroker.ErrEmptyTopic)

		conf4 := validConf
		conf4.WriteTimeout = "invalid"
		assert.ErrorIs(t, conf4.Validate(), messagebroker.ErrInvalidDuration)
	})

	t.Run("split addresses test", func(t *testing.T) {
		c := &messagebroker.Config{Addresses: "localhost:9092,localhost:9093"}
		assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, c.SplitAddresses())
	})

	t.Run("parse write timeout test", func(t *testing.T) {
		c := &messagebroker.Config{WriteTimeout: "1s"}
		d, err := c.ParseWriteTimeout()
		require.NoError(t, err)
		assert.Equal(t, time.Second, d)

		c.WriteTimeout = ""
		d, err = c.ParseWriteTimeout()
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, d)

		c.WriteTimeout = "1"
		_, err = c.ParseWriteTimeout()
		assert.ErrorIs(t, err, messagebroker.ErrInvalidDuration)
	})
}
