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

package housekeeping_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/coedit/server/backend/housekeeping"
)

func TestConfig(t *testing.T) {
	t.Run("validate test", func(t *testing.T) {
		validConf := housekeeping.Config{
			Interval:                   "5m",
			CollaboratorStaleThreshold: "5m",
		}
		assert.NoError(t, validConf.Validate())

		conf1 := validConf
		conf1.Interval = "hour"
		assert.Error(t, conf1.Validate())

		conf2 := validConf
		conf2.CollaboratorStaleThreshold = "0s"
		assert.Error(t, conf2.Validate())

		conf3 := validConf
		conf3.Interval = "-1m"
		assert.Error(t, conf3.Validate())
	})

	t.Run("parse test", func(t *testing.T) {
		conf := housekeeping.Config{Interval: "30s", CollaboratorStaleThreshold: "2m"}

		interval, err := conf.ParseInterval()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, interval)

		threshold, err := conf.ParseStaleThreshold()
		require.NoError(t, err)
		assert.Equal(t, 2*time.Minute, threshold)
	})
}
