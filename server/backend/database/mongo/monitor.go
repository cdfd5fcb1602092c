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

package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/event"
	"go.uber.org/zap"

	"github.com/yorkie-team/coedit/server/logging"
)

// QueryMonitor logs the commands sent to MongoDB.
type QueryMonitor struct {
	logger             logging.Logger
	slowQueryThreshold time.Duration
}

// NewQueryMonitor creates a new instance of QueryMonitor.
func NewQueryMonitor(slowQueryThreshold time.Duration) *QueryMonitor {
	return &QueryMonitor{
		logger:             logging.New("mongo"),
		slowQueryThreshold: slowQueryThreshold,
	}
}

// CreateCommandMonitor creates an event.CommandMonitor reporting to the
// logger.
func (m *QueryMonitor) CreateCommandMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			if logging.Enabled(zap.DebugLevel) {
				m.logger.Debugf("STAR: %d(%s): %s", evt.RequestID, evt.CommandName, evt.Command)
			}
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			if m.slowQueryThreshold > 0 && evt.Duration > m.slowQueryThreshold {
				m.logger.Warnf("SLOW: %d(%s): %dms", evt.RequestID, evt.CommandName, evt.Duration.Milliseconds())
				return
			}
			m.logger.Debugf("SUCC: %d(%s): %dms", evt.RequestID, evt.CommandName, evt.Duration.Milliseconds())
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			if isDuplicateKey(evt) {
				m.logger.Debugf("FAIL: %d(%s), %s", evt.RequestID, evt.CommandName, evt.Failure)
				return
			}
			m.logger.Warnf("FAIL: %d(%s), %s", evt.RequestID, evt.CommandName, evt.Failure)
		},
	}
}

// isDuplicateKey reports duplicate key failures, which are expected when a
// stale snapshot loses against a newer one.
func isDuplicateKey(evt *event.CommandFailedEvent) bool {
	return evt.Failure != nil && strings.Contains(evt.Failure.Error(), "E11000 duplicate key")
}
