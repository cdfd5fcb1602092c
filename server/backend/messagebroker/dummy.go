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


package messagebroker

import (
	"context"

	"go.uber.org/zap"

	"github.com/yorkie-team/coedit/server/logging"
)

// DummyBroker discards document events. It stands in for Kafka when no
// addresses are configured, so the coordinator can always produce.
type DummyBroker struct{}

// Produce discards the event, tracing its key at debug level.
func (mb *DummyBroker) Produce(_ context.Context, msg Message) error {
	if logging.Enabled(zap.DebugLevel) {
		logging.DefaultLogger().Debugf("discard document event of %s", msg.Key())
	}
	return nil
}

// Close does nothing.
func (mb *DummyBroker) Close() error {
	return nil
}
