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

// Package messagebroker produces the document events to an external stream.
package messagebroker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yorkie-team/coedit/server/logging"
)

// Message represents a message that can be sent to the message broker.
type Message interface {
	Key() string
	Marshal() ([]byte, error)
}

// DocumentEventType is the type of the state transition of a document.
type DocumentEventType string

const (
	// DocumentJoinedEvent is produced when a collaborator joins.
	DocumentJoinedEvent DocumentEventType = "joined"

	// DocumentLeftEvent is produced when a collaborator leaves.
	DocumentLeftEvent DocumentEventType = "left"

	// DocumentChangedEvent is produced when an operation is applied.
	DocumentChangedEvent DocumentEventType = "changed"

	// DocumentLockedEvent is produced when a collaborator takes the lock.
	DocumentLockedEvent DocumentEventType = "locked"

	// DocumentUnlockedEvent is produced when the holder releases the lock.
	DocumentUnlockedEvent DocumentEventType = "unlocked"

	// DocumentEvictedEvent is produced when the idle sweep evicts a
	// collaborator.
	DocumentEvictedEvent DocumentEventType = "evicted"
)

// DocumentEventMessage represents a message for document events.
type DocumentEventMessage struct {
	DocumentID     string            `json:"document_id"`
	EventType      DocumentEventType `json:"event_type"`
	CollaboratorID string            `json:"collaborator_id"`
	Version        int64             `json:"version"`
	Timestamp      time.Time         `json:"timestamp"`
}

// Key returns the document id.
func (m DocumentEventMessage) Key() string {
	return m.DocumentID
}

// Marshal marshals the document event message to JSON.
func (m DocumentEventMessage) Marshal() ([]byte, error) {
	encoded, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	return encoded, nil
}

// Broker is an interface for the message broker.
type Broker interface {
	Produce(ctx context.Context, msg Message) error
	Close() error
}

// Ensure creates a message broker based on the given configuration.
// If the configuration is nil or invalid, it returns a DummyBroker, allowing
// callers to use the broker without nil checks.
func Ensure(kafkaConf *Config) Broker {
	if kafkaConf == nil {
		return &DummyBroker{}
	}

	if err := kafkaConf.Validate(); err != nil {
		logging.DefaultLogger().Warnf("invalid kafka configuration: %v", err)
		return &DummyBroker{}
	}

	writeTimeout, err := kafkaConf.ParseWriteTimeout()
	if err != nil {
		logging.DefaultLogger().Warnf("invalid kafka configuration: %v", err)
		return &DummyBroker{}
	}

	logging.DefaultLogger().Infof(
		"connecting to kafka: %s, topic: %s",
		kafkaConf.Addresses,
		kafkaConf.Topic,
	)

	return newKafkaBroker(kafkaConf.SplitAddresses(), kafkaConf.Topic, writeTimeout)
}
