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

// Package converter converts between domain events and protocol messages.
package converter

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yorkie-team/coedit/api"
	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/api/types/events"
)

var (
	// ErrUnsupportedEvent is returned when the type of a message is unknown.
	ErrUnsupportedEvent = errors.New("unsupported event type")
)

// ToServerMessage converts the given event to a ServerMessage.
func ToServerMessage(event events.DocEvent) (*api.ServerMessage, error) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event.Type, err)
	}

	return &api.ServerMessage{
		Type:       string(event.Type),
		DocumentID: event.DocumentID,
		Payload:    payload,
	}, nil
}

// FromServerMessage converts the given ServerMessage to an event whose
// payload is the concrete payload type of the event.
func FromServerMessage(msg *api.ServerMessage) (events.DocEvent, error) {
	var payload interface{}
	switch events.DocEventType(msg.Type) {
	case events.DocStateEvent:
		payload = &events.DocStatePayload{}
	case events.UserJoinedEvent:
		payload = &events.UserJoinedPayload{}
	case events.UserLeftEvent:
		payload = &events.UserLeftPayload{}
	case events.CursorUpdatedEvent:
		payload = &events.CursorUpdatedPayload{}
	case events.ContentChangedEvent:
		payload = &events.ContentChangedPayload{}
	case events.DocLockedEvent:
		payload = &events.DocLockedPayload{}
	case events.DocUnlockedEvent:
		payload = &events.DocUnlockedPayload{}
	case events.ErrorEvent:
		payload = &events.ErrorPayload{}
	default:
		return events.DocEvent{}, fmt.Errorf("%s: %w", msg.Type, ErrUnsupportedEvent)
	}

	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			return events.DocEvent{}, fmt.Errorf("unmarshal %s payload: %w", msg.Type, err)
		}
	}

	return events.DocEvent{
		Type:       events.DocEventType(msg.Type),
		DocumentID: msg.DocumentID,
		Payload:    payload,
	}, nil
}

// ToCollaborator converts the identity of a join message to a collaborator
// seen at the given time.
func ToCollaborator(user types.User, now time.Time) types.Collaborator {
	return types.Collaborator{
		User:     user,
		LastSeen: now,
	}
}
