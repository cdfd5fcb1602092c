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

// Package api defines the JSON messages exchanged over a coedit websocket
// connection.
package api

import (
	"encoding/json"

	"github.com/yorkie-team/coedit/api/types"
)

// MessageType is the type of an inbound message.
type MessageType string

// Belows are the types of inbound messages.
const (
	JoinDocument   MessageType = "join-document"
	LeaveDocument  MessageType = "leave-document"
	CursorMove     MessageType = "cursor-move"
	ContentChange  MessageType = "content-change"
	LockDocument   MessageType = "lock-document"
	UnlockDocument MessageType = "unlock-document"
)

// ClientMessage is a message sent by a client. Which optional fields are
// required depends on Type.
type ClientMessage struct {
	Type           MessageType      `json:"type" validate:"required,oneof=join-document leave-document cursor-move content-change lock-document unlock-document"`
	DocumentID     string           `json:"documentId" validate:"required,identifier,max=256"`
	Collaborator   *types.User      `json:"collaborator,omitempty" validate:"required_if=Type join-document"`
	CollaboratorID string           `json:"collaboratorId,omitempty" validate:"required_unless=Type join-document,omitempty,identifier,max=128"`
	Cursor         *types.Cursor    `json:"cursor,omitempty" validate:"required_if=Type cursor-move"`
	Operation      *types.Operation `json:"operation,omitempty" validate:"required_if=Type content-change"`
}

// ServerMessage is a message sent by the server.
type ServerMessage struct {
	Type       string          `json:"type"`
	DocumentID string          `json:"documentId,omitempty"`
	Payload    json.RawMessage `json:"payload"`
}
