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

package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yorkie-team/coedit/api"
	"github.com/yorkie-team/coedit/api/converter"
	"github.com/yorkie-team/coedit/api/types/events"
	"github.com/yorkie-team/coedit/internal/validation"
	"github.com/yorkie-team/coedit/pkg/errors"
	"github.com/yorkie-team/coedit/server/logging"
)

var (
	// ErrMalformedMessage is returned when a message is not valid JSON.
	ErrMalformedMessage = errors.InvalidArgument("malformed message").WithCode("ErrMalformedMessage")

	// ErrInvalidMessage is returned when a message misses required fields or
	// has an unknown type.
	ErrInvalidMessage = errors.InvalidArgument("invalid message").WithCode("ErrInvalidMessage")

	// ErrCollaboratorMismatch is returned when an authenticated connection
	// acts as another collaborator.
	ErrCollaboratorMismatch = errors.PermissionDenied(
		"collaborator does not match the authenticated user",
	).WithCode("ErrCollaboratorMismatch")
)

const unknownMessageType = "unknown"

// handleMessage decodes, validates and dispatches one inbound message.
func (s *Server) handleMessage(ctx context.Context, c *conn, data []byte) {
	msg := &api.ClientMessage{}
	if err := json.Unmarshal(data, msg); err != nil {
		s.reject(ctx, c, unknownMessageType, "", fmt.Errorf("%s: %w", err.Error(), ErrMalformedMessage))
		return
	}

	label := messageLabel(msg.Type)
	if err := validation.ValidateStruct(msg); err != nil {
		s.reject(ctx, c, label, msg.DocumentID, fmt.Errorf("%s: %w", err.Error(), ErrInvalidMessage))
		return
	}

	if err := s.dispatch(ctx, c, msg); err != nil {
		s.reject(ctx, c, label, msg.DocumentID, err)
		return
	}

	s.be.Metrics.AddMessage(label, "ok")
}

func (s *Server) dispatch(ctx context.Context, c *conn, msg *api.ClientMessage) error {
	coordinator := s.be.Coordinator

	if msg.Type == api.JoinDocument {
		user := *msg.Collaborator
		if c.user != nil {
			user = *c.user
		}
		return coordinator.Join(ctx, c.id, msg.DocumentID, converter.ToCollaborator(user, time.Now()))
	}

	if c.user != nil && c.user.ID != msg.CollaboratorID {
		return fmt.Errorf("%s as %s: %w", c.user.ID, msg.CollaboratorID, ErrCollaboratorMismatch)
	}

	switch msg.Type {
	case api.LeaveDocument:
		return coordinator.Leave(ctx, c.id, msg.DocumentID, msg.CollaboratorID)
	case api.CursorMove:
		return coordinator.CursorMove(ctx, c.id, msg.DocumentID, msg.CollaboratorID, msg.Cursor)
	case api.ContentChange:
		return coordinator.ContentChange(ctx, c.id, msg.DocumentID, msg.CollaboratorID, *msg.Operation)
	case api.LockDocument:
		return coordinator.Lock(ctx, c.id, msg.DocumentID, msg.CollaboratorID)
	case api.UnlockDocument:
		return coordinator.Unlock(ctx, c.id, msg.DocumentID, msg.CollaboratorID)
	default:
		return fmt.Errorf("%s: %w", msg.Type, ErrInvalidMessage)
	}
}

// reject logs the failed message and, for client errors, tells the sender
// why it was rejected.
func (s *Server) reject(ctx context.Context, c *conn, label, docID string, err error) {
	logging.LogMessageError(logging.From(ctx), label, err)
	s.be.Metrics.AddMessage(label, "rejected")

	if !errors.IsClientError(err) {
		return
	}

	s.be.PubSub.Send(ctx, c.id, events.DocEvent{
		Type:       events.ErrorEvent,
		DocumentID: docID,
		Payload: events.ErrorPayload{
			Code:    errors.CodeOf(err),
			Message: err.Error(),
		},
	})
}

// messageLabel bounds the label of the message metrics to the known types.
func messageLabel(t api.MessageType) string {
	switch t {
	case api.JoinDocument, api.LeaveDocument, api.CursorMove,
		api.ContentChange, api.LockDocument, api.UnlockDocument:
		return string(t)
	default:
		return unknownMessageType
	}
}
