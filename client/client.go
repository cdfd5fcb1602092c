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

// Package client provides the client implementation of coedit. It connects
// to the server over a websocket and sends the messages of a collaborator.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	gosync "sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yorkie-team/coedit/api"
	"github.com/yorkie-team/coedit/api/converter"
	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/api/types/events"
)

const (
	webSocketPath = "/ws"
	documentsPath = "/api/documents"

	defaultWriteTimeout = 10 * time.Second
)

var (
	// ErrClientClosed occurs when the client is used after Close.
	ErrClientClosed = errors.New("client is closed")
)

// Client is a normal client that can communicate with the server.
// It has documents and sends changes of the document in local
// to the server to synchronize with other replicas in remote.
type Client struct {
	conn   *websocket.Conn
	logger *zap.Logger

	writeTimeout time.Duration
	writeMu      gosync.Mutex

	events    chan events.DocEvent
	closing   chan struct{}
	closeOnce gosync.Once
	done      chan struct{}
}

// Dial creates an instance of Client and connects it to the server at the
// given address. The address is a host:port or a ws, wss, http or https URL.
func Dial(ctx context.Context, rpcAddr string, opts ...Option) (*Client, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	if options.EventBufferSize <= 0 {
		options.EventBufferSize = DefaultEventBufferSize
	}
	if options.WriteTimeout <= 0 {
		options.WriteTimeout = defaultWriteTimeout
	}

	logger := options.Logger
	if logger == nil {
		l, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("create logger: %w", err)
		}
		logger = l
	}

	endpoint, err := endpointURL(rpcAddr, webSocketPath, true)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if options.Token != "" {
		header.Set("Authorization", "Bearer "+options.Token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %s: %w", endpoint, resp.Status, err)
		}
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}

	c := &Client{
		conn:         conn,
		logger:       logger,
		writeTimeout: options.WriteTimeout,
		events:       make(chan events.DocEvent, options.EventBufferSize),
		closing:      make(chan struct{}),
		done:         make(chan struct{}),
	}
	go c.readLoop()

	return c, nil
}

// Events returns the events received from the server. The channel is
// closed when the connection ends.
func (c *Client) Events() <-chan events.DocEvent {
	return c.events
}

// Close closes the connection to the server.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closing)

		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if werr := c.conn.WriteControl(
			websocket.CloseMessage,
			msg,
			time.Now().Add(c.writeTimeout),
		); werr != nil && !errors.Is(werr, websocket.ErrCloseSent) {
			c.logger.Debug("write close", zap.Error(werr))
		}

		if cerr := c.conn.Close(); cerr != nil {
			err = fmt.Errorf("close connection: %w", cerr)
		}
		<-c.done
	})
	return err
}

// JoinDocument joins the document as the given user. The server answers
// with a document-state event.
func (c *Client) JoinDocument(ctx context.Context, docID string, user types.User) error {
	return c.send(ctx, &api.ClientMessage{
		Type:         api.JoinDocument,
		DocumentID:   docID,
		Collaborator: &user,
	})
}

// LeaveDocument leaves the document.
func (c *Client) LeaveDocument(ctx context.Context, docID, collaboratorID string) error {
	return c.send(ctx, &api.ClientMessage{
		Type:           api.LeaveDocument,
		DocumentID:     docID,
		CollaboratorID: collaboratorID,
	})
}

// MoveCursor reports the cursor of the collaborator.
func (c *Client) MoveCursor(ctx context.Context, docID, collaboratorID string, cursor *types.Cursor) error {
	return c.send(ctx, &api.ClientMessage{
		Type:           api.CursorMove,
		DocumentID:     docID,
		CollaboratorID: collaboratorID,
		Cursor:         cursor,
	})
}

// ChangeContent submits an edit of the document.
func (c *Client) ChangeContent(ctx context.Context, docID, collaboratorID string, op types.Operation) error {
	return c.send(ctx, &api.ClientMessage{
		Type:           api.ContentChange,
		DocumentID:     docID,
		CollaboratorID: collaboratorID,
		Operation:      &op,
	})
}

// LockDocument requests the editing lock of the document.
func (c *Client) LockDocument(ctx context.Context, docID, collaboratorID string) error {
	return c.send(ctx, &api.ClientMessage{
		Type:           api.LockDocument,
		DocumentID:     docID,
		CollaboratorID: collaboratorID,
	})
}

// UnlockDocument releases the editing lock of the document.
func (c *Client) UnlockDocument(ctx context.Context, docID, collaboratorID string) error {
	return c.send(ctx, &api.ClientMessage{
		Type:           api.UnlockDocument,
		DocumentID:     docID,
		CollaboratorID: collaboratorID,
	})
}

func (c *Client) send(ctx context.Context, msg *api.ClientMessage) error {
	select {
	case <-c.closing:
		return ErrClientClosed
	default:
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.writeTimeout)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return nil
}

func (c *Client) readLoop() {
	defer func() {
		close(c.events)
		close(c.done)
	}()

	for {
		msg := &api.ServerMessage{}
		if err := c.conn.ReadJSON(msg); err != nil {
			select {
			case <-c.closing:
			default:
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					c.logger.Warn("read", zap.Error(err))
				}
			}
			return
		}

		event, err := converter.FromServerMessage(msg)
		if err != nil {
			c.logger.Warn("skip server message", zap.String("type", msg.Type), zap.Error(err))
			continue
		}

		select {
		case c.events <- event:
		case <-c.closing:
			return
		}
	}
}

// endpointURL builds the URL of the given path on the server at rpcAddr.
func endpointURL(rpcAddr, path string, ws bool) (string, error) {
	if !strings.Contains(rpcAddr, "://") {
		rpcAddr = "http://" + rpcAddr
	}

	u, err := url.Parse(rpcAddr)
	if err != nil {
		return "", fmt.Errorf("parse address %s: %w", rpcAddr, err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "http"
		if ws {
			u.Scheme = "ws"
		}
	case "https", "wss":
		u.Scheme = "https"
		if ws {
			u.Scheme = "wss"
		}
	default:
		return "", fmt.Errorf("unsupported scheme %s", u.Scheme)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + path
	return u.String(), nil
}
