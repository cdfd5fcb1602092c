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
	"errors"
	"net/http"
	gosync "sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yorkie-team/coedit/api/converter"
	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/api/types/events"
	"github.com/yorkie-team/coedit/server/backend/pubsub"
	"github.com/yorkie-team/coedit/server/logging"
	"github.com/yorkie-team/coedit/server/rpc/auth"
)

// conn is a websocket connection of a collaborator. Only the write loop
// writes data frames; control frames may be written from anywhere.
type conn struct {
	id     string
	ws     *websocket.Conn
	user   *types.User
	sub    *pubsub.Subscription[events.DocEvent]
	logger logging.Logger

	writeTimeout time.Duration
	closeOnce    gosync.Once
}

func (c *conn) writeClose(code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	if err := c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.writeTimeout)); err != nil &&
		!errors.Is(err, websocket.ErrCloseSent) {
		c.logger.Debugf("write close: %v", err)
	}
}

func (c *conn) close() {
	c.closeOnce.Do(func() {
		if err := c.ws.Close(); err != nil {
			c.logger.Debugf("close: %v", err)
		}
	})
}

// serveWS upgrades the request and serves the connection until it is
// closed.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	var user *types.User
	if s.provider != nil {
		authenticated, err := s.provider.Authenticate(r.Context(), auth.TokenFromRequest(r))
		if err != nil {
			logging.From(r.Context()).Infof("WS: authenticate: %v", err)
			http.Error(w, err.Error(), auth.StatusCode(err))
			return
		}
		user = authenticated
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied to the client.
		logging.From(r.Context()).Debugf("WS: upgrade: %v", err)
		return
	}

	id := types.NewID().String()
	logger := logging.New("ws", logging.NewField("conn", id))
	sub, err := s.be.PubSub.Connect(id)
	if err != nil {
		logger.Errorf("connect: %v", err)
		_ = ws.Close()
		return
	}

	c := &conn{
		id:           id,
		ws:           ws,
		user:         user,
		sub:          sub,
		logger:       logger,
		writeTimeout: s.writeTimeout,
	}
	if !s.track(c) {
		c.writeClose(websocket.CloseGoingAway, "server shutdown")
		c.close()
		s.be.PubSub.Disconnect(id)
		return
	}

	ctx := logging.With(context.Background(), logger)
	s.be.Metrics.AddConnections(1)
	logger.Debugf("connected from %s", r.RemoteAddr)

	defer func() {
		if err := s.be.Coordinator.Disconnect(ctx, id); err != nil {
			logger.Warnf("disconnect: %v", err)
		}
		s.be.PubSub.Disconnect(id)
		c.close()
		s.be.Metrics.AddConnections(-1)
		s.untrack(c)
		logger.Debugf("disconnected")
	}()

	if !s.be.Background.AttachGoroutine(func(ctx context.Context) {
		s.writeLoop(ctx, c)
	}, "ws-write") {
		c.writeClose(websocket.CloseGoingAway, "server shutdown")
		return
	}

	s.readLoop(ctx, c)
}

// writeLoop sends the events of the subscription and the keep-alive pings.
// It closes the connection on return, which stops the read loop.
func (s *Server) writeLoop(ctx context.Context, c *conn) {
	ticker := time.NewTicker(s.pingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case event, ok := <-c.sub.Events():
			if !ok {
				c.writeClose(websocket.CloseGoingAway, "server shutdown")
				return
			}

			msg, err := converter.ToServerMessage(event)
			if err != nil {
				c.logger.Errorf("convert %s: %v", event.Type, err)
				continue
			}
			if err := c.ws.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
				return
			}
			if err := c.ws.WriteJSON(msg); err != nil {
				c.logger.Debugf("write %s: %v", event.Type, err)
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(
				websocket.PingMessage,
				nil,
				time.Now().Add(s.writeTimeout),
			); err != nil {
				c.logger.Debugf("ping: %v", err)
				return
			}
		case <-ctx.Done():
			c.writeClose(websocket.CloseGoingAway, "server shutdown")
			return
		}
	}
}

// readLoop reads the messages of the connection until it fails or the peer
// stops answering pings.
func (s *Server) readLoop(ctx context.Context, c *conn) {
	pongWait := 2 * s.pingInterval
	c.ws.SetReadLimit(s.conf.MaxRequestBytes)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Infof("read: %v", err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))

		s.handleMessage(ctx, c, data)
	}
}
