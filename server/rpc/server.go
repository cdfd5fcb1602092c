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

// Package rpc is the transport of coedit. It accepts websocket connections
// of the collaborators and forwards their messages to the coordinator.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	gosync "sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/yorkie-team/coedit/pkg/cmap"
	"github.com/yorkie-team/coedit/server/backend"
	"github.com/yorkie-team/coedit/server/logging"
	"github.com/yorkie-team/coedit/server/rpc/auth"
	"github.com/yorkie-team/coedit/server/rpc/httphealth"
	"github.com/yorkie-team/coedit/server/rpc/interceptors"
)

const (
	// WebSocketPath is the path of the websocket endpoint.
	WebSocketPath = "/ws"

	// DocumentsPath is the path of the endpoint listing the live documents.
	DocumentsPath = "/api/documents"
)

// Server is a normal server that processes the logic requested by the client.
type Server struct {
	conf     *Config
	be       *backend.Backend
	provider auth.Provider

	upgrader     websocket.Upgrader
	router       *mux.Router
	httpServer   *http.Server
	pingInterval time.Duration
	writeTimeout time.Duration

	conns *cmap.Map[string, *conn]

	mu      gosync.RWMutex
	closing bool
	wg      gosync.WaitGroup
}

// NewServer creates a new instance of Server.
func NewServer(conf *Config, be *backend.Backend) (*Server, error) {
	pingInterval, err := conf.ParsePingInterval()
	if err != nil {
		return nil, err
	}
	writeTimeout, err := conf.ParseWriteTimeout()
	if err != nil {
		return nil, err
	}

	s := &Server{
		conf:     conf,
		be:       be,
		provider: auth.NewProvider(be),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		pingInterval: pingInterval,
		writeTimeout: writeTimeout,
		conns:        cmap.New[string, *conn](),
	}

	router := mux.NewRouter()
	router.Use(interceptors.NewHTTPInterceptor(be.Metrics).Middleware)
	router.HandleFunc(WebSocketPath, s.serveWS).Methods(http.MethodGet)
	healthPath, healthHandler := httphealth.NewHandler()
	router.Handle(healthPath, healthHandler).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(DocumentsPath, s.listDocuments).Methods(http.MethodGet)
	s.router = router

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts this server by opening the rpc port.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		logging.DefaultLogger().Error(err)
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		logging.DefaultLogger().Infof("serving RPC on %d", s.conf.Port)

		if err := s.httpServer.Serve(lis); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logging.DefaultLogger().Error(err)
			}
		}
	}()

	return nil
}

// Shutdown shuts down this server. Graceful shutdown tells the open
// connections that the server is going away before closing them.
func (s *Server) Shutdown(graceful bool) {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		return
	}
	s.closing = true
	s.mu.Unlock()

	if graceful {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		if err := s.httpServer.Shutdown(ctx); err != nil {
			logging.DefaultLogger().Warnf("shutdown RPC: %v", err)
		}
		cancel()
	} else if err := s.httpServer.Close(); err != nil {
		logging.DefaultLogger().Warnf("close RPC: %v", err)
	}

	// hijacked connections are not tracked by http.Server.
	for _, c := range s.conns.Values() {
		if graceful {
			c.writeClose(websocket.CloseGoingAway, "server shutdown")
		}
		c.close()
	}
	s.wg.Wait()
}

// track registers the connection unless the server is shutting down.
func (s *Server) track(c *conn) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closing {
		return false
	}

	s.wg.Add(1)
	s.conns.Set(c.id, c)
	return true
}

func (s *Server) untrack(c *conn) {
	s.conns.Delete(c.id)
	s.wg.Done()
}
