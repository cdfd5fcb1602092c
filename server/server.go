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

// Package server provides the coedit server which is the main entry point of
// the coedit system. The server is responsible for starting the backend,
// the RPC server and the profiling server.
package server

import (
	gosync "sync"

	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/server/backend"
	"github.com/yorkie-team/coedit/server/profiling"
	"github.com/yorkie-team/coedit/server/profiling/prometheus"
	"github.com/yorkie-team/coedit/server/rpc"
)

// Coedit is a server of coedit.
// The server receives the messages of the collaborators, applies them to
// the documents held in memory and broadcasts the results to the rooms of
// the documents.
type Coedit struct {
	lock gosync.Mutex

	conf            *Config
	backend         *backend.Backend
	rpcServer       *rpc.Server
	profilingServer *profiling.Server

	shutdown   bool
	shutdownCh chan struct{}
}

// New creates a new instance of Coedit.
func New(conf *Config) (*Coedit, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	metrics, err := prometheus.NewMetrics()
	if err != nil {
		return nil, err
	}

	be, err := backend.New(
		conf.Backend,
		conf.Mongo,
		conf.Housekeeping,
		metrics,
		conf.Kafka,
	)
	if err != nil {
		return nil, err
	}

	rpcServer, err := rpc.NewServer(conf.RPC, be)
	if err != nil {
		return nil, err
	}

	var profilingServer *profiling.Server
	if conf.Profiling != nil && conf.Profiling.Enabled {
		profilingServer = profiling.NewServer(conf.Profiling, metrics)
	}

	return &Coedit{
		conf:            conf,
		backend:         be,
		rpcServer:       rpcServer,
		profilingServer: profilingServer,
		shutdownCh:      make(chan struct{}),
	}, nil
}

// Start starts the server by opening the rpc port.
func (r *Coedit) Start() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.backend.Start(); err != nil {
		return err
	}

	if r.profilingServer != nil {
		if err := r.profilingServer.Start(); err != nil {
			return err
		}
	}

	return r.rpcServer.Start()
}

// Shutdown shuts down this coedit server. The connections are closed
// before the backend so that their collaborators leave the documents, and
// the changed documents are checkpointed by the backend.
func (r *Coedit) Shutdown(graceful bool) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.shutdown {
		return nil
	}

	r.rpcServer.Shutdown(graceful)
	if r.profilingServer != nil {
		r.profilingServer.Shutdown(graceful)
	}

	if err := r.backend.Shutdown(); err != nil {
		return err
	}

	close(r.shutdownCh)
	r.shutdown = true
	return nil
}

// ShutdownCh returns the shutdown channel.
func (r *Coedit) ShutdownCh() <-chan struct{} {
	return r.shutdownCh
}

// RPCAddr returns the address of the RPC.
func (r *Coedit) RPCAddr() string {
	return r.conf.RPCAddr()
}

// Documents returns the summaries of the live documents. It is used for
// testing.
func (r *Coedit) Documents() []types.DocumentSummary {
	return r.backend.Coordinator.Documents()
}
