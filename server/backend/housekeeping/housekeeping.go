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

// Package housekeeping runs periodic maintenance tasks of the backend, such
// as evicting idle collaborators and checkpointing documents.
package housekeeping

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yorkie-team/coedit/server/logging"
)

var (
	// ErrAlreadyStarted is returned when a task is registered after Start.
	ErrAlreadyStarted = errors.New("housekeeping already started")
)

// TaskFunc is a periodic task.
type TaskFunc func(ctx context.Context) error

type task struct {
	name     string
	interval time.Duration
	fn       TaskFunc
}

// Housekeeping runs the registered tasks, each on its own interval, until
// stopped.
type Housekeeping struct {
	interval time.Duration

	mu      sync.Mutex
	tasks   []task
	started bool

	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// New creates a new housekeeping instance. The interval of the config is
// the default interval of tasks registered without one.
func New(conf *Config) (*Housekeeping, error) {
	interval, err := conf.ParseInterval()
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	return &Housekeeping{
		interval:   interval,
		ctx:        ctx,
		cancelFunc: cancelFunc,
	}, nil
}

// RegisterTask registers a task. A zero interval means the default interval.
func (h *Housekeeping) RegisterTask(name string, interval time.Duration, fn TaskFunc) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return fmt.Errorf("register %s: %w", name, ErrAlreadyStarted)
	}
	if interval <= 0 {
		interval = h.interval
	}

	h.tasks = append(h.tasks, task{name: name, interval: interval, fn: fn})
	return nil
}

// Start starts the housekeeping service.
func (h *Housekeeping) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return ErrAlreadyStarted
	}
	h.started = true

	for _, t := range h.tasks {
		h.wg.Add(1)
		go h.run(t)
	}

	return nil
}

// Stop stops the housekeeping service and waits for running tasks.
func (h *Housekeeping) Stop() error {
	h.cancelFunc()
	h.wg.Wait()

	return nil
}

func (h *Housekeeping) run(t task) {
	defer h.wg.Done()

	logger := logging.New("hskp", logging.NewField("task", t.name))
	ctx := logging.With(h.ctx, logger)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			start := time.Now()
			if err := t.fn(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				logger.Errorf("HSKP: %s: %v", t.name, err)
				continue
			}
			logger.Debugf("HSKP: %s done in %s", t.name, time.Since(start))
		case <-h.ctx.Done():
			return
		}
	}
}
