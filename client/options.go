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

package client

import (
	"time"

	"go.uber.org/zap"
)

// DefaultEventBufferSize is the default number of received events buffered
// before the client stops reading from the connection.
const DefaultEventBufferSize = 256

// Option configures Options.
type Option func(*Options)

// Options configures how we set up the client.
type Options struct {
	// Token is the token of the client. The server resolves the identity of
	// the collaborator from it.
	Token string

	// EventBufferSize is the size of the channel returned by Events.
	EventBufferSize int

	// WriteTimeout is the deadline of writing one message when the context
	// has none.
	WriteTimeout time.Duration

	// Logger is the Logger of the client.
	Logger *zap.Logger
}

// WithToken configures the token of the client.
func WithToken(token string) Option {
	return func(o *Options) { o.Token = token }
}

// WithEventBufferSize configures the size of the event buffer.
func WithEventBufferSize(size int) Option {
	return func(o *Options) { o.EventBufferSize = size }
}

// WithWriteTimeout configures the write timeout of the client.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(o *Options) { o.WriteTimeout = timeout }
}

// WithLogger configures the Logger of the client.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}
