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
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidRPCPort occurs when the port in the config is invalid.
	ErrInvalidRPCPort = errors.New("invalid port number for RPC server")
	// ErrInvalidMaxRequestBytes occurs when the max request bytes is invalid.
	ErrInvalidMaxRequestBytes = errors.New("invalid max request bytes for RPC server")
	// ErrInvalidPingInterval occurs when the ping interval is invalid.
	ErrInvalidPingInterval = errors.New("invalid ping interval for RPC server")
	// ErrInvalidWriteTimeout occurs when the write timeout is invalid.
	ErrInvalidWriteTimeout = errors.New("invalid write timeout for RPC server")
)

// Config is the configuration for creating a Server instance.
type Config struct {
	// Port is the port number for the RPC server.
	Port int `yaml:"Port"`

	// MaxRequestBytes is the maximum size in bytes of a message the server
	// will accept.
	MaxRequestBytes int64 `yaml:"MaxRequestBytes"`

	// PingInterval is the interval of keep-alive pings. A connection that
	// does not answer within two intervals is closed.
	PingInterval string `yaml:"PingInterval"`

	// WriteTimeout is the deadline of writing one message.
	WriteTimeout string `yaml:"WriteTimeout"`
}

// Validate validates the port number and the durations.
func (c *Config) Validate() error {
	if c.Port < 1 || 65535 < c.Port {
		return fmt.Errorf("must be between 1 and 65535, given %d: %w", c.Port, ErrInvalidRPCPort)
	}

	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("%d: %w", c.MaxRequestBytes, ErrInvalidMaxRequestBytes)
	}

	if d, err := time.ParseDuration(c.PingInterval); err != nil || d <= 0 {
		return fmt.Errorf("%s: %w", c.PingInterval, ErrInvalidPingInterval)
	}

	if d, err := time.ParseDuration(c.WriteTimeout); err != nil || d <= 0 {
		return fmt.Errorf("%s: %w", c.WriteTimeout, ErrInvalidWriteTimeout)
	}

	return nil
}

// ParsePingInterval returns the ping interval.
func (c *Config) ParsePingInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.PingInterval)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", c.PingInterval, ErrInvalidPingInterval)
	}
	return d, nil
}

// ParseWriteTimeout returns the write timeout.
func (c *Config) ParseWriteTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.WriteTimeout)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", c.WriteTimeout, ErrInvalidWriteTimeout)
	}
	return d, nil
}
