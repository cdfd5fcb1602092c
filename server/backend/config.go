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

package backend

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

var (
	// ErrInvalidMaxCollaborators is returned when the collaborator limit is
	// negative.
	ErrInvalidMaxCollaborators = errors.New("max collaborators per document must not be negative")

	// ErrInvalidSubscriptionBufferSize is returned when the buffer size is
	// not positive.
	ErrInvalidSubscriptionBufferSize = errors.New("subscription buffer size must be positive")
)

// Config is the configuration for creating a Backend instance.
type Config struct {
	// SnapshotEnabled is whether documents are seeded from and saved to the
	// snapshot database.
	SnapshotEnabled bool `yaml:"SnapshotEnabled"`

	// SnapshotInterval is the interval between checkpoints of the changed
	// documents.
	SnapshotInterval string `yaml:"SnapshotInterval"`

	// MaxCollaboratorsPerDocument limits the collaborators of a document. 0
	// means unlimited.
	MaxCollaboratorsPerDocument int `yaml:"MaxCollaboratorsPerDocument"`

	// SubscriptionBufferSize is the number of events buffered per connection.
	SubscriptionBufferSize int `yaml:"SubscriptionBufferSize"`

	// PublishTimeout is how long an event waits for a full connection buffer
	// before it is dropped.
	PublishTimeout string `yaml:"PublishTimeout"`

	// AuthWebhookURL is the URL of the webhook resolving the identity behind
	// a token.
	AuthWebhookURL string `yaml:"AuthWebhookURL"`

	// AuthWebhookMaxRetries is the max count that retries the authorization webhook.
	AuthWebhookMaxRetries uint64 `yaml:"AuthWebhookMaxRetries"`

	// AuthWebhookMaxWaitInterval is the max interval that waits before retrying the authorization webhook.
	AuthWebhookMaxWaitInterval string `yaml:"AuthWebhookMaxWaitInterval"`

	// AuthWebhookRequestTimeout is the timeout of one webhook request.
	AuthWebhookRequestTimeout string `yaml:"AuthWebhookRequestTimeout"`

	// AuthWebhookCacheSize is the cache size of the authorization webhook.
	AuthWebhookCacheSize int `yaml:"AuthWebhookCacheSize"`

	// AuthWebhookCacheTTL is the TTL value to set when caching the authorized result.
	AuthWebhookCacheTTL string `yaml:"AuthWebhookCacheTTL"`

	// AuthJWTSecret is the HS256 secret of the identity tokens. It is used
	// when no auth webhook is configured.
	AuthJWTSecret string `yaml:"AuthJWTSecret"`
}

// Validate validates this config.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.SnapshotInterval); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--snapshot-interval" flag: %w`,
			c.SnapshotInterval,
			err,
		)
	}

	if c.MaxCollaboratorsPerDocument < 0 {
		return fmt.Errorf("%d: %w", c.MaxCollaboratorsPerDocument, ErrInvalidMaxCollaborators)
	}

	if c.SubscriptionBufferSize <= 0 {
		return fmt.Errorf("%d: %w", c.SubscriptionBufferSize, ErrInvalidSubscriptionBufferSize)
	}

	if _, err := time.ParseDuration(c.PublishTimeout); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--publish-timeout" flag: %w`,
			c.PublishTimeout,
			err,
		)
	}

	if c.AuthWebhookURL != "" {
		if _, err := url.ParseRequestURI(c.AuthWebhookURL); err != nil {
			return fmt.Errorf(
				`invalid argument "%s" for "--auth-webhook-url" flag: %w`,
				c.AuthWebhookURL,
				err,
			)
		}
	}

	if _, err := time.ParseDuration(c.AuthWebhookMaxWaitInterval); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--auth-webhook-max-wait-interval" flag: %w`,
			c.AuthWebhookMaxWaitInterval,
			err,
		)
	}

	if _, err := time.ParseDuration(c.AuthWebhookRequestTimeout); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--auth-webhook-request-timeout" flag: %w`,
			c.AuthWebhookRequestTimeout,
			err,
		)
	}

	if _, err := time.ParseDuration(c.AuthWebhookCacheTTL); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--auth-webhook-cache-ttl" flag: %w`,
			c.AuthWebhookCacheTTL,
			err,
		)
	}

	return nil
}

// ParseSnapshotInterval returns the interval between checkpoints.
func (c *Config) ParseSnapshotInterval() (time.Duration, error) {
	result, err := time.ParseDuration(c.SnapshotInterval)
	if err != nil {
		return 0, fmt.Errorf("parse snapshot interval: %w", err)
	}

	return result, nil
}

// ParsePublishTimeout returns the publish timeout.
func (c *Config) ParsePublishTimeout() (time.Duration, error) {
	result, err := time.ParseDuration(c.PublishTimeout)
	if err != nil {
		return 0, fmt.Errorf("parse publish timeout: %w", err)
	}

	return result, nil
}

// ParseAuthWebhookMaxWaitInterval returns max wait interval.
func (c *Config) ParseAuthWebhookMaxWaitInterval() (time.Duration, error) {
	result, err := time.ParseDuration(c.AuthWebhookMaxWaitInterval)
	if err != nil {
		return 0, fmt.Errorf("parse auth webhook max wait interval: %w", err)
	}

	return result, nil
}

// ParseAuthWebhookRequestTimeout returns the timeout of one webhook request.
func (c *Config) ParseAuthWebhookRequestTimeout() (time.Duration, error) {
	result, err := time.ParseDuration(c.AuthWebhookRequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("parse auth webhook request timeout: %w", err)
	}

	return result, nil
}

// ParseAuthWebhookCacheTTL returns TTL for authorized cache.
func (c *Config) ParseAuthWebhookCacheTTL() (time.Duration, error) {
	result, err := time.ParseDuration(c.AuthWebhookCacheTTL)
	if err != nil {
		return 0, fmt.Errorf("parse auth webhook cache ttl: %w", err)
	}

	return result, nil
}
