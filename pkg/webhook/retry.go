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

package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"time"
)

var (
	// ErrUnexpectedStatusCode is returned when the webhook returns an unexpected status code.
	ErrUnexpectedStatusCode = errors.New("unexpected status code from webhook")

	// ErrWebhookTimeout is returned when the webhook keeps failing after all retries.
	ErrWebhookTimeout = errors.New("webhook timeout")
)

// WithExponentialBackoff calls fn until it succeeds with a non-retryable
// result or maxRetries is exceeded.
func WithExponentialBackoff(
	ctx context.Context,
	maxRetries uint64,
	baseInterval, maxInterval time.Duration,
	fn func() (int, error),
) error {
	var statusCode int
	for retries := uint64(0); retries <= maxRetries; retries++ {
		var err error
		statusCode, err = fn()
		if !shouldRetry(statusCode, err) {
			if errors.Is(err, ErrUnexpectedStatusCode) {
				return fmt.Errorf("%d: %w", statusCode, ErrUnexpectedStatusCode)
			}
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitInterval(retries, baseInterval, maxInterval)):
		}
	}

	return fmt.Errorf("unexpected status code from webhook %d: %w", statusCode, ErrWebhookTimeout)
}

// waitInterval returns 2^retries * baseInterval capped by maxInterval.
func waitInterval(retries uint64, baseInterval, maxInterval time.Duration) time.Duration {
	interval := baseInterval << retries
	if interval <= 0 || maxInterval < interval {
		return maxInterval
	}
	return interval
}

func shouldRetry(statusCode int, err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ECONNRESET
	}

	return statusCode == http.StatusInternalServerError ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout ||
		statusCode == http.StatusTooManyRequests
}
