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

// Package webhook provides a generic JSON webhook client with retries and
// response caching.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/yorkie-team/coedit/pkg/cache"
	"github.com/yorkie-team/coedit/server/logging"
)

var (
	// ErrUnexpectedResponse is returned when the response from the webhook is not as expected.
	ErrUnexpectedResponse = errors.New("unexpected response from webhook")
)

// Options are the options for the webhook client.
type Options struct {
	Timeout         time.Duration
	MaxRetries      uint64
	BaseWaitTime    time.Duration
	MaxWaitInterval time.Duration
}

type cachedResponse[Res any] struct {
	status int
	res    *Res
}

// Client posts JSON requests to a webhook and decodes JSON responses.
// Successful responses are cached by request body.
type Client[Req any, Res any] struct {
	url        string
	httpClient *http.Client
	cache      *cache.LRUWithExpires[string, cachedResponse[Res]]
	options    Options
}

// NewClient creates a new instance of Client.
func NewClient[Req any, Res any](
	url string,
	cacheSize int,
	cacheTTL time.Duration,
	options Options,
) (*Client[Req, Res], error) {
	c, err := cache.NewLRUWithExpires[string, cachedResponse[Res]]("webhook", cacheSize, cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("create webhook cache: %w", err)
	}

	return &Client[Req, Res]{
		url:        url,
		httpClient: &http.Client{Timeout: options.Timeout},
		cache:      c,
		options:    options,
	}, nil
}

// Send sends the given request to the webhook and returns the decoded
// response with its HTTP status.
func (c *Client[Req, Res]) Send(ctx context.Context, req Req) (*Res, int, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal webhook request: %w", err)
	}

	cacheKey := string(body)
	if entry, ok := c.cache.Get(cacheKey); ok {
		return entry.res, entry.status, nil
	}

	var res Res
	var status int
	if err := WithExponentialBackoff(ctx, c.options.MaxRetries, c.options.BaseWaitTime, c.options.MaxWaitInterval,
		func() (int, error) {
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
			if err != nil {
				return 0, fmt.Errorf("create webhook request: %w", err)
			}
			httpReq.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(httpReq)
			if err != nil {
				return 0, fmt.Errorf("post to webhook: %w", err)
			}
			defer func() {
				if err := resp.Body.Close(); err != nil {
					logging.From(ctx).Error(err)
				}
			}()

			status = resp.StatusCode
			if resp.StatusCode != http.StatusOK &&
				resp.StatusCode != http.StatusUnauthorized &&
				resp.StatusCode != http.StatusForbidden {
				return resp.StatusCode, ErrUnexpectedStatusCode
			}

			if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
				return resp.StatusCode, ErrUnexpectedResponse
			}

			return resp.StatusCode, nil
		}); err != nil {
		return nil, status, err
	}

	if status == http.StatusOK {
		c.cache.Add(cacheKey, cachedResponse[Res]{status: status, res: &res})
	}

	return &res, status, nil
}
