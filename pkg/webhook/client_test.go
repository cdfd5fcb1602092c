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

package webhook_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/coedit/pkg/webhook"
)

type tokenRequest struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	Allowed bool   `json:"allowed"`
	UserID  string `json:"userId"`
}

var testOptions = webhook.Options{
	Timeout:         time.Second,
	MaxRetries:      3,
	BaseWaitTime:    time.Millisecond,
	MaxWaitInterval: 5 * time.Millisecond,
}

func TestClient(t *testing.T) {
	t.Run("send and cache test", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			var req tokenRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.NoError(t, json.NewEncoder(w).Encode(tokenResponse{Allowed: true, UserID: "u-" + req.Token}))
		}))
		defer srv.Close()

		cli, err := webhook.NewClient[tokenRequest, tokenResponse](srv.URL, 10, time.Minute, testOptions)
		require.NoError(t, err)

		res, status, err := cli.Send(context.Background(), tokenRequest{Token: "abc"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "u-abc", res.UserID)

		_, _, err = cli.Send(context.Background(), tokenRequest{Token: "abc"})
		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("retry on server error test", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			assert.NoError(t, json.NewEncoder(w).Encode(tokenResponse{Allowed: true}))
		}))
		defer srv.Close()

		cli, err := webhook.NewClient[tokenRequest, tokenResponse](srv.URL, 10, time.Minute, testOptions)
		require.NoError(t, err)

		res, _, err := cli.Send(context.Background(), tokenRequest{Token: "abc"})
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("give up after max retries test", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		cli, err := webhook.NewClient[tokenRequest, tokenResponse](srv.URL, 10, time.Minute, testOptions)
		require.NoError(t, err)

		_, _, err = cli.Send(context.Background(), tokenRequest{Token: "abc"})
		assert.ErrorIs(t, err, webhook.ErrWebhookTimeout)
	})

	t.Run("unexpected status test", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		cli, err := webhook.NewClient[tokenRequest, tokenResponse](srv.URL, 10, time.Minute, testOptions)
		require.NoError(t, err)

		_, status, err := cli.Send(context.Background(), tokenRequest{Token: "abc"})
		assert.ErrorIs(t, err, webhook.ErrUnexpectedStatusCode)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unauthorized is not cached test", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusUnauthorized)
			assert.NoError(t, json.NewEncoder(w).Encode(tokenResponse{Allowed: false}))
		}))
		defer srv.Close()

		cli, err := webhook.NewClient[tokenRequest, tokenResponse](srv.URL, 10, time.Minute, testOptions)
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			res, status, err := cli.Send(context.Background(), tokenRequest{Token: "bad"})
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.False(t, res.Allowed)
		}
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}
