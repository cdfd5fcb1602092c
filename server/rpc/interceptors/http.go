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

// Package interceptors provides the middlewares of the HTTP handlers.
package interceptors

import (
	"net/http"
	"strings"
	"time"

	"github.com/felixge/httpsnoop"

	"github.com/yorkie-team/coedit/server/logging"
	"github.com/yorkie-team/coedit/server/profiling/prometheus"
)

// HTTPInterceptor attaches a request logger to every request, logs the
// result and records the request metrics.
type HTTPInterceptor struct {
	requestIDs *requestIDs
	metrics    *prometheus.Metrics
}

// NewHTTPInterceptor creates a new instance of HTTPInterceptor.
func NewHTTPInterceptor(metrics *prometheus.Metrics) *HTTPInterceptor {
	return &HTTPInterceptor{
		requestIDs: newRequestIDs("r"),
		metrics:    metrics,
	}
}

// Middleware wraps the given handler.
func (i *HTTPInterceptor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logging.New(i.requestIDs.next())
		r = r.WithContext(logging.With(r.Context(), reqLogger))

		m := httpsnoop.CaptureMetrics(next, w, r)

		// upgraded connections live as long as the websocket, their
		// duration says nothing about the server.
		if isUpgrade(r) {
			reqLogger.Debugf("HTTP: %s %s upgraded, closed after %s", r.Method, r.URL.Path, m.Duration)
			return
		}

		i.metrics.ObserveHTTPRequest(r.Method, m.Code, m.Duration.Seconds())
		logRequest(reqLogger, r, m.Code, m.Duration)
	})
}

func logRequest(logger logging.Logger, r *http.Request, code int, duration time.Duration) {
	template := "HTTP: %s %s %d %s"
	switch {
	case code >= http.StatusInternalServerError:
		logger.Errorf(template, r.Method, r.URL.Path, code, duration)
	case code >= http.StatusBadRequest:
		logger.Infof(template, r.Method, r.URL.Path, code, duration)
	default:
		logger.Debugf(template, r.Method, r.URL.Path, code, duration)
	}
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
