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

// Package auth resolves the identity of the user behind a websocket
// connection.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/pkg/errors"
	"github.com/yorkie-team/coedit/server/backend"
)

var (
	// ErrUnauthenticated is returned when the token is missing or invalid.
	ErrUnauthenticated = errors.Unauthenticated("unauthenticated").WithCode("ErrUnauthenticated")

	// ErrPermissionDenied is returned when the user is not allowed to
	// connect.
	ErrPermissionDenied = errors.PermissionDenied("permission denied").WithCode("ErrPermissionDenied")
)

// tokenQueryParam is the query parameter carrying the token for clients that
// cannot set headers on the websocket handshake.
const tokenQueryParam = "token"

// Provider resolves the user of a token.
type Provider interface {
	Authenticate(ctx context.Context, token string) (*types.User, error)
}

// NewProvider returns the identity provider configured in the backend. The
// auth webhook takes precedence over the JWT secret. It returns nil when
// neither is configured, in which case identities in messages are trusted.
func NewProvider(be *backend.Backend) Provider {
	if be.AuthWebhookClient != nil {
		return NewWebhookProvider(be.AuthWebhookClient)
	}
	if be.Config.AuthJWTSecret != "" {
		return NewTokenManager(be.Config.AuthJWTSecret, 0)
	}
	return nil
}

// TokenFromRequest extracts the token from the Authorization header or the
// token query parameter.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return r.URL.Query().Get(tokenQueryParam)
}

// StatusCode returns the HTTP status of the given authentication error.
func StatusCode(err error) int {
	switch errors.StatusOf(err) {
	case errors.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case errors.ErrCodePermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
