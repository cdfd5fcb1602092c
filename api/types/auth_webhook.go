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

package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidWebhookRequest is returned when the given webhook request is not valid.
	ErrInvalidWebhookRequest = errors.New("invalid authorization webhook request")

	// ErrInvalidWebhookResponse is returned when the given webhook response is not valid.
	ErrInvalidWebhookResponse = errors.New("invalid authorization webhook response")
)

// AuthWebhookRequest is sent to the auth webhook to resolve the identity
// behind a token.
type AuthWebhookRequest struct {
	Token string `json:"token"`
}

// NewAuthWebhookRequest decodes an AuthWebhookRequest.
func NewAuthWebhookRequest(reader io.Reader) (*AuthWebhookRequest, error) {
	req := &AuthWebhookRequest{}
	if err := json.NewDecoder(reader).Decode(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrInvalidWebhookRequest)
	}

	return req, nil
}

// AuthWebhookResponse is the answer of the auth webhook. User is set when
// the token is allowed.
type AuthWebhookResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
	User    *User  `json:"user,omitempty"`
}

// NewAuthWebhookResponse decodes an AuthWebhookResponse.
func NewAuthWebhookResponse(reader io.Reader) (*AuthWebhookResponse, error) {
	resp := &AuthWebhookResponse{}
	if err := json.NewDecoder(reader).Decode(resp); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrInvalidWebhookResponse)
	}

	return resp, nil
}

// Write writes this response to the given writer.
func (r *AuthWebhookResponse) Write(writer io.Writer) (int, error) {
	resBody, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("marshal response: %w", err)
	}

	count, err := writer.Write(resBody)
	if err != nil {
		return 0, fmt.Errorf("write response: %w", err)
	}

	return count, nil
}
