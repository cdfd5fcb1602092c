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

package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/internal/validation"
	"github.com/yorkie-team/coedit/pkg/webhook"
)

// WebhookProvider resolves identities with the auth webhook.
type WebhookProvider struct {
	client *webhook.Client[types.AuthWebhookRequest, types.AuthWebhookResponse]
}

// NewWebhookProvider creates a new WebhookProvider.
func NewWebhookProvider(
	client *webhook.Client[types.AuthWebhookRequest, types.AuthWebhookResponse],
) *WebhookProvider {
	return &WebhookProvider{client: client}
}

// Authenticate asks the webhook for the user of the given token.
func (p *WebhookProvider) Authenticate(ctx context.Context, token string) (*types.User, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token: %w", ErrUnauthenticated)
	}

	res, status, err := p.client.Send(ctx, types.AuthWebhookRequest{Token: token})
	if err != nil {
		return nil, fmt.Errorf("send to webhook: %w", err)
	}

	if status == http.StatusOK && res.Allowed {
		if res.User == nil {
			return nil, fmt.Errorf("allowed without user: %w", webhook.ErrUnexpectedResponse)
		}
		if err := validation.ValidateStruct(res.User); err != nil {
			return nil, fmt.Errorf("invalid user: %s: %w", err, webhook.ErrUnexpectedResponse)
		}
		return res.User, nil
	}
	if status == http.StatusForbidden && !res.Allowed {
		return nil, fmt.Errorf("%s: %w", res.Reason, ErrPermissionDenied)
	}
	if status == http.StatusUnauthorized && !res.Allowed {
		return nil, fmt.Errorf("%s: %w", res.Reason, ErrUnauthenticated)
	}

	return nil, fmt.Errorf("%d: %w", status, webhook.ErrUnexpectedResponse)
}
