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

package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/yorkie-team/coedit/pkg/errors"
)

func TestStatusError(t *testing.T) {
	t.Run("status string test", func(t *testing.T) {
		assert.Equal(t, "invalid_argument", pkgerrors.ErrCodeInvalidArgument.String())
		assert.Equal(t, "resource_exhausted", pkgerrors.ErrCodeResourceExhausted.String())
		assert.Equal(t, "unauthenticated", pkgerrors.ErrCodeUnauthenticated.String())
		assert.Equal(t, "code_42", pkgerrors.StatusCode(42).String())
	})

	t.Run("constructors test", func(t *testing.T) {
		tests := []struct {
			err    pkgerrors.StatusError
			status pkgerrors.StatusCode
		}{
			{pkgerrors.NotFound("nf"), pkgerrors.ErrCodeNotFound},
			{pkgerrors.InvalidArgument("ia"), pkgerrors.ErrCodeInvalidArgument},
			{pkgerrors.AlreadyExists("ae"), pkgerrors.ErrCodeAlreadyExists},
			{pkgerrors.PermissionDenied("pd"), pkgerrors.ErrCodePermissionDenied},
			{pkgerrors.ResourceExhausted("re"), pkgerrors.ErrCodeResourceExhausted},
			{pkgerrors.FailedPrecond("fp"), pkgerrors.ErrCodeFailedPrecondition},
			{pkgerrors.Unauthenticated("ua"), pkgerrors.ErrCodeUnauthenticated},
			{pkgerrors.Internal("in"), pkgerrors.ErrCodeInternal},
			{pkgerrors.Unavailable("un"), pkgerrors.ErrCodeUnavailable},
		}
		for _, tc := range tests {
			assert.Equal(t, tc.status, tc.err.Status())
			assert.Equal(t, tc.status.String(), tc.err.Code())
		}
	})

	t.Run("wrapped status test", func(t *testing.T) {
		errFull := pkgerrors.ResourceExhausted("document is full").WithCode("ErrDocumentFull")
		wrapped := fmt.Errorf("join doc-1: %w", errFull)

		assert.True(t, pkgerrors.IsStatus(wrapped, pkgerrors.ErrCodeResourceExhausted))
		assert.True(t, pkgerrors.IsClientError(wrapped))
		assert.False(t, pkgerrors.IsServerError(wrapped))
		assert.Equal(t, "ErrDocumentFull", pkgerrors.CodeOf(wrapped))
		assert.True(t, errors.Is(wrapped, errFull))
		assert.Equal(t, "join doc-1: document is full", wrapped.Error())
	})

	t.Run("plain error test", func(t *testing.T) {
		err := errors.New("boom")
		assert.Equal(t, pkgerrors.StatusCode(0), pkgerrors.StatusOf(err))
		assert.Equal(t, "internal", pkgerrors.CodeOf(err))
		assert.Equal(t, pkgerrors.StatusCode(0), pkgerrors.StatusOf(nil))
	})
}
