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

package logging

import (
	"context"
	"errors"

	pkgerrors "github.com/yorkie-team/coedit/pkg/errors"
)

// LogMessageError logs the failure of an inbound message with a level chosen
// by the status of the error. Client mistakes are logged quietly, server
// failures loudly.
func LogMessageError(logger Logger, msgType string, err error) {
	if err == nil {
		return
	}

	if errors.Is(err, context.Canceled) {
		logger.Debugf("MSG : %q => %q", msgType, err)
		return
	}

	status := pkgerrors.StatusOf(err)
	switch {
	case status == pkgerrors.ErrCodeUnauthenticated || status == pkgerrors.ErrCodePermissionDenied:
		logger.Warnf("MSG : %q => %q", msgType, err)
	case status.IsClientError():
		logger.Infof("MSG : %q => %q", msgType, err)
	case status.IsServerError():
		logger.Errorf("MSG : %q => %q", msgType, err)
	default:
		logger.Warnf("MSG : %q => %q", msgType, err)
	}
}
