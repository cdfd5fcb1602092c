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

// Package ot stamps and applies text operations.
//
// The engine accepts operations in arrival order without reconciling them
// against concurrent edits, and every edit targets position 0 of the
// content. Lengths are counted in characters.
package ot

import (
	"time"

	"github.com/yorkie-team/coedit/api/types"
)

// Stamp returns a copy of the operation accepted at the given time on top
// of currentVersion. Negative lengths are normalized to 0.
func Stamp(op types.Operation, currentVersion int64, now time.Time) types.Operation {
	stamped := op
	stamped.Version = currentVersion + 1
	stamped.Timestamp = now
	if stamped.Length < 0 {
		stamped.Length = 0
	}
	return stamped
}

// Apply returns the content after applying the operation. It never fails:
// deletes beyond the end of the content are truncated.
func Apply(content string, op types.Operation) string {
	switch op.Type {
	case types.Insert:
		return op.Content + content
	case types.Delete:
		if op.Length <= 0 {
			return content
		}

		runes := []rune(content)
		if op.Length >= len(runes) {
			return ""
		}
		return string(runes[op.Length:])
	default:
		return content
	}
}
