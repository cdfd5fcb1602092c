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


package interceptors

import (
	"strconv"
	"sync/atomic"
)

// requestIDs issues the names of the request loggers, e.g. "r1", "r2".
// Websocket connections keep the name of their upgrade request.
type requestIDs struct {
	prefix string
	last   atomic.Int64
}

func newRequestIDs(prefix string) *requestIDs {
	return &requestIDs{prefix: prefix}
}

func (r *requestIDs) next() string {
	return r.prefix + strconv.FormatInt(r.last.Add(1), 10)
}
