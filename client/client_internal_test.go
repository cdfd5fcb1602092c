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

package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointURL(t *testing.T) {
	t.Run("endpoint url test", func(t *testing.T) {
		for _, tc := range []struct {
			addr string
			path string
			ws   bool
			want string
		}{
			{"localhost:8080", webSocketPath, true, "ws://localhost:8080/ws"},
			{"localhost:8080", documentsPath, false, "http://localhost:8080/api/documents"},
			{"https://coedit.example.com/", webSocketPath, true, "wss://coedit.example.com/ws"},
			{"ws://127.0.0.1:8080", documentsPath, false, "http://127.0.0.1:8080/api/documents"},
		} {
			got, err := endpointURL(tc.addr, tc.path, tc.ws)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		}

		_, err := endpointURL("ftp://localhost", webSocketPath, true)
		assert.Error(t, err)
	})
}
