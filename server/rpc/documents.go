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

package rpc

import (
	"encoding/json"
	"net/http"

	"github.com/yorkie-team/coedit/server/logging"
)

// listDocuments replies with the summaries of the live documents.
func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	resp, err := json.Marshal(s.be.Coordinator.Documents())
	if err != nil {
		logging.From(r.Context()).Error(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		logging.From(r.Context()).Debugf("write documents: %v", err)
	}
}
