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

import "time"

// Selection is a range of selected characters.
type Selection struct {
	Start int `json:"start" validate:"min=0"`
	End   int `json:"end" validate:"min=0,gtefield=Start"`
}

// Cursor is the caret position of a collaborator with an optional
// selection.
type Cursor struct {
	Position  int        `json:"position" validate:"min=0"`
	Selection *Selection `json:"selection,omitempty"`
}

// DeepCopy returns a copy of this cursor.
func (c *Cursor) DeepCopy() *Cursor {
	if c == nil {
		return nil
	}

	clone := &Cursor{Position: c.Position}
	if c.Selection != nil {
		sel := *c.Selection
		clone.Selection = &sel
	}
	return clone
}

// Collaborator is a user currently tracked in a document.
type Collaborator struct {
	User

	// Cursor is the last reported cursor of the collaborator.
	Cursor *Cursor `json:"cursor,omitempty"`

	// LastSeen is the time of the latest join, cursor move, or edit.
	LastSeen time.Time `json:"lastSeen"`
}

// DeepCopy returns a copy of this collaborator.
func (c *Collaborator) DeepCopy() *Collaborator {
	if c == nil {
		return nil
	}

	return &Collaborator{
		User:     c.User,
		Cursor:   c.Cursor.DeepCopy(),
		LastSeen: c.LastSeen,
	}
}
