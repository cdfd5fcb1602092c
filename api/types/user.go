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

// User is the identity of a person editing a document. It is supplied by
// the surrounding auth system or by the client itself.
type User struct {
	// ID is the unique ID of the user. It is also the collaborator id.
	ID string `json:"id" validate:"required,identifier,max=128"`

	// Name is the display name of the user.
	Name string `json:"name" validate:"required,max=256"`

	// Email is the email address of the user.
	Email string `json:"email" validate:"omitempty,email"`

	// Avatar is an optional URL of the user's picture.
	Avatar string `json:"avatar,omitempty" validate:"omitempty,max=2048"`
}
