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

// Package errors provides status errors shared by the server and the
// protocol layer. The string form of a status is what clients receive in
// an "error" message.
package errors

import "fmt"

// StatusCode classifies an error.
type StatusCode int

const (
	// ErrCodeInvalidArgument is returned when a message is malformed
	// regardless of the state of the document.
	ErrCodeInvalidArgument StatusCode = 3

	// ErrCodeNotFound is returned when a referenced document or
	// collaborator does not exist.
	ErrCodeNotFound StatusCode = 5

	// ErrCodeAlreadyExists is returned when a resource already exists.
	ErrCodeAlreadyExists StatusCode = 6

	// ErrCodePermissionDenied is returned when the caller may not perform
	// the operation.
	ErrCodePermissionDenied StatusCode = 7

	// ErrCodeResourceExhausted is returned when a limit is reached, such as
	// the number of collaborators of a document.
	ErrCodeResourceExhausted StatusCode = 8

	// ErrCodeFailedPrecondition is returned when the server is not in a
	// state required by the operation.
	ErrCodeFailedPrecondition StatusCode = 9

	// ErrCodeInternal is reserved for broken invariants.
	ErrCodeInternal StatusCode = 13

	// ErrCodeUnavailable is returned when a dependency is temporarily
	// unavailable.
	ErrCodeUnavailable StatusCode = 14

	// ErrCodeUnauthenticated is returned when the connection carries no
	// valid credentials.
	ErrCodeUnauthenticated StatusCode = 16
)

// String returns the wire representation of the status.
func (c StatusCode) String() string {
	switch c {
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeAlreadyExists:
		return "already_exists"
	case ErrCodePermissionDenied:
		return "permission_denied"
	case ErrCodeResourceExhausted:
		return "resource_exhausted"
	case ErrCodeFailedPrecondition:
		return "failed_precondition"
	case ErrCodeInternal:
		return "internal"
	case ErrCodeUnavailable:
		return "unavailable"
	case ErrCodeUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("code_%d", int(c))
	}
}

// IsClientError returns true if the status is caused by the client.
func (c StatusCode) IsClientError() bool {
	switch c {
	case ErrCodeInvalidArgument, ErrCodeNotFound, ErrCodeAlreadyExists,
		ErrCodePermissionDenied, ErrCodeResourceExhausted, ErrCodeFailedPrecondition,
		ErrCodeUnauthenticated:
		return true
	default:
		return false
	}
}

// IsServerError returns true if the status is caused by the server.
func (c StatusCode) IsServerError() bool {
	return c == ErrCodeInternal || c == ErrCodeUnavailable
}
