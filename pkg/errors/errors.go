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

package errors

import (
	"errors"
)

// StatusError is an error that carries a status and an optional
// application-specific code.
type StatusError interface {
	error
	Status() StatusCode
	Code() string
	WithCode(code string) StatusError
}

type statusError struct {
	err    error
	status StatusCode
	code   string
}

func (e statusError) Error() string {
	return e.err.Error()
}

func (e statusError) Status() StatusCode {
	return e.status
}

// Code returns the custom code, or the status string when none is set.
func (e statusError) Code() string {
	if e.code == "" {
		return e.status.String()
	}
	return e.code
}

func (e statusError) Unwrap() error {
	return e.err
}

func (e statusError) WithCode(code string) StatusError {
	return statusError{err: e.err, status: e.status, code: code}
}

// Wrap attaches the given status to err.
func Wrap(err error, status StatusCode) StatusError {
	return statusError{err: err, status: status}
}

// NotFound creates a new "not found" error.
func NotFound(message string) StatusError {
	return Wrap(errors.New(message), ErrCodeNotFound)
}

// InvalidArgument creates a new "invalid argument" error.
func InvalidArgument(message string) StatusError {
	return Wrap(errors.New(message), ErrCodeInvalidArgument)
}

// AlreadyExists creates a new "already exists" error.
func AlreadyExists(message string) StatusError {
	return Wrap(errors.New(message), ErrCodeAlreadyExists)
}

// PermissionDenied creates a new "permission denied" error.
func PermissionDenied(message string) StatusError {
	return Wrap(errors.New(message), ErrCodePermissionDenied)
}

// ResourceExhausted creates a new "resource exhausted" error.
func ResourceExhausted(message string) StatusError {
	return Wrap(errors.New(message), ErrCodeResourceExhausted)
}

// FailedPrecond creates a new "failed precondition" error.
func FailedPrecond(message string) StatusError {
	return Wrap(errors.New(message), ErrCodeFailedPrecondition)
}

// Unauthenticated creates a new "unauthenticated" error.
func Unauthenticated(message string) StatusError {
	return Wrap(errors.New(message), ErrCodeUnauthenticated)
}

// Internal creates a new "internal" error.
func Internal(message string) StatusError {
	return Wrap(errors.New(message), ErrCodeInternal)
}

// Unavailable creates a new "unavailable" error.
func Unavailable(message string) StatusError {
	return Wrap(errors.New(message), ErrCodeUnavailable)
}

// StatusOf returns the status of the first StatusError in err's chain, or 0.
func StatusOf(err error) StatusCode {
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status()
	}
	return 0
}

// CodeOf returns the code of the first StatusError in err's chain. Errors
// without a status are reported as internal.
func CodeOf(err error) string {
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code()
	}
	return ErrCodeInternal.String()
}

// IsStatus checks if the given error has the specified status.
func IsStatus(err error, status StatusCode) bool {
	return StatusOf(err) == status
}

// IsClientError checks if the error was caused by the client.
func IsClientError(err error) bool {
	return StatusOf(err).IsClientError()
}

// IsServerError checks if the error was caused by the server.
func IsServerError(err error) bool {
	return StatusOf(err).IsServerError()
}
