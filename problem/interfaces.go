// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package problem

import (
	"errors"
	"net/http"
)

// ErrorType allows errors to declare their own HTTP status code.
//
// Example:
//
//	type ConflictError struct{ ID string }
//
//	func (e ConflictError) Error() string   { return "conflict on " + e.ID }
//	func (e ConflictError) HTTPStatus() int { return http.StatusConflict }
type ErrorType interface {
	error
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrorDetails allows errors to provide additional structured information.
// The value is rendered as the "errors" extension member.
type ErrorDetails interface {
	error
	// Details returns structured information about the error.
	Details() any
}

// ErrorCode allows errors to provide a machine-readable code.
// The code is rendered as the "code" extension member and, when a base URL
// is configured, becomes the last segment of the problem type URI.
type ErrorCode interface {
	error
	// Code returns a machine-readable error code.
	Code() string
}

// ValidStatus reports whether status is usable as an HTTP status code.
func ValidStatus(status int) bool {
	return status >= 100 && status <= 599
}

// StatusOf returns the status declared by err through ErrorType.
// The second result is false when err declares nothing or the declared
// status is outside 100-599.
func StatusOf(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	var typed ErrorType
	if !errors.As(err, &typed) {
		return 0, false
	}

	status := typed.HTTPStatus()
	if !ValidStatus(status) {
		return 0, false
	}

	return status, true
}

// WithStatus wraps an error with an explicit HTTP status code.
// The wrapped error implements ErrorType.
//
// If err is nil, the status text for the given status code is used as the error message.
//
// Example:
//
//	return problem.WithStatus(err, http.StatusNotFound)
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

// statusError wraps an error with an explicit status code.
type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}
	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) HTTPStatus() int {
	return e.status
}
