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

//go:build !integration

package listener

import (
	"net/http"
	"net/http/httptest"
)

// domainError mimics an exception carrying a numeric code.
type domainError struct {
	message string
	code    int
}

func (e *domainError) Error() string {
	return e.message
}

func (e *domainError) HTTPStatus() int {
	return e.code
}

type validationError struct {
	message string
	fields  map[string]string
}

func (e *validationError) Error() string {
	return e.message
}

func (e *validationError) Code() string {
	return "validation_error"
}

func (e *validationError) Details() any {
	return e.fields
}

func (e *validationError) HTTPStatus() int {
	return http.StatusUnprocessableEntity
}

// explodingError panics when its code is read.
type explodingError struct{}

func (explodingError) Error() string {
	return "exploding"
}

func (explodingError) Code() string {
	panic("code lookup failed")
}

// cliRequest stands in for a console invocation.
type cliRequest struct {
	args []string
}

func newTestTranslator(opts ...Option) *Translator {
	base := []Option{
		WithoutLogging(),
		WithErrorIDGenerator(func() string { return "err-test" }),
	}
	return New(append(base, opts...)...)
}

func newRequest(accept string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/users/42", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return req
}

func exceptionEvent(req any, payload any) *DispatchEvent {
	ev := NewDispatchEvent(req)
	ev.SetError(KindException)
	ev.SetParam(ParamException, payload)
	return ev
}
