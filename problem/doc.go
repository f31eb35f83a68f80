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

// Package problem provides the RFC 9457 (formerly RFC 7807) Problem Details
// model and its wire representations.
//
// The package is independent of any HTTP framework. It defines:
//   - Details: the problem document (type, title, status, detail, instance, extensions)
//   - Detail: a closed variant holding either a StructuredFault (the original
//     error value) or a PlainMessage
//   - Response: a negotiated problem response ready to be written
//
// Two representations are supported:
//   - application/problem+json (default)
//   - application/problem+xml
//
// # Quick Start
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		if err := someOperation(); err != nil {
//			p := problem.New(http.StatusBadGateway, problem.StructuredFault{Err: err})
//			resp := problem.NewResponse(p, problem.Negotiate(r.Header.Get("Accept")))
//			_ = resp.Write(w)
//			return
//		}
//	}
//
// # Error Interfaces
//
// Domain errors can implement optional interfaces to control how they are
// rendered:
//
//   - ErrorType: declare the HTTP status code
//   - ErrorDetails: provide structured details (rendered as the "errors" member)
//   - ErrorCode: provide a machine-readable code (rendered as "code" and used
//     to build the problem type URI)
//
// Example error with all interfaces:
//
//	type ValidationError struct {
//		Message string
//		Fields  []FieldError
//	}
//
//	func (e ValidationError) Error() string   { return e.Message }
//	func (e ValidationError) HTTPStatus() int { return http.StatusBadRequest }
//	func (e ValidationError) Details() any    { return e.Fields }
//	func (e ValidationError) Code() string    { return "validation_error" }
package problem
