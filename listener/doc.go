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

// Package listener turns dispatch faults into problem responses.
//
// A host pipeline calls two hooks on a Translator:
//
//   - OnRender before its view-rendering stage. Events bound to a non-HTTP
//     request (a CLI invocation, a queue message) return immediately.
//   - OnDispatchError when dispatch recorded a fault. Actionable faults are
//     converted into a problem.Response, installed on the event, and event
//     propagation is stopped.
//
// Hosts that prefer not to hand out a mutable event use Translate, which
// returns an Outcome the host applies itself:
//
//	t := listener.New(listener.WithLogger(logger))
//
//	out := t.Translate(r, listener.Fault{Kind: listener.KindException, Payload: err})
//	if out.Handled() {
//		_ = out.Response.Write(w)
//		return
//	}
//
// # Status resolution
//
// The status of a problem is taken from the first of:
//
//  1. the payload error's HTTPStatus (problem.ErrorType), when in 100-599
//  2. the host-supplied Fault.Status, when in 100-599
//  3. a WithStatus override for the fault kind
//  4. FaultKind.DefaultStatus
//
// Default statuses per kind:
//
//	exception-thrown     500
//	route-not-found      404
//	method-not-allowed   405
//	handler-not-found    404
//	controller-invalid   500
//	missing-param        400
//	generic              500
//
// # Configuration
//
// Options can also come from a file. LoadConfig accepts YAML, TOML and JSON:
//
//	cfg, err := listener.LoadConfig("problems.yaml")
//	if err != nil {
//		return err
//	}
//	t := listener.New(append(cfg.Options(), listener.WithLogger(logger))...)
//
// A Translator never panics and never returns an error: if the fault is
// malformed or building the problem fails, a generic 500 problem is produced.
package listener
