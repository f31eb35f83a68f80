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

package listener

import (
	"net/http"

	"rivaas.dev/apiproblem/problem"
)

// Event parameter names read by the translator.
const (
	// ParamException holds the fault payload, usually an error.
	ParamException = "exception"
	// ParamStatus holds an optional host-supplied status code (int).
	ParamStatus = "status"
)

// Event is the dispatch event a host pipeline hands to the hooks.
// Implementations are request-scoped.
type Event interface {
	// Request returns the request bound to the event.
	// Only a well-formed *http.Request is treated as an HTTP request.
	Request() any

	// Error returns the fault kind recorded by the host.
	Error() FaultKind

	// Param returns a named event parameter, or nil.
	Param(name string) any

	// Response returns the response currently installed on the event.
	Response() *problem.Response

	// SetResponse installs a response on the event.
	SetResponse(resp *problem.Response)

	// StopPropagation tells the host to skip remaining processing of the event.
	StopPropagation(stop bool)

	// PropagationIsStopped reports whether StopPropagation(true) was called.
	PropagationIsStopped() bool
}

// IsHTTPRequest reports whether v is a well-formed HTTP request.
func IsHTTPRequest(v any) bool {
	_, ok := httpRequest(v)
	return ok
}

func httpRequest(v any) (*http.Request, bool) {
	req, ok := v.(*http.Request)
	if !ok || req == nil || req.URL == nil || req.Header == nil {
		return nil, false
	}
	return req, true
}

// faultFrom reads the fault recorded on ev.
func faultFrom(ev Event) Fault {
	f := Fault{
		Kind:    ev.Error(),
		Payload: ev.Param(ParamException),
	}
	if status, ok := ev.Param(ParamStatus).(int); ok {
		f.Status = status
	}
	return f
}

// DispatchEvent is a ready-made Event for hosts without their own event type.
// It is not safe for concurrent use.
//
// Example:
//
//	ev := listener.NewDispatchEvent(req)
//	ev.SetError(listener.KindException)
//	ev.SetParam(listener.ParamException, err)
//	if resp := translator.OnDispatchError(ev); resp != nil {
//		_ = resp.Write(w)
//	}
type DispatchEvent struct {
	request  any
	kind     FaultKind
	params   map[string]any
	response *problem.Response
	stopped  bool
}

// NewDispatchEvent creates an event bound to request.
func NewDispatchEvent(request any) *DispatchEvent {
	return &DispatchEvent{request: request}
}

// Request returns the bound request.
func (e *DispatchEvent) Request() any { return e.request }

// SetRequest binds a request.
func (e *DispatchEvent) SetRequest(request any) { e.request = request }

// Error returns the recorded fault kind.
func (e *DispatchEvent) Error() FaultKind { return e.kind }

// SetError records a fault kind.
func (e *DispatchEvent) SetError(kind FaultKind) { e.kind = kind }

// Param returns a named parameter, or nil.
func (e *DispatchEvent) Param(name string) any { return e.params[name] }

// SetParam sets a named parameter.
func (e *DispatchEvent) SetParam(name string, value any) {
	if e.params == nil {
		e.params = make(map[string]any)
	}
	e.params[name] = value
}

// Response returns the installed response.
func (e *DispatchEvent) Response() *problem.Response { return e.response }

// SetResponse installs a response.
func (e *DispatchEvent) SetResponse(resp *problem.Response) { e.response = resp }

// StopPropagation sets the propagation flag.
func (e *DispatchEvent) StopPropagation(stop bool) { e.stopped = stop }

// PropagationIsStopped reports the propagation flag.
func (e *DispatchEvent) PropagationIsStopped() bool { return e.stopped }
