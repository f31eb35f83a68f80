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
	"context"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/apiproblem/problem"
)

// fallbackDetail is the detail of problems built for malformed fault events.
const fallbackDetail = "An unexpected error occurred while dispatching the request."

// Outcome is the result of translating a fault.
// The host applies it to its own pipeline state.
type Outcome struct {
	// Response is the problem response, or nil when the fault is not actionable.
	Response *problem.Response

	// StopPropagation tells the host to skip its remaining default handling.
	StopPropagation bool
}

// Handled reports whether the outcome carries a response.
func (o Outcome) Handled() bool {
	return o.Response != nil
}

// Translator converts dispatch faults into problem responses.
// It is immutable after New and safe for concurrent use.
type Translator struct {
	cfg     *config
	counter metric.Int64Counter
}

// New creates a Translator.
//
// Example:
//
//	t := listener.New(
//	    listener.WithLogger(logger),
//	    listener.WithTypeBaseURL("https://api.example.com/problems"),
//	)
func New(opts ...Option) *Translator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	t := &Translator{cfg: cfg}
	t.counter = t.newCounter()

	return t
}

// OnRender is the pre-render hook.
// It returns without side effects when the event is not bound to an HTTP
// request, leaving rendering of other channels untouched. For HTTP requests
// rendering proceeds in the host and the hook does nothing either.
func (t *Translator) OnRender(ev Event) {
	if !IsHTTPRequest(requestOf(ev)) {
		return
	}
	// HTTP requests render through the host's normal view stage.
}

// OnDispatchError is the dispatch-error hook.
//
// For an actionable fault it installs the problem response on ev, stops
// propagation and returns the response. It returns nil and leaves ev
// untouched for non-actionable faults. If propagation is already stopped the
// currently installed response is returned unchanged.
func (t *Translator) OnDispatchError(ev Event) (resp *problem.Response) {
	if ev == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			t.logRecovered(nil, Fault{}, r)
			resp = nil
		}
	}()

	if ev.PropagationIsStopped() {
		return ev.Response()
	}

	req, _ := httpRequest(ev.Request())
	out := t.Translate(req, faultFrom(ev))
	if !out.Handled() {
		return nil
	}

	ev.SetResponse(out.Response)
	ev.StopPropagation(out.StopPropagation)

	return out.Response
}

// Translate converts f into an Outcome without touching any host state.
// req may be nil for non-HTTP channels. Translate never panics; a failure
// while building the problem yields a generic 500 problem.
func (t *Translator) Translate(req *http.Request, f Fault) (out Outcome) {
	if !f.Kind.Actionable() {
		return Outcome{}
	}
	req, _ = httpRequest(req)

	defer func() {
		if r := recover(); r != nil {
			out = t.fallback(req, f, r)
		}
	}()

	resp := problem.NewResponse(t.build(req, f), negotiate(req))
	t.observe(req, f, resp)

	return Outcome{Response: resp, StopPropagation: true}
}

// Respond translates f and writes the resulting problem to w.
// It reports whether a response was written. Write failures are logged.
func (t *Translator) Respond(w http.ResponseWriter, req *http.Request, f Fault) bool {
	out := t.Translate(req, f)
	if !out.Handled() {
		return false
	}

	if err := out.Response.Write(w); err != nil && t.cfg.logger != nil {
		ctx := context.Background()
		if req != nil {
			ctx = req.Context()
		}
		t.cfg.logger.ErrorContext(ctx, "failed to write problem response", "error", err)
	}

	return true
}

// build assembles the problem document for f.
func (t *Translator) build(req *http.Request, f Fault) *problem.Details {
	err, isErr := f.Payload.(error)
	if f.Kind == KindException && !isErr {
		return malformed(req)
	}

	var detail problem.Detail = problem.PlainMessage(f.Kind.Describe())
	if isErr {
		detail = problem.StructuredFault{Err: err, ExposeCauses: t.cfg.exposeCauses}
	}

	p := problem.New(t.status(f, err), detail)
	p.Type = t.problemType(err)
	if req != nil {
		p.Instance = req.URL.Path
	}
	if t.cfg.errorID {
		p.SetExtension("error_id", t.cfg.errorIDGenerator())
	}

	if isErr {
		var detailed problem.ErrorDetails
		if errors.As(err, &detailed) {
			p.SetExtension("errors", detailed.Details())
		}
		var coded problem.ErrorCode
		if errors.As(err, &coded) {
			p.SetExtension("code", coded.Code())
		}
	}

	return p
}

// status resolves the status of f: the payload's declared status, then the
// host-supplied status, then the per-kind table.
func (t *Translator) status(f Fault, err error) int {
	if status, ok := problem.StatusOf(err); ok {
		return status
	}
	if problem.ValidStatus(f.Status) {
		return f.Status
	}
	if status, ok := t.cfg.statuses[f.Kind]; ok {
		return status
	}
	return f.Kind.DefaultStatus()
}

// problemType builds the type URI from an ErrorCode, defaulting to about:blank.
func (t *Translator) problemType(err error) string {
	var coded problem.ErrorCode
	if err == nil || !errors.As(err, &coded) || coded.Code() == "" {
		return problem.DefaultType
	}
	if t.cfg.typeBaseURL != "" {
		return t.cfg.typeBaseURL + "/" + coded.Code()
	}
	return coded.Code()
}

// fallback is used when building the problem for f panicked.
func (t *Translator) fallback(req *http.Request, f Fault, recovered any) Outcome {
	t.logRecovered(req, f, recovered)

	return Outcome{
		Response:        problem.NewResponse(malformed(req), negotiate(req)),
		StopPropagation: true,
	}
}

func malformed(req *http.Request) *problem.Details {
	p := problem.New(http.StatusInternalServerError, problem.PlainMessage(fallbackDetail))
	if req != nil {
		p.Instance = req.URL.Path
	}
	return p
}

func negotiate(req *http.Request) problem.Format {
	if req == nil {
		return problem.FormatJSON
	}
	return problem.Negotiate(req.Header.Get("Accept"))
}

// requestOf returns the request bound to ev, or nil when ev cannot provide one.
func requestOf(ev Event) (req any) {
	if ev == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			req = nil
		}
	}()
	return ev.Request()
}
