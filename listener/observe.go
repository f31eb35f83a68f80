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
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/apiproblem/problem"
)

const (
	// CounterName is the name of the translated-problem counter.
	CounterName = "apiproblem.problems"

	attrKind   = "problem.kind"
	attrStatus = "http.response.status_code"

	fieldTraceID = "trace_id"
	fieldSpanID  = "span_id"
)

// newCounter creates the problem counter when a meter is configured.
func (t *Translator) newCounter() metric.Int64Counter {
	if t.cfg.meter == nil {
		return nil
	}

	counter, err := t.cfg.meter.Int64Counter(CounterName,
		metric.WithDescription("Dispatch faults translated into problem responses"),
		metric.WithUnit("{problem}"),
	)
	if err != nil {
		if t.cfg.logger != nil {
			t.cfg.logger.Warn("failed to create problem counter", "error", err)
		}
		return nil
	}

	return counter
}

// observe logs the translated fault, annotates the active span and counts it.
func (t *Translator) observe(req *http.Request, f Fault, resp *problem.Response) {
	ctx := context.Background()
	if req != nil {
		ctx = req.Context()
	}
	err, _ := f.Payload.(error)

	t.logFault(ctx, req, f.Kind, resp.Status, err)
	annotateSpan(ctx, f.Kind, resp.Status, err)

	if t.counter != nil {
		t.counter.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrKind, f.Kind.String()),
			attribute.Int(attrStatus, resp.Status),
		))
	}
}

func (t *Translator) logFault(ctx context.Context, req *http.Request, kind FaultKind, status int, err error) {
	logger := t.cfg.logger
	if logger == nil {
		return
	}

	level := slog.LevelInfo
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("kind", kind.String()),
		slog.Int("status", status),
	}
	if req != nil {
		attrs = append(attrs,
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
		)
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	attrs = append(attrs, traceAttrs(ctx)...)

	logger.LogAttrs(ctx, level, "dispatch fault translated", attrs...)
}

// logRecovered records a panic caught while translating. It never panics itself.
func (t *Translator) logRecovered(req *http.Request, f Fault, recovered any) {
	logger := t.cfg.logger
	if logger == nil {
		return
	}
	defer func() { _ = recover() }()

	ctx := context.Background()
	attrs := []slog.Attr{
		slog.String("kind", f.Kind.String()),
		slog.String("panic", fmt.Sprint(recovered)),
	}
	if req != nil {
		ctx = req.Context()
		attrs = append(attrs, slog.String("path", req.URL.Path))
	}
	attrs = append(attrs, traceAttrs(ctx)...)

	logger.LogAttrs(ctx, slog.LevelError, "problem translation failed, using fallback", attrs...)
}

// traceAttrs correlates a log record with the active span, if any.
func traceAttrs(ctx context.Context) []slog.Attr {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []slog.Attr{
		slog.String(fieldTraceID, sc.TraceID().String()),
		slog.String(fieldSpanID, sc.SpanID().String()),
	}
}

// annotateSpan marks the active span with the translated fault.
func annotateSpan(ctx context.Context, kind FaultKind, status int, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(
		attribute.String(attrKind, kind.String()),
		attribute.Int(attrStatus, status),
	)
	if err != nil {
		span.RecordError(err)
	}
	if status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, problem.Title(status))
	}
}
