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

// Package stdhttp connects a listener.Translator to net/http handlers.
//
// Panics, handler errors and router misses become problem responses:
//
//	t := listener.New(listener.WithLogger(logger))
//	mux := http.NewServeMux()
//	mux.Handle("GET /users/{id}", stdhttp.Handle(t, getUser))
//	mux.Handle("/", stdhttp.NotFound(t))
//	srv := &http.Server{Handler: stdhttp.Recover(t)(mux)}
package stdhttp

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"rivaas.dev/apiproblem/listener"
)

// maxStack caps the stack captured for a recovered panic.
const maxStack = 4 << 10

// PanicError carries a recovered panic value that is not an error.
type PanicError struct {
	// Value is the value passed to panic.
	Value any

	// Stack is the truncated stack of the panicking goroutine.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// HandlerFunc is an HTTP handler that reports failures by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to an http.Handler. A non-nil error from fn is translated
// as a thrown exception with the error itself as payload.
func Handle(t *listener.Translator, fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			t.Respond(w, r, listener.Fault{Kind: listener.KindException, Payload: err})
		}
	})
}

// Recover returns middleware that translates panics raised by the next
// handler. http.ErrAbortHandler is re-panicked so the server aborts the
// connection as usual.
func Recover(t *listener.Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				t.Respond(w, r, listener.Fault{Kind: listener.KindException, Payload: panicPayload(rec)})
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// NotFound returns a handler answering every request with a route-not-found problem.
func NotFound(t *listener.Translator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Respond(w, r, listener.Fault{Kind: listener.KindRouteNotFound})
	})
}

// MethodNotAllowed returns a handler answering with a method-not-allowed
// problem. The allowed methods, if any, are advertised in the Allow header.
func MethodNotAllowed(t *listener.Translator, allowed ...string) http.Handler {
	allow := strings.Join(allowed, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allow != "" {
			w.Header().Set("Allow", allow)
		}
		t.Respond(w, r, listener.Fault{Kind: listener.KindMethodNotAllowed})
	})
}

// panicPayload keeps error values intact and wraps anything else.
func panicPayload(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}

	stack := debug.Stack()
	if len(stack) > maxStack {
		stack = stack[:maxStack]
	}
	return &PanicError{Value: rec, Stack: stack}
}
