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

// Package echohost connects a listener.Translator to an echo server.
//
//	e := echo.New()
//	e.HTTPErrorHandler = echohost.ErrorHandler(t)
package echohost

import (
	"errors"

	"github.com/labstack/echo/v4"

	"rivaas.dev/apiproblem/listener"
)

// ErrorHandler returns an echo.HTTPErrorHandler that writes every error
// as a problem. Committed responses are left alone.
func ErrorHandler(t *listener.Translator) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		t.Respond(c.Response(), c.Request(), FaultOf(err))
	}
}

// FaultOf classifies an error returned through echo.
//
// The router's ErrNotFound and ErrMethodNotAllowed map to the matching route
// kinds. Any other error is a thrown exception; the code of an
// *echo.HTTPError in its chain becomes the host status.
func FaultOf(err error) listener.Fault {
	switch {
	case errors.Is(err, echo.ErrNotFound):
		return listener.Fault{Kind: listener.KindRouteNotFound}
	case errors.Is(err, echo.ErrMethodNotAllowed):
		return listener.Fault{Kind: listener.KindMethodNotAllowed}
	}

	f := listener.Fault{Kind: listener.KindException, Payload: err}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		f.Status = he.Code
	}
	return f
}
