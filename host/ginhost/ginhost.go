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

// Package ginhost connects a listener.Translator to a gin engine.
//
// Handlers report failures with c.Error and leave the response unwritten:
//
//	engine := gin.New()
//	ginhost.Register(engine, t)
//	engine.GET("/users/:id", func(c *gin.Context) {
//	    user, err := store.Get(c.Param("id"))
//	    if err != nil {
//	        _ = c.Error(err)
//	        return
//	    }
//	    c.JSON(http.StatusOK, user)
//	})
//
// Request binding goes through Bind. gin's c.Bind, c.BindJSON and the other
// MustBindWith helpers write a bare 400 before Errors runs, so their failures
// cannot be rendered as problems.
package ginhost

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rivaas.dev/apiproblem/listener"
)

// Register installs Errors as global middleware and the translator as the
// engine's 404 and 405 handlers. It enables HandleMethodNotAllowed.
func Register(engine *gin.Engine, t *listener.Translator) {
	engine.HandleMethodNotAllowed = true
	engine.Use(Errors(t))
	engine.NoRoute(NoRoute(t))
	engine.NoMethod(NoMethod(t))
}

// Bind decodes the request into obj with c.ShouldBind. A failure is attached
// to the context as a gin.ErrorTypeBind error, which Errors renders as a
// missing-param problem, and returned so the handler can stop.
//
// Example:
//
//	var in createUser
//	if err := ginhost.Bind(c, &in); err != nil {
//	    return
//	}
func Bind(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return err
	}
	return nil
}

// Errors returns middleware that translates the last error attached to the
// context once the handler chain has run.
//
// Errors of type gin.ErrorTypeBind are reported as missing parameters, all
// others as thrown exceptions. A status set by the handler with c.Status is
// passed on as the host status. Nothing is done when the response has
// already been written, which includes failures of gin's MustBindWith
// helpers; use Bind instead.
func Errors(t *listener.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		last := c.Errors.Last()
		if last == nil || last.Err == nil {
			return
		}

		f := listener.Fault{Kind: listener.KindException, Payload: last.Err}
		if last.IsType(gin.ErrorTypeBind) {
			f.Kind = listener.KindMissingParam
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			f.Status = status
		}

		if t.Respond(c.Writer, c.Request, f) {
			c.Abort()
		}
	}
}

// NoRoute returns a handler answering with a route-not-found problem.
func NoRoute(t *listener.Translator) gin.HandlerFunc {
	return respond(t, listener.KindRouteNotFound)
}

// NoMethod returns a handler answering with a method-not-allowed problem.
// gin sets the Allow header before it runs.
func NoMethod(t *listener.Translator) gin.HandlerFunc {
	return respond(t, listener.KindMethodNotAllowed)
}

func respond(t *listener.Translator, kind listener.FaultKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		t.Respond(c.Writer, c.Request, listener.Fault{Kind: kind})
		c.Abort()
	}
}
