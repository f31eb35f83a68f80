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

package problem

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingWriter fails every body write.
type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestNewResponse(t *testing.T) {
	t.Parallel()

	p := New(http.StatusTeapot, PlainMessage("short and stout"))
	resp := NewResponse(p, FormatXML)

	assert.Equal(t, http.StatusTeapot, resp.Status)
	assert.Equal(t, resp.Status, resp.Problem.Status)
	assert.Equal(t, FormatXML, resp.Format)
	assert.Equal(t, "application/problem+xml; charset=utf-8", resp.ContentType)
	assert.Same(t, p, resp.Problem)
}

func TestNewResponse_NilProblem(t *testing.T) {
	t.Parallel()

	resp := NewResponse(nil, FormatJSON)

	require.NotNil(t, resp.Problem)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "Internal Server Error", resp.Problem.Title)
}

func TestNewResponse_InvalidStatusCoerced(t *testing.T) {
	t.Parallel()

	resp := NewResponse(&Details{Status: 1000, Title: "nope"}, FormatJSON)

	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, http.StatusInternalServerError, resp.Problem.Status)
	assert.Equal(t, "Internal Server Error", resp.Problem.Title)
}

func TestResponse_WriteJSON(t *testing.T) {
	t.Parallel()

	p := New(http.StatusBadRequest, PlainMessage("triggering exception"))
	resp := NewResponse(p, FormatJSON)
	resp.Headers = http.Header{"Retry-After": []string{"30"}}

	w := httptest.NewRecorder()
	require.NoError(t, resp.Write(w))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "triggering exception", body["detail"])
	assert.Equal(t, "Bad Request", body["title"])
}

func TestResponse_WriteXML(t *testing.T) {
	t.Parallel()

	resp := NewResponse(New(http.StatusNotFound, nil), FormatXML)

	w := httptest.NewRecorder()
	require.NoError(t, resp.Write(w))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "<?xml"), w.Body.String())
	assert.Contains(t, w.Body.String(), "<status>404</status>")
}

func TestResponse_WriteFallsBackOnEncodingError(t *testing.T) {
	t.Parallel()

	p := New(http.StatusBadRequest, nil)
	p.SetExtension("callback", func() {})
	resp := NewResponse(p, FormatJSON)

	w := httptest.NewRecorder()
	err := resp.Write(w)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/problem+json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, fallbackBody, w.Body.String())
}

func TestResponse_WriteReportsBodyError(t *testing.T) {
	t.Parallel()

	resp := NewResponse(New(http.StatusConflict, nil), FormatJSON)
	err := resp.Write(failingWriter{httptest.NewRecorder()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
