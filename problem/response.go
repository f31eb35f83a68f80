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

package problem

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
)

// fallbackBody is written when a problem cannot be encoded.
const fallbackBody = `{"status":500,"title":"Internal Server Error","type":"about:blank"}`

// Response is a problem ready to be written as an HTTP response.
// Status always equals Problem.Status.
//
// Example:
//
//	resp := problem.NewResponse(p, problem.Negotiate(r.Header.Get("Accept")))
//	if err := resp.Write(w); err != nil {
//		logger.Error("failed to write problem", "error", err)
//	}
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Format is the negotiated representation.
	Format Format

	// Problem is the problem document.
	Problem *Details

	// Headers contains additional headers to set (optional).
	Headers http.Header
}

// NewResponse wraps p in a response using the given representation.
// A nil problem becomes a generic 500 problem.
func NewResponse(p *Details, format Format) *Response {
	if p == nil {
		p = New(http.StatusInternalServerError, nil)
	}
	if !ValidStatus(p.Status) {
		p.Status = http.StatusInternalServerError
		p.Title = Title(p.Status)
	}

	return &Response{
		Status:      p.Status,
		ContentType: format.ContentType(),
		Format:      format,
		Problem:     p,
	}
}

// Body serializes the problem in the response's format.
func (r *Response) Body() ([]byte, error) {
	if r.Format == FormatXML {
		b, err := xml.Marshal(r.Problem)
		if err != nil {
			return nil, fmt.Errorf("problem: encode xml: %w", err)
		}
		return append([]byte(xml.Header), b...), nil
	}

	b, err := json.Marshal(r.Problem)
	if err != nil {
		return nil, fmt.Errorf("problem: encode json: %w", err)
	}
	return b, nil
}

// Write writes headers, status and body to w.
// If the problem cannot be encoded a minimal 500 JSON problem is written
// instead and the encoding error is returned.
func (r *Response) Write(w http.ResponseWriter) error {
	status, contentType := r.Status, r.ContentType
	body, err := r.Body()
	if err != nil {
		status = http.StatusInternalServerError
		contentType = FormatJSON.ContentType()
		body = []byte(fallbackBody)
	}

	h := w.Header()
	for key, values := range r.Headers {
		for _, value := range values {
			h.Add(key, value)
		}
	}
	h.Set("Content-Type", contentType)
	w.WriteHeader(status)

	if _, writeErr := w.Write(body); writeErr != nil && err == nil {
		err = fmt.Errorf("problem: write body: %w", writeErr)
	}

	return err
}
