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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		accept string
		want   Format
	}{
		{name: "absent", accept: "", want: FormatJSON},
		{name: "whitespace", accept: "   ", want: FormatJSON},
		{name: "problem json", accept: "application/problem+json", want: FormatJSON},
		{name: "problem xml", accept: "application/problem+xml", want: FormatXML},
		{name: "problem xml upper case", accept: "Application/Problem+XML", want: FormatXML},
		{name: "plain json", accept: "application/json", want: FormatJSON},
		{name: "plain xml is not a problem type", accept: "application/xml", want: FormatJSON},
		{name: "html", accept: "text/html", want: FormatJSON},
		{name: "wildcard", accept: "*/*", want: FormatJSON},
		{name: "type wildcard", accept: "application/*", want: FormatJSON},
		{name: "xml preferred by quality", accept: "application/problem+json;q=0.5, application/problem+xml", want: FormatXML},
		{name: "json preferred by quality", accept: "application/problem+xml;q=0.4, application/problem+json;q=0.9", want: FormatJSON},
		{name: "xml among others", accept: "text/html, application/problem+xml;q=0.9", want: FormatXML},
		{name: "garbage", accept: ";;;,,,", want: FormatJSON},
		{name: "xml refused", accept: "application/problem+xml;q=0", want: FormatJSON},
		{name: "xml refused under wildcard", accept: "*/*;q=0.1, application/problem+xml;q=0", want: FormatJSON},
		{name: "json refused under wildcard", accept: "application/problem+json;q=0, application/json;q=0, */*", want: FormatXML},
		{name: "everything refused", accept: "*/*;q=0", want: FormatJSON},
		{name: "specific clause outranks wildcard", accept: "application/*;q=0.9, application/problem+json;q=0.2", want: FormatXML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Negotiate(tt.accept))
		})
	}
}

func TestFormat_ContentType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "application/problem+json; charset=utf-8", FormatJSON.ContentType())
	assert.Equal(t, "application/problem+xml; charset=utf-8", FormatXML.ContentType())
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "xml", FormatXML.String())
}
