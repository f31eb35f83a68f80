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
	"strings"

	"github.com/munnerz/goautoneg"
)

// Problem media types.
const (
	MediaTypeJSON = "application/problem+json"
	MediaTypeXML  = "application/problem+xml"
)

// Format is a problem representation.
type Format int

const (
	// FormatJSON is application/problem+json.
	FormatJSON Format = iota
	// FormatXML is application/problem+xml.
	FormatXML
)

// String returns the short name of the format.
func (f Format) String() string {
	if f == FormatXML {
		return "xml"
	}
	return "json"
}

// MediaType returns the media type without parameters.
func (f Format) MediaType() string {
	if f == FormatXML {
		return MediaTypeXML
	}
	return MediaTypeJSON
}

// ContentType returns the Content-Type header value.
func (f Format) ContentType() string {
	return f.MediaType() + "; charset=utf-8"
}

// offer is a media type the problem can be rendered as.
type offer struct {
	typ, subtype string
	format       Format
}

// offers are listed by preference; ties resolve to the earlier offer.
var offers = []offer{
	{typ: "application", subtype: "problem+json", format: FormatJSON},
	{typ: "application", subtype: "problem+xml", format: FormatXML},
	{typ: "application", subtype: "json", format: FormatJSON},
}

// Negotiate selects the representation for an Accept header value.
// Each offer is weighted by the most specific clause matching it, and a
// weight of zero refuses it. application/problem+xml selects XML only when it
// outweighs the JSON types; an absent, unparsable or unsatisfiable header
// selects JSON.
//
// Examples:
//
//	problem.Negotiate("application/problem+xml")                                  // FormatXML
//	problem.Negotiate("application/problem+json;q=0.5, application/problem+xml") // FormatXML
//	problem.Negotiate("*/*;q=0.1, application/problem+xml;q=0")                    // FormatJSON
//	problem.Negotiate("text/html")                                                // FormatJSON
func Negotiate(accept string) Format {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return FormatJSON
	}

	clauses := goautoneg.ParseAccept(strings.ToLower(accept))

	format, best := FormatJSON, 0.0
	for _, o := range offers {
		if q := quality(clauses, o); q > best {
			format, best = o.format, q
		}
	}

	return format
}

// quality returns the weight of the most specific clause matching o,
// or zero when no clause matches.
func quality(clauses []goautoneg.Accept, o offer) float64 {
	q, specificity := 0.0, -1
	for _, c := range clauses {
		s := -1
		switch {
		case c.Type == o.typ && c.SubType == o.subtype:
			s = 2
		case c.Type == o.typ && c.SubType == "*":
			s = 1
		case c.Type == "*" && c.SubType == "*":
			s = 0
		}
		if s < 0 {
			continue
		}
		if s > specificity || (s == specificity && c.Q > q) {
			q, specificity = c.Q, s
		}
	}
	return q
}
