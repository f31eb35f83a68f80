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
	"sort"
	"strconv"
	"strings"
	"unicode"
)

const (
	// DefaultType is the problem type used when no specific type applies.
	DefaultType = "about:blank"

	// XMLNamespace is the namespace of the problem+xml root element.
	XMLNamespace = "urn:ietf:rfc:7807"
)

// Details represents an RFC 9457 problem document.
//
// Example:
//
//	p := problem.New(http.StatusBadRequest, problem.PlainMessage("name is required"))
//	p.Instance = "/api/users"
//	p.SetExtension("code", "validation_error")
type Details struct {
	Type       string
	Title      string
	Status     int
	Detail     Detail
	Instance   string
	Extensions map[string]any
}

// New creates a problem with the given status and detail.
// A status outside 100-599 is replaced by 500. Title is derived from the status.
func New(status int, detail Detail) *Details {
	if !ValidStatus(status) {
		status = http.StatusInternalServerError
	}

	return &Details{
		Type:   DefaultType,
		Title:  Title(status),
		Status: status,
		Detail: detail,
	}
}

// Title returns the human-readable title for status.
func Title(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Unknown Status"
}

// SetExtension adds an extension member.
// Reserved member names are ignored.
func (p *Details) SetExtension(key string, value any) {
	if key == "" || isReserved(key) {
		return
	}
	if p.Extensions == nil {
		p.Extensions = make(map[string]any)
	}
	p.Extensions[key] = value
}

func isReserved(key string) bool {
	switch key {
	case "type", "title", "status", "detail", "instance":
		return true
	}
	return false
}

// MarshalJSON implements custom JSON marshaling to include extensions inline.
// Reserved field names are protected from being overwritten by extensions.
func (p Details) MarshalJSON() ([]byte, error) {
	typ := p.Type
	if typ == "" {
		typ = DefaultType
	}

	m := map[string]any{
		"type":   typ,
		"title":  p.Title,
		"status": p.Status,
	}
	switch d := p.Detail.(type) {
	case StructuredFault:
		m["detail"] = d
	case PlainMessage:
		if d != "" {
			m["detail"] = string(d)
		}
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	for k, v := range p.Extensions {
		if !isReserved(k) {
			m[k] = v
		}
	}

	return json.Marshal(m)
}

// MarshalXML renders the problem+xml document:
//
//	<problem xmlns="urn:ietf:rfc:7807">
//	  <type>about:blank</type>
//	  <title>Not Found</title>
//	  <status>404</status>
//	  ...
//	</problem>
//
// Extensions follow the standard members in key order. Values that are not
// scalars are written as their JSON text. Keys that are not valid XML element
// names are left out of the XML form only.
func (p Details) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Space: XMLNamespace, Local: "problem"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	typ := p.Type
	if typ == "" {
		typ = DefaultType
	}
	if err := encodeText(e, "type", typ); err != nil {
		return err
	}
	if err := encodeText(e, "title", p.Title); err != nil {
		return err
	}
	if err := encodeText(e, "status", strconv.Itoa(p.Status)); err != nil {
		return err
	}

	switch d := p.Detail.(type) {
	case StructuredFault:
		if err := e.EncodeElement(d.view(), element("detail")); err != nil {
			return err
		}
	case PlainMessage:
		if d != "" {
			if err := encodeText(e, "detail", string(d)); err != nil {
				return err
			}
		}
	}

	if p.Instance != "" {
		if err := encodeText(e, "instance", p.Instance); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(p.Extensions))
	for k := range p.Extensions {
		if !isReserved(k) && isXMLName(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := encodeText(e, k, xmlText(p.Extensions[k])); err != nil {
			return err
		}
	}

	return e.EncodeToken(start.End())
}

// isXMLName reports whether name can be used as an unprefixed element name.
func isXMLName(name string) bool {
	if name == "" || strings.HasPrefix(strings.ToLower(name), "xml") {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

func element(name string) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}}
}

func encodeText(e *xml.Encoder, name, value string) error {
	return e.EncodeElement(value, element(name))
}

// xmlText flattens an extension value into element text.
func xmlText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(x)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
