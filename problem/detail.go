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
	"errors"
	"fmt"
)

// maxCauses bounds the unwrap chain rendered for a StructuredFault.
const maxCauses = 32

// Detail is the "detail" member of a problem.
// It is either a StructuredFault or a PlainMessage; no other implementations exist.
type Detail interface {
	// Message returns the human-readable text of the detail.
	Message() string

	isDetail()
}

// StructuredFault carries the original error of a fault.
// Err is kept as-is so callers can inspect it with errors.Is and errors.As;
// it is only flattened when the problem is serialized.
//
// Serialized form (JSON):
//
//	{"message": "...", "error_type": "*app.DomainError", "causes": ["..."]}
//
// causes is present only when ExposeCauses is set.
type StructuredFault struct {
	Err error

	// ExposeCauses renders the messages of the unwrap chain.
	ExposeCauses bool
}

// Message returns the error message, or an empty string for a nil error.
func (f StructuredFault) Message() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

func (StructuredFault) isDetail() {}

// faultView is the serialized shape of a StructuredFault.
type faultView struct {
	Message   string   `json:"message" xml:"message"`
	ErrorType string   `json:"error_type,omitempty" xml:"error_type,omitempty"`
	Causes    []string `json:"causes,omitempty" xml:"causes>cause,omitempty"`
}

func (f StructuredFault) view() faultView {
	v := faultView{Message: f.Message()}
	if f.Err == nil {
		return v
	}
	v.ErrorType = fmt.Sprintf("%T", f.Err)
	if f.ExposeCauses {
		v.Causes = causes(f.Err)
	}
	return v
}

// MarshalJSON renders the fault as an object.
func (f StructuredFault) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.view())
}

// causes walks the unwrap chain of err (depth-first, joined errors included)
// and returns the message of every wrapped error, excluding err itself.
func causes(err error) []string {
	var out []string
	var walk func(e error)
	walk = func(e error) {
		if e == nil || len(out) >= maxCauses {
			return
		}
		switch u := e.(type) { //nolint:errorlint // walking the chain by hand
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if inner == nil || len(out) >= maxCauses {
					continue
				}
				out = append(out, inner.Error())
				walk(inner)
			}
		default:
			inner := errors.Unwrap(e)
			if inner == nil {
				return
			}
			out = append(out, inner.Error())
			walk(inner)
		}
	}
	walk(err)

	return out
}

// PlainMessage is a textual detail.
type PlainMessage string

// Message returns the text.
func (m PlainMessage) Message() string {
	return string(m)
}

func (PlainMessage) isDetail() {}
