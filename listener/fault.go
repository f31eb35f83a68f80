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
	"errors"
	"fmt"
	"net/http"
)

// ErrUnknownFaultKind is returned when a fault kind tag is not recognized.
var ErrUnknownFaultKind = errors.New("unknown fault kind")

// FaultKind classifies a dispatch fault.
type FaultKind int

const (
	// KindNone means no fault was recorded.
	KindNone FaultKind = iota
	// KindResolved is a fault the host already turned into a normal response.
	KindResolved
	// KindException is an error raised by a handler during dispatch.
	KindException
	// KindRouteNotFound means no route matched the request.
	KindRouteNotFound
	// KindMethodNotAllowed means a route matched but not for the request method.
	KindMethodNotAllowed
	// KindControllerNotFound means the matched route names a handler the host cannot find.
	KindControllerNotFound
	// KindControllerInvalid means the handler exists but cannot be dispatched.
	KindControllerInvalid
	// KindMissingParam means a required request parameter is absent.
	KindMissingParam
	// KindGeneric is any other fault.
	KindGeneric
)

// kinds lists every kind in declaration order.
var kinds = []FaultKind{
	KindNone,
	KindResolved,
	KindException,
	KindRouteNotFound,
	KindMethodNotAllowed,
	KindControllerNotFound,
	KindControllerInvalid,
	KindMissingParam,
	KindGeneric,
}

// String returns the tag of the kind.
func (k FaultKind) String() string {
	switch k {
	case KindNone:
		return ""
	case KindResolved:
		return "resolved"
	case KindException:
		return "exception-thrown"
	case KindRouteNotFound:
		return "route-not-found"
	case KindMethodNotAllowed:
		return "method-not-allowed"
	case KindControllerNotFound:
		return "handler-not-found"
	case KindControllerInvalid:
		return "controller-invalid"
	case KindMissingParam:
		return "missing-param"
	case KindGeneric:
		return "generic"
	}
	return fmt.Sprintf("FaultKind(%d)", int(k))
}

// ParseFaultKind returns the kind for a tag.
// Unknown tags yield KindGeneric together with ErrUnknownFaultKind.
func ParseFaultKind(tag string) (FaultKind, error) {
	for _, k := range kinds {
		if k.String() == tag {
			return k, nil
		}
	}
	return KindGeneric, fmt.Errorf("%w: %q", ErrUnknownFaultKind, tag)
}

// Actionable reports whether the translator turns the kind into a problem.
func (k FaultKind) Actionable() bool {
	switch k {
	case KindNone, KindResolved:
		return false
	case KindException, KindRouteNotFound, KindMethodNotAllowed,
		KindControllerNotFound, KindControllerInvalid, KindMissingParam, KindGeneric:
		return true
	}
	// Out-of-range values are treated as generic faults.
	return true
}

// DefaultStatus returns the status used when neither the payload nor the
// host supplies one.
func (k FaultKind) DefaultStatus() int {
	switch k {
	case KindRouteNotFound, KindControllerNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindMissingParam:
		return http.StatusBadRequest
	case KindNone, KindResolved, KindException, KindControllerInvalid, KindGeneric:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Describe returns the detail text used when the fault carries no error.
func (k FaultKind) Describe() string {
	switch k {
	case KindNone, KindResolved:
		return "The request was handled without a fault."
	case KindException:
		return "An unexpected error occurred while dispatching the request."
	case KindRouteNotFound:
		return "The requested resource could not be matched to a route."
	case KindMethodNotAllowed:
		return "The request method is not supported by the target resource."
	case KindControllerNotFound:
		return "The handler for the requested route could not be found."
	case KindControllerInvalid:
		return "The handler for the requested route cannot be dispatched."
	case KindMissingParam:
		return "A required request parameter is missing."
	case KindGeneric:
		return "The request could not be processed."
	}
	return "The request could not be processed."
}

// Fault is the fault recorded by the host for one request.
//
// Payload is usually the error raised during dispatch. Status is an optional
// host-supplied code; zero means absent.
type Fault struct {
	Kind    FaultKind
	Payload any
	Status  int
}
