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
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/apiproblem/problem"
)

// Option defines functional options for Translator configuration.
type Option func(*config)

// config holds the configuration for a Translator.
type config struct {
	// logger receives one record per translated fault; nil disables logging
	logger *slog.Logger

	// typeBaseURL is prepended to ErrorCode values to build problem type URIs
	typeBaseURL string

	// statuses overrides FaultKind.DefaultStatus per kind
	statuses map[FaultKind]int

	// errorID enables the error_id extension
	errorID bool

	// errorIDGenerator produces error_id values
	errorIDGenerator func() string

	// exposeCauses renders the unwrap chain of structured faults
	exposeCauses bool

	// meter creates the problem counter; nil disables metrics
	meter metric.Meter
}

// defaultConfig returns the default Translator configuration.
func defaultConfig() *config {
	return &config{
		logger:           slog.Default(),
		statuses:         make(map[FaultKind]int),
		errorID:          true,
		errorIDGenerator: problem.NewErrorID,
	}
}

// WithLogger sets the slog.Logger used to record translated faults.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	listener.New(listener.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithoutLogging disables fault logging.
// Useful for tests to avoid noisy output.
func WithoutLogging() Option {
	return func(cfg *config) {
		cfg.logger = nil
	}
}

// WithTypeBaseURL sets the base URL for problem type URIs.
// Errors implementing problem.ErrorCode get the type "<base>/<code>".
//
// Example:
//
//	listener.New(listener.WithTypeBaseURL("https://api.example.com/problems"))
func WithTypeBaseURL(baseURL string) Option {
	return func(cfg *config) {
		cfg.typeBaseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithStatus overrides the default status of a fault kind.
// Non-actionable kinds and statuses outside 100-599 are ignored.
//
// Example:
//
//	listener.New(listener.WithStatus(listener.KindControllerInvalid, http.StatusNotFound))
func WithStatus(kind FaultKind, status int) Option {
	return func(cfg *config) {
		if !kind.Actionable() || !problem.ValidStatus(status) {
			return
		}
		cfg.statuses[kind] = status
	}
}

// WithoutErrorID disables the error_id extension member.
func WithoutErrorID() Option {
	return func(cfg *config) {
		cfg.errorID = false
	}
}

// WithErrorIDGenerator sets the generator for error_id values.
//
// Example:
//
//	listener.New(listener.WithErrorIDGenerator(func() string {
//	    return uuid.NewString()
//	}))
func WithErrorIDGenerator(gen func() string) Option {
	return func(cfg *config) {
		if gen == nil {
			return
		}
		cfg.errorID = true
		cfg.errorIDGenerator = gen
	}
}

// WithExposeCauses controls whether the unwrap chain of a fault is rendered
// in the detail member. Default: false
func WithExposeCauses(enabled bool) Option {
	return func(cfg *config) {
		cfg.exposeCauses = enabled
	}
}

// WithMeter enables the apiproblem.problems counter.
//
// Example:
//
//	meter := otel.Meter("rivaas.dev/apiproblem")
//	listener.New(listener.WithMeter(meter))
func WithMeter(meter metric.Meter) Option {
	return func(cfg *config) {
		cfg.meter = meter
	}
}
