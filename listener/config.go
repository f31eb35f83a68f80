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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"rivaas.dev/apiproblem/problem"
)

// ErrInvalidStatus is returned for a status outside 100-599.
var ErrInvalidStatus = errors.New("invalid HTTP status")

// Config is the declarative form of the Translator options.
// It can be written as YAML, TOML or JSON with the same field names.
//
// YAML form:
//
//	type_base_url: https://api.example.com/problems
//	error_id: true
//	expose_causes: false
//	status:
//	  route-not-found: 404
//	  controller-invalid: 500
type Config struct {
	// TypeBaseURL is prepended to error codes to build problem type URIs.
	TypeBaseURL string `yaml:"type_base_url" toml:"type_base_url" json:"type_base_url"`

	// ErrorID toggles the error_id extension. Absent means enabled.
	ErrorID *bool `yaml:"error_id" toml:"error_id" json:"error_id"`

	// ExposeCauses renders the unwrap chain of structured faults.
	ExposeCauses bool `yaml:"expose_causes" toml:"expose_causes" json:"expose_causes"`

	// Status overrides the default status per fault kind tag.
	Status map[string]int `yaml:"status" toml:"status" json:"status"`
}

// configDecoders maps file extensions to configuration decoders.
var configDecoders = map[string]func([]byte, *Config) error{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".toml": decodeTOML,
	".json": decodeJSON,
}

// ParseConfig decodes and validates a YAML configuration document.
// Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := decodeYAML(data, &cfg); err != nil {
		return nil, fmt.Errorf("listener: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfig reads, decodes and validates the configuration file at path.
// The format is detected from the extension: .yaml, .yml, .toml or .json.
//
// Example:
//
//	cfg, err := listener.LoadConfig("problems.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	t := listener.New(cfg.Options()...)
func LoadConfig(path string) (*Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := configDecoders[ext]
	if !ok {
		return nil, fmt.Errorf("listener: cannot detect config format from extension %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("listener: read config: %w", err)
	}

	var cfg Config
	if err := decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("listener: parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	return yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField())
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown field %q", undecoded[0].String())
	}
	return nil
}

func decodeJSON(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Validate reports every invalid entry of the configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.TypeBaseURL != "" {
		u, err := url.Parse(c.TypeBaseURL)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("type_base_url: %w", err))
		case !u.IsAbs():
			errs = append(errs, fmt.Errorf("type_base_url: %q is not an absolute URI", c.TypeBaseURL))
		}
	}

	for _, tag := range sortedTags(c.Status) {
		kind, err := ParseFaultKind(tag)
		if err != nil {
			errs = append(errs, fmt.Errorf("status: %w", err))
			continue
		}
		if !kind.Actionable() {
			errs = append(errs, fmt.Errorf("status: fault kind %q is never translated", tag))
			continue
		}
		if status := c.Status[tag]; !problem.ValidStatus(status) {
			errs = append(errs, fmt.Errorf("status.%s: %w: %d", tag, ErrInvalidStatus, status))
		}
	}

	return errors.Join(errs...)
}

// Options converts the configuration to Translator options.
// The configuration is assumed valid; invalid entries are skipped.
func (c *Config) Options() []Option {
	var opts []Option

	if c.TypeBaseURL != "" {
		opts = append(opts, WithTypeBaseURL(c.TypeBaseURL))
	}
	if c.ErrorID != nil && !*c.ErrorID {
		opts = append(opts, WithoutErrorID())
	}
	if c.ExposeCauses {
		opts = append(opts, WithExposeCauses(true))
	}
	for _, tag := range sortedTags(c.Status) {
		kind, err := ParseFaultKind(tag)
		if err != nil {
			continue
		}
		opts = append(opts, WithStatus(kind, c.Status[tag]))
	}

	return opts
}

func sortedTags(m map[string]int) []string {
	tags := make([]string, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
