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

package listener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFaultKind(t *testing.T) {
	t.Parallel()

	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()
			got, err := ParseFaultKind(kind.String())
			require.NoError(t, err)
			assert.Equal(t, kind, got)
		})
	}
}

func TestParseFaultKind_Unknown(t *testing.T) {
	t.Parallel()

	got, err := ParseFaultKind("router-exploded")

	require.ErrorIs(t, err, ErrUnknownFaultKind)
	assert.Equal(t, KindGeneric, got)
	assert.Contains(t, err.Error(), "router-exploded")
}

func TestFaultKind_Actionable(t *testing.T) {
	t.Parallel()

	assert.False(t, KindNone.Actionable())
	assert.False(t, KindResolved.Actionable())
	for _, kind := range kinds[2:] {
		assert.True(t, kind.Actionable(), kind.String())
		assert.NotEmpty(t, kind.Describe(), kind.String())
	}
	assert.True(t, FaultKind(42).Actionable())
	assert.Equal(t, "FaultKind(42)", FaultKind(42).String())
}
