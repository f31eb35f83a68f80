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
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewErrorID generates a unique error ID for correlating a problem with logs.
// It is a random (version 4) UUID in hex form, falling back to a
// timestamp-based ID if the random source fails.
func NewErrorID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("err-%d", time.Now().UnixNano())
	}

	return "err-" + hex.EncodeToString(id[:])
}
