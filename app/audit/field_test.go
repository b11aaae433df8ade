// Copyright 2024 qbee.io
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
//
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField(t *testing.T) {
	available := Available(3)
	value, ok := available.Value()
	assert.True(t, ok)
	assert.True(t, available.IsAvailable())
	assert.Equal(t, 3, value)
	assert.Empty(t, available.Reason())

	unavailable := Unavailable[int]("lastlog not found")
	value, ok = unavailable.Value()
	assert.False(t, ok)
	assert.Zero(t, value)
	assert.Equal(t, "lastlog not found", unavailable.Reason())

	var zero Field[bool]
	assert.False(t, zero.IsAvailable())

	// legitimate empty result is not the same as unavailable
	noSessions := Available([]string{})
	assert.True(t, noSessions.IsAvailable())
}
