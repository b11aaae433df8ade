// Copyright 2023 qbee.io
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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTailBuffer(t *testing.T) {
	tests := []struct {
		name      string
		maxLines  int
		lines     []string
		wantLines [][]byte
	}{
		{
			name:     "two lines",
			maxLines: 2,
			lines:    []string{"this is one line", "this is another line"},
			wantLines: [][]byte{
				[]byte("this is one line"),
				[]byte("this is another line"),
			},
		},
		{
			name:     "two lines with one line limit",
			maxLines: 1,
			lines:    []string{"this is one line", "this is another line"},
			wantLines: [][]byte{
				[]byte("this is another line"),
			},
		},
		{
			name:     "empty lines are skipped",
			maxLines: 2,
			lines:    []string{"first", "", "  ", "second", ""},
			wantLines: [][]byte{
				[]byte("first"),
				[]byte("second"),
			},
		},
		{
			name:     "trimming spaces from lines",
			maxLines: 1,
			lines:    []string{" this is one line \r"},
			wantLines: [][]byte{
				[]byte("this is one line"),
			},
		},
		{
			name:      "zero limit",
			maxLines:  0,
			lines:     []string{"dropped"},
			wantLines: [][]byte{},
		},
		{
			name:      "nothing pushed",
			maxLines:  3,
			lines:     nil,
			wantLines: [][]byte{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tailBuffer := NewTailBuffer(tt.maxLines)

			for _, line := range tt.lines {
				tailBuffer.Push([]byte(line))
			}

			assert.Equal(t, tt.wantLines, tailBuffer.Close())
		})
	}
}

func TestTailBufferPush(t *testing.T) {
	tailBuffer := NewTailBuffer(20)

	for i := 0; i < 25; i++ {
		tailBuffer.Push([]byte{byte('a' + i)})
	}

	lines := tailBuffer.CloseStrings()
	assert.Len(t, lines, 20)
	assert.Equal(t, "f", lines[0])
	assert.Equal(t, "y", lines[19])
}
