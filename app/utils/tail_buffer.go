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
	"bytes"
	"sync"
)

// TailBuffer keeps the last maxLines non-empty lines pushed to it.
type TailBuffer struct {
	mutex    sync.Mutex
	lines    [][]byte
	maxLines int
}

// NewTailBuffer returns an initialized TailBuffer for maxLines.
func NewTailBuffer(maxLines int) *TailBuffer {
	return &TailBuffer{
		maxLines: maxLines,
		lines:    make([][]byte, 0, maxLines),
	}
}

// Push adds a line to the end of the buffer, dropping the oldest line when the buffer is full.
// Surrounding whitespace is trimmed and empty lines are skipped.
func (tf *TailBuffer) Push(line []byte) {
	tf.mutex.Lock()
	defer tf.mutex.Unlock()

	line = bytes.TrimSpace(line)
	if len(line) == 0 || tf.maxLines <= 0 {
		return
	}

	if len(tf.lines) == tf.maxLines {
		copy(tf.lines, tf.lines[1:])
		tf.lines = tf.lines[:len(tf.lines)-1]
	}

	tf.lines = append(tf.lines, bytes.Clone(line))
}

// Close the buffer and return all recorded lines.
func (tf *TailBuffer) Close() [][]byte {
	tf.mutex.Lock()
	defer tf.mutex.Unlock()

	lines := tf.lines
	tf.lines = nil

	if lines == nil {
		return [][]byte{}
	}

	return lines
}

// CloseStrings is like Close, but returns lines as strings.
func (tf *TailBuffer) CloseStrings() []string {
	lines := tf.Close()

	result := make([]string, len(lines))
	for i, line := range lines {
		result[i] = string(line)
	}

	return result
}
