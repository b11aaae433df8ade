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

package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTimeout(t *testing.T) {
	tests := []struct {
		name          string
		command       []string
		expectedError string
	}{
		{
			name:    "command runs successfully",
			command: []string{"echo", "hello"},
		},
		{
			name:          "simple command killed by timeout",
			command:       []string{"sleep", "1"},
			expectedError: "signal: killed",
		},
		{
			name:          "child process killed by timeout",
			command:       []string{"sh", "-c", `(trap 'echo "cleanup completed"; exit' TERM; sleep 1)`},
			expectedError: "signal: killed",
		},
		{
			name:          "endless loop killed by timeout",
			command:       []string{"sh", "-c", "while true; do echo 'hello'; sleep 1; done"},
			expectedError: "signal: killed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			start := time.Now()
			_, err := RunCommand(ctx, tt.command)

			assert.Less(t, time.Since(start), time.Second)

			if tt.expectedError == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
		})
	}
}

func TestRunCommandOutput(t *testing.T) {
	output, err := RunCommand(context.Background(), []string{"printf", "a\nb\n"})
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(output))
}

func TestRunCommandNotFound(t *testing.T) {
	_, err := RunCommand(context.Background(), []string{"/nonexistent/useraudit-test-binary"})
	require.Error(t, err)
}

func TestRunCommandEmpty(t *testing.T) {
	_, err := RunCommand(context.Background(), nil)
	require.Error(t, err)
}

func TestLookupCommand(t *testing.T) {
	path, err := LookupCommand("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = LookupCommand("useraudit-no-such-command")
	assert.True(t, errors.Is(err, ErrCommandNotFound))
}
