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

//go:build unix

package linux

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessStats(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    ProcessStats
		wantErr bool
	}{
		{
			name: "command with no spaces",
			line: "275809 (test-cmd) S 264817",
			want: ProcessStats{"275809", "test-cmd", "S", "264817"},
		},
		{
			name: "command with spaces",
			line: "275809 (test cmd) S 264817",
			want: ProcessStats{"275809", "test cmd", "S", "264817"},
		},
		{
			name: "command with parentheses",
			line: "42 (odd) name) R 1",
			want: ProcessStats{"42", "odd) name", "R", "1"},
		},
		{
			name:    "invalid format",
			line:    "275809 test cmd) S 264817",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewProcessStats(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

const statLine = "1234 (bash) S 1 1234 1234 34816 1234 4194304 100 0 0 0 %s %s 0 0 20 0 1 0 %s 10000 200"

// sprintfStat builds a /proc/[pid]/stat line with given utime, stime and starttime.
func sprintfStat(utime, stime, startTime string) string {
	return fmt.Sprintf(statLine, utime, stime, startTime)
}

func TestProcessStatsCPUPercent(t *testing.T) {
	tests := []struct {
		name   string
		utime  string
		stime  string
		start  string
		uptime float64
		want   float64
	}{
		{
			name:  "half of the lifetime on cpu",
			utime: "300", stime: "200", start: "1000",
			uptime: 20,
			want:   50,
		},
		{
			name:  "idle process",
			utime: "0", stime: "0", start: "0",
			uptime: 100,
			want:   0,
		},
		{
			name:  "started just now",
			utime: "1", stime: "0", start: "10000",
			uptime: 100,
			want:   0,
		},
		{
			name:  "rounded to one decimal",
			utime: "1", stime: "0", start: "0",
			uptime: 3,
			want:   0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := NewProcessStats(sprintfStat(tt.utime, tt.stime, tt.start))
			require.NoError(t, err)

			got, err := stats.CPUPercent(tt.uptime)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestProcessStatsTruncated(t *testing.T) {
	stats, err := NewProcessStats("1 (init) S 0")
	require.NoError(t, err)

	_, err = stats.GetJiffies()
	assert.Error(t, err)
}
