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

package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func captureLogs(t *testing.T, newLevel int) *bytes.Buffer {
	buf := new(bytes.Buffer)

	SetOutput(zapcore.AddSync(buf))
	SetLevel(newLevel)

	t.Cleanup(func() {
		SetOutput(zapcore.AddSync(new(bytes.Buffer)))
		SetLevel(WARNING)
	})

	return buf
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t, WARNING)

	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warning %d", 3)
	Errorf("error %d", 4)

	output := buf.String()
	assert.NotContains(t, output, "debug 1")
	assert.NotContains(t, output, "info 2")
	assert.Contains(t, output, "WARN")
	assert.Contains(t, output, "warning 3")
	assert.Contains(t, output, "error 4")
}

func TestWriter(t *testing.T) {
	buf := captureLogs(t, DEBUG)

	writer := NewWriter(DEBUG, "lastb: ")

	n, err := writer.Write([]byte("first line\n\nsecond line\n"))
	require.NoError(t, err)
	assert.Equal(t, 24, n)

	output := buf.String()
	assert.Contains(t, output, "lastb: first line")
	assert.Contains(t, output, "lastb: second line")
}

func TestWriterBelowLevel(t *testing.T) {
	buf := captureLogs(t, ERROR)

	_, err := NewWriter(DEBUG, "who: ").Write([]byte("ignored"))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{name: "DEBUG", want: DEBUG},
		{name: "info", want: INFO},
		{name: " WARNING ", want: WARNING},
		{name: "ERROR", want: ERROR},
		{name: "TRACE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
