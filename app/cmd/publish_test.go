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

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.qbee.io/useraudit/app/audit"
	"go.qbee.io/useraudit/app/utils/flags"
)

func testReport() *audit.Report {
	return &audit.Report{
		Generated: time.Date(2026, 10, 16, 9, 30, 15, 0, time.UTC),
		Host:      "testhost",
		Records:   []audit.Record{},
	}
}

func TestPublishReport(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.json")
	opts := flags.Options{mainOutputOption: outputFile, mainJSONOption: flags.FlagSet}

	require.NoError(t, publishReport(context.Background(), testReport(), opts, 0600))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"host": "testhost"`)
}

func TestPublishReportInterrupted(t *testing.T) {
	dir := t.TempDir()
	outputFile := filepath.Join(dir, "report.json")
	opts := flags.Options{mainOutputOption: outputFile}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publishReport(ctx, testReport(), opts, 0600)
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
