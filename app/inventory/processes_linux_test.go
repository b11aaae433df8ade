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

//go:build linux

package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcess struct {
	pid     int
	uid     int
	rss     int
	comm    string
	cmdline string
}

func writeFakeProcFS(t *testing.T, processes []fakeProcess) string {
	procFS := t.TempDir()

	write := func(name, contents string) {
		filePath := filepath.Join(procFS, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0700))
		require.NoError(t, os.WriteFile(filePath, []byte(contents), 0600))
	}

	write("meminfo", "MemTotal:        1000000 kB\nMemAvailable:     500000 kB\n")
	write("uptime", "1000.00 900.00\n")

	for _, p := range processes {
		dir := fmt.Sprintf("%d", p.pid)

		write(filepath.Join(dir, "status"),
			fmt.Sprintf("Name:\t%s\nUid:\t%d\t%d\t%d\t%d\nRssAnon:\t%d kB\nRssFile:\t0 kB\nRssShmem:\t0 kB\n",
				p.comm, p.uid, p.uid, p.uid, p.uid, p.rss))
		write(filepath.Join(dir, "stat"),
			fmt.Sprintf("%d (%s) S 1 1 1 0 -1 4194304 100 0 0 0 5000 5000 0 0 20 0 1 0 0 10000 200\n", p.pid, p.comm))
		write(filepath.Join(dir, "cmdline"), p.cmdline)
	}

	return procFS
}

func TestCollectUserProcesses(t *testing.T) {
	procFS := writeFakeProcFS(t, []fakeProcess{
		{pid: 10, uid: 1001, rss: 100, comm: "a", cmdline: "a\x00--flag"},
		{pid: 11, uid: 1001, rss: 600, comm: "b", cmdline: "b"},
		{pid: 12, uid: 0, rss: 900000, comm: "root-proc", cmdline: "root-proc"},
		{pid: 13, uid: 1001, rss: 300, comm: "c", cmdline: ""},
		{pid: 14, uid: 1001, rss: 300, comm: "d", cmdline: "d"},
		{pid: 15, uid: 1001, rss: 50, comm: "e", cmdline: "e"},
		{pid: 16, uid: 1001, rss: 10, comm: "f", cmdline: "f"},
	})

	processes, err := CollectUserProcesses(procFS, 1001, 5)
	require.NoError(t, err)

	require.Len(t, processes.Processes, 5)

	pids := make([]int, 0, 5)
	for _, p := range processes.Processes {
		pids = append(pids, p.PID)
		assert.Equal(t, 1001, p.UID)
	}
	assert.Equal(t, []int{11, 13, 14, 10, 15}, pids)

	top := processes.Processes[0]
	assert.Equal(t, uint64(600), top.ResidentMemory)
	assert.InDelta(t, 0.0, top.Memory, 0.001)
	assert.InDelta(t, 10.0, top.CPU, 0.001)
	assert.Equal(t, "b", top.Command)

	assert.Equal(t, "[c]", processes.Processes[1].Command)
	assert.Equal(t, "a --flag", processes.Processes[3].Command)
}

func TestCollectUserProcessesNoneOwned(t *testing.T) {
	procFS := writeFakeProcFS(t, []fakeProcess{{pid: 1, uid: 0, rss: 10, comm: "init", cmdline: "/sbin/init"}})

	processes, err := CollectUserProcesses(procFS, 1001, 5)
	require.NoError(t, err)
	assert.Empty(t, processes.Processes)
}

func TestCollectUserProcessesMissingProcFS(t *testing.T) {
	_, err := CollectUserProcesses(filepath.Join(t.TempDir(), "proc"), 1001, 5)
	assert.Error(t, err)
}

func TestCollectUserProcessesLive(t *testing.T) {
	if _, err := os.Stat("/proc"); err != nil {
		t.Skipf("no procfs available: %v", err)
	}

	processes, err := CollectUserProcesses("/proc", os.Geteuid(), 5)
	require.NoError(t, err)
	require.NotEmpty(t, processes.Processes)

	for _, process := range processes.Processes {
		assert.NotEmpty(t, process.PID)
		assert.NotEmpty(t, process.Command)
	}
}
