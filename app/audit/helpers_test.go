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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.qbee.io/useraudit/app/config"
)

// fakeCommands maps command line (joined with spaces) to its output.
// Entries with "!" prefix are returned as errors.
type fakeCommands struct {
	mutex    sync.Mutex
	outputs  map[string]string
	executed []string
}

func (fc *fakeCommands) run(_ context.Context, cmd []string) ([]byte, error) {
	commandLine := strings.Join(cmd, " ")

	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	fc.executed = append(fc.executed, commandLine)

	output, ok := fc.outputs[commandLine]
	if !ok {
		return nil, fmt.Errorf("error running command %v: exit status 1", cmd)
	}

	if strings.HasPrefix(output, "!") {
		return nil, fmt.Errorf("error running command %v: %s", cmd, output[1:])
	}

	return []byte(output), nil
}

// testEnv returns Env with all command sources available and files placed in a temporary directory.
type testEnv struct {
	*Env
	dir      string
	commands *fakeCommands
	sources  map[Source]Capability
}

func newTestEnv(t *testing.T) *testEnv {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Paths.Passwd = filepath.Join(dir, "passwd")
	cfg.Paths.Group = filepath.Join(dir, "group")
	cfg.Paths.Sudoers = filepath.Join(dir, "sudoers")
	cfg.Paths.AuthLogs = []string{filepath.Join(dir, "auth.log")}
	cfg.Paths.Proc = filepath.Join(dir, "proc")
	cfg.CollectorTimeout = config.Duration{Duration: time.Second}

	commands := &fakeCommands{outputs: make(map[string]string)}

	sources := map[Source]Capability{
		SourceLastlog: {Available: true, Location: "lastlog"},
		SourceLast:    {Available: true, Location: "last"},
		SourcePasswd:  {Available: true, Location: "passwd"},
		SourceChage:   {Available: true, Location: "chage"},
		SourceWho:     {Available: true, Location: "who"},
		SourceLastb:   {Available: true, Location: "lastb"},
		SourceGroup:   {Available: true, Location: cfg.Paths.Group},
		SourceSudoers: {Available: true, Location: cfg.Paths.Sudoers},
		SourceAuthLog: {Available: true, Location: cfg.Paths.AuthLogs[0]},
		SourceProcFS:  {Available: true, Location: cfg.Paths.Proc},
	}

	te := &testEnv{
		dir:      dir,
		commands: commands,
		sources:  sources,
	}

	te.Env = &Env{
		Capabilities: NewCapabilities(sources),
		Config:       cfg,
		RunCommand:   commands.run,
		Now: func() time.Time {
			return time.Date(2026, 10, 16, 9, 30, 15, 123, time.UTC)
		},
	}

	writeTestFile(t, cfg.Paths.Group, "")
	writeTestFile(t, cfg.Paths.Sudoers, "")
	writeTestFile(t, cfg.Paths.AuthLogs[0], "")
	writeTestFile(t, filepath.Join(cfg.Paths.Proc, "meminfo"), "MemTotal: 1000000 kB\n")
	writeTestFile(t, filepath.Join(cfg.Paths.Proc, "uptime"), "100.00 50.00\n")

	return te
}

// disable marks source as unavailable.
func (te *testEnv) disable(source Source, reason string) {
	te.sources[source] = Capability{Reason: reason}
	te.Capabilities = NewCapabilities(te.sources)
}

// output registers output of a command line.
func (te *testEnv) output(commandLine, output string) {
	te.commands.outputs[commandLine] = output
}

// home creates home directory for the user with the mode.
func (te *testEnv) home(t *testing.T, name string, mode os.FileMode) string {
	homeDir := filepath.Join(te.dir, "home", name)
	require.NoError(t, os.MkdirAll(homeDir, 0700))
	require.NoError(t, os.Chmod(homeDir, mode))
	return homeDir
}

func writeTestFile(t *testing.T, filePath, contents string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0700))
	require.NoError(t, os.WriteFile(filePath, []byte(contents), 0600))
}
