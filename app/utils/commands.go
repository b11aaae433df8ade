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
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"go.qbee.io/useraudit/app/log"
)

// commandWaitDelay is how long a cancelled command may keep its output pipes open.
const commandWaitDelay = 500 * time.Millisecond

// ErrCommandNotFound is returned when a command executable cannot be located.
var ErrCommandNotFound = errors.New("command not found")

// RunCommand runs a command and returns its output.
// Child's stderr is forwarded to the DEBUG log. When ctx is done, the whole process group is killed.
func RunCommand(ctx context.Context, cmd []string) ([]byte, error) {
	if len(cmd) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	command := exec.CommandContext(ctx, cmd[0], cmd[1:]...)

	command.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGINT,
	}

	command.Cancel = func() error {
		return syscall.Kill(-command.Process.Pid, syscall.SIGKILL)
	}
	command.WaitDelay = commandWaitDelay

	command.Stderr = log.NewWriter(log.DEBUG, cmd[0]+": ")

	output, err := command.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("error running command %v: %w", cmd, ErrCommandNotFound)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("error running command %v: %w (%w)", cmd, err, ctxErr)
		}

		return output, fmt.Errorf("error running command %v: %w", cmd, err)
	}

	return output, nil
}

// LookupCommand returns absolute path of the named executable or ErrCommandNotFound.
func LookupCommand(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrCommandNotFound)
	}

	return path, nil
}
