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
	"time"

	"go.qbee.io/useraudit/app/config"
	"go.qbee.io/useraudit/app/utils"
)

// CommandRunner executes a command and returns its standard output.
type CommandRunner func(ctx context.Context, cmd []string) ([]byte, error)

// Env is the read-only environment shared by all collectors of a run.
type Env struct {
	Capabilities *Capabilities
	Config       *config.Config

	// RunCommand executes external tools. Each invocation is bounded by Config.CollectorTimeout.
	RunCommand CommandRunner

	// Now returns current time.
	Now func() time.Time
}

// NewEnv returns Env running real system commands.
func NewEnv(caps *Capabilities, cfg *config.Config) *Env {
	return &Env{
		Capabilities: caps,
		Config:       cfg,
		RunCommand:   utils.RunCommand,
		Now:          time.Now,
	}
}

// run executes an available source's command with a collector timeout.
func (env *Env) run(ctx context.Context, source Source, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, env.Config.CollectorTimeout.Duration)
	defer cancel()

	cmd := append([]string{env.Capabilities.Get(source).Location}, args...)

	return env.RunCommand(ctx, cmd)
}
