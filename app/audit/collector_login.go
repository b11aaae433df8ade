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
	"bytes"
	"context"
	"strings"

	"go.qbee.io/useraudit/app/inventory"
)

// collectLoginHistory reads last login records from lastlog and last.
func collectLoginHistory(ctx context.Context, env *Env, user inventory.User) LoginHistory {
	return LoginHistory{
		LastLogin:           lastlogEntry(ctx, env, user),
		LastSuccessfulLogin: lastEntry(ctx, env, user),
	}
}

// lastlogEntry returns the record line following lastlog's header.
func lastlogEntry(ctx context.Context, env *Env, user inventory.User) Field[string] {
	if capability := env.Capabilities.Get(SourceLastlog); !capability.Available {
		return Unavailable[string](capability.Reason)
	}

	output, err := env.run(ctx, SourceLastlog, "-u", user.Name)
	if err != nil {
		return Unavailable[string](err.Error())
	}

	lines := nonEmptyLines(output)
	if len(lines) > 0 && strings.HasPrefix(lines[0], "Username") {
		lines = lines[1:]
	}

	if len(lines) == 0 {
		return Available("")
	}

	return Available(lines[len(lines)-1])
}

// lastEntry returns the most recent wtmp record of the user.
func lastEntry(ctx context.Context, env *Env, user inventory.User) Field[string] {
	if capability := env.Capabilities.Get(SourceLast); !capability.Available {
		return Unavailable[string](capability.Reason)
	}

	output, err := env.run(ctx, SourceLast, "-F", "-n", "1", user.Name)
	if err != nil {
		return Unavailable[string](err.Error())
	}

	for _, line := range nonEmptyLines(output) {
		if strings.HasPrefix(line, "wtmp begins") {
			continue
		}

		return Available(line)
	}

	return Available("")
}

// nonEmptyLines splits output into trimmed lines, skipping blank ones.
func nonEmptyLines(output []byte) []string {
	lines := make([]string, 0)

	for _, line := range bytes.Split(output, []byte("\n")) {
		if line = bytes.TrimSpace(line); len(line) > 0 {
			lines = append(lines, string(line))
		}
	}

	return lines
}
