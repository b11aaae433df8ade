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
	"strconv"
	"strings"

	"go.qbee.io/useraudit/app/inventory"
	"go.qbee.io/useraudit/app/log"
	"go.qbee.io/useraudit/app/utils"
)

// authFailureMarkers identify failed authentication entries in syslog-style auth logs.
var authFailureMarkers = []string{
	"Failed password",
	"authentication failure",
	"Invalid user",
	"FAILED LOGIN",
}

// collectFailedLogins returns the most recent failed login entries of the user, most recent first.
// The btmp database (via lastb) is preferred. Auth logs are used as a fallback.
func collectFailedLogins(ctx context.Context, env *Env, user inventory.User) Field[[]string] {
	limit := env.Config.MaxFailedLogins

	lastbReason := env.Capabilities.Get(SourceLastb).Reason

	if env.Capabilities.Has(SourceLastb) {
		entries := lastbEntries(ctx, env, user, limit)
		if entries.IsAvailable() {
			return entries
		}

		lastbReason = entries.Reason()
		log.Debugf("user %s: lastb failed, falling back to auth log: %s", user.Name, lastbReason)
	}

	if env.Capabilities.Has(SourceAuthLog) {
		return authLogEntries(env, user, limit)
	}

	return Unavailable[[]string](fmt.Sprintf("failure log unavailable: %s; %s",
		lastbReason, env.Capabilities.Get(SourceAuthLog).Reason))
}

// lastbEntries returns up to limit lines of lastb output, which lists most recent entries first.
func lastbEntries(ctx context.Context, env *Env, user inventory.User, limit int) Field[[]string] {
	output, err := env.run(ctx, SourceLastb, "-F", "-n", strconv.Itoa(limit), user.Name)
	if err != nil {
		return Unavailable[[]string](err.Error())
	}

	entries := make([]string, 0, limit)

	for _, line := range nonEmptyLines(output) {
		if strings.HasPrefix(line, "btmp begins") {
			continue
		}

		if len(entries) == limit {
			break
		}

		entries = append(entries, line)
	}

	return Available(entries)
}

// authLogEntries returns last limit failure lines mentioning the user, most recent first.
func authLogEntries(env *Env, user inventory.User, limit int) Field[[]string] {
	logFilePath := env.Capabilities.Get(SourceAuthLog).Location

	tail := utils.NewTailBuffer(limit)

	err := utils.ForLinesInFile(logFilePath, func(line string) error {
		if isAuthFailure(line) && utils.ContainsWord(line, user.Name) {
			tail.Push([]byte(line))
		}

		return nil
	})
	if err != nil {
		return Unavailable[[]string](err.Error())
	}

	lines := tail.CloseStrings()

	entries := make([]string, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		entries = append(entries, lines[i])
	}

	return Available(entries)
}

func isAuthFailure(line string) bool {
	for _, marker := range authFailureMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}

	return false
}
