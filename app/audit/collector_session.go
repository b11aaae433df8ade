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
	"strings"

	"go.qbee.io/useraudit/app/inventory"
)

// collectSessions lists active sessions of the user from the session table.
// An available empty list means the user has no active sessions.
func collectSessions(ctx context.Context, env *Env, user inventory.User) Field[[]string] {
	if capability := env.Capabilities.Get(SourceWho); !capability.Available {
		return Unavailable[[]string](capability.Reason)
	}

	output, err := env.run(ctx, SourceWho)
	if err != nil {
		return Unavailable[[]string](err.Error())
	}

	sessions := make([]string, 0)

	for _, line := range nonEmptyLines(output) {
		if fields := strings.Fields(line); fields[0] == user.Name {
			sessions = append(sessions, line)
		}
	}

	return Available(sessions)
}
