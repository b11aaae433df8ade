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
	"errors"
	"strings"

	"go.qbee.io/useraudit/app/inventory"
	"go.qbee.io/useraudit/app/utils"
)

// collectPrivilege derives privileged group membership and the sudoers text heuristic.
//
// The sudoers match is a plain text search in the main sudoers file. It does not resolve
// %group grants, aliases, #include/@includedir directives or negated rules.
func collectPrivilege(_ context.Context, env *Env, user inventory.User) PrivilegeInfo {
	info := PrivilegeInfo{}

	groups, err := privilegedGroups(env, user)
	if err != nil {
		info.PrivilegedGroupMember = Unavailable[bool](err.Error())
		info.PrivilegedGroups = Unavailable[[]string](err.Error())
	} else {
		info.PrivilegedGroupMember = Available(len(groups) > 0)
		info.PrivilegedGroups = Available(groups)
	}

	info.SudoersTextMatch = sudoersTextMatch(env, user)

	return info
}

// privilegedGroups returns names of configured privileged groups the user belongs to, in group file order.
func privilegedGroups(env *Env, user inventory.User) ([]string, error) {
	capability := env.Capabilities.Get(SourceGroup)
	if !capability.Available {
		return nil, errors.New(capability.Reason)
	}

	groups, err := inventory.GetGroupsFromFile(capability.Location)
	if err != nil {
		return nil, err
	}

	privileged := make(map[string]bool, len(env.Config.PrivilegedGroups))
	for _, name := range env.Config.PrivilegedGroups {
		privileged[name] = true
	}

	memberOf := make([]string, 0)
	seen := make(map[string]bool)

	for _, group := range groups {
		if !privileged[group.Name] || seen[group.Name] || !group.HasMember(user) {
			continue
		}

		seen[group.Name] = true
		memberOf = append(memberOf, group.Name)
	}

	return memberOf, nil
}

// sudoersTextMatch returns true if any non-comment sudoers line contains the username as a whole word.
func sudoersTextMatch(env *Env, user inventory.User) Field[bool] {
	capability := env.Capabilities.Get(SourceSudoers)
	if !capability.Available {
		return Unavailable[bool](capability.Reason)
	}

	match := false

	err := utils.ForLinesInFile(capability.Location, func(line string) error {
		line = strings.TrimSpace(line)

		// "#include" and "#includedir" are directives, but we don't follow them anyway
		if match || line == "" || strings.HasPrefix(line, "#") {
			return nil
		}

		match = utils.ContainsWord(line, user.Name)

		return nil
	})
	if err != nil {
		return Unavailable[bool](err.Error())
	}

	return Available(match)
}
