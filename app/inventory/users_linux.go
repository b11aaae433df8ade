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
	"strconv"
	"strings"

	"go.qbee.io/useraudit/app/utils"
)

// skipDatabaseLine returns true for blank lines, comments and NIS compat entries.
func skipDatabaseLine(line string) bool {
	line = strings.TrimSpace(line)

	return line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-")
}

// GetUsersFromPasswd returns users based on passwd file.
func GetUsersFromPasswd(passwdFilePath string) ([]User, error) {
	users := make([]User, 0)

	err := utils.ForLinesInFile(passwdFilePath, func(line string) error {
		if skipDatabaseLine(line) {
			return nil
		}

		fields := strings.Split(line, ":")

		if len(fields) < 7 {
			return nil
		}

		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid UID for %s", fields[0])
		}

		var gid int
		if gid, err = strconv.Atoi(fields[3]); err != nil {
			return fmt.Errorf("invalid GID for %s", fields[0])
		}

		user := User{
			Name:          fields[0],
			UID:           uid,
			GID:           gid,
			GECOS:         fields[4],
			HomeDirectory: fields[5],
			Shell:         fields[6],
		}

		users = append(users, user)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// GetGroupsFromFile returns groups based on group file.
func GetGroupsFromFile(groupFilePath string) ([]Group, error) {
	groups := make([]Group, 0)

	err := utils.ForLinesInFile(groupFilePath, func(line string) error {
		if skipDatabaseLine(line) {
			return nil
		}

		fields := strings.Split(line, ":")

		if len(fields) < 4 {
			return nil
		}

		gid, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid GID for group %s", fields[0])
		}

		group := Group{
			Name:    fields[0],
			GID:     gid,
			Members: make([]string, 0),
		}

		for _, member := range strings.Split(fields[3], ",") {
			if member = strings.TrimSpace(member); member != "" {
				group.Members = append(group.Members, member)
			}
		}

		groups = append(groups, group)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return groups, nil
}
