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
	"errors"
	"fmt"
	"sort"

	"go.qbee.io/useraudit/app/inventory"
)

// ErrUserNotFound is returned when explicitly requested account doesn't exist.
var ErrUserNotFound = errors.New("user not found")

// Selection defines which accounts are audited.
type Selection struct {
	// Username restricts the audit to a single account. Empty means all human accounts and root.
	Username string

	// MinUID is the lowest uid of a human account.
	MinUID int

	// Exclude lists accounts skipped when auditing all accounts.
	Exclude []string
}

// SelectUsers returns accounts to audit, ordered by username.
func SelectUsers(users []inventory.User, selection Selection) ([]inventory.User, error) {
	if selection.Username != "" {
		for _, user := range users {
			if user.Name == selection.Username {
				return []inventory.User{user}, nil
			}
		}

		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, selection.Username)
	}

	excluded := make(map[string]bool, len(selection.Exclude))
	for _, name := range selection.Exclude {
		excluded[name] = true
	}

	seen := make(map[string]bool)
	selected := make([]inventory.User, 0)

	for _, user := range users {
		if seen[user.Name] || excluded[user.Name] {
			continue
		}

		if user.UID != 0 && user.UID < selection.MinUID {
			continue
		}

		seen[user.Name] = true
		selected = append(selected, user)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Name < selected[j].Name
	})

	return selected, nil
}
