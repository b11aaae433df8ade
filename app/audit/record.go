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
	"time"

	"go.qbee.io/useraudit/app/inventory"
)

// LoginHistory contains raw login history of an account.
type LoginHistory struct {
	// LastLogin as reported by lastlog.
	LastLogin Field[string]

	// LastSuccessfulLogin as reported by last.
	LastSuccessfulLogin Field[string]
}

// PasswordStatus contains raw password and aging status of an account.
type PasswordStatus struct {
	// Status as reported by `passwd -S`.
	Status Field[string]

	// Expiry as reported by `chage -l`.
	Expiry Field[string]
}

// PrivilegeInfo is a best-effort privilege signal, not an authoritative privilege oracle.
type PrivilegeInfo struct {
	// PrivilegedGroupMember is true when account belongs to any configured privileged group.
	PrivilegedGroupMember Field[bool]

	// PrivilegedGroups lists names of privileged groups the account belongs to.
	PrivilegedGroups Field[[]string]

	// SudoersTextMatch is true when a non-comment sudoers line mentions the account name as a whole word.
	SudoersTextMatch Field[bool]
}

// SSHKeyInfo describes account's authorized_keys file.
type SSHKeyInfo struct {
	// KeyCount is a number of non-blank lines in the file.
	KeyCount int

	// LastModified in RFC 3339 UTC format, empty when the file doesn't exist.
	LastModified string
}

// HomeDirAudit describes ownership and permissions of account's home directory.
// All fields are empty when Exists is false.
type HomeDirAudit struct {
	Exists        bool
	Owner         string
	Mode          string
	WorldWritable bool
	OwnerIsRoot   bool
}

// Record is the complete evidence collected for a single account.
type Record struct {
	Identity  inventory.User
	Generated time.Time
	Host      string

	Login     LoginHistory
	Password  PasswordStatus
	Privilege PrivilegeInfo
	SSHKeys   Field[SSHKeyInfo]
	Home      Field[HomeDirAudit]

	// Sessions are raw active session lines. Available empty list means no active sessions.
	Sessions Field[[]string]

	// Processes are top resident memory consumers owned by the account.
	Processes Field[[]inventory.Process]

	// FailedLogins are raw failed login entries, most recent first.
	FailedLogins Field[[]string]
}

// Report is a result of a single audit run.
type Report struct {
	Generated time.Time
	Host      string

	// Records in the order of selected users.
	Records []Record
}
