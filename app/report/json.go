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

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.qbee.io/useraudit/app/audit"
	"go.qbee.io/useraudit/app/inventory"
)

// TimestampFormat is the ISO-8601 UTC format of generation timestamps.
const TimestampFormat = "2006-01-02T15:04:05Z"

// NoneText is how an empty list of active sessions is rendered.
const NoneText = "none"

// Document is the structured representation of an audit report.
type Document struct {
	Generated string         `json:"generated"`
	Host      string         `json:"host"`
	Users     []UserDocument `json:"users"`
}

// UserDocument is the structured representation of a single account record.
// Fields of type any hold either the value or audit.UnavailableText.
type UserDocument struct {
	Username  string `json:"username"`
	UID       int    `json:"uid"`
	GID       int    `json:"gid"`
	Home      string `json:"home"`
	Shell     string `json:"shell"`
	Comment   string `json:"comment"`
	Generated string `json:"generated"`
	Host      string `json:"host"`

	LastLogin               any `json:"last_login"`
	LastSuccessfulLogin     any `json:"last_successful_login"`
	PasswordStatus          any `json:"password_status"`
	PasswordExpiry          any `json:"password_expiry"`
	IsPrivilegedGroupMember any `json:"is_privileged_group_member"`
	HasSudoersTextMatch     any `json:"has_sudoers_text_match"`
	PrivilegedGroups        any `json:"privileged_groups"`
	SSHKeyCount             any `json:"ssh_key_count"`
	SSHKeysLastModified     any `json:"ssh_keys_last_modified"`
	HomeExists              any `json:"home_exists"`
	HomeOwner               any `json:"home_owner"`
	HomeMode                any `json:"home_mode"`
	HomeWorldWritable       any `json:"home_world_writable"`
	HomeOwnerIsRoot         any `json:"home_owner_is_root"`
	ActiveSessions          any `json:"active_sessions"`
	TopProcesses            any `json:"top_processes"`
	FailedLogins            any `json:"failed_logins"`
}

// ProcessDocument is the structured representation of a process entry.
type ProcessDocument struct {
	PID     int     `json:"pid"`
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"mem"`
	RSS     uint64  `json:"rss"`
	Command string  `json:"command"`
}

// JSON writes report as an indented JSON document.
func JSON(w io.Writer, rep *audit.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(NewDocument(rep)); err != nil {
		return fmt.Errorf("error encoding report: %w", err)
	}

	return nil
}

// NewDocument converts report into its structured representation.
func NewDocument(rep *audit.Report) *Document {
	document := &Document{
		Generated: rep.Generated.UTC().Format(TimestampFormat),
		Host:      rep.Host,
		Users:     make([]UserDocument, len(rep.Records)),
	}

	for i := range rep.Records {
		document.Users[i] = newUserDocument(&rep.Records[i])
	}

	return document
}

func newUserDocument(record *audit.Record) UserDocument {
	user := record.Identity

	return UserDocument{
		Username:  user.Name,
		UID:       user.UID,
		GID:       user.GID,
		Home:      user.HomeDirectory,
		Shell:     user.Shell,
		Comment:   user.GECOS,
		Generated: record.Generated.UTC().Format(TimestampFormat),
		Host:      record.Host,

		LastLogin:               value(record.Login.LastLogin),
		LastSuccessfulLogin:     value(record.Login.LastSuccessfulLogin),
		PasswordStatus:          value(record.Password.Status),
		PasswordExpiry:          value(record.Password.Expiry),
		IsPrivilegedGroupMember: value(record.Privilege.PrivilegedGroupMember),
		HasSudoersTextMatch:     value(record.Privilege.SudoersTextMatch),
		PrivilegedGroups:        derive(record.Privilege.PrivilegedGroups, nonNil),

		SSHKeyCount:         derive(record.SSHKeys, func(keys audit.SSHKeyInfo) int { return keys.KeyCount }),
		SSHKeysLastModified: derive(record.SSHKeys, func(keys audit.SSHKeyInfo) string { return keys.LastModified }),

		HomeExists:        derive(record.Home, func(home audit.HomeDirAudit) bool { return home.Exists }),
		HomeOwner:         derive(record.Home, func(home audit.HomeDirAudit) string { return home.Owner }),
		HomeMode:          derive(record.Home, func(home audit.HomeDirAudit) string { return home.Mode }),
		HomeWorldWritable: derive(record.Home, func(home audit.HomeDirAudit) bool { return home.WorldWritable }),
		HomeOwnerIsRoot:   derive(record.Home, func(home audit.HomeDirAudit) bool { return home.OwnerIsRoot }),

		ActiveSessions: derive(record.Sessions, sessionsValue),
		TopProcesses:   derive(record.Processes, processDocuments),
		FailedLogins:   derive(record.FailedLogins, nonNil),
	}
}

// value returns field's value or the unavailable marker.
func value[T any](field audit.Field[T]) any {
	if v, ok := field.Value(); ok {
		return v
	}

	return audit.UnavailableText
}

// derive returns fn applied to field's value or the unavailable marker.
func derive[T, V any](field audit.Field[T], fn func(T) V) any {
	if v, ok := field.Value(); ok {
		return fn(v)
	}

	return audit.UnavailableText
}

// nonNil makes sure that empty lists are rendered as [] rather than null.
func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}

	return list
}

func sessionsValue(sessions []string) any {
	if len(sessions) == 0 {
		return NoneText
	}

	return sessions
}

func processDocuments(processes []inventory.Process) []ProcessDocument {
	documents := make([]ProcessDocument, len(processes))

	for i, process := range processes {
		documents[i] = ProcessDocument{
			PID:     process.PID,
			CPU:     process.CPU,
			Memory:  process.Memory,
			RSS:     process.ResidentMemory,
			Command: process.Command,
		}
	}

	return documents
}
