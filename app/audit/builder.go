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

	"golang.org/x/sync/errgroup"

	"go.qbee.io/useraudit/app/inventory"
	"go.qbee.io/useraudit/app/log"
)

// BuildRecord runs all collectors for the user and merges their results into a Record.
// Collectors are independent and read-only, so they run concurrently. A failing collector
// degrades only its own fields.
func BuildRecord(ctx context.Context, env *Env, user inventory.User, generated time.Time, host string) Record {
	record := Record{
		Identity:  user,
		Generated: generated,
		Host:      host,
	}

	var group errgroup.Group

	group.Go(func() error {
		record.Login = collectLoginHistory(ctx, env, user)
		return nil
	})

	group.Go(func() error {
		record.Password = collectPasswordStatus(ctx, env, user)
		return nil
	})

	group.Go(func() error {
		record.Privilege = collectPrivilege(ctx, env, user)
		return nil
	})

	group.Go(func() error {
		record.SSHKeys = collectSSHKeys(ctx, env, user)
		return nil
	})

	group.Go(func() error {
		record.Home = collectHomeDir(ctx, env, user)
		return nil
	})

	group.Go(func() error {
		record.Sessions = collectSessions(ctx, env, user)
		return nil
	})

	group.Go(func() error {
		record.Processes = collectProcesses(ctx, env, user)
		return nil
	})

	group.Go(func() error {
		record.FailedLogins = collectFailedLogins(ctx, env, user)
		return nil
	})

	_ = group.Wait()

	logUnavailable(user.Name, record)

	return record
}

// logUnavailable reports degraded fields of the record at DEBUG level.
func logUnavailable(username string, record Record) {
	fields := []struct {
		name   string
		reason string
		ok     bool
	}{
		{"last_login", record.Login.LastLogin.Reason(), record.Login.LastLogin.IsAvailable()},
		{"last_successful_login", record.Login.LastSuccessfulLogin.Reason(), record.Login.LastSuccessfulLogin.IsAvailable()},
		{"password_status", record.Password.Status.Reason(), record.Password.Status.IsAvailable()},
		{"password_expiry", record.Password.Expiry.Reason(), record.Password.Expiry.IsAvailable()},
		{"is_privileged_group_member", record.Privilege.PrivilegedGroupMember.Reason(), record.Privilege.PrivilegedGroupMember.IsAvailable()},
		{"has_sudoers_text_match", record.Privilege.SudoersTextMatch.Reason(), record.Privilege.SudoersTextMatch.IsAvailable()},
		{"ssh_keys", record.SSHKeys.Reason(), record.SSHKeys.IsAvailable()},
		{"home", record.Home.Reason(), record.Home.IsAvailable()},
		{"active_sessions", record.Sessions.Reason(), record.Sessions.IsAvailable()},
		{"top_processes", record.Processes.Reason(), record.Processes.IsAvailable()},
		{"failed_logins", record.FailedLogins.Reason(), record.FailedLogins.IsAvailable()},
	}

	for _, field := range fields {
		if !field.ok {
			log.Debugf("user %s: %s unavailable: %s", username, field.name, field.reason)
		}
	}
}
