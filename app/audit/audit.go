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
	"time"

	"golang.org/x/sync/errgroup"

	"go.qbee.io/useraudit/app/inventory"
	"go.qbee.io/useraudit/app/log"
)

// Run audits selected accounts and returns a report with records in selection order.
// Users are processed by a bounded pool of Config.Workers goroutines.
// Interrupted runs return an error instead of a partial report.
func Run(ctx context.Context, env *Env, username string) (*Report, error) {
	users, err := inventory.GetUsersFromPasswd(env.Config.Paths.Passwd)
	if err != nil {
		return nil, fmt.Errorf("error reading account database: %w", err)
	}

	var selected []inventory.User
	selected, err = SelectUsers(users, Selection{
		Username: username,
		MinUID:   env.Config.MinUID,
		Exclude:  env.Config.ExcludeUsers,
	})
	if err != nil {
		return nil, err
	}

	host, err := inventory.HostName()
	if err != nil {
		log.Warnf("cannot determine host name: %v", err)
		host = "unknown"
	}

	report := &Report{
		Generated: env.Now().UTC().Truncate(time.Second),
		Host:      host,
		Records:   make([]Record, len(selected)),
	}

	log.Infof("auditing %d account(s) on %s", len(selected), host)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(env.Config.Workers)

	for i, user := range selected {
		i, user := i, user
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			log.Debugf("auditing user %s", user.Name)

			report.Records[i] = BuildRecord(groupCtx, env, user, report.Generated, host)

			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return nil, fmt.Errorf("audit interrupted: %w", err)
	}

	// collectors degrade on cancellation instead of failing, so check once more
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("audit interrupted: %w", err)
	}

	return report, nil
}
