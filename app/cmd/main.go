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

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.qbee.io/useraudit/app/audit"
	"go.qbee.io/useraudit/app/config"
	"go.qbee.io/useraudit/app/log"
	"go.qbee.io/useraudit/app/output"
	"go.qbee.io/useraudit/app/report"
	"go.qbee.io/useraudit/app/utils/env"
	"go.qbee.io/useraudit/app/utils/flags"
)

const (
	mainUserOption     = "user"
	mainJSONOption     = "json"
	mainOutputOption   = "output"
	mainConfigOption   = "config"
	mainLogLevelOption = "log-level"
)

// Exit codes of the command.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitUserNotFound = 2
)

var Main = flags.Command{
	Name:        "useraudit",
	Description: "Local account security audit. Reports login history, privileges, SSH keys, home directory, sessions, processes and failed logins of accounts.",
	Options: []flags.Option{
		{
			Name:  mainUserOption,
			Short: "u",
			Help:  "Audit only the named account.",
		},
		{
			Name:  mainJSONOption,
			Short: "j",
			Help:  "Render report as JSON.",
			Flag:  flags.FlagSet,
		},
		{
			Name:  mainOutputOption,
			Short: "o",
			Help:  "Write report to the file instead of standard output.",
		},
		{
			Name:  mainConfigOption,
			Short: "c",
			Help:  fmt.Sprintf("Configuration file (%s overrides the default %s).", env.ConfigFile, config.DefaultFilePath),
		},
		{
			Name:    mainLogLevelOption,
			Short:   "l",
			Help:    "Logging level: DEBUG, INFO, WARNING or ERROR.",
			Default: "WARNING",
		},
	},
	Target: func(opts flags.Options) error {
		username, userSelected := opts[mainUserOption]
		if userSelected && strings.TrimSpace(username) == "" {
			return fmt.Errorf("%w: --%s requires an account name", flags.ErrUsage, mainUserOption)
		}

		cfg, err := loadConfig(opts)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		caps := audit.DetectCapabilities(cfg)

		var rep *audit.Report
		if rep, err = audit.Run(ctx, audit.NewEnv(caps, cfg), username); err != nil {
			return err
		}

		return publishReport(ctx, rep, opts, os.FileMode(cfg.OutputMode))
	},
}

// publishReport renders report to the selected output.
// The output is not committed when ctx is cancelled before rendering completes.
func publishReport(ctx context.Context, rep *audit.Report, opts flags.Options, mode os.FileMode) error {
	sink, err := output.Open(opts[mainOutputOption], mode)
	if err != nil {
		return err
	}
	defer sink.Close()

	if opts.IsSet(mainJSONOption) {
		err = report.JSON(sink, rep)
	} else {
		styled := sink.IsTerminal() && os.Getenv("NO_COLOR") == ""
		err = report.Text(sink, rep, report.TextOptions{Styled: styled})
	}
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return fmt.Errorf("audit interrupted: %w", err)
	}

	return sink.Commit()
}

// loadConfig sets log level and loads audit configuration based on provided command-line options.
// Configuration file set explicitly (with an option or environment variable) must exist.
func loadConfig(opts flags.Options) (*config.Config, error) {
	level, err := log.ParseLevel(opts[mainLogLevelOption])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", flags.ErrUsage, err)
	}

	log.SetLevel(level)

	configFile := opts[mainConfigOption]
	if configFile == "" {
		configFile = env.Get(env.ConfigFile, "")
	}

	if configFile == "" {
		return config.Load(config.DefaultFilePath, false)
	}

	return config.Load(configFile, true)
}

// ExitCode returns process exit code for the result of Main command.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, audit.ErrUserNotFound):
		return ExitUserNotFound
	default:
		return ExitFailure
	}
}
