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

// Package config provides runtime settings of the audit tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultFilePath is where the configuration file is looked up when none is provided.
const DefaultFilePath = "/etc/qbee/useraudit.toml"

// Paths of the system data sources consulted during an audit.
type Paths struct {
	Passwd   string   `toml:"passwd"`
	Group    string   `toml:"group"`
	Sudoers  string   `toml:"sudoers"`
	Btmp     string   `toml:"btmp"`
	AuthLogs []string `toml:"auth_logs"`
	Proc     string   `toml:"proc"`
}

// Config defines audit settings.
type Config struct {
	// PrivilegedGroups which grant administrative rights to their members.
	PrivilegedGroups []string `toml:"privileged_groups"`

	// MinUID is the lowest uid of a regular (human) account. Root is always included.
	MinUID int `toml:"min_uid"`

	// ExcludeUsers are skipped when auditing all accounts.
	ExcludeUsers []string `toml:"exclude_users"`

	// Workers is the number of accounts audited concurrently.
	Workers int `toml:"workers"`

	// CollectorTimeout bounds each external source invocation.
	CollectorTimeout Duration `toml:"collector_timeout"`

	// MaxFailedLogins is the number of most recent failed login entries kept per account.
	MaxFailedLogins int `toml:"max_failed_logins"`

	// MaxProcesses is the number of top memory consumers kept per account.
	MaxProcesses int `toml:"max_processes"`

	// OutputMode is the permission mode of report files.
	OutputMode uint32 `toml:"output_mode"`

	Paths Paths `toml:"paths"`
}

// Duration wraps time.Duration to decode TOML strings like "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns configuration used when no configuration file is present.
func Default() *Config {
	return &Config{
		PrivilegedGroups: []string{"sudo", "wheel", "admin"},
		MinUID:           1000,
		ExcludeUsers:     []string{},
		Workers:          4,
		CollectorTimeout: Duration{5 * time.Second},
		MaxFailedLogins:  20,
		MaxProcesses:     5,
		OutputMode:       0600,
		Paths: Paths{
			Passwd:   "/etc/passwd",
			Group:    "/etc/group",
			Sudoers:  "/etc/sudoers",
			Btmp:     "/var/log/btmp",
			AuthLogs: []string{"/var/log/auth.log", "/var/log/secure"},
			Proc:     "/proc",
		},
	}
}

// Load returns configuration from filePath applied over defaults.
// When required is false, a missing file results in default configuration.
func Load(filePath string, required bool) (*Config, error) {
	cfg := Default()

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return nil, fmt.Errorf("error loading config from file %s: %w", filePath, err)
	}

	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}

		return nil, fmt.Errorf("unknown config keys in %s: %s", filePath, strings.Join(keys, ", "))
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}

	return cfg, nil
}

// Validate checks configuration values.
func (cfg *Config) Validate() error {
	if cfg.MinUID < 1 {
		return fmt.Errorf("min_uid must be positive")
	}

	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	if cfg.CollectorTimeout.Duration <= 0 {
		return fmt.Errorf("collector_timeout must be positive")
	}

	if cfg.MaxFailedLogins < 0 || cfg.MaxProcesses < 0 {
		return fmt.Errorf("max_failed_logins and max_processes cannot be negative")
	}

	if cfg.OutputMode == 0 || cfg.OutputMode > 0777 {
		return fmt.Errorf("output_mode must be a permission mode between 0001 and 0777")
	}

	if cfg.Paths.Passwd == "" {
		return fmt.Errorf("paths.passwd cannot be empty")
	}

	return nil
}
