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
	"fmt"
	"sort"

	"go.qbee.io/useraudit/app/config"
	"go.qbee.io/useraudit/app/log"
	"go.qbee.io/useraudit/app/utils"
)

// Source identifies an optional backing data source.
type Source string

// Optional data sources probed at the start of a run.
const (
	SourceLastlog Source = "lastlog"
	SourceLast    Source = "last"
	SourcePasswd  Source = "passwd"
	SourceChage   Source = "chage"
	SourceWho     Source = "who"
	SourceProcFS  Source = "procfs"
	SourceLastb   Source = "lastb"
	SourceAuthLog Source = "authlog"
	SourceSudoers Source = "sudoers"
	SourceGroup   Source = "group"
)

// Capability describes presence of a single data source.
type Capability struct {
	// Available is true when the source can be used.
	Available bool

	// Location of the source: executable or file path.
	Location string

	// Reason why the source is not available.
	Reason string
}

// Capabilities is an immutable set of data sources detected once per run.
type Capabilities struct {
	sources map[Source]Capability
}

// NewCapabilities returns Capabilities with a copy of provided sources.
func NewCapabilities(sources map[Source]Capability) *Capabilities {
	caps := &Capabilities{sources: make(map[Source]Capability, len(sources))}

	for source, capability := range sources {
		caps.sources[source] = capability
	}

	return caps
}

// Get returns capability of the source. Unknown sources are reported as not available.
func (caps *Capabilities) Get(source Source) Capability {
	capability, ok := caps.sources[source]
	if !ok {
		return Capability{Reason: fmt.Sprintf("%s was not probed", source)}
	}

	return capability
}

// Has returns true if the source is available.
func (caps *Capabilities) Has(source Source) bool {
	return caps.Get(source).Available
}

// Sources returns probed sources sorted by name.
func (caps *Capabilities) Sources() []Source {
	sources := make([]Source, 0, len(caps.sources))
	for source := range caps.sources {
		sources = append(sources, source)
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	return sources
}

// Prober checks presence of executables and files.
type Prober struct {
	LookupCommand func(name string) (string, error)
	IsReadable    func(path string) bool
}

// DetectCapabilities probes all optional data sources using the system prober.
func DetectCapabilities(cfg *config.Config) *Capabilities {
	return Prober{
		LookupCommand: utils.LookupCommand,
		IsReadable:    utils.IsReadable,
	}.Detect(cfg)
}

// Detect probes all optional data sources.
func (prober Prober) Detect(cfg *config.Config) *Capabilities {
	sources := map[Source]Capability{
		SourceLastlog: prober.command("lastlog"),
		SourceLast:    prober.command("last"),
		SourcePasswd:  prober.command("passwd"),
		SourceChage:   prober.command("chage"),
		SourceWho:     prober.command("who"),
		SourceProcFS:  prober.file(cfg.Paths.Proc),
		SourceSudoers: prober.file(cfg.Paths.Sudoers),
		SourceGroup:   prober.file(cfg.Paths.Group),
		SourceAuthLog: prober.firstFile(cfg.Paths.AuthLogs),
	}

	lastb := prober.command("lastb")
	if lastb.Available {
		if btmp := prober.file(cfg.Paths.Btmp); !btmp.Available {
			lastb = Capability{Reason: btmp.Reason}
		}
	}
	sources[SourceLastb] = lastb

	caps := NewCapabilities(sources)

	for _, source := range caps.Sources() {
		if capability := caps.Get(source); !capability.Available {
			log.Warnf("%s source unavailable: %s", source, capability.Reason)
		} else {
			log.Debugf("%s source available at %s", source, capability.Location)
		}
	}

	return caps
}

func (prober Prober) command(name string) Capability {
	path, err := prober.LookupCommand(name)
	if err != nil {
		return Capability{Reason: err.Error()}
	}

	return Capability{Available: true, Location: path}
}

func (prober Prober) file(path string) Capability {
	if path == "" {
		return Capability{Reason: "path not configured"}
	}

	if !prober.IsReadable(path) {
		return Capability{Reason: fmt.Sprintf("%s is missing or not readable", path)}
	}

	return Capability{Available: true, Location: path}
}

func (prober Prober) firstFile(paths []string) Capability {
	for _, path := range paths {
		if capability := prober.file(path); capability.Available {
			return capability
		}
	}

	return Capability{Reason: fmt.Sprintf("none of %v is readable", paths)}
}
