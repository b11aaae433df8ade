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
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"go.qbee.io/useraudit/app/inventory/linux"
	"go.qbee.io/useraudit/app/log"
)

// CollectUserProcesses returns up to limit processes owned by uid, ordered by descending resident memory.
// Based on https://www.kernel.org/doc/html/latest/filesystems/proc.html#id10
func CollectUserProcesses(procFS string, uid, limit int) (*Processes, error) {
	runningProcesses, err := linux.ListRunningProcesses(procFS)
	if err != nil {
		return nil, fmt.Errorf("error listing running processes: %w", err)
	}

	var memInfo *linux.MemInfo
	if memInfo, err = linux.GetMemInfo(procFS); err != nil {
		return nil, err
	}

	var uptime float64
	if uptime, err = linux.GetUptime(procFS); err != nil {
		return nil, err
	}

	processes := &Processes{
		Processes: make([]Process, 0),
	}

	for _, pid := range runningProcesses {
		var process *Process
		if process, err = getProcess(procFS, pid, uid, memInfo, uptime); err != nil {
			// processes may terminate while we are scanning the process table
			if !errors.Is(err, fs.ErrNotExist) {
				log.Debugf("skipping process %s: %v", pid, err)
			}
			continue
		}

		if process != nil {
			processes.Processes = append(processes.Processes, *process)
		}
	}

	sort.SliceStable(processes.Processes, func(i, j int) bool {
		a, b := processes.Processes[i], processes.Processes[j]
		if a.ResidentMemory != b.ResidentMemory {
			return a.ResidentMemory > b.ResidentMemory
		}
		return a.PID < b.PID
	})

	if limit >= 0 && len(processes.Processes) > limit {
		processes.Processes = processes.Processes[:limit]
	}

	return processes, nil
}

// getProcess returns Process for pid, or nil if the process is not owned by uid.
func getProcess(procFS, pid string, uid int, memInfo *linux.MemInfo, uptime float64) (*Process, error) {
	processStatus, err := linux.GetProcessStatus(procFS, pid)
	if err != nil {
		return nil, err
	}

	if processStatus.EffectiveUID != uid {
		return nil, nil
	}

	var processStats linux.ProcessStats
	if processStats, err = linux.GetProcessStats(procFS, pid); err != nil {
		return nil, err
	}

	var cpu float64
	if cpu, err = processStats.CPUPercent(uptime); err != nil {
		return nil, err
	}

	var command string
	if command, err = linux.GetProcessCommand(procFS, pid); err != nil {
		return nil, err
	}

	// kernel threads and zombies have empty command line
	if command == "" {
		command = "[" + processStats.Command() + "]"
	}

	process := &Process{
		PID:            processStats.PID(),
		UID:            processStatus.EffectiveUID,
		Memory:         float64(processStatus.Memory*1000/memInfo.TotalMemory) / 10.0,
		CPU:            cpu,
		ResidentMemory: processStatus.Memory,
		Command:        command,
	}

	return process, nil
}
