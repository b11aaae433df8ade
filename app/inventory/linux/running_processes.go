//go:build linux

package linux

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.qbee.io/useraudit/app/utils"
)

// ListRunningProcesses returns a list of PIDs of currently running processes.
func ListRunningProcesses(procFS string) ([]string, error) {
	dirNames, err := utils.ListDirectory(procFS)
	if err != nil {
		return nil, err
	}

	// return only directories with numeric filename
	result := make([]string, 0, len(dirNames))
	for _, dirName := range dirNames {
		if dirName[0] < '0' || dirName[0] > '9' {
			continue
		}

		result = append(result, dirName)
	}

	return result, nil
}

// GetProcessStats reads and parses /proc/[pid]/stat.
func GetProcessStats(procFS, pid string) (ProcessStats, error) {
	statFilePath := filepath.Join(procFS, pid, "stat")

	data, err := os.ReadFile(statFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", statFilePath, err)
	}

	return NewProcessStats(strings.TrimSpace(string(data)))
}

// GetProcessCommand returns a command used to start the process.
// Kernel threads have no command line, in which case an empty string is returned.
func GetProcessCommand(procFS, pid string) (string, error) {
	cmdLinePath := filepath.Join(procFS, pid, "cmdline")

	cmdLineBytes, err := os.ReadFile(cmdLinePath)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", cmdLinePath, err)
	}

	// cleanup the command line and replace null-bytes with spaces
	cmdLine := strings.TrimSpace(strings.ReplaceAll(string(cmdLineBytes), "\000", " "))

	return cmdLine, nil
}
