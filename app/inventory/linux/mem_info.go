//go:build linux

package linux

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"go.qbee.io/useraudit/app/utils"
)

// MemInfo provides basic information about system memory.
// See `man proc` -> `/proc/meminfo` section for details.
type MemInfo struct {
	// TotalMemory in Kibibytes
	TotalMemory uint64
}

// GetMemInfo returns basic memory information from the system.
func GetMemInfo(procFS string) (*MemInfo, error) {
	filePath := path.Join(procFS, "meminfo")

	memInfo := new(MemInfo)

	err := utils.ForLinesInFile(filePath, func(line string) error {
		var err error

		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil
		}

		switch fields[0] {
		case "MemTotal:":
			if len(fields) != 3 || fields[2] != "kB" {
				return fmt.Errorf("unsupported file format")
			}

			memInfo.TotalMemory, err = strconv.ParseUint(fields[1], 10, 64)
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	if memInfo.TotalMemory == 0 {
		return nil, fmt.Errorf("missing MemTotal in %s", filePath)
	}

	return memInfo, nil
}

// GetUptime returns number of seconds since system boot from /proc/uptime.
func GetUptime(procFS string) (float64, error) {
	filePath := path.Join(procFS, "uptime")

	var uptime float64
	var found bool

	err := utils.ForLinesInFile(filePath, func(line string) error {
		if found {
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			return fmt.Errorf("unsupported file format")
		}

		var err error
		if uptime, err = strconv.ParseFloat(fields[0], 64); err != nil {
			return fmt.Errorf("error parsing uptime: %w", err)
		}

		found = true

		return nil
	})
	if err != nil {
		return 0, err
	}

	if !found {
		return 0, fmt.Errorf("empty %s", filePath)
	}

	return uptime, nil
}
