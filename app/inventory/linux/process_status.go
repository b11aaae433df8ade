//go:build linux

package linux

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.qbee.io/useraudit/app/utils"
)

// ProcessStatus contains ownership and memory details of a process.
type ProcessStatus struct {
	// EffectiveUID of the process owner.
	EffectiveUID int

	// Memory is resident set size in Kibibytes.
	Memory uint64
}

// GetProcessStatus returns ProcessStatus based on /proc/*/status.
// See `man proc` -> `/proc/[pid]/status section for details on the file format.
func GetProcessStatus(procFS, pid string) (*ProcessStatus, error) {
	statusFilePath := filepath.Join(procFS, pid, "status")
	processStatus := &ProcessStatus{EffectiveUID: -1}

	err := utils.ForLinesInFile(statusFilePath, func(line string) error {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil
		}

		switch fields[0] {
		case "Uid:":
			if len(fields) < 3 {
				return fmt.Errorf("unsupported file format")
			}

			effectiveUID, err := strconv.Atoi(fields[2])
			if err != nil {
				return fmt.Errorf("invalid effective UID: %w", err)
			}

			processStatus.EffectiveUID = effectiveUID
		case "RssAnon:", "RssFile:", "RssShmem:":
			if len(fields) != 3 || fields[2] != "kB" {
				return fmt.Errorf("unsupported file format")
			}

			value, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return err
			}

			processStatus.Memory += value
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if processStatus.EffectiveUID < 0 {
		return nil, fmt.Errorf("missing Uid in %s", statusFilePath)
	}

	return processStatus, nil
}
