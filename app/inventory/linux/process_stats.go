package linux

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTicks is the kernel USER_HZ value, used by /proc/*/stat time fields.
// sysconf(_SC_CLK_TCK) would require CGO; USER_HZ is 100 on all mainstream architectures.
const ClockTicks = 100

const (
	processStatsFieldPID               = 0
	processStatsFieldCmd               = 1
	processStatsFieldUserModeJiffies   = 13
	processStatsFieldKernelModeJiffies = 14
	processStatsFieldStartTime         = 21
)

// ProcessStats represents process stats file (/proc/*/stat).
// See `man proc` -> `/proc/[pid]/stat` section for details of the file format.
type ProcessStats []string

// NewProcessStats parses contents of /proc/[pid]/stat.
// Command name is enclosed in parentheses and may contain spaces, so it's located by the last closing parenthesis.
func NewProcessStats(line string) (ProcessStats, error) {
	openIdx := strings.Index(line, " (")
	closeIdx := strings.LastIndex(line, ")")

	if openIdx < 0 || closeIdx < openIdx {
		return nil, fmt.Errorf("invalid process stats format: %s", line)
	}

	stats := ProcessStats{line[:openIdx], line[openIdx+2 : closeIdx]}
	stats = append(stats, strings.Fields(line[closeIdx+1:])...)

	return stats, nil
}

// String returns PID of the process.
func (ps ProcessStats) String() string {
	return ps[processStatsFieldPID]
}

// PID returns process ID as integer.
func (ps ProcessStats) PID() int {
	pid, _ := strconv.Atoi(ps[processStatsFieldPID])

	return pid
}

// Command returns processes command.
func (ps ProcessStats) Command() string {
	return ps[processStatsFieldCmd]
}

// field returns numeric value of the field at idx.
func (ps ProcessStats) field(idx int, name string) (uint64, error) {
	if idx >= len(ps) {
		return 0, fmt.Errorf("missing %s for process %s", name, ps)
	}

	value, err := strconv.ParseUint(ps[idx], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s for process %s: %w", name, ps, err)
	}

	return value, nil
}

// GetJiffies returns sum of process' own user and kernel mode jiffies.
func (ps ProcessStats) GetJiffies() (uint64, error) {
	var err error
	var utime, stime uint64

	if utime, err = ps.field(processStatsFieldUserModeJiffies, "utime"); err != nil {
		return 0, err
	}

	if stime, err = ps.field(processStatsFieldKernelModeJiffies, "stime"); err != nil {
		return 0, err
	}

	return utime + stime, nil
}

// GetStartTime returns time (in jiffies) the process started after system boot.
func (ps ProcessStats) GetStartTime() (uint64, error) {
	return ps.field(processStatsFieldStartTime, "starttime")
}

// CPUPercent returns average CPU utilization over process lifetime, the way ps(1) reports %CPU.
func (ps ProcessStats) CPUPercent(uptime float64) (float64, error) {
	jiffies, err := ps.GetJiffies()
	if err != nil {
		return 0, err
	}

	var startTime uint64
	if startTime, err = ps.GetStartTime(); err != nil {
		return 0, err
	}

	elapsed := uptime - float64(startTime)/ClockTicks
	if elapsed <= 0 {
		return 0, nil
	}

	return roundPercent(float64(jiffies) / ClockTicks * 100 / elapsed), nil
}

// roundPercent rounds value to one decimal place.
func roundPercent(value float64) float64 {
	return float64(int64(value*10+0.5)) / 10
}
