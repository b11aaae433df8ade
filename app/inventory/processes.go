package inventory

// Processes is a list of running processes.
type Processes struct {
	Processes []Process
}

// Process describes a running process.
type Process struct {
	// PID - process ID.
	PID int

	// UID - effective owner of the process.
	UID int

	// Memory - memory usage in percent.
	Memory float64

	// CPU - CPU usage in percent, averaged over the process lifetime.
	CPU float64

	// ResidentMemory - resident set size in Kibibytes.
	ResidentMemory uint64

	// Command - program command.
	Command string
}
