package domain

// ProbeStatus indicates doctor probe outcomes.
type ProbeStatus string

const (
	ProbeOK    ProbeStatus = "ok"
	ProbeWarn  ProbeStatus = "warn"
	ProbeError ProbeStatus = "error"
)

// CommandResult is the raw outcome of one external command.
// ExitCode is -1 when the command could not be started.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ProbeResult captures a single diagnostic probe.
type ProbeResult struct {
	Name    string
	Status  ProbeStatus
	Summary string
	Command string
	Exit    int
	Items   []string
	// Err is the start failure, or ErrProcessExit for a non-zero exit.
	Err error
}

// Success reports whether the probed tool responded with exit code zero.
func (p ProbeResult) Success() bool {
	return p.Exit == 0
}

// DoctorReport aggregates probes in execution order.
type DoctorReport struct {
	Probes []ProbeResult
}
