package domain

// CommandResult is the uniform outcome of every execution path. The host
// consumes it once and discards it; the core never persists results.
type CommandResult struct {
	// Output is the text to display; may be empty.
	Output string
	// ExitCode is 0 on success, 1 on failure.
	ExitCode int
	// DurationMS is wall-clock time spent executing, measured on failure too.
	DurationMS int64
	// Err is a human-readable cause, set only when ExitCode is 1.
	Err string
}

// Failed reports whether the command ended with a non-zero exit code.
func (r CommandResult) Failed() bool {
	return r.ExitCode != 0
}

// RunResult wraps the program-execution capability's response.
type RunResult struct {
	Output      string
	Success     bool
	Explanation string
}

// ChatContext carries session context alongside a natural-language request.
type ChatContext struct {
	WorkingDirectory string
	// Context names the surface the request originates from; the terminal
	// always sends "terminal".
	Context string
}
