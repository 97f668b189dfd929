package interpreter

import (
	"time"

	"github.com/doeshing/retroshell/internal/domain"
)

// succeed builds a successful result, stamping elapsed wall-clock time.
func succeed(start time.Time, output string) domain.CommandResult {
	return domain.CommandResult{
		Output:     output,
		ExitCode:   0,
		DurationMS: time.Since(start).Milliseconds(),
	}
}

// fail builds a failing result. The message doubles as the error string so a
// host that only renders Err still shows the cause.
func fail(start time.Time, message string) domain.CommandResult {
	return domain.CommandResult{
		ExitCode:   1,
		DurationMS: time.Since(start).Milliseconds(),
		Err:        message,
	}
}

// recoveredMessage normalizes a recovered panic value so Err is always a
// string: error values keep their message, anything else collapses to the
// handler's fixed fallback.
func recoveredMessage(r interface{}, fallback string) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return fallback
}
