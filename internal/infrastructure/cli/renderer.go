package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/doeshing/retroshell/internal/domain"
)

// RenderResult prints a command result the way the terminal shows it:
// output first, failures prefixed with "Error:", and the elapsed time only
// in verbose mode.
func RenderResult(w io.Writer, res domain.CommandResult, verbose bool) {
	if res.Output != "" {
		fmt.Fprintln(w, res.Output)
	}
	if res.Failed() {
		fmt.Fprintf(w, "Error: %s\n", res.Err)
	}
	if verbose {
		fmt.Fprintf(w, "(%s)\n", time.Duration(res.DurationMS)*time.Millisecond)
	}
}
