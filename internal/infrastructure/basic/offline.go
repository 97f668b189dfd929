package basic

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
)

// OfflineRunner executes a minimal slice of BASIC locally: PRINT and REM.
// It exists so `run` keeps working when no emulator bridge is reachable;
// anything beyond that slice reports a syntax error the way the machine
// would.
type OfflineRunner struct{}

// NewOfflineRunner builds the fallback runner.
func NewOfflineRunner() *OfflineRunner {
	return &OfflineRunner{}
}

// Run implements ports.ProgramRunner.
func (r *OfflineRunner) Run(_ context.Context, code string) (domain.RunResult, error) {
	var out []string

	for _, line := range splitStatements(code) {
		stmt := stripLineNumber(line)
		if stmt == "" {
			continue
		}

		keyword, rest := splitKeyword(stmt)
		switch keyword {
		case "PRINT":
			out = append(out, printArgument(rest))
		case "REM":
			// Comment.
		case "END":
			return result(out, true), nil
		default:
			out = append(out, fmt.Sprintf("?SYNTAX ERROR IN %s", stmt))
			return result(out, false), nil
		}
	}

	return result(out, true), nil
}

func result(lines []string, success bool) domain.RunResult {
	return domain.RunResult{
		Output:      strings.Join(lines, "\n"),
		Success:     success,
		Explanation: "Executed locally; no emulator bridge configured.",
	}
}

// splitStatements accepts newline-separated programs as well as one-liners
// chained with ":".
func splitStatements(code string) []string {
	var stmts []string
	for _, line := range strings.Split(code, "\n") {
		for _, stmt := range strings.Split(line, ":") {
			stmts = append(stmts, strings.TrimSpace(stmt))
		}
	}
	return stmts
}

func stripLineNumber(stmt string) string {
	i := 0
	for i < len(stmt) && stmt[i] >= '0' && stmt[i] <= '9' {
		i++
	}
	return strings.TrimSpace(stmt[i:])
}

func splitKeyword(stmt string) (string, string) {
	parts := strings.SplitN(stmt, " ", 2)
	keyword := strings.ToUpper(parts[0])
	if len(parts) == 1 {
		return keyword, ""
	}
	return keyword, strings.TrimSpace(parts[1])
}

func printArgument(rest string) string {
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "\"") && strings.HasSuffix(rest, "\"") && len(rest) >= 2 {
		return rest[1 : len(rest)-1]
	}
	return rest
}

var _ ports.ProgramRunner = (*OfflineRunner)(nil)
