package interpreter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
)

const executionFailedMessage = "Command execution failed"

// SystemExecutor runs commands that need the virtual filesystem or the
// program runner. It owns the session working directory, the only durable
// state the core mutates.
type SystemExecutor struct {
	fs     ports.Filesystem
	runner ports.ProgramRunner
	log    ports.Logger

	home string

	mu  sync.Mutex
	cwd string
}

// NewSystemExecutor builds an executor starting in the home directory.
func NewSystemExecutor(fs ports.Filesystem, runner ports.ProgramRunner, home string, log ports.Logger) *SystemExecutor {
	if home == "" {
		home = domain.DefaultHomeDirectory
	}
	return &SystemExecutor{fs: fs, runner: runner, log: log, home: home, cwd: home}
}

// WorkingDirectory returns the session's current directory.
func (e *SystemExecutor) WorkingDirectory() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cwd
}

// Execute runs one system command. The boolean reports whether the command
// name was recognized; unrecognized names are left for the natural-language
// path rather than treated as errors.
func (e *SystemExecutor) Execute(ctx context.Context, parsed domain.ParsedCommand) (res domain.CommandResult, handled bool) {
	name, ok := domain.LookupSystemCommand(strings.ToLower(parsed.Command))
	if !ok {
		return domain.CommandResult{}, false
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("system command panicked", nil, map[string]interface{}{"command": parsed.Command})
			res, handled = fail(start, recoveredMessage(r, executionFailedMessage)), true
		}
	}()

	switch name {
	case domain.CmdLs:
		return e.listFiles(ctx, start, parsed.Args), true
	case domain.CmdCd:
		return e.changeDirectory(start, parsed.Args), true
	case domain.CmdPwd:
		return succeed(start, e.WorkingDirectory()), true
	case domain.CmdCat:
		return e.readFile(ctx, start, parsed.Args), true
	case domain.CmdEcho:
		return succeed(start, strings.Join(parsed.Args, " ")), true
	case domain.CmdMkdir:
		if len(parsed.Args) == 0 {
			return fail(start, "mkdir: missing directory operand"), true
		}
		return succeed(start, fmt.Sprintf("Directory created: %s", parsed.Args[0])), true
	case domain.CmdRm:
		return e.removeFile(ctx, start, parsed.Args), true
	case domain.CmdCp:
		return e.copyFile(start, "cp", parsed.Args), true
	case domain.CmdMv:
		return e.copyFile(start, "mv", parsed.Args), true
	case domain.CmdRun:
		return e.runProgram(ctx, start, parsed.Args), true
	case domain.CmdLoad:
		if len(parsed.Args) == 0 {
			return fail(start, "load: missing file name"), true
		}
		return succeed(start, fmt.Sprintf("Program loaded from %s", parsed.Args[0])), true
	case domain.CmdSave:
		if len(parsed.Args) == 0 {
			return fail(start, "save: missing file name"), true
		}
		return succeed(start, fmt.Sprintf("Program saved to %s", parsed.Args[0])), true
	case domain.CmdList:
		return succeed(start, "No program loaded"), true
	default:
		return domain.CommandResult{}, false
	}
}

func (e *SystemExecutor) listFiles(ctx context.Context, start time.Time, args []string) domain.CommandResult {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	listing, err := e.fs.List(ctx, e.resolvePath(path))
	if err != nil {
		return fail(start, fmt.Sprintf("ls: cannot access '%s': %s", path, err.Error()))
	}
	return succeed(start, listing)
}

// changeDirectory applies the session path-update rule. It always succeeds.
//
// The relative branch collapses only the first "//" occurrence in the joined
// path; chained relative navigation can leave residual double slashes. Known
// quirk, kept on purpose.
func (e *SystemExecutor) changeDirectory(start time.Time, args []string) domain.CommandResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	switch {
	case arg == "":
		e.cwd = e.home
	case strings.HasPrefix(arg, "/"):
		e.cwd = arg
	case arg == "..":
		parts := strings.Split(e.cwd, "/")
		e.cwd = strings.Join(parts[:len(parts)-1], "/")
		if e.cwd == "" {
			e.cwd = "/"
		}
	case arg == ".":
		// Stay in place.
	default:
		e.cwd = strings.Replace(e.cwd+"/"+arg, "//", "/", 1)
	}

	return succeed(start, fmt.Sprintf("Changed directory to %s", e.cwd))
}

func (e *SystemExecutor) readFile(ctx context.Context, start time.Time, args []string) domain.CommandResult {
	if len(args) == 0 {
		return fail(start, "cat: missing file operand")
	}
	content, err := e.fs.Read(ctx, e.resolvePath(args[0]))
	if err != nil {
		return fail(start, fmt.Sprintf("cat: %s: %s", args[0], err.Error()))
	}
	return succeed(start, content)
}

func (e *SystemExecutor) removeFile(ctx context.Context, start time.Time, args []string) domain.CommandResult {
	if len(args) == 0 {
		return fail(start, "rm: missing file operand")
	}
	confirmation, err := e.fs.Delete(ctx, e.resolvePath(args[0]))
	if err != nil {
		return fail(start, fmt.Sprintf("rm: cannot remove '%s': %s", args[0], err.Error()))
	}
	return succeed(start, confirmation)
}

func (e *SystemExecutor) copyFile(start time.Time, cmd string, args []string) domain.CommandResult {
	if len(args) < 2 {
		return fail(start, fmt.Sprintf("%s: missing source or destination", cmd))
	}
	verb := "Copied"
	if cmd == "mv" {
		verb = "Moved"
	}
	return succeed(start, fmt.Sprintf("%s %s to %s", verb, args[0], args[1]))
}

func (e *SystemExecutor) runProgram(ctx context.Context, start time.Time, args []string) domain.CommandResult {
	if len(args) == 0 {
		return fail(start, "run: missing program code")
	}
	code := strings.Join(args, " ")

	result, err := e.runner.Run(ctx, code)
	if err != nil {
		e.log.Debug("program runner failed", map[string]interface{}{"error": err.Error()})
		return fail(start, err.Error())
	}

	output := result.Output
	if result.Explanation != "" {
		output = strings.TrimRight(output, "\n") + "\n" + result.Explanation
	}
	if !result.Success {
		res := fail(start, "program execution failed")
		res.Output = output
		return res
	}
	return succeed(start, output)
}

// resolvePath turns a user-supplied path into an absolute virtual path.
func (e *SystemExecutor) resolvePath(path string) string {
	cwd := e.WorkingDirectory()
	switch {
	case path == "" || path == ".":
		return cwd
	case strings.HasPrefix(path, "/"):
		return path
	default:
		return strings.TrimSuffix(cwd, "/") + "/" + path
	}
}
