package interpreter

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
	"github.com/doeshing/retroshell/internal/version"
)

const unknownErrorMessage = "Unknown error"

// LocalHandler executes client commands that touch only session-local state.
// The remembered theme is a field on the handler instance, constructed once
// per session; there is no package-level state.
type LocalHandler struct {
	hooks ports.SessionHooks
	log   ports.Logger

	mu    sync.Mutex
	theme string
}

// NewLocalHandler builds a handler with the host's session hooks.
func NewLocalHandler(hooks ports.SessionHooks, theme string, log ports.Logger) *LocalHandler {
	if theme == "" {
		theme = domain.DefaultTheme
	}
	return &LocalHandler{hooks: hooks, theme: theme, log: log}
}

// Theme returns the handler's remembered current theme.
func (h *LocalHandler) Theme() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.theme
}

// Execute runs one client command. It always returns a result: internal
// panics are recovered and converted to a failing result.
func (h *LocalHandler) Execute(parsed domain.ParsedCommand) (res domain.CommandResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("client command panicked", nil, map[string]interface{}{"command": parsed.Command})
			res = fail(start, recoveredMessage(r, unknownErrorMessage))
		}
	}()

	name, ok := domain.LookupClientCommand(strings.ToLower(parsed.Command))
	if !ok {
		return fail(start, fmt.Sprintf("Unknown client command: %s", parsed.Command))
	}

	switch name {
	case domain.CmdClear:
		if h.hooks.ClearOutput != nil {
			h.hooks.ClearOutput()
		}
		return succeed(start, "")
	case domain.CmdHelp:
		return succeed(start, h.helpText(parsed.Args))
	case domain.CmdHistory:
		return succeed(start, h.historyText(parsed))
	case domain.CmdAbout:
		return succeed(start, aboutText())
	case domain.CmdTheme:
		return h.themeCommand(start, parsed.Args)
	case domain.CmdSettings:
		return succeed(start, h.settingsText())
	case domain.CmdExit:
		return succeed(start, "Session stays open from here; close the terminal window or press Ctrl+D to leave.")
	default:
		return fail(start, fmt.Sprintf("Unknown client command: %s", parsed.Command))
	}
}

func (h *LocalHandler) helpText(args []string) string {
	if len(args) == 0 {
		return helpReference
	}
	topic := strings.ToLower(args[0])
	if text, ok := helpTopics[topic]; ok {
		return text
	}
	// An unknown topic is informational, not an error.
	return fmt.Sprintf("No help available for: %s", args[0])
}

func (h *LocalHandler) historyText(parsed domain.ParsedCommand) string {
	if h.hooks.History == nil {
		return "No command history"
	}
	entries := h.hooks.History()
	if len(entries) == 0 {
		return "No command history"
	}

	count := len(entries)
	if flag, ok := parsed.Flag("n"); ok && flag.HasValue {
		if n, err := strconv.Atoi(flag.Value); err == nil {
			count = n
		}
	}
	if count > len(entries) {
		count = len(entries)
	}
	if count <= 0 {
		return ""
	}

	lines := make([]string, 0, count)
	for i := len(entries) - count; i < len(entries); i++ {
		lines = append(lines, fmt.Sprintf("%d  %s", i+1, entries[i]))
	}
	return strings.Join(lines, "\n")
}

func (h *LocalHandler) themeCommand(start time.Time, args []string) domain.CommandResult {
	if len(args) == 0 {
		return succeed(start, fmt.Sprintf("Available themes: %s\nCurrent theme: %s",
			strings.Join(domain.ThemeNames, ", "), h.Theme()))
	}

	name := strings.ToLower(args[0])
	if h.hooks.SetTheme == nil {
		return succeed(start, "Theme switching is not available in this context")
	}
	if err := h.hooks.SetTheme(name); err != nil {
		return fail(start, err.Error())
	}

	h.mu.Lock()
	h.theme = name
	h.mu.Unlock()
	return succeed(start, fmt.Sprintf("Theme changed to: %s", name))
}

func (h *LocalHandler) settingsText() string {
	return strings.Join([]string{
		"Terminal settings",
		fmt.Sprintf("  theme:          %s", h.Theme()),
		fmt.Sprintf("  home directory: %s", domain.DefaultHomeDirectory),
		fmt.Sprintf("  history limit:  %d", domain.DefaultHistoryLimit),
		fmt.Sprintf("  version:        %s", version.Version),
	}, "\n")
}

func aboutText() string {
	return strings.Join([]string{
		fmt.Sprintf("retroshell v%s", version.Version),
		"A terminal for the vintage machine: virtual files, BASIC programs,",
		"and an AI assistant for everything else.",
	}, "\n")
}

const helpReference = `retroshell command reference

Terminal
  clear, cls        Clear the terminal output
  help [topic]      Show this reference or a topic (commands, files, programs, ai)
  history [-n N]    Show the last N submitted commands
  theme [name]      Show or switch the terminal theme
  settings          Show current session settings
  about, version    About this terminal
  exit              How to leave the session

Files
  ls [path]         List files      cat <file>   Print a file
  cd [path]         Change dir      pwd          Print working directory
  mkdir <dir>       Make directory  rm <file>    Remove a file
  cp <src> <dst>    Copy a file     mv <src> <dst>  Move a file
  echo [text...]    Print text

Programs
  run <code>        Run BASIC code on the machine
  load <file>       Load a program  save <file>  Save the current program
  list              List the loaded program

Anything else is sent to the AI assistant. Questions work too:
  what files are here?`

var helpTopics = map[string]string{
	"commands": helpReference,
	"files": `File commands operate on the virtual filesystem.
ls, cat, cd, pwd, mkdir, rm, cp, mv, echo — paths resolve against the
current working directory; cd with no argument returns home.`,
	"programs": `Program commands drive the BASIC machine.
run executes code immediately; load and save move programs between the
machine and the virtual filesystem; list shows the loaded program.`,
	"ai": `Any input that is not a recognized command is forwarded to the AI
assistant along with your current directory. Questions, requests, and
plain descriptions all work.`,
}
