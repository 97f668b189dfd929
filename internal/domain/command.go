// Package domain defines core business entities and value objects for retroshell.
//
// The domain layer is independent of infrastructure concerns and represents pure
// data structures shared by the interpreter core and its adapters.
package domain

// CommandKind is the routing decision for a submitted line.
type CommandKind string

const (
	// KindClient routes to the local handler (session-only state).
	KindClient CommandKind = "client"
	// KindSystem routes to the virtual filesystem / program executor.
	KindSystem CommandKind = "system"
	// KindNatural routes to the AI chat capability.
	KindNatural CommandKind = "natural"
)

// CommandName enumerates every command name the interpreter dispatches on.
// Keeping the set closed lets each executor switch exhaustively instead of
// carrying a stringly-typed default branch.
type CommandName int

const (
	CmdUnknown CommandName = iota

	// Client commands.
	CmdClear
	CmdHelp
	CmdHistory
	CmdAbout
	CmdTheme
	CmdSettings
	CmdExit

	// System commands.
	CmdLs
	CmdCd
	CmdPwd
	CmdCat
	CmdEcho
	CmdMkdir
	CmdRm
	CmdCp
	CmdMv
	CmdRun
	CmdLoad
	CmdSave
	CmdList
)

var clientCommandNames = map[string]CommandName{
	"clear":    CmdClear,
	"cls":      CmdClear,
	"help":     CmdHelp,
	"history":  CmdHistory,
	"about":    CmdAbout,
	"version":  CmdAbout,
	"theme":    CmdTheme,
	"settings": CmdSettings,
	"exit":     CmdExit,
}

var systemCommandNames = map[string]CommandName{
	"ls":    CmdLs,
	"dir":   CmdLs,
	"cd":    CmdCd,
	"pwd":   CmdPwd,
	"cat":   CmdCat,
	"echo":  CmdEcho,
	"mkdir": CmdMkdir,
	"rm":    CmdRm,
	"cp":    CmdCp,
	"mv":    CmdMv,
	"run":   CmdRun,
	"load":  CmdLoad,
	"save":  CmdSave,
	"list":  CmdList,
}

// LookupClientCommand resolves an already-lowercased command token to a client
// command variant. The boolean reports membership in the reserved set.
func LookupClientCommand(name string) (CommandName, bool) {
	cmd, ok := clientCommandNames[name]
	return cmd, ok
}

// LookupSystemCommand resolves an already-lowercased command token to a system
// command variant.
func LookupSystemCommand(name string) (CommandName, bool) {
	cmd, ok := systemCommandNames[name]
	return cmd, ok
}

// ClientCommandWords returns the reserved client command tokens, used by the
// classifier and by hosts offering completion.
func ClientCommandWords() []string {
	words := make([]string, 0, len(clientCommandNames))
	for word := range clientCommandNames {
		words = append(words, word)
	}
	return words
}

// SystemCommandWords returns the recognized system command tokens.
func SystemCommandWords() []string {
	words := make([]string, 0, len(systemCommandNames))
	for word := range systemCommandNames {
		words = append(words, word)
	}
	return words
}

// FlagValue holds a parsed flag. Bare flags (--all, -l) carry no value and
// read as boolean presence; valued flags (--name=x, -n 5) carry a string.
type FlagValue struct {
	Value    string
	HasValue bool
}

// ParsedCommand is the immutable result of tokenizing one submitted line.
type ParsedCommand struct {
	// Command is the first whitespace-delimited token, verbatim (consumers
	// lowercase it; the parser does not). Empty for blank input.
	Command string
	// Args are the positional tokens in input order.
	Args []string
	// Flags maps flag names to values; the last occurrence of a repeated
	// flag wins.
	Flags map[string]FlagValue
	// RawInput is the trimmed original line with runs of whitespace
	// collapsed to single spaces.
	RawInput string
}

// Flag returns the named flag and whether it was present.
func (p ParsedCommand) Flag(name string) (FlagValue, bool) {
	v, ok := p.Flags[name]
	return v, ok
}
