// Package interpreter implements the terminal's routing-and-dispatch core:
// line parsing, command classification, and the three execution paths
// (client, system, natural language) behind a single entry point.
package interpreter

import (
	"strings"

	"github.com/doeshing/retroshell/internal/domain"
)

// Parse tokenizes one submitted line into command, positional args, and
// flags. It is total: any input, including the empty string, yields a
// well-formed value and never an error.
//
// Only tokens after the first are scanned for flag syntax, so a line whose
// first token looks like a flag (input "--help") still reads it as the
// command name.
func Parse(input string) domain.ParsedCommand {
	tokens := strings.Fields(input)

	parsed := domain.ParsedCommand{
		Args: []string{},
		Flags: map[string]domain.FlagValue{},
		// Rejoining the tokens trims and collapses internal whitespace in
		// one step.
		RawInput: strings.Join(tokens, " "),
	}
	if len(tokens) == 0 {
		return parsed
	}
	parsed.Command = tokens[0]

	for i := 1; i < len(tokens); i++ {
		token := tokens[i]
		switch {
		case strings.HasPrefix(token, "--"):
			name := token[2:]
			if eq := strings.Index(name, "="); eq >= 0 {
				parsed.Flags[name[:eq]] = domain.FlagValue{Value: name[eq+1:], HasValue: true}
			} else {
				parsed.Flags[name] = domain.FlagValue{}
			}
		case strings.HasPrefix(token, "-"):
			name := token[1:]
			// A short flag consumes the following token as its value
			// unless that token itself looks like a flag.
			if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") {
				parsed.Flags[name] = domain.FlagValue{Value: tokens[i+1], HasValue: true}
				i++
			} else {
				parsed.Flags[name] = domain.FlagValue{}
			}
		default:
			parsed.Args = append(parsed.Args, token)
		}
	}

	return parsed
}
