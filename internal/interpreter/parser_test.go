package interpreter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/retroshell/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.ParsedCommand
	}{
		{
			name:  "empty input",
			input: "",
			want: domain.ParsedCommand{
				Command: "",
				Args:    []string{},
				Flags:   map[string]domain.FlagValue{},
			},
		},
		{
			name:  "whitespace only",
			input: "   \t  ",
			want: domain.ParsedCommand{
				Command: "",
				Args:    []string{},
				Flags:   map[string]domain.FlagValue{},
			},
		},
		{
			name:  "positional arguments",
			input: "cp source.txt dest.txt",
			want: domain.ParsedCommand{
				Command:  "cp",
				Args:     []string{"source.txt", "dest.txt"},
				Flags:    map[string]domain.FlagValue{},
				RawInput: "cp source.txt dest.txt",
			},
		},
		{
			name:  "long and short bare flags",
			input: "ls /home --all -l",
			want: domain.ParsedCommand{
				Command: "ls",
				Args:    []string{"/home"},
				Flags: map[string]domain.FlagValue{
					"all": {},
					"l":   {},
				},
				RawInput: "ls /home --all -l",
			},
		},
		{
			name:  "short flag consumes following value",
			input: "grep -n 5 pattern",
			want: domain.ParsedCommand{
				Command: "grep",
				Args:    []string{"pattern"},
				Flags: map[string]domain.FlagValue{
					"n": {Value: "5", HasValue: true},
				},
				RawInput: "grep -n 5 pattern",
			},
		},
		{
			name:  "long flag with value",
			input: "run --mode=fast prog",
			want: domain.ParsedCommand{
				Command: "run",
				Args:    []string{"prog"},
				Flags: map[string]domain.FlagValue{
					"mode": {Value: "fast", HasValue: true},
				},
				RawInput: "run --mode=fast prog",
			},
		},
		{
			name:  "value split at first equals only",
			input: "run --expr=a=b",
			want: domain.ParsedCommand{
				Command: "run",
				Args:    []string{},
				Flags: map[string]domain.FlagValue{
					"expr": {Value: "a=b", HasValue: true},
				},
				RawInput: "run --expr=a=b",
			},
		},
		{
			name:  "flag-looking first token is the command",
			input: "--help",
			want: domain.ParsedCommand{
				Command:  "--help",
				Args:     []string{},
				Flags:    map[string]domain.FlagValue{},
				RawInput: "--help",
			},
		},
		{
			name:  "short flag before another flag stays bare",
			input: "ls -l --all",
			want: domain.ParsedCommand{
				Command: "ls",
				Args:    []string{},
				Flags: map[string]domain.FlagValue{
					"l":   {},
					"all": {},
				},
				RawInput: "ls -l --all",
			},
		},
		{
			name:  "repeated flag keeps the last occurrence",
			input: "ls -n 1 -n 2",
			want: domain.ParsedCommand{
				Command: "ls",
				Args:    []string{},
				Flags: map[string]domain.FlagValue{
					"n": {Value: "2", HasValue: true},
				},
				RawInput: "ls -n 1 -n 2",
			},
		},
		{
			name:  "internal whitespace collapses in raw input",
			input: "  echo   hello    world  ",
			want: domain.ParsedCommand{
				Command:  "echo",
				Args:     []string{"hello", "world"},
				Flags:    map[string]domain.FlagValue{},
				RawInput: "echo hello world",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseNumericFlagValueStaysString(t *testing.T) {
	got := Parse("history -n 10")
	flag, ok := got.Flag("n")
	if !ok || !flag.HasValue {
		t.Fatalf("expected valued flag n, got %+v", got.Flags)
	}
	if flag.Value != "10" {
		t.Errorf("flag value = %q, want %q", flag.Value, "10")
	}
}
