package interpreter

import (
	"regexp"
	"strings"

	"github.com/doeshing/retroshell/internal/domain"
)

// Natural-language detection patterns, checked in order against the trimmed,
// lowercased input. First match wins.
var naturalPatterns = []*regexp.Regexp{
	// Leading interrogatives and modals.
	regexp.MustCompile(`^(what|how|why|when|where|who|can|could|would|should|is|are|do|does)\b`),
	// Trailing question mark.
	regexp.MustCompile(`\?$`),
	// Conversational openers.
	regexp.MustCompile(`^(show me|tell me|explain|find|search for|list all|get me)\b`),
	// Creation verbs.
	regexp.MustCompile(`^(create|make|generate|write|build)\b`),
}

// Classify routes a raw line to one of the three execution paths. Reserved
// client command names take precedence over natural-language detection, so a
// control word always reads as a control command even when it also looks
// conversational. Inputs matching no rule, including the empty string, read
// as system commands.
func Classify(input string) domain.CommandKind {
	trimmed := strings.TrimSpace(input)

	parsed := Parse(trimmed)
	if _, ok := domain.LookupClientCommand(strings.ToLower(parsed.Command)); ok {
		return domain.KindClient
	}

	lowered := strings.ToLower(trimmed)
	for _, pattern := range naturalPatterns {
		if pattern.MatchString(lowered) {
			return domain.KindNatural
		}
	}

	return domain.KindSystem
}
