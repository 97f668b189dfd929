package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
)

type heuristicProvider struct{}

// NewHeuristicProvider returns the offline fallback used when no AI
// credentials are configured.
func NewHeuristicProvider() ports.ChatProvider {
	return &heuristicProvider{}
}

func (p *heuristicProvider) Name() string {
	return "heuristic"
}

func (p *heuristicProvider) Chat(_ context.Context, message string, tctx domain.ChatContext) (string, error) {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "file") || strings.Contains(lowered, "director"):
		return fmt.Sprintf("I'm offline right now, but 'ls' lists the files in %s and 'cat <file>' prints one.", tctx.WorkingDirectory), nil
	case strings.Contains(lowered, "basic") || strings.Contains(lowered, "program"):
		return "I'm offline right now. Try: run 10 PRINT \"HELLO\" — or 'help programs' for the program commands.", nil
	case strings.Contains(lowered, "help") || strings.Contains(lowered, "command"):
		return "Type 'help' for the full command reference.", nil
	default:
		return "The AI assistant is offline (no API key configured). Type 'help' for the commands that work locally.", nil
	}
}
