package interpreter

import (
	"context"
	"time"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
)

const chatFailedMessage = "AI request failed"

// NaturalExecutor forwards free-form input to the AI chat capability together
// with the session's working directory.
type NaturalExecutor struct {
	provider   ports.ChatProvider
	workingDir func() string
	log        ports.Logger
}

// NewNaturalExecutor builds an executor; workingDir supplies the current
// directory at call time so `cd` effects are visible to later requests.
func NewNaturalExecutor(provider ports.ChatProvider, workingDir func() string, log ports.Logger) *NaturalExecutor {
	return &NaturalExecutor{provider: provider, workingDir: workingDir, log: log}
}

// Execute sends input to the chat provider and wraps the reply.
func (e *NaturalExecutor) Execute(ctx context.Context, input string) (res domain.CommandResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = fail(start, recoveredMessage(r, chatFailedMessage))
		}
	}()

	tctx := domain.ChatContext{
		WorkingDirectory: e.workingDir(),
		Context:          domain.TerminalContext,
	}

	reply, err := e.provider.Chat(ctx, input, tctx)
	if err != nil {
		e.log.Debug("chat provider failed", map[string]interface{}{"error": err.Error()})
		return fail(start, err.Error())
	}
	return succeed(start, reply)
}
