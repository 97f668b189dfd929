// Package ports defines the capability interfaces the interpreter core
// depends on but does not implement.
//
// The core remains independent of concrete adapters (in-memory filesystem,
// HTTP bridge, AI providers, sqlite history) following the Ports and Adapters
// pattern: interfaces live here, implementations under infrastructure.
package ports

import (
	"context"

	"github.com/doeshing/retroshell/internal/domain"
)

// Filesystem is the virtual filesystem capability. All paths are absolute
// virtual paths; the system executor resolves relative paths before calling.
//
// Search is part of the capability surface but no terminal command invokes
// it; hosts use it directly for completion and lookup features.
type Filesystem interface {
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path, content string) (string, error)
	List(ctx context.Context, path string) (string, error)
	Delete(ctx context.Context, path string) (string, error)
	Search(ctx context.Context, pattern string) ([]string, error)
}

// ProgramRunner executes BASIC program code and reports the program's output.
type ProgramRunner interface {
	Run(ctx context.Context, code string) (domain.RunResult, error)
}

// ChatProvider answers free-form natural-language requests.
type ChatProvider interface {
	Name() string
	Chat(ctx context.Context, message string, tctx domain.ChatContext) (string, error)
}

// ChatProviderFactory builds chat providers from model definitions.
type ChatProviderFactory interface {
	ForModel(domain.ModelDefinition) (ChatProvider, error)
}

// SessionHooks are callbacks the host supplies to the local command handler.
// Any nil member means the host does not support that operation; SetTheme in
// particular is optional and the handler reports theme switching as
// unavailable when it is absent.
type SessionHooks struct {
	ClearOutput func()
	History     func() []string
	SetTheme    func(name string) error
}

// HistoryRepository persists submitted lines most-recent-first, bounded at a
// fixed limit, with exact duplicates moved to the front instead of repeated.
type HistoryRepository interface {
	Record(rec domain.HistoryRecord) error
	// Inputs returns raw inputs, most recent first.
	Inputs() ([]string, error)
	// Records returns full entries, most recent first, optionally filtered
	// by substring search. A non-positive limit returns everything.
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
}

// ConfigProvider loads the latest configuration from persistent storage.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
