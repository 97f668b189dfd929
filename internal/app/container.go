// Package app wires application services with infrastructure adapters.
package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/infrastructure/ai"
	"github.com/doeshing/retroshell/internal/infrastructure/basic"
	"github.com/doeshing/retroshell/internal/infrastructure/config"
	"github.com/doeshing/retroshell/internal/infrastructure/history"
	"github.com/doeshing/retroshell/internal/infrastructure/vfs"
	"github.com/doeshing/retroshell/internal/interpreter"
	"github.com/doeshing/retroshell/internal/pkg/logger"
	"github.com/doeshing/retroshell/internal/ports"
)

// Options configures container construction. Hooks carries the host's
// session callbacks; a nil History hook is filled in from the history store.
type Options struct {
	Verbose    bool
	ConfigPath string
	Hooks      ports.SessionHooks
}

// Container holds the dependency graph for one terminal session.
type Container struct {
	Service      *interpreter.Service
	Filesystem   ports.Filesystem
	HistoryStore ports.HistoryRepository
	ConfigLoader *config.FileLoader
	Config       domain.Config
	Logger       ports.Logger
	SessionID    string
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(opts.Verbose)
	historyStore := history.NewSQLiteStore("", cfg.Preferences.HistoryLimit)
	filesystem := vfs.NewMemFS()
	runner := basic.NewRunner(cfg.Bridge)
	chat := buildChatProvider(cfg, log)

	hooks := opts.Hooks
	if hooks.History == nil {
		hooks.History = func() []string {
			inputs, err := historyStore.Inputs()
			if err != nil {
				return nil
			}
			// The store is most-recent-first; the handler numbers entries
			// oldest-first.
			for i, j := 0, len(inputs)-1; i < j; i, j = i+1, j-1 {
				inputs[i], inputs[j] = inputs[j], inputs[i]
			}
			return inputs
		}
	}

	service := interpreter.NewService(interpreter.Options{
		Filesystem:    filesystem,
		Runner:        runner,
		Chat:          chat,
		Hooks:         hooks,
		Logger:        log,
		HomeDirectory: cfg.Preferences.HomeDirectory,
		Theme:         cfg.Preferences.Theme,
	})

	return &Container{
		Service:      service,
		Filesystem:   filesystem,
		HistoryStore: historyStore,
		ConfigLoader: cfgLoader,
		Config:       cfg,
		Logger:       log,
		SessionID:    uuid.NewString(),
	}, nil
}

// RecordResult appends an interpreted line to the persistent history.
func (c *Container) RecordResult(input string, kind domain.CommandKind, res domain.CommandResult) {
	err := c.HistoryStore.Record(domain.HistoryRecord{
		Timestamp:  time.Now(),
		Input:      input,
		Kind:       kind,
		ExitCode:   res.ExitCode,
		DurationMS: res.DurationMS,
	})
	if err != nil {
		c.Logger.Warn("failed to record history", map[string]interface{}{"error": err.Error()})
	}
}

func buildChatProvider(cfg domain.Config, log ports.Logger) ports.ChatProvider {
	model, err := cfg.DefaultModel()
	if err != nil {
		log.Warn("no default model configured, using offline assistant", nil)
		return ai.NewHeuristicProvider()
	}
	provider, err := ai.NewFactory().ForModel(model)
	if err != nil {
		log.Warn("chat provider unavailable, using offline assistant", map[string]interface{}{"error": err.Error()})
		return ai.NewHeuristicProvider()
	}
	return provider
}
