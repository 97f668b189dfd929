package interpreter

import (
	"context"

	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/ports"
)

// Request is one classified line moving through the resolver chain.
type Request struct {
	Raw    string
	Parsed domain.ParsedCommand
	Kind   domain.CommandKind
}

// Resolver is one link in the chain. Resolve reports whether it claimed the
// request; the first claim wins, so fallthrough (an unknown system command
// becoming an AI request) is explicit in the chain order instead of hidden
// in a handler.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, req Request) (domain.CommandResult, bool)
}

// Options configures a Service.
type Options struct {
	Filesystem    ports.Filesystem
	Runner        ports.ProgramRunner
	Chat          ports.ChatProvider
	Hooks         ports.SessionHooks
	Logger        ports.Logger
	HomeDirectory string
	Theme         string
}

// Service is the interpreter's single entry point: one raw line in, one
// CommandResult out. It is stateless between calls except for the system
// executor's working directory and the local handler's remembered theme.
type Service struct {
	local   *LocalHandler
	system  *SystemExecutor
	natural *NaturalExecutor
	chain   []Resolver
	log     ports.Logger
}

// NewService wires the three executors into a resolver chain.
func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	local := NewLocalHandler(opts.Hooks, opts.Theme, log)
	system := NewSystemExecutor(opts.Filesystem, opts.Runner, opts.HomeDirectory, log)
	natural := NewNaturalExecutor(opts.Chat, system.WorkingDirectory, log)

	svc := &Service{
		local:   local,
		system:  system,
		natural: natural,
		log:     log,
	}
	svc.chain = []Resolver{
		clientResolver{local},
		systemResolver{system},
		naturalResolver{natural},
	}
	return svc
}

// Interpret classifies and executes one submitted line.
func (s *Service) Interpret(ctx context.Context, input string) domain.CommandResult {
	return s.InterpretAs(ctx, input, Classify(input))
}

// InterpretAs executes a line the host has already classified.
func (s *Service) InterpretAs(ctx context.Context, input string, kind domain.CommandKind) domain.CommandResult {
	parsed := Parse(input)
	req := Request{Raw: parsed.RawInput, Parsed: parsed, Kind: kind}

	for _, resolver := range s.chain {
		if result, ok := resolver.Resolve(ctx, req); ok {
			s.log.Debug("command resolved", map[string]interface{}{
				"resolver": resolver.Name(),
				"kind":     string(kind),
				"exit":     result.ExitCode,
			})
			return result
		}
	}

	// Unreachable: the natural resolver claims everything.
	return s.natural.Execute(ctx, req.Raw)
}

// WorkingDirectory exposes the session's current directory to the host.
func (s *Service) WorkingDirectory() string {
	return s.system.WorkingDirectory()
}

// Theme exposes the session's remembered theme to the host.
func (s *Service) Theme() string {
	return s.local.Theme()
}

type clientResolver struct {
	handler *LocalHandler
}

func (r clientResolver) Name() string { return "client" }

func (r clientResolver) Resolve(_ context.Context, req Request) (domain.CommandResult, bool) {
	if req.Kind != domain.KindClient {
		return domain.CommandResult{}, false
	}
	return r.handler.Execute(req.Parsed), true
}

type systemResolver struct {
	executor *SystemExecutor
}

func (r systemResolver) Name() string { return "system" }

func (r systemResolver) Resolve(ctx context.Context, req Request) (domain.CommandResult, bool) {
	if req.Kind != domain.KindSystem {
		return domain.CommandResult{}, false
	}
	return r.executor.Execute(ctx, req.Parsed)
}

type naturalResolver struct {
	executor *NaturalExecutor
}

func (r naturalResolver) Name() string { return "natural" }

func (r naturalResolver) Resolve(ctx context.Context, req Request) (domain.CommandResult, bool) {
	return r.executor.Execute(ctx, req.Raw), true
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}
