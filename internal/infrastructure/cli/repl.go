package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"github.com/doeshing/retroshell/internal/app"
	"github.com/doeshing/retroshell/internal/domain"
	"github.com/doeshing/retroshell/internal/interpreter"
	"github.com/doeshing/retroshell/internal/ports"
)

// replSession holds the state of one interactive terminal session.
type replSession struct {
	ctx       context.Context
	opts      Options
	container *app.Container
	exitFlag  bool
}

// runREPL starts the interactive terminal.
func runREPL(ctx context.Context, opts Options) error {
	session := &replSession{ctx: ctx, opts: opts}

	container, err := app.BuildContainer(ctx, app.Options{
		Verbose: opts.Verbose,
		Hooks: ports.SessionHooks{
			ClearOutput: session.clearOutput,
			SetTheme:    session.setTheme,
		},
	})
	if err != nil {
		return err
	}
	session.container = container

	fmt.Println("retroshell — type 'help' for commands, Ctrl+D to leave")

	p := prompt.New(
		session.execute,
		prompt.WithCompleter(session.completer),
		prompt.WithPrefix("> "),
		prompt.WithTitle("retroshell"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithMaxSuggestion(12),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Println("Goodbye!")
					session.exitFlag = true
				}
				return false
			},
		}),
	)
	p.Run()
	return nil
}

// execute interprets one submitted line. A Ctrl+C while a command is in
// flight only discards the pending result; the underlying capability call
// runs to completion.
func (s *replSession) execute(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	kind := interpreter.Classify(trimmed)

	var spin *spinner.Spinner
	if kind != domain.KindClient {
		spin = spinner.New(spinner.CharSets[14], 80*time.Millisecond)
		spin.Suffix = " working..."
		spin.Start()
	}

	results := make(chan domain.CommandResult, 1)
	go func() {
		results <- s.container.Service.InterpretAs(s.ctx, trimmed, kind)
	}()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	select {
	case result := <-results:
		if spin != nil {
			spin.Stop()
		}
		s.container.RecordResult(trimmed, kind, result)
		RenderResult(os.Stdout, result, s.opts.Verbose)
	case <-interrupts:
		if spin != nil {
			spin.Stop()
		}
		fmt.Println("^C")
		// Drain the in-flight result so the goroutine can finish; its
		// output is never shown.
		go func() { <-results }()
	}
}

func (s *replSession) clearOutput() {
	fmt.Print("\033[2J\033[H")
}

func (s *replSession) setTheme(name string) error {
	if !domain.ValidTheme(name) {
		return fmt.Errorf("unknown theme: %s (available: %s)", name, strings.Join(domain.ThemeNames, ", "))
	}
	return nil
}

// completer suggests command names for the first word of the line.
func (s *replSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	if w == "" || strings.Contains(strings.TrimSpace(d.TextBeforeCursor()), " ") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	words := append(domain.ClientCommandWords(), domain.SystemCommandWords()...)
	sort.Strings(words)
	suggestions := make([]prompt.Suggest, 0, len(words))
	for _, word := range words {
		suggestions = append(suggestions, prompt.Suggest{Text: word})
	}
	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}
