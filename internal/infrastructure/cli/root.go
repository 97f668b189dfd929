// Package cli implements the cobra-based host shell around the interpreter.
package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/retroshell/internal/app"
	"github.com/doeshing/retroshell/internal/interpreter"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. A bare invocation starts the
// interactive REPL; trailing arguments run as a single terminal line.
func NewRootCmd(ctx context.Context, opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "retroshell [command line]",
		Short: "retroshell - terminal for the vintage machine",
		Long: "retroshell interprets terminal commands against a virtual filesystem,\n" +
			"runs BASIC programs, and forwards natural-language requests to an AI assistant.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runREPL(cmd.Context(), opts)
			}
			return execLine(cmd.Context(), opts, strings.Join(args, " "))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newExecCommand(opts),
		newREPLCommand(opts),
		newHistoryCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

func newExecCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "exec [command line]",
		Short: "Interpret one line and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execLine(cmd.Context(), opts, strings.Join(args, " "))
		},
	}
}

func newREPLCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd.Context(), opts)
		},
	}
}

// execLine runs a single line with a one-shot session. No hooks beyond
// history are supplied, so `theme x` reports switching as unavailable here.
func execLine(ctx context.Context, opts Options, line string) error {
	container, err := app.BuildContainer(ctx, app.Options{Verbose: opts.Verbose})
	if err != nil {
		return err
	}

	kind := interpreter.Classify(line)
	result := container.Service.InterpretAs(ctx, line, kind)
	container.RecordResult(line, kind, result)

	RenderResult(os.Stdout, result, opts.Verbose)
	return nil
}
