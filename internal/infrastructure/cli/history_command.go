package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/retroshell/internal/app"
)

func newHistoryCommand(opts Options) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the persisted command history",
	}
	historyCmd.AddCommand(
		newHistoryListCommand(opts),
		newHistoryClearCommand(opts),
	)
	return historyCmd
}

func newHistoryListCommand(opts Options) *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(cmd.Context(), app.Options{Verbose: opts.Verbose})
			if err != nil {
				return err
			}
			return listHistoryEntries(cmd.OutOrStdout(), container, limit, search)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max entries to show")
	cmd.Flags().StringVar(&search, "search", "", "Filter entries by substring")
	return cmd
}

func newHistoryClearCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the history",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(cmd.Context(), app.Options{Verbose: opts.Verbose})
			if err != nil {
				return err
			}
			if err := container.HistoryStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

func listHistoryEntries(out io.Writer, container *app.Container, limit int, search string) error {
	records, err := container.HistoryStore.Records(limit, search)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No history recorded yet.")
		return nil
	}
	for _, rec := range records {
		status := "ok"
		if rec.ExitCode != 0 {
			status = "failed"
		}
		fmt.Fprintf(out, "%-20s %-8s %-7s %s\n",
			humanize.Time(rec.Timestamp), rec.Kind, status, rec.Input)
	}
	return nil
}
