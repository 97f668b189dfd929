package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/retroshell/internal/app"
)

func newConfigCommand(opts Options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the terminal configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(cmd.Context(), app.Options{Verbose: opts.Verbose})
			if err != nil {
				return err
			}
			raw, err := yaml.Marshal(container.Config)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(raw))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(cmd.Context(), app.Options{Verbose: opts.Verbose})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	})

	return configCmd
}
