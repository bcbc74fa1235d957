package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"compass/internal/adapters/launcher"
	"compass/internal/application/commands"
	"compass/internal/config"
)

var runIDE string

var runCmd = &cobra.Command{
	Use:   "run <path>...",
	Short: "Open projects in an IDE",
	Long: `Open one or more catalogued projects in a single IDE process and mark
them as opened now. The IDE defaults to the first entry of ide_commands.

Examples:
  compass-cli run ~/Projects/api
  compass-cli run ~/Projects/api ~/Projects/web --ide code`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := make([]string, len(args))
		for i, a := range args {
			p, err := config.ExpandPath(a)
			if err != nil {
				return err
			}
			paths[i] = p
		}

		ide := runIDE
		if ide == "" {
			ide = cfg.IDECommands[0]
		}

		ctx := context.Background()
		l := launcher.New(launcher.WithLogger(log))
		result, err := commands.NewRunProjectsCommand(GetStore(), l, paths, ide, now()).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runIDE, "ide", "", "IDE command to use")
	rootCmd.AddCommand(runCmd)
}
