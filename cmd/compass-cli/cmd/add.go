package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"compass/internal/adapters/scaffold"
	"compass/internal/application/commands"
	"compass/internal/config"
)

var (
	addName     string
	addCategory string
	newCategory string
)

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Catalogue an existing project directory",
	Long: `Catalogue an existing directory. Adding a path that is already
catalogued updates its name, category and last-opened time.

Examples:
  compass-cli add ~/Projects/api
  compass-cli add ~/Projects/api --name "Billing API" --category Work`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ExpandPath(args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		result, err := commands.NewAddProjectCommand(GetStore(), path, addName, addCategory, now()).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create <dir>",
	Short: "Create a project from the cookiecutter template",
	Long: `Render the configured cookiecutter template into <dir>, optionally
create a venv inside it, and catalogue it. The directory's base name is
passed to the template as project_name.

Examples:
  compass-cli create ~/Projects/new-tool --category Tools`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.ExpandPath(args[0])
		if err != nil {
			return err
		}

		scaffolder := scaffold.New(cfg.Cookiecutter,
			scaffold.WithVenv(cfg.CreateVenv),
			scaffold.WithLogger(log),
		)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		result, err := commands.NewCreateProjectCommand(GetStore(), scaffolder, dir, newCategory, now()).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "display name (defaults to the directory name)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "category name, created if missing (defaults to Default)")
	createCmd.Flags().StringVar(&newCategory, "category", "", "category name, created if missing (defaults to Default)")
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(createCmd)
}
