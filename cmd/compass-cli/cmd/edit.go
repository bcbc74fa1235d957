package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"compass/internal/application/commands"
	"compass/internal/config"
)

var (
	editName     string
	editPath     string
	editCategory string
)

var editCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Rename, move or recategorise a project",
	Long: `Change a catalogued project. Only the given flags are applied; the
last-opened time is kept.

Examples:
  compass-cli edit ~/Projects/api --name "Billing API"
  compass-cli edit ~/Projects/api --path ~/Work/api --category Work`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ExpandPath(args[0])
		if err != nil {
			return err
		}
		newPath, err := config.ExpandPath(editPath)
		if err != nil {
			return err
		}

		ctx := context.Background()
		result, err := commands.NewEditProjectCommand(GetStore(), path, editName, newPath, editCategory).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editName, "name", "n", "", "new display name")
	editCmd.Flags().StringVarP(&editPath, "path", "p", "", "new directory path")
	editCmd.Flags().StringVar(&editCategory, "category", "", "new category name")
	rootCmd.AddCommand(editCmd)
}
