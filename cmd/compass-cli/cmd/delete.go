package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"compass/internal/application/commands"
	"compass/internal/config"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <path>...",
	Short: "Remove projects from the catalogue",
	Long: `Remove one or more projects from the catalogue. Directories on disk
are not touched. Unknown paths are ignored.

Examples:
  compass-cli delete ~/Projects/old-api ~/Projects/scratch`,
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

		ctx := context.Background()
		result, err := commands.NewDeleteProjectsCommand(GetStore(), paths).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var deleteCategoryCmd = &cobra.Command{
	Use:   "delete-category <name>",
	Short: "Delete a category and its projects",
	Long: `Delete a category together with every project filed under it.

Warning: This operation cannot be undone. When the last category is
deleted, an active Default category is created.

Examples:
  compass-cli delete-category Archive`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewDeleteCategoryCommand(GetStore(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(deleteCategoryCmd)
}
