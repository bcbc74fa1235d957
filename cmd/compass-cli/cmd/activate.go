package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"compass/internal/application/commands"
)

var activateCmd = &cobra.Command{
	Use:   "activate <name>",
	Short: "Set the active category",
	Long: `Make <name> the active category, creating it if needed. The TUI opens
on the active category.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewActivateCategoryCommand(GetStore(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Print the active category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cat, err := commands.NewActiveCategoryCommand(GetStore()).Execute(ctx)
		if err != nil {
			return err
		}
		if cat == nil {
			return fmt.Errorf("no active category")
		}
		fmt.Fprintln(cmd.OutOrStdout(), cat.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(activeCmd)
}
