package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"compass/internal/application/commands"
	"compass/internal/domain"
)

var listCategory string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long: `List catalogued projects ordered by name.

Projects opened in the last three days are marked with *. Projects that
share a name are shown with their path.

Examples:
  compass-cli list
  compass-cli list --category Work`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		projects, err := commands.NewListProjectsCommand(GetStore(), listCategory).Execute(ctx)
		if err != nil {
			return err
		}

		labels := domain.DisplayLabels(projects)
		current := now()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for i, p := range projects {
			mark := " "
			if p.IsRecent(current) {
				mark = "*"
			}
			fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", mark, labels[i], p.Category.Name, p.LastOpened.Format(time.DateTime), p.Path)
		}
		return w.Flush()
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	Long:  `List categories ordered by name. The active category is marked with *.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		categories, err := commands.NewListCategoriesCommand(GetStore()).Execute(ctx)
		if err != nil {
			return err
		}

		for _, c := range categories {
			mark := " "
			if c.Active {
				mark = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, c.Name)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "only list projects in this category")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(categoriesCmd)
}
