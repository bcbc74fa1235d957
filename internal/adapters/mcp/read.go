package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"compass/internal/application/commands"
	"compass/internal/domain"
	"compass/internal/ports"
)

// RegisterReadTools adds all read-only catalogue tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.CatalogueStore) {
	s.AddTool(listProjectsTool(), listProjectsHandler(store))
	s.AddTool(listCategoriesTool(), listCategoriesHandler(store))
	s.AddTool(activeCategoryTool(), activeCategoryHandler(store))
}

// --- list_projects ---

func listProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List catalogued projects ordered by name. Each line is: name, path, category, last opened."),
		mcp.WithString("category",
			mcp.Description("Only list projects in this category. Omit to list every project."),
		),
	)
}

func listProjectsHandler(store ports.CatalogueStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category := req.GetString("category", "")

		projects, err := commands.NewListProjectsCommand(store, category).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(projects, formatProject)
	}
}

// --- list_categories ---

func listCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List project categories. The active category is marked with *."),
	)
}

func listCategoriesHandler(store ports.CatalogueStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		categories, err := commands.NewListCategoriesCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(categories, formatCategory)
	}
}

// --- active_category ---

func activeCategoryTool() mcp.Tool {
	return mcp.NewTool("active_category",
		mcp.WithDescription("Return the name of the active category."),
	)
}

func activeCategoryHandler(store ports.CatalogueStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cat, err := commands.NewActiveCategoryCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if cat == nil {
			return mcp.NewToolResultText("No active category."), nil
		}
		return mcp.NewToolResultText(cat.Name), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatProject(p domain.Project) string {
	opened := "never"
	if !p.LastOpened.IsZero() {
		opened = p.LastOpened.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s  %s  %s  %s", p.Name, p.Path, p.Category.Name, opened)
}

func formatCategory(c domain.Category) string {
	if c.Active {
		return c.Name + " *"
	}
	return c.Name
}
