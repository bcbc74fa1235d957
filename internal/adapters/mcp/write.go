package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"compass/internal/application/commands"
	"compass/internal/ports"
)

// RegisterWriteTools adds all catalogue mutation tools to the MCP server.
// now stamps last_opened on newly added projects.
func RegisterWriteTools(s *server.MCPServer, store ports.CatalogueStore, now func() time.Time) {
	s.AddTool(addProjectTool(), addProjectHandler(store, now))
	s.AddTool(editProjectTool(), editProjectHandler(store))
	s.AddTool(deleteProjectTool(), deleteProjectHandler(store))
	s.AddTool(deleteCategoryTool(), deleteCategoryHandler(store))
	s.AddTool(setActiveCategoryTool(), setActiveCategoryHandler(store))
}

// --- add_project ---

func addProjectTool() mcp.Tool {
	return mcp.NewTool("add_project",
		mcp.WithDescription("Catalogue a project directory. Adding a path that is already catalogued updates it."),
		mcp.WithString("path",
			mcp.Description("Absolute path of the project directory"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Display name. Defaults to the directory name."),
		),
		mcp.WithString("category",
			mcp.Description("Category name, created if missing. Defaults to Default."),
		),
	)
}

func addProjectHandler(store ports.CatalogueStore, now func() time.Time) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddProjectCommand(store,
			req.GetString("path", ""),
			req.GetString("name", ""),
			req.GetString("category", ""),
			now(),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- edit_project ---

func editProjectTool() mcp.Tool {
	return mcp.NewTool("edit_project",
		mcp.WithDescription("Rename, move or recategorise a catalogued project. Omitted fields are unchanged."),
		mcp.WithString("path",
			mcp.Description("Current path of the project"),
			mcp.Required(),
		),
		mcp.WithString("new_name",
			mcp.Description("New display name"),
		),
		mcp.WithString("new_path",
			mcp.Description("New directory path"),
		),
		mcp.WithString("category",
			mcp.Description("New category name, created if missing"),
		),
	)
}

func editProjectHandler(store ports.CatalogueStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewEditProjectCommand(store,
			req.GetString("path", ""),
			req.GetString("new_name", ""),
			req.GetString("new_path", ""),
			req.GetString("category", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_project ---

func deleteProjectTool() mcp.Tool {
	return mcp.NewTool("delete_project",
		mcp.WithDescription("Remove a project from the catalogue. The directory on disk is not touched."),
		mcp.WithString("path",
			mcp.Description("Path of the project to remove"),
			mcp.Required(),
		),
	)
}

func deleteProjectHandler(store ports.CatalogueStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		result, err := commands.NewDeleteProjectsCommand(store, []string{path}).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_category ---

func deleteCategoryTool() mcp.Tool {
	return mcp.NewTool("delete_category",
		mcp.WithDescription("Delete a category together with every project filed under it."),
		mcp.WithString("name",
			mcp.Description("Category name"),
			mcp.Required(),
		),
	)
}

func deleteCategoryHandler(store ports.CatalogueStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteCategoryCommand(store, req.GetString("name", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_active_category ---

func setActiveCategoryTool() mcp.Tool {
	return mcp.NewTool("set_active_category",
		mcp.WithDescription("Make a category the active one, creating it if missing."),
		mcp.WithString("name",
			mcp.Description("Category name"),
			mcp.Required(),
		),
	)
}

func setActiveCategoryHandler(store ports.CatalogueStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewActivateCategoryCommand(store, req.GetString("name", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
