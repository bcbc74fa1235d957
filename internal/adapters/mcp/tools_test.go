package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/adapters/sqlite"
)

var fixedNow = time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "compass.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func call(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text, result.IsError
}

func TestAddAndListProjects(t *testing.T) {
	store := openStore(t)
	add := addProjectHandler(store, func() time.Time { return fixedNow })

	msg, isErr := call(t, add, map[string]any{"path": "/src/api", "category": "Work"})
	require.False(t, isErr, msg)
	assert.Equal(t, "Added api to Work", msg)

	_, isErr = call(t, add, map[string]any{"path": "/src/notes", "name": "Notes"})
	require.False(t, isErr)

	out, isErr := call(t, listProjectsHandler(store), map[string]any{})
	require.False(t, isErr)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "api  /src/api  Work  2026-01-20T08:00:00Z", lines[0])
	assert.Equal(t, "Notes  /src/notes  Default  2026-01-20T08:00:00Z", lines[1])

	out, _ = call(t, listProjectsHandler(store), map[string]any{"category": "Work"})
	assert.Equal(t, 1, strings.Count(out, "\n"))

	out, _ = call(t, listProjectsHandler(store), map[string]any{"category": "Empty"})
	assert.Equal(t, "No results.", out)
}

func TestAddProject_MissingPath(t *testing.T) {
	store := openStore(t)
	msg, isErr := call(t, addProjectHandler(store, time.Now), map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, msg, "path is required")
}

func TestCategoryTools(t *testing.T) {
	store := openStore(t)

	out, _ := call(t, activeCategoryHandler(store), nil)
	assert.Equal(t, "No active category.", out)

	msg, isErr := call(t, setActiveCategoryHandler(store), map[string]any{"name": "Work"})
	require.False(t, isErr, msg)
	_, _ = call(t, setActiveCategoryHandler(store), map[string]any{"name": "home"})

	out, _ = call(t, activeCategoryHandler(store), nil)
	assert.Equal(t, "home", out)

	out, _ = call(t, listCategoriesHandler(store), nil)
	assert.Equal(t, "home *\nWork\n", out)
}

func TestEditAndDeleteTools(t *testing.T) {
	store := openStore(t)
	add := addProjectHandler(store, func() time.Time { return fixedNow })
	_, isErr := call(t, add, map[string]any{"path": "/src/api", "category": "Work"})
	require.False(t, isErr)

	msg, isErr := call(t, editProjectHandler(store), map[string]any{"path": "/src/api", "new_name": "API"})
	require.False(t, isErr, msg)
	p, err := store.GetProject("/src/api")
	require.NoError(t, err)
	assert.Equal(t, "API", p.Name)

	msg, isErr = call(t, editProjectHandler(store), map[string]any{"path": "/missing", "new_name": "x"})
	assert.True(t, isErr)
	assert.Contains(t, msg, "not found")

	msg, isErr = call(t, deleteProjectHandler(store), map[string]any{"path": "/src/api"})
	require.False(t, isErr, msg)
	p, err = store.GetProject("/src/api")
	require.NoError(t, err)
	assert.Nil(t, p)

	_, _ = call(t, add, map[string]any{"path": "/src/web", "category": "Work"})
	msg, isErr = call(t, deleteCategoryHandler(store), map[string]any{"name": "Work"})
	require.False(t, isErr, msg)
	assert.Equal(t, "Deleted category Work and 1 project(s)", msg)

	out, _ := call(t, listCategoriesHandler(store), nil)
	assert.Equal(t, "Default *\n", out)
}
