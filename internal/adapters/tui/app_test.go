package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/adapters/sqlite"
	"compass/internal/adapters/tui/views"
	"compass/internal/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewApp(store, WithIDEs([]string{"code"}))
}

func TestAppRoutesViewSwitches(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, ViewBrowser, app.state)

	app.Update(views.SwitchToHelpMsg{})
	assert.Equal(t, ViewHelp, app.state)

	app.Update(views.SwitchToBrowserMsg{})
	assert.Equal(t, ViewBrowser, app.state)

	app.Update(views.SwitchToFormMsg{Mode: views.FormAdd, Category: "Work"})
	assert.Equal(t, ViewForm, app.state)
	assert.Equal(t, views.FormAdd, app.form.Mode())

	app.Update(views.SwitchToDeleteMsg{Projects: []domain.Project{{Name: "api", Path: "/src/api"}}})
	assert.Equal(t, ViewDelete, app.state)
}

func TestAppReturnsToBrowserAfterSuccess(t *testing.T) {
	app := newTestApp(t)

	app.Update(views.SwitchToFormMsg{Mode: views.FormAdd})
	_, cmd := app.Update(views.FormSuccessMsg{Message: "Added api to Work", Category: "Work"})
	assert.Equal(t, ViewBrowser, app.state)
	assert.NotNil(t, cmd)

	app.Update(views.SwitchToDeleteMsg{Projects: []domain.Project{{Name: "api", Path: "/src/api"}}})
	_, cmd = app.Update(views.DeleteSuccessMsg{Message: "Deleted 1 project(s)"})
	assert.Equal(t, ViewBrowser, app.state)
	assert.NotNil(t, cmd)
}

func TestAppDeleteErrorStaysOnConfirmation(t *testing.T) {
	app := newTestApp(t)

	app.Update(views.SwitchToDeleteMsg{Projects: []domain.Project{{Name: "api", Path: "/src/api"}}})
	app.Update(views.DeleteErrMsg{Err: errors.New("disk full")})
	assert.Equal(t, ViewDelete, app.state)
	assert.Contains(t, app.View(), "disk full")
}

func TestAppQuitsAfterLaunch(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(views.RunFinishedMsg{Message: "Opened 1 project(s) in code"})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.Equal(t, "Opened 1 project(s) in code", app.Launched)
}
