package views

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"compass/internal/application/commands"
	"compass/internal/config"
	"compass/internal/domain"
	"compass/internal/ports"
)

// FormMode selects what the project form edits
type FormMode int

const (
	FormAdd FormMode = iota
	FormCreate
	FormEdit
	FormCategory
)

func (m FormMode) String() string {
	switch m {
	case FormAdd:
		return "Add Project"
	case FormCreate:
		return "Create Project"
	case FormEdit:
		return "Edit Project"
	case FormCategory:
		return "New Category"
	default:
		return "Unknown"
	}
}

// FormModel is the shared form for adding, scaffolding and editing projects
// and for creating categories
type FormModel struct {
	ViewState
	store        ports.CatalogueStore
	scaffolder   ports.Scaffolder
	projectsPath string
	clock        Clock

	mode    FormMode
	form    *InputForm
	target  *domain.Project
	pending bool
}

// NewFormModel creates a new form view model
func NewFormModel(store ports.CatalogueStore, scaffolder ports.Scaffolder, projectsPath string, clock Clock) *FormModel {
	return &FormModel{
		store:        store,
		scaffolder:   scaffolder,
		projectsPath: projectsPath,
		clock:        clock,
	}
}

// Open resets the form for mode. project is the edit target, category the
// category the browser is showing.
func (m *FormModel) Open(mode FormMode, project *domain.Project, category string) {
	m.mode = mode
	m.target = project
	m.pending = false
	m.ClearMessage()

	dirHint := m.projectsPath
	if dirHint != "" {
		dirHint += string(filepath.Separator)
	}

	switch mode {
	case FormAdd:
		m.form = NewInputForm(
			NewInputField("Directory", "/path/to/project", dirHint),
			NewInputField("Name", "defaults to the directory name", ""),
			NewInputField("Category", domain.DefaultCategoryName, category),
		)
	case FormCreate:
		m.form = NewInputForm(
			NewInputField("New directory", "/path/to/new-project", dirHint),
			NewInputField("Category", domain.DefaultCategoryName, category),
		)
	case FormEdit:
		m.form = NewInputForm(
			NewInputField("Name", "", project.Name),
			NewInputField("Directory", "", project.Path),
			NewInputField("Category", "", project.Category.Name),
		)
	case FormCategory:
		m.form = NewInputForm(
			NewInputField("Category name", "e.g. Work", ""),
		)
	}
}

// Mode returns the mode the form was last opened in
func (m *FormModel) Mode() FormMode {
	return m.mode
}

// Init initializes the form view
func (m *FormModel) Init() tea.Cmd {
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

// Update handles messages for the form view
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case FormErrMsg:
		m.pending = false
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			if m.pending {
				return m, nil
			}
			m.pending = true
			if m.mode == FormCreate {
				m.SetMessage("Running template...", false)
			}
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *FormModel) submit() tea.Cmd {
	mode := m.mode
	values := make([]string, len(m.form.Fields))
	for i := range values {
		values[i] = m.form.Value(i)
	}
	target := m.target
	now := m.clock.now()

	return func() tea.Msg {
		ctx := context.Background()

		switch mode {
		case FormAdd:
			path, err := config.ExpandPath(values[0])
			if err != nil {
				return FormErrMsg{Err: err}
			}
			result, err := commands.NewAddProjectCommand(m.store, path, values[1], values[2], now).Execute(ctx)
			if err != nil {
				return FormErrMsg{Err: err}
			}
			return FormSuccessMsg{Message: result.Message, Category: result.Project.Category.Name}

		case FormCreate:
			dir, err := config.ExpandPath(values[0])
			if err != nil {
				return FormErrMsg{Err: err}
			}
			result, err := commands.NewCreateProjectCommand(m.store, m.scaffolder, dir, values[1], now).Execute(ctx)
			if err != nil {
				return FormErrMsg{Err: err}
			}
			return FormSuccessMsg{Message: result.Message, Category: result.Project.Category.Name}

		case FormEdit:
			if target == nil {
				return FormErrMsg{Err: fmt.Errorf("no project selected")}
			}
			newPath, err := config.ExpandPath(values[1])
			if err != nil {
				return FormErrMsg{Err: err}
			}
			if newPath == target.Path {
				newPath = ""
			}
			newName := values[0]
			if newName == target.Name {
				newName = ""
			}
			category := values[2]
			if category == target.Category.Name {
				category = ""
			}
			if newName == "" && newPath == "" && category == "" {
				return FormSuccessMsg{Message: "Nothing changed", Category: target.Category.Name}
			}
			result, err := commands.NewEditProjectCommand(m.store, target.Path, newName, newPath, category).Execute(ctx)
			if err != nil {
				return FormErrMsg{Err: err}
			}
			return FormSuccessMsg{Message: result.Message, Category: result.Project.Category.Name}

		case FormCategory:
			result, err := commands.NewActivateCategoryCommand(m.store, values[0]).Execute(ctx)
			if err != nil {
				return FormErrMsg{Err: err}
			}
			return FormSuccessMsg{Message: result.Message, Category: result.Category.Name}
		}

		return FormErrMsg{Err: fmt.Errorf("unknown form mode %d", mode)}
	}
}

// FormSuccessMsg reports a saved form; Category is where the result lives
type FormSuccessMsg struct {
	Message  string
	Category string
}

// FormErrMsg reports a failed save; the form stays open
type FormErrMsg struct {
	Err error
}

// View renders the form view
func (m *FormModel) View() string {
	if m.form == nil {
		return ""
	}

	v := NewViewBuilder().Title(m.mode.String())
	switch m.mode {
	case FormAdd:
		v.Subtitle("Catalogue an existing directory.")
	case FormCreate:
		v.Subtitle("Generate a directory from the project template, then catalogue it.")
	case FormEdit:
		v.Subtitle("Last opened time is kept.")
	case FormCategory:
		v.Subtitle("The new category becomes the active one.")
	}

	v.Raw(m.form.Render())
	v.Message(m.Message, m.MessageErr)
	v.Raw(m.form.RenderHelp())
	return v.String()
}
