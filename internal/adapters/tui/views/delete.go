package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"compass/internal/adapters/tui/styles"
	"compass/internal/application/commands"
	"compass/internal/domain"
	"compass/internal/ports"
)

// DeleteModel confirms removal of selected projects or of a whole category
type DeleteModel struct {
	ConfirmationModel
	store    ports.CatalogueStore
	projects []domain.Project
	category *domain.Category
	affected int
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(store ports.CatalogueStore) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		store:             store,
	}
}

// SetProjects targets a set of projects
func (m *DeleteModel) SetProjects(projects []domain.Project) {
	m.projects = projects
	m.category = nil
	m.affected = len(projects)
}

// SetCategory targets a category; affected is how many projects go with it
func (m *DeleteModel) SetCategory(category domain.Category, affected int) {
	m.category = &category
	m.projects = nil
	m.affected = affected
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doDelete,
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	ctx := context.Background()

	if m.category != nil {
		result, err := commands.NewDeleteCategoryCommand(m.store, m.category.Name).Execute(ctx)
		if err != nil {
			return DeleteErrMsg{Err: err}
		}
		return DeleteSuccessMsg{Message: result.Message}
	}

	if len(m.projects) == 0 {
		return DeleteErrMsg{Err: fmt.Errorf("no projects selected")}
	}
	result, err := commands.NewDeleteProjectsCommand(m.store, domain.Paths(m.projects)).Execute(ctx)
	if err != nil {
		return DeleteErrMsg{Err: err}
	}
	return DeleteSuccessMsg{Message: result.Message}
}

// DeleteSuccessMsg indicates successful deletion
type DeleteSuccessMsg struct {
	Message string
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	v := NewViewBuilder()

	if m.category != nil {
		v.Title("Delete Category")
		v.Line(RenderTargetList("Category", []string{m.category.Name}))
		v.BlankLine()
		v.Line(styles.ErrorMsg.Render(fmt.Sprintf("Its %d project(s) will be removed from the catalogue.", m.affected)))
	} else {
		v.Title("Remove Projects")
		targets := make([]string, len(m.projects))
		for i, p := range m.projects {
			targets[i] = p.Name + " " + styles.RowPath.Render(p.Path)
		}
		v.Line(RenderTargetList("Projects", targets))
		v.BlankLine()
		v.Muted("Directories on disk are not touched.")
	}

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Raw(RenderConfirmPrompt("Are you sure?"))
	return v.String()
}
