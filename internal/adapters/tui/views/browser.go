package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"compass/internal/adapters/tui/styles"
	"compass/internal/application/commands"
	"compass/internal/domain"
	"compass/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up             key.Binding
	Down           key.Binding
	PrevPage       key.Binding
	NextPage       key.Binding
	NextTab        key.Binding
	PrevTab        key.Binding
	Toggle         key.Binding
	Run            key.Binding
	CycleIDE       key.Binding
	Add            key.Binding
	Create         key.Binding
	Edit           key.Binding
	NewCategory    key.Binding
	Delete         key.Binding
	DeleteCategory key.Binding
	Copy           key.Binding
	Reveal         key.Binding
	Help           key.Binding
	Quit           key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next category"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev category"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "select"),
	),
	Run: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	CycleIDE: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "ide"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Create: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "create"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	NewCategory: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new category"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "remove"),
	),
	DeleteCategory: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete category"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Reveal: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "reveal"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// chrome is the number of lines around the project list
const chrome = 10

// BrowserModel shows one category's projects as a selectable list under a
// strip of category tabs
type BrowserModel struct {
	ViewState
	store    ports.CatalogueStore
	launcher ports.Launcher
	opener   ports.DirectoryOpener
	clock    Clock
	copyPath func(string) error

	ides     []string
	ideIndex int

	categories []domain.Category
	tab        int
	projects   []domain.Project
	labels     []string
	selected   map[string]bool
	pager      *Paginator
	loaded     bool
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(store ports.CatalogueStore, launcher ports.Launcher, opener ports.DirectoryOpener, ides []string, clock Clock) *BrowserModel {
	return &BrowserModel{
		store:    store,
		launcher: launcher,
		opener:   opener,
		clock:    clock,
		copyPath: clipboard.WriteAll,
		ides:     ides,
		selected: make(map[string]bool),
		pager:    NewPaginator(defaultPageSize),
	}
}

type catalogueLoadedMsg struct {
	categories []domain.Category
	tab        int
	projects   []domain.Project
}

type projectsLoadedMsg struct {
	category string
	projects []domain.Project
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// RunFinishedMsg reports that the IDE was started; the app quits on it
type RunFinishedMsg struct {
	Message string
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadCatalogue("")
}

// Reload re-reads categories and projects. A non-empty category switches to
// that tab when it exists.
func (m *BrowserModel) Reload(category string) tea.Cmd {
	return m.loadCatalogue(category)
}

// loadCatalogue picks the tab for want, or else the active category
func (m *BrowserModel) loadCatalogue(want string) tea.Cmd {
	if want == "" {
		want = m.CurrentCategory()
	}
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := commands.NewBootstrapCommand(m.store).Execute(ctx); err != nil {
			return errMsg{err}
		}

		categories, err := commands.NewListCategoriesCommand(m.store).Execute(ctx)
		if err != nil {
			return errMsg{err}
		}

		tab := 0
		for i, c := range categories {
			if c.Active {
				tab = i
			}
		}
		for i, c := range categories {
			if want != "" && c.Name == want {
				tab = i
			}
		}

		var projects []domain.Project
		if len(categories) > 0 {
			projects, err = commands.NewListProjectsCommand(m.store, categories[tab].Name).Execute(ctx)
			if err != nil {
				return errMsg{err}
			}
		}
		return catalogueLoadedMsg{categories: categories, tab: tab, projects: projects}
	}
}

// switchTab activates the category at index and loads its projects
func (m *BrowserModel) switchTab(index int) tea.Cmd {
	if len(m.categories) == 0 {
		return nil
	}
	index = (index + len(m.categories)) % len(m.categories)
	m.tab = index
	name := m.categories[index].Name
	for i := range m.categories {
		m.categories[i].Active = i == index
	}

	return func() tea.Msg {
		ctx := context.Background()
		if _, err := commands.NewActivateCategoryCommand(m.store, name).Execute(ctx); err != nil {
			return errMsg{err}
		}
		projects, err := commands.NewListProjectsCommand(m.store, name).Execute(ctx)
		if err != nil {
			return errMsg{err}
		}
		return projectsLoadedMsg{category: name, projects: projects}
	}
}

func (m *BrowserModel) setProjects(projects []domain.Project) {
	m.projects = projects
	m.labels = domain.DisplayLabels(projects)

	keep := make(map[string]bool, len(m.selected))
	for _, p := range projects {
		if m.selected[p.Path] {
			keep[p.Path] = true
		}
	}
	m.selected = keep
	m.pager.SetTotal(len(projects))
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case catalogueLoadedMsg:
		m.loaded = true
		m.categories = msg.categories
		m.tab = msg.tab
		m.setProjects(msg.projects)
		return m, nil

	case projectsLoadedMsg:
		if msg.category == m.CurrentCategory() {
			m.pager.SetCursor(0)
			m.setProjects(msg.projects)
		}
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case RunFinishedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.pager.Up()
	case key.Matches(msg, BrowserKeys.Down):
		m.pager.Down()
	case key.Matches(msg, BrowserKeys.PrevPage):
		m.pager.PrevPage()
	case key.Matches(msg, BrowserKeys.NextPage):
		m.pager.NextPage()

	case key.Matches(msg, BrowserKeys.NextTab):
		return m.switchTab(m.tab + 1)
	case key.Matches(msg, BrowserKeys.PrevTab):
		return m.switchTab(m.tab - 1)

	case key.Matches(msg, BrowserKeys.Toggle):
		if p := m.cursorProject(); p != nil {
			if m.selected[p.Path] {
				delete(m.selected, p.Path)
			} else {
				m.selected[p.Path] = true
			}
			m.pager.Down()
		}

	case key.Matches(msg, BrowserKeys.CycleIDE):
		if len(m.ides) > 0 {
			m.ideIndex = (m.ideIndex + 1) % len(m.ides)
		}

	case key.Matches(msg, BrowserKeys.Run):
		return m.run()

	case key.Matches(msg, BrowserKeys.Add):
		return m.switchToForm(FormAdd, nil)
	case key.Matches(msg, BrowserKeys.Create):
		return m.switchToForm(FormCreate, nil)
	case key.Matches(msg, BrowserKeys.NewCategory):
		return m.switchToForm(FormCategory, nil)
	case key.Matches(msg, BrowserKeys.Edit):
		if p := m.cursorProject(); p != nil {
			return m.switchToForm(FormEdit, p)
		}

	case key.Matches(msg, BrowserKeys.Delete):
		if targets := m.Selection(); len(targets) > 0 {
			return func() tea.Msg { return SwitchToDeleteMsg{Projects: targets} }
		}

	case key.Matches(msg, BrowserKeys.DeleteCategory):
		if len(m.categories) > 0 {
			cat := m.categories[m.tab]
			affected := len(m.projects)
			return func() tea.Msg { return SwitchToDeleteMsg{Category: &cat, Affected: affected} }
		}

	case key.Matches(msg, BrowserKeys.Copy):
		if p := m.cursorProject(); p != nil {
			if err := m.copyPath(p.Path); err != nil {
				m.SetMessage(fmt.Sprintf("Clipboard unavailable: %v", err), true)
			} else {
				m.SetMessage("Copied "+p.Path, false)
			}
		}

	case key.Matches(msg, BrowserKeys.Reveal):
		if p := m.cursorProject(); p != nil && m.opener != nil {
			path := p.Path
			return func() tea.Msg {
				if err := m.opener.OpenDirectory(path); err != nil {
					return errMsg{err}
				}
				return successMsg{"Opened " + path}
			}
		}

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return nil
}

func (m *BrowserModel) switchToForm(mode FormMode, project *domain.Project) tea.Cmd {
	category := m.CurrentCategory()
	return func() tea.Msg {
		return SwitchToFormMsg{Mode: mode, Project: project, Category: category}
	}
}

func (m *BrowserModel) run() tea.Cmd {
	targets := m.Selection()
	if len(targets) == 0 {
		return nil
	}
	if m.launcher == nil {
		m.SetMessage("No launcher configured", true)
		return nil
	}

	ide := m.IDE()
	paths := domain.Paths(targets)
	now := m.clock.now()
	return func() tea.Msg {
		result, err := commands.NewRunProjectsCommand(m.store, m.launcher, paths, ide, now).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return RunFinishedMsg{Message: result.Message}
	}
}

// Selection returns the checked projects in list order, or the project under
// the cursor when nothing is checked
func (m *BrowserModel) Selection() []domain.Project {
	var out []domain.Project
	for _, p := range m.projects {
		if m.selected[p.Path] {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		if p := m.cursorProject(); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// CurrentCategory returns the name of the category tab being shown
func (m *BrowserModel) CurrentCategory() string {
	if m.tab >= 0 && m.tab < len(m.categories) {
		return m.categories[m.tab].Name
	}
	return ""
}

// IDE returns the IDE command enter will use
func (m *BrowserModel) IDE() string {
	if len(m.ides) == 0 {
		return ""
	}
	return m.ides[m.ideIndex]
}

func (m *BrowserModel) cursorProject() *domain.Project {
	i := m.pager.Cursor()
	if i >= 0 && i < len(m.projects) {
		p := m.projects[i]
		return &p
	}
	return nil
}

// SetSize updates the view dimensions and the page size
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(height - chrome)
}

// View renders the browser
func (m *BrowserModel) View() string {
	if !m.loaded {
		return styles.App.Render("Loading...")
	}

	v := NewViewBuilder().Title("Compass")
	v.Line(RenderTabs(m.categories, m.tab))
	v.BlankLine()

	if len(m.projects) == 0 {
		v.Muted("No projects here yet. Press a to add one or c to create one.")
	} else {
		now := m.clock.now()
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(m.renderRow(i, now))
		}
	}
	v.BlankLine()

	detail := m.pager.PageInfo()
	if n := len(m.selected); n > 0 {
		detail = strings.TrimSpace(fmt.Sprintf("%d selected  %s", n, detail))
	}
	v.Line(RenderStatusBar("IDE", m.IDE(), detail))
	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(
		BrowserKeys.Toggle,
		BrowserKeys.Run,
		BrowserKeys.CycleIDE,
		BrowserKeys.NextTab,
		BrowserKeys.Add,
		BrowserKeys.Create,
		BrowserKeys.Edit,
		BrowserKeys.Delete,
		BrowserKeys.Help,
		BrowserKeys.Quit,
	)
	return v.String()
}

func (m *BrowserModel) renderRow(i int, now time.Time) string {
	p := m.projects[i]

	box := styles.Unchecked.String()
	if m.selected[p.Path] {
		box = styles.Checked.String()
	}

	cursor := i == m.pager.Cursor()
	return box + styles.ProjectRow(cursor, p.IsRecent(now)).Render(m.labels[i])
}

// Messages for view switching
type SwitchToFormMsg struct {
	Mode     FormMode
	Project  *domain.Project
	Category string
}

type SwitchToDeleteMsg struct {
	Projects []domain.Project
	Category *domain.Category
	Affected int
}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}
