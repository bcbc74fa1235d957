package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"compass/internal/adapters/tui/views"
	"compass/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewForm
	ViewDelete
	ViewHelp
)

// App is the main TUI application model
type App struct {
	store      ports.CatalogueStore
	launcher   ports.Launcher
	opener     ports.DirectoryOpener
	scaffolder ports.Scaffolder
	ides       []string
	projects   string
	clock      views.Clock
	log        *zap.Logger

	state   ViewState
	browser *views.BrowserModel
	form    *views.FormModel
	delete  *views.DeleteModel
	help    *views.HelpModel

	// Launched is set once an IDE has been started
	Launched string
}

// Option configures the App
type Option func(*App)

// WithLauncher sets how selected projects are opened
func WithLauncher(l ports.Launcher) Option {
	return func(a *App) { a.launcher = l }
}

// WithOpener sets how a project directory is revealed
func WithOpener(o ports.DirectoryOpener) Option {
	return func(a *App) { a.opener = o }
}

// WithScaffolder enables creating projects from a template
func WithScaffolder(s ports.Scaffolder) Option {
	return func(a *App) { a.scaffolder = s }
}

// WithIDEs sets the IDE commands cycled with i; the first is the default
func WithIDEs(ides []string) Option {
	return func(a *App) { a.ides = ides }
}

// WithProjectsPath prefills directory fields in forms
func WithProjectsPath(path string) Option {
	return func(a *App) { a.projects = path }
}

// WithClock overrides the time source used for last-opened stamps
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.clock = now }
}

// WithLogger sets the application logger
func WithLogger(log *zap.Logger) Option {
	return func(a *App) {
		if log != nil {
			a.log = log
		}
	}
}

// NewApp creates a new TUI application
func NewApp(store ports.CatalogueStore, opts ...Option) *App {
	a := &App{
		store: store,
		clock: time.Now,
		log:   zap.NewNop(),
		state: ViewBrowser,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.browser = views.NewBrowserModel(store, a.launcher, a.opener, a.ides, a.clock)
	a.form = views.NewFormModel(store, a.scaffolder, a.projects, a.clock)
	a.delete = views.NewDeleteModel(store)
	a.help = views.NewHelpModel()
	return a
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.browser.SetSize(msg.Width, msg.Height)
		a.form.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToFormMsg:
		a.state = ViewForm
		a.form.Open(msg.Mode, msg.Project, msg.Category)
		return a, a.form.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.ClearMessage()
		if msg.Category != nil {
			a.delete.SetCategory(*msg.Category, msg.Affected)
		} else {
			a.delete.SetProjects(msg.Projects)
		}
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload("")

	// Results of forms and confirmations
	case views.FormSuccessMsg:
		a.log.Debug("form saved", zap.String("mode", a.form.Mode().String()), zap.String("message", msg.Message))
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Message, false)
		return a, a.browser.Reload(msg.Category)

	case views.DeleteSuccessMsg:
		a.log.Info("deleted", zap.String("message", msg.Message))
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Message, false)
		return a, a.browser.Reload("")

	case views.DeleteErrMsg:
		a.log.Error("delete failed", zap.Error(msg.Err))
		a.delete.SetMessage(msg.Err.Error(), true)
		return a, nil

	case views.RunFinishedMsg:
		a.log.Info("launched", zap.String("message", msg.Message))
		a.Launched = msg.Message
		return a, tea.Quit
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewForm:
		return a.form.View()
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
