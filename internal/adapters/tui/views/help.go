package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"compass/internal/adapters/tui/styles"
	"compass/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

func helpSections() []helpSection {
	k := BrowserKeys
	return []helpSection{
		{"Navigation", []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.NextTab, k.PrevTab}},
		{"Opening", []key.Binding{k.Toggle, k.Run, k.CycleIDE}},
		{"Catalogue", []key.Binding{k.Add, k.Create, k.Edit, k.Delete, k.NewCategory, k.DeleteCategory}},
		{"Other", []key.Binding{k.Copy, k.Reveal, k.Help, k.Quit}},
	}
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().Title("Compass Help").Subtitle("Project launcher")

	for _, section := range helpSections() {
		v.Line(styles.InputLabel.Render(section.title))
		for _, b := range section.bindings {
			h := b.Help()
			v.Raw(helpLine(h.Key, h.Desc))
		}
		v.BlankLine()
	}

	v.Line(styles.InputLabel.Render("Highlighting"))
	v.Line("  " + styles.RowRecent.Render("green") + styles.HelpDesc.Render(" projects were opened in the last "+recentLabel()))
	v.Line("  " + styles.HelpDesc.Render("projects sharing a name show their path"))
	v.BlankLine()

	v.Raw(styles.HelpDesc.Render("Press ") + styles.HelpKey.Render("esc") +
		styles.HelpDesc.Render(" or ") + styles.HelpKey.Render("?") +
		styles.HelpDesc.Render(" to close"))
	return v.String()
}

func recentLabel() string {
	days := int(domain.RecentWindow.Hours() / 24)
	if days == 1 {
		return "day"
	}
	return fmt.Sprintf("%d days", days)
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 14)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
