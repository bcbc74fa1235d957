package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"compass/internal/adapters/tui/styles"
	"compass/internal/domain"
)

// RenderKeyHelp formats a key binding as "key desc"
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return styles.HelpKey.Render(help.Key) + " " + styles.HelpDesc.Render(help.Desc)
}

// RenderHelpLine joins key bindings with bullet separators
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage styles a status message as success or error
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderTabs renders category names as a tab strip with the current one highlighted
func RenderTabs(categories []domain.Category, current int) string {
	if len(categories) == 0 {
		return styles.MutedText.Render("no categories")
	}

	tabs := make([]string, len(categories))
	for i, c := range categories {
		label := c.Name
		if c.Active {
			label += " *"
		}
		if i == current {
			tabs[i] = styles.TabActive.Render(label)
		} else {
			tabs[i] = styles.TabInactive.Render(label)
		}
	}
	return strings.Join(tabs, styles.TabGap.String())
}

// RenderStatusBar renders a key/value strip such as the chosen IDE
func RenderStatusBar(label, value, detail string) string {
	bar := styles.StatusKey.Render(label) + styles.StatusBar.Render(value)
	if detail != "" {
		bar += " " + styles.StatusText.Render(detail)
	}
	return bar
}

// RenderLabelValue renders a label: value pair
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s", styles.InputLabel.Render(label+":"), value)
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Message adds a status message if non-empty
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
