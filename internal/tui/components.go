package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/vidsrch/internal/search"
)

// toggle is a filter checkbox. It satisfies search.Toggle.
type toggle struct {
	label    string
	source   search.Source
	checked  bool
	disabled bool
}

func newToggle(label string, source search.Source) *toggle {
	return &toggle{label: label, source: source}
}

func (t *toggle) Checked() bool { return t.checked }

func (t *toggle) SetDisabled(disabled bool) { t.disabled = disabled }

func (t *toggle) Disabled() bool { return t.disabled }

// flip changes the checked value unless the toggle is disabled.
func (t *toggle) flip() bool {
	if t.disabled {
		return false
	}
	t.checked = !t.checked
	return true
}

func (t *toggle) View(focused bool) string {
	box := "[ ]"
	if t.checked {
		box = "[x]"
	}
	text := box + " " + t.label

	style := ToggleOffStyle
	switch {
	case t.disabled:
		style = ToggleDimStyle
	case t.checked:
		style = ToggleOnStyle
	}
	if focused {
		style = style.Inherit(ToggleFocusStyle)
		text = "› " + text
	} else {
		text = "  " + text
	}
	return style.Render(text)
}

// renderToggles lays the filter row out horizontally. focused is -1 when the
// row has no focus.
func renderToggles(toggles []*toggle, focused int) string {
	cells := make([]string, len(toggles))
	for i, t := range toggles {
		cells[i] = t.View(i == focused)
	}
	return strings.Join(cells, "   ")
}

// renderHeader returns a consistently styled header with an optional muted subtitle.
func renderHeader(title, subtitle string, width int) string {
	title = truncateEnd(title, width-2)
	subtitle = truncateEnd(subtitle, width-2)
	rows := []string{HeaderStyle.Render(title)}
	if subtitle != "" {
		rows = append(rows, renderMuted(subtitle))
	}
	return lipgloss.JoinVertical(lipgloss.Top, rows...)
}

// renderInputFrame draws a rounded bordered container around a rendered input view.
func renderInputFrame(inputView string, focused bool, contentWidth int) string {
	borderColor := MutedColor
	if focused {
		borderColor = AccentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(contentWidth + 4).
		Render(inputView)
}

func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}
