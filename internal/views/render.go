package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	TitleBar  string
	Body      string
	Popup     string
	BottomBar string
	Width     int
	Height    int
}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("22"))
	tabStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("22"))
	tabSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("22")).Background(lipgloss.Color("10"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	panelStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("28")).Padding(0, 1)
	panelTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	popupStyle       = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("11")).Padding(0, 1)
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle      = lipgloss.NewStyle().Reverse(true)
)

// RenderApp stacks the title bar, the active tab and the bottom bar. An open
// popup is centered over the body area.
func RenderApp(data AppData) string {
	body := data.Body
	if data.Popup != "" {
		if data.Width > 0 && data.Height > 2 {
			body = lipgloss.Place(data.Width, data.Height-2, lipgloss.Center, lipgloss.Center, data.Popup)
		} else {
			body = lipgloss.JoinVertical(lipgloss.Left, body, data.Popup)
		}
	}
	return strings.Join([]string{data.TitleBar, body, data.BottomBar}, "\n")
}

// RenderTitleBar draws the application name followed by one label per tab.
func RenderTitleBar(tabs []string, active int, width int) string {
	labels := make([]string, len(tabs))
	for i, name := range tabs {
		style := tabStyle
		if i == active {
			style = tabSelectedStyle
		}
		labels[i] = style.Render(" " + name + " ")
	}
	right := lipgloss.JoinHorizontal(lipgloss.Top, labels...)
	name := titleStyle.Render(" FrogPad ")
	gap := width - lipgloss.Width(name) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return name + tabStyle.Render(strings.Repeat(" ", gap)) + right
}

// RenderCommandLine shows the command buffer after a colon with a block
// cursor at the given rune position.
func RenderCommandLine(text string, cursor int) string {
	return ":" + withCursor(text, cursor)
}

func RenderStatus(text string, isError bool) string {
	if isError {
		return errorStyle.Render("Error: " + text)
	}
	return statusStyle.Render(text)
}

func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("dark")}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func withCursor(text string, cursor int) string {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	under := " "
	after := ""
	if cursor < len(runes) {
		under = string(runes[cursor])
		after = string(runes[cursor+1:])
	}
	return string(runes[:cursor]) + cursorStyle.Render(under) + after
}

func panel(title, content string, width int) string {
	style := panelStyle
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(panelTitleStyle.Render(title) + "\n" + content)
}
