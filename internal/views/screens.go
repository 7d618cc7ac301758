package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type TaskRowData struct {
	Marker   rune
	Name     string
	Date     string
	Duration string
	Depth    int
	Last     bool
	Selected bool
}

type SubTaskData struct {
	Marker rune
	Name   string
}

type DetailsData struct {
	Name     string
	Status   string
	Date     string
	Duration string
	SubTasks []SubTaskData
}

type TasksTabData struct {
	Lists      []string
	ActiveList int
	Rows       []TaskRowData
	// Details is nil when nothing is addressed.
	Details *DetailsData
	Width   int
}

type CalendarData struct {
	Year  int
	Month time.Month
	Day   int
	Width int
}

type OptionsData struct {
	DeleteOnCompletion  bool
	ErrorDisplaySeconds int
	DataFile            string
	Width               int
}

type EditorData struct {
	Title       string
	Description string
	Cursor      int
	Focus       string
	Status      string
	Date        string
	DateDraft   string
	DraftCursor int
	Drafting    bool
	Duration    string
}

type ConfirmData struct {
	Title string
	Body  string
	Yes   bool
}

type PromptData struct {
	Title  string
	Input  string
	Cursor int
}

const (
	dateColumn     = 8
	durationColumn = 10
	markColumn     = 4
	minNameColumn  = 20
)

func RenderTasksTab(data TasksTabData) string {
	listWidth, detailsWidth := 0, 0
	if data.Width > 0 {
		listWidth = data.Width * 7 / 10
		detailsWidth = data.Width - listWidth
	}

	var b strings.Builder
	b.WriteString("Task Lists:")
	for i, name := range data.Lists {
		label := " " + name + " "
		if i == data.ActiveList {
			label = selectedStyle.Render(label)
		}
		b.WriteString(label)
	}
	b.WriteString("\n")

	nameWidth := listWidth - 4 - markColumn - dateColumn - durationColumn
	if nameWidth < minNameColumn {
		nameWidth = minNameColumn
	}
	b.WriteString(mutedStyle.Render(strings.Repeat(" ", markColumn+nameWidth) + pad("Date", dateColumn) + pad("Duration", durationColumn)))
	b.WriteString("\n")

	if len(data.Lists) == 0 {
		b.WriteString(mutedStyle.Render("No task lists. Press a to add a task or run :t newlist."))
	}
	for i, row := range data.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderRow(row, nameWidth))
	}

	left := panel("Tasks", b.String(), listWidth)
	details := mutedStyle.Render("No task selected")
	if data.Details != nil {
		details = RenderMarkdown(DetailsMarkdown(*data.Details), detailsWidth-4)
	}
	right := panel("Details", details, detailsWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func renderRow(row TaskRowData, nameWidth int) string {
	mark := fmt.Sprintf("[%c] ", row.Marker)
	if row.Depth > 0 {
		branch := " ├─"
		if row.Last {
			branch = " └─"
		}
		line := branch + mark + pad(row.Name, nameWidth-len([]rune(branch)))
		if row.Selected {
			return selectedStyle.Render(line)
		}
		return line
	}
	name := pad(row.Name, nameWidth)
	if row.Selected {
		mark = selectedStyle.Render(mark)
		name = selectedStyle.Render(name)
	}
	return mark + name + pad(row.Date, dateColumn) + pad(row.Duration, durationColumn)
}

// DetailsMarkdown describes one task for the details pane.
func DetailsMarkdown(d DetailsData) string {
	var b strings.Builder
	name := d.Name
	if strings.TrimSpace(name) == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&b, "## %s\n\n", name)
	fmt.Fprintf(&b, "- **Status:** %s\n", d.Status)
	fmt.Fprintf(&b, "- **Date:** %s\n", d.Date)
	fmt.Fprintf(&b, "- **Duration:** %s\n", strings.TrimSpace(d.Duration))
	if len(d.SubTasks) > 0 {
		b.WriteString("\n### Sub-tasks\n\n")
		for _, sub := range d.SubTasks {
			fmt.Fprintf(&b, "- `[%c]` %s\n", sub.Marker, sub.Name)
		}
	}
	return b.String()
}

// MonthGrid lays out a month as weeks starting on Sunday. Blank cells are 0.
func MonthGrid(year int, month time.Month) [][]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	var weeks [][]int
	week := make([]int, 7)
	col := int(first.Weekday())
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

func RenderCalendar(data CalendarData) string {
	var b strings.Builder
	header := fmt.Sprintf("%s %d", data.Month, data.Year)
	b.WriteString(lipgloss.PlaceHorizontal(20, lipgloss.Center, header))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Su Mo Tu We Th Fr Sa"))
	for _, week := range MonthGrid(data.Year, data.Month) {
		b.WriteString("\n")
		cells := make([]string, len(week))
		for i, day := range week {
			switch {
			case day == 0:
				cells[i] = "  "
			case day == data.Day:
				cells[i] = selectedStyle.Render(fmt.Sprintf("%2d", day))
			default:
				cells[i] = fmt.Sprintf("%2d", day)
			}
		}
		b.WriteString(strings.Join(cells, " "))
	}
	return panel("Monthly View", b.String(), 26)
}

func RenderOptions(data OptionsData) string {
	yn := "N"
	if data.DeleteOnCompletion {
		yn = "Y"
	}
	lines := []string{
		"Delete task on completion: " + yn,
		fmt.Sprintf("Error message display time: %d sec", data.ErrorDisplaySeconds),
		"Data file: " + data.DataFile,
		"",
		mutedStyle.Render("d toggle delete on completion, +/- change display time"),
	}
	return panel("Options", strings.Join(lines, "\n"), data.Width)
}

func RenderEditor(data EditorData) string {
	label := func(field, text string) string {
		if data.Focus == field {
			return selectedStyle.Render(text)
		}
		return text
	}

	desc := data.Description
	if data.Focus == "description" {
		desc = withCursor(data.Description, data.Cursor)
	}
	date := data.Date
	if data.Drafting {
		date = withCursor(data.DateDraft, data.DraftCursor)
	}

	lines := []string{
		label("description", "Description:") + " " + desc,
		label("status", "Status:") + " " + data.Status,
		label("date", "Date:") + " " + date,
		label("duration", "Duration:") + " " + data.Duration,
		"",
		mutedStyle.Render("tab next field, enter save, esc cancel"),
	}
	return popupStyle.Width(48).Render(panelTitleStyle.Render(data.Title) + "\n" + strings.Join(lines, "\n"))
}

func RenderConfirm(data ConfirmData) string {
	yes, no := "[ Yes ]", "[ No ]"
	if data.Yes {
		yes = selectedStyle.Render(yes)
	} else {
		no = selectedStyle.Render(no)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes, "  ", no)
	return popupStyle.Render(panelTitleStyle.Render(data.Title) + "\n" + data.Body + "\n\n" + buttons)
}

func RenderPrompt(data PromptData) string {
	return popupStyle.Width(36).Render(panelTitleStyle.Render(data.Title) + "\n" + withCursor(data.Input, data.Cursor))
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if width <= 0 {
		return s
	}
	if n >= width {
		if width == 1 {
			return string([]rune(s)[:1])
		}
		return string([]rune(s)[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-n)
}
