package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"goalcast/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	onTrackStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	borderlineStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorOrange)
	offTrackStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// StatusStyle returns the style for a forecast status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case model.StatusOnTrack:
		return onTrackStyle
	case model.StatusBorderline:
		return borderlineStyle
	default:
		return offTrackStyle
	}
}

// RenderForecast renders a full forecast result: status banner, the
// capacity and requirement figures, and the suggestion list.
func RenderForecast(result model.ForecastResult) string {
	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("Goal status: "))
	b.WriteString(StatusStyle(result.Status).Render(StatusLabel(result.Status)))
	b.WriteString("\n\n")

	rows := [][]string{
		{"Required monthly", FormatMoney(result.RequiredMonthly)},
		{"Projected monthly", FormatMoney(result.ProjectedMonthlyToGoal)},
		{"Monthly gap", FormatMoney(result.MonthlyGap)},
		{"---"},
		{"Capacity p10", FormatMoney(result.P10)},
		{"Capacity p50", FormatMoney(result.P50)},
		{"Capacity p90", FormatMoney(result.P90)},
		{"---"},
		{"Balance at deadline (p50)", FormatMoney(result.ForecastedBalanceAtDeadlineP50)},
	}
	if result.ParsedTargetAmount != nil && result.ParsedMonthsToDeadline != nil {
		rows = append(rows,
			[]string{"---"},
			[]string{"Parsed target", FormatMoney(*result.ParsedTargetAmount)},
			[]string{"Parsed timeline", FormatMonths(*result.ParsedMonthsToDeadline)},
		)
	}

	b.WriteString(RenderTable(Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(result.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderTable(suggestionTable(result.Suggestions)))
	}

	return b.String()
}

func suggestionTable(suggestions []model.Suggestion) Table {
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		impact := FormatMoney(s.ImpactPerMonth)
		if s.LeverType == model.LeverTimeline && s.NewRequiredMonthly != nil {
			impact = fmt.Sprintf("req %s", FormatMoney(*s.NewRequiredMonthly))
		}
		rows = append(rows, []string{s.Title, s.LeverType, impact})
	}
	return Table{
		Title:   "Suggestions",
		Headers: []string{"Suggestion", "Lever", "Monthly impact"},
		Rows:    rows,
	}
}

// RenderTable renders a bordered table with headers and rows. A row whose
// first cell is "---" becomes a separator line.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			continue
		}
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	writeBorder(&b, widths, "╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		writeBorder(&b, widths, "├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if isSeparator(row) {
			writeBorder(&b, widths, "├", "┼", "┤")
			continue
		}
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(fmt.Sprintf(" %-*s ", widths[i], cell))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	writeBorder(&b, widths, "╰", "┴", "╯")

	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == "---"
}

func writeBorder(b *strings.Builder, widths []int, left, mid, right string) {
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
}
