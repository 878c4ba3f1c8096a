// Package tui provides the interactive Bubble Tea dashboard for a
// forecast result.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"goalcast/internal/cli"
	"goalcast/internal/forecast"
	"goalcast/internal/model"
)

// analysisDoneMsg is sent when the forecast computation finishes.
type analysisDoneMsg struct {
	result model.ForecastResult
	err    error
}

var (
	appTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.ColorText)
	labelStyle    = lipgloss.NewStyle().Foreground(cli.ColorTextMuted)
	valueStyle    = lipgloss.NewStyle().Foreground(cli.ColorText)
	helpStyle     = lipgloss.NewStyle().Foreground(cli.ColorTextDim)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cli.ColorBorder).
			Padding(0, 2)
)

// App is the root Bubble Tea model.
type App struct {
	forecaster *forecast.Forecaster
	txns       []model.Transaction
	goal       model.Goal

	spin        spinner.Model
	prog        progress.Model
	suggestions table.Model

	result model.ForecastResult
	err    error
	loaded bool

	width  int
	height int
}

// NewApp returns a dashboard that analyzes the given transactions and
// goal when started.
func NewApp(forecaster *forecast.Forecaster, txns []model.Transaction, goal model.Goal) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.ColorAccent)

	return App{
		forecaster: forecaster,
		txns:       txns,
		goal:       goal,
		spin:       sp,
		prog:       progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.runAnalysis)
}

func (a App) runAnalysis() tea.Msg {
	result, err := a.forecaster.Analyze(context.Background(), a.txns, a.goal, time.Now())
	return analysisDoneMsg{result: result, err: err}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.prog.Width = min(60, max(20, a.width-20))
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return a, tea.Quit
		}

	case analysisDoneMsg:
		a.loaded = true
		a.result = msg.result
		a.err = msg.err
		if a.err == nil {
			a.suggestions = suggestionTable(a.result.Suggestions)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	if a.loaded && a.err == nil {
		var cmd tea.Cmd
		a.suggestions, cmd = a.suggestions.Update(msg)
		return a, cmd
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	if !a.loaded {
		return fmt.Sprintf("\n  %s Analyzing transactions...\n", a.spin.View())
	}
	if a.err != nil {
		return fmt.Sprintf("\n  Analysis failed: %v\n\n  %s\n", a.err, helpStyle.Render("q to quit"))
	}

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(appTitleStyle.Render("GOALCAST FORECAST"))
	b.WriteString("\n\n")
	b.WriteString(a.statusCard())
	b.WriteString("\n\n  ")
	b.WriteString(labelStyle.Render("Funding progress at deadline"))
	b.WriteString("\n  ")
	b.WriteString(a.prog.ViewAs(a.fundedRatio()))
	b.WriteString("\n\n")

	if len(a.result.Suggestions) > 0 {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Suggestions"))
		b.WriteString("\n")
		b.WriteString(indent(a.suggestions.View(), 2))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(helpStyle.Render("↑/↓ scroll suggestions · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (a App) statusCard() string {
	r := a.result
	status := cli.StatusStyle(r.Status).Render(cli.StatusLabel(r.Status))

	lines := []string{
		labelStyle.Render("Status    ") + status,
		labelStyle.Render("Required  ") + valueStyle.Render(cli.FormatMoney(r.RequiredMonthly)+"/month"),
		labelStyle.Render("Projected ") + valueStyle.Render(cli.FormatMoney(r.ProjectedMonthlyToGoal)+"/month"),
		labelStyle.Render("Gap       ") + valueStyle.Render(cli.FormatMoney(r.MonthlyGap)+"/month"),
		labelStyle.Render("Capacity  ") + valueStyle.Render(fmt.Sprintf("p10 %s · p50 %s · p90 %s",
			cli.FormatMoney(r.P10), cli.FormatMoney(r.P50), cli.FormatMoney(r.P90))),
	}

	return indent(cardStyle.Render(strings.Join(lines, "\n")), 2)
}

// fundedRatio is the forecasted balance as a share of the target, for the
// progress bar.
func (a App) fundedRatio() float64 {
	target := a.goal.TargetAmount
	if a.result.ParsedTargetAmount != nil {
		target = *a.result.ParsedTargetAmount
	}
	if target <= 0 {
		return 0
	}
	ratio := a.result.ForecastedBalanceAtDeadlineP50 / target
	return min(1, max(0, ratio))
}

func suggestionTable(suggestions []model.Suggestion) table.Model {
	columns := []table.Column{
		{Title: "Suggestion", Width: 38},
		{Title: "Lever", Width: 22},
		{Title: "Impact", Width: 12},
	}

	rows := make([]table.Row, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, table.Row{s.Title, s.LeverType, cli.FormatMoney(s.ImpactPerMonth)})
	}

	height := min(len(rows)+1, 8)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(cli.ColorAccent)
	styles.Selected = styles.Selected.Foreground(cli.ColorText).Background(cli.ColorBorder)
	t.SetStyles(styles)
	return t
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
