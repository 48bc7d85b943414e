// Package ui provides the terminal progress view and summary table.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/planet-chart/internal/almanac"
	"github.com/litescript/planet-chart/internal/version"
)

// Styles for the progress view
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	stageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Msg types for Bubble Tea
type (
	// ProgressMsg carries a computation progress update.
	ProgressMsg almanac.Progress

	// DoneMsg signals the computation finished. Path is the written chart,
	// empty on error.
	DoneMsg struct {
		Path string
		Err  error
	}
)

// DefaultBarWidth is the bar width before the first WindowSizeMsg.
const DefaultBarWidth = 40

// ProgressModel shows per-body computation progress.
type ProgressModel struct {
	title     string
	width     int
	progress  almanac.Progress
	stages    []string // finished stage names, in order
	done      bool
	cancelled bool
	path      string
	err       error
}

// NewProgressModel creates a progress view with the given title.
func NewProgressModel(title string) ProgressModel {
	return ProgressModel{title: title, width: DefaultBarWidth}
}

// Init implements tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		// Leave room for the brackets and the percentage.
		m.width = max(10, min(msg.Width-10, 80))

	case ProgressMsg:
		p := almanac.Progress(msg)
		if p.StageDone && (len(m.stages) == 0 || m.stages[len(m.stages)-1] != p.Stage) {
			m.stages = append(m.stages, p.Stage)
		}
		m.progress = p

	case DoneMsg:
		m.done = true
		m.path = msg.Path
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

// Cancelled reports whether the user quit before the computation finished.
func (m ProgressModel) Cancelled() bool {
	return m.cancelled && !m.done
}

// View implements tea.Model.
func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  v%s", version.Version)))
	b.WriteString("\n\n")

	p := m.progress
	b.WriteString(renderBar(p.Fraction(), m.width))
	b.WriteString(fmt.Sprintf(" %3.0f%%\n", 100*p.Fraction()))

	if p.Stages > 0 {
		b.WriteString(stageStyle.Render(fmt.Sprintf("%d/%d %s", p.StageNum, p.Stages, p.Stage)))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  day %d/%d  %v", p.Day, p.Days, p.Elapsed.Round(time.Second))))
		b.WriteString("\n")
	}
	if len(m.stages) > 0 {
		b.WriteString(mutedStyle.Render("done: " + strings.Join(m.stages, ", ")))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.done && m.path != "":
		b.WriteString("Wrote " + m.path + "\n")
	case !m.done:
		b.WriteString(mutedStyle.Render("q to cancel"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return "[" + barStyle.Render(bar) + "]"
}
