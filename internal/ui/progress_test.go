package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/planet-chart/internal/almanac"
)

func TestRenderBar(t *testing.T) {
	tests := []struct {
		name       string
		frac       float64
		width      int
		wantFilled int
	}{
		{"empty", 0.0, 10, 0},
		{"full", 1.0, 10, 10},
		{"half", 0.5, 10, 5},
		{"quarter", 0.25, 8, 2},
		{"over 100%", 1.5, 10, 10},
		{"negative", -0.2, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderBar(tt.frac, tt.width)
			if !strings.HasPrefix(bar, "[") || !strings.HasSuffix(bar, "]") {
				t.Errorf("bar should have brackets, got %q", bar)
			}
			if got := strings.Count(bar, "█"); got != tt.wantFilled {
				t.Errorf("filled count = %d, want %d", got, tt.wantFilled)
			}
			if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != tt.width {
				t.Errorf("bar width = %d, want %d", got, tt.width)
			}
		})
	}
}

func update(m ProgressModel, msg tea.Msg) (ProgressModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(ProgressModel), cmd
}

func TestProgressModel(t *testing.T) {
	m := NewProgressModel("Planet chart 2017")

	m, cmd := update(m, ProgressMsg(almanac.Progress{Stage: "Sun", StageNum: 1, Stages: 2, Day: 365, Days: 365, StageDone: true}))
	if cmd != nil {
		t.Error("progress update returned a command")
	}
	m, _ = update(m, ProgressMsg(almanac.Progress{Stage: "Sun Twilight", StageNum: 2, Stages: 2, Day: 100, Days: 365}))

	view := m.View()
	for _, want := range []string{"Planet chart 2017", "2/2 Sun Twilight", "day 100/365", "done: Sun", "q to cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, cmd = update(m, DoneMsg{Path: "planet_chart_2017.png"})
	if cmd == nil {
		t.Fatal("DoneMsg did not quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("DoneMsg command is not tea.Quit")
	}
	if !strings.Contains(m.View(), "Wrote planet_chart_2017.png") {
		t.Errorf("view missing output path:\n%s", m.View())
	}
	if m.Cancelled() {
		t.Error("finished model reports cancelled")
	}
}

func TestProgressModelStagesRecordedOnce(t *testing.T) {
	m := NewProgressModel("x")
	done := ProgressMsg(almanac.Progress{Stage: "Mars", StageNum: 1, Stages: 1, Day: 365, Days: 365, StageDone: true})
	m, _ = update(m, done)
	m, _ = update(m, done)
	if len(m.stages) != 1 {
		t.Errorf("stages = %v", m.stages)
	}
}

func TestProgressModelError(t *testing.T) {
	m, _ := update(NewProgressModel("x"), DoneMsg{Err: errors.New("horizons: 503")})
	if !strings.Contains(m.View(), "Error: horizons: 503") {
		t.Errorf("view missing error:\n%s", m.View())
	}
}

func TestProgressModelCancel(t *testing.T) {
	m, cmd := update(NewProgressModel("x"), tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !m.Cancelled() {
		t.Error("ctrl+c did not cancel")
	}
}

func TestProgressModelResize(t *testing.T) {
	m, _ := update(NewProgressModel("x"), tea.WindowSizeMsg{Width: 50, Height: 20})
	if m.width != 40 {
		t.Errorf("width = %d, want 40", m.width)
	}
	m, _ = update(m, tea.WindowSizeMsg{Width: 5, Height: 20})
	if m.width != 10 {
		t.Errorf("width = %d, want 10", m.width)
	}
}
