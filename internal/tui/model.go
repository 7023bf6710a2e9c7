package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"webpconv/internal/processor"
)

// Model is the progress view shown while a batch runs. It quits once the
// updates channel is closed.
type Model struct {
	updates <-chan processor.ProgressUpdate
	cancel  context.CancelFunc
	now     func() time.Time

	started   time.Time
	width     int
	total     int
	completed int
	failed    int
	lastFail  string
	canceling bool
	quitting  bool
}

type doneMsg struct{}

type updateMsg processor.ProgressUpdate

// NewModel builds the progress view. cancel, when set, is called on ctrl+c;
// the view keeps draining updates until the batch reports every job.
func NewModel(updates <-chan processor.ProgressUpdate, total int, cancel context.CancelFunc) Model {
	return Model{updates: updates, cancel: cancel, now: time.Now, started: time.Now(), total: total}
}

func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.completed = max(m.completed, msg.Completed)
		m.total = msg.Total
		if !msg.Result.OK() {
			m.failed++
			m.lastFail = filepath.Base(msg.Result.InputPath)
		}
		return m, m.waitForUpdate()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.canceling {
			m.canceling = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := 40
	if m.width > 0 {
		width = min(60, max(20, m.width-12))
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = min(1, float64(m.completed)/float64(m.total))
	}

	head := titleStyle.Render("webpconv") + dimStyle.Render(fmt.Sprintf("  %d/%d files", m.completed, m.total))
	if m.failed > 0 {
		head += failStyle.Render(fmt.Sprintf("  %d failed", m.failed))
	}

	lines := []string{
		head,
		barStyle.Render(renderBar(width, ratio)) + labelStyle.Render(fmt.Sprintf(" %3.0f%%", ratio*100)),
		dimStyle.Render(m.pace()),
	}
	if m.lastFail != "" {
		lines = append(lines, failStyle.Render("last failure: "+m.lastFail))
	}
	if m.canceling {
		lines = append(lines, warnStyle.Render("cancelling: waiting for running files to finish"))
	}
	return strings.Join(lines, "\n")
}

// pace reports throughput and the time left at that rate.
func (m Model) pace() string {
	elapsed := m.now().Sub(m.started)
	if m.completed == 0 || elapsed <= 0 {
		return "estimating..."
	}
	rate := float64(m.completed) / elapsed.Seconds()
	remaining := time.Duration(float64(m.total-m.completed) / rate * float64(time.Second))
	return fmt.Sprintf("%.1f files/s, about %s left", rate, remaining.Round(time.Second))
}

func (m Model) waitForUpdate() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		if u, ok := <-updates; ok {
			return updateMsg(u)
		}
		return doneMsg{}
	}
}

// renderBar draws a width-cell bar filled to ratio.
func renderBar(width int, ratio float64) string {
	filled := min(width, max(0, int(ratio*float64(width)+0.5)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle   = lipgloss.NewStyle().Foreground(ColorAccent)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	warnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
)
