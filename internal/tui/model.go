// Package tui renders pipeline progress as a live list of images, builders and hooks.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/stevedore/internal/ui/style"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusCached    = "cached"
	statusFailed    = "failed"
)

// VertexState represents the current state of one image, builder or hook.
type VertexState struct {
	ID     string
	Name   string
	Status string
	Error  string
}

type styles struct {
	running   lipgloss.Style
	completed lipgloss.Style
	cached    lipgloss.Style
	failed    lipgloss.Style
}

// Model is the Bubble Tea model for the progress view.
type Model struct {
	tape     TapeSource
	vertices []VertexState
	height   int
	spinner  spinner.Model
	styles   styles
}

// NewModel creates a new TUI model with the given tape source.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Yellow)

	return &Model{
		tape:    tape,
		spinner: s,
		styles: styles{
			running:   lipgloss.NewStyle().Foreground(style.Yellow),
			completed: lipgloss.NewStyle().Foreground(style.Green),
			cached:    lipgloss.NewStyle().Foreground(style.Slate),
			failed:    lipgloss.NewStyle().Foreground(style.Red),
		},
	}
}

// Init initializes the model and starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgTapeUpdate:
		for _, v := range msg.Update.GetVertexes() {
			m.updateOrAddVertex(v)
		}
		return m, WaitForTape(m.tape)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateOrAddVertex(v *progrock.Vertex) {
	state := VertexState{ID: v.GetId(), Name: v.GetName(), Status: statusRunning}
	switch {
	case v.GetCompleted() == nil:
	case v.Error != nil:
		state.Status = statusFailed
		state.Error = v.GetError()
	case v.GetCached():
		state.Status = statusCached
	default:
		state.Status = statusCompleted
	}

	for i, existing := range m.vertices {
		if existing.ID == state.ID {
			m.vertices[i] = state
			return
		}
	}
	m.vertices = append(m.vertices, state)
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	var s strings.Builder

	// Keep the most recent vertices when the list outgrows the terminal.
	start := 0
	if m.height > 0 && len(m.vertices) > m.height {
		start = len(m.vertices) - m.height
	}

	for _, v := range m.vertices[start:] {
		var icon string
		var st lipgloss.Style
		switch v.Status {
		case statusRunning:
			icon, st = m.spinner.View(), m.styles.running
		case statusCompleted:
			icon, st = style.Check, m.styles.completed
		case statusCached:
			icon, st = style.Check, m.styles.cached
		default:
			icon, st = style.Cross, m.styles.failed
		}

		line := fmt.Sprintf("%s %s", st.Render(icon), v.Name)
		if v.Status == statusCached {
			line += st.Render(" (cached)")
		}
		if v.Error != "" {
			line += st.Render(": " + v.Error)
		}
		s.WriteString(line + "\n")
	}

	return s.String()
}
