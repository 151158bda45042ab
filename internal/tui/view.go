package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// View runs the progress model as a Bubble Tea program fed by a Feed.
type View struct {
	feed *Feed
	opts []tea.ProgramOption
}

// NewView creates a View reading from feed. The program renders to stderr and
// never reads the terminal, so interrupts still reach the process.
func NewView(feed *Feed, opts ...tea.ProgramOption) *View {
	return &View{
		feed: feed,
		opts: append([]tea.ProgramOption{tea.WithInput(nil), tea.WithOutput(os.Stderr)}, opts...),
	}
}

// Show starts the program and returns a function that blocks until it exits.
// The program exits once the feed is closed or ctx is done.
func (v *View) Show(ctx context.Context) func() error {
	v.feed.Attach()

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, v.opts...)
	program := tea.NewProgram(NewModel(v.feed), opts...)

	done := make(chan error, 1)
	go func() {
		_, err := program.Run()
		done <- err
	}()

	return func() error { return <-done }
}
