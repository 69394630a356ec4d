package render

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/clammy/pkg/engine"
)

type frameMsg engine.FrameState

type model struct {
	frame engine.FrameState
	width int
	ready bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ready = true
	case frameMsg:
		m.frame = engine.FrameState(msg)
	}
	return m, nil
}

func (m model) View() string {
	if !m.ready {
		return ""
	}
	return Bar(m.frame, m.width)
}

// Surface presents frames on the terminal through a bubbletea program.
// Present is safe to call from any goroutine.
type Surface struct {
	prog *tea.Program
}

func New() *Surface {
	return &Surface{prog: tea.NewProgram(model{})}
}

// Present hands a frame to the UI loop.
func (s *Surface) Present(f engine.FrameState) {
	s.prog.Send(frameMsg(f))
}

// Run blocks until the program exits, either from a quit key or ctx
// cancellation.
func (s *Surface) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.prog.Quit()
		case <-done:
		}
	}()
	_, err := s.prog.Run()
	return err
}
