package tui

import (
	"bytes"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/verte-zerg/pointspeed/internal/model"
	"github.com/verte-zerg/pointspeed/internal/report"
	"github.com/verte-zerg/pointspeed/internal/session"
	"github.com/verte-zerg/pointspeed/internal/target"
)

// Options configures a terminal run.
type Options struct {
	Experiment model.Experiment
	Terminal   model.TerminalConfig
	Out        io.Writer
}

// Run starts the terminal experiment on the controlling terminal. Output is
// held back until the alternate screen is released.
func Run(opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("terminal mode requires an interactive terminal")
	}
	width, height, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read terminal size: %w", err)
	}

	exp := opts.Experiment
	exp.TargetSize = opts.Terminal.TargetSize
	exp.Bounds = FieldBounds(width, height)

	var buf bytes.Buffer
	s, err := session.New(exp, target.New(exp.Seed), report.NewWriter(&buf))
	if err != nil {
		return err
	}

	m := NewModel(s, exp.Bounds, opts.Terminal.FrameRate)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, runErr := program.Run()
	closeErr := s.Close()
	if _, err := io.Copy(opts.Out, &buf); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	if m.Err() != nil {
		return m.Err()
	}
	return closeErr
}

// FieldBounds returns the playfield for a terminal of the given size.
func FieldBounds(width, height int) model.Bounds {
	h := height - footerHeight
	if h < 1 {
		h = 1
	}
	if width < 1 {
		width = 1
	}
	return model.Bounds{Width: width, Height: h}
}
