// Package tui provides the Bubble Tea pointing interface.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/pointspeed/internal/model"
	"github.com/verte-zerg/pointspeed/internal/session"
	"github.com/verte-zerg/pointspeed/internal/trial"
)

// footerHeight is the number of rows reserved below the playfield.
const footerHeight = 2

type frameMsg time.Time

type keyMap struct {
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Quit} }

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	targetStyle = lipgloss.NewStyle().Background(lipgloss.Color("#F0F0F0"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea pointing UI.
type Model struct {
	session *session.Session
	field   model.Bounds

	frameInterval time.Duration
	lastFrame     time.Time

	cursor     model.Point
	cursorSeen bool

	width  int
	height int

	progress progress.Model
	help     help.Model

	done bool
	err  error
}

// NewModel constructs a pointing TUI model over s. field is the area targets
// are placed in.
func NewModel(s *session.Session, field model.Bounds, frameRate int) *Model {
	if frameRate <= 0 {
		frameRate = 60
	}
	bar := progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage())
	bar.Width = field.Width / 3
	return &Model{
		session:       s,
		field:         field,
		frameInterval: time.Second / time.Duration(frameRate),
		width:         field.Width,
		height:        field.Height + footerHeight,
		progress:      bar,
		help:          help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.frame()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width / 3
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case frameMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !m.lastFrame.IsZero() {
			dt = now.Sub(m.lastFrame)
		}
		m.lastFrame = now
		if dt < 0 {
			dt = 0
		}
		m.session.Tick(dt)
		return m, m.frame()
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	pos, visible := m.session.Target()
	field := renderField(m.field, pos, m.session.TargetSize(), visible)
	return field + "\n" + m.renderFooter()
}

// Done reports whether every trial was recorded.
func (m *Model) Done() bool {
	return m.done
}

// Err returns the output error that stopped the session, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.move(model.Point{X: float64(msg.X), Y: float64(msg.Y)})
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	done, err := m.session.Click()
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	if done {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// move forwards the sample only when the pointer changed cell.
func (m *Model) move(p model.Point) {
	if m.cursorSeen && p == m.cursor {
		return
	}
	m.cursor = p
	m.cursorSeen = true
	m.session.Move(p)
}

func (m *Model) frame() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) renderFooter() string {
	recorded, total := m.session.Progress()
	percent := 0.0
	if total > 0 {
		percent = float64(recorded) / float64(total)
	}
	status := fitLine(m.statusText(), m.width-m.progress.Width-1)
	line := statusStyle.Render(status) + " " + m.progress.ViewAs(percent)
	return line + "\n" + footerStyle.Render(m.help.View(keys))
}

func (m *Model) statusText() string {
	recorded, total := m.session.Progress()
	if warm, hits := m.session.Warmup(); warm {
		return fmt.Sprintf("Warm-up · %d hit · %s", hits, m.phaseHint())
	}
	return fmt.Sprintf("Trial %d/%d · %s", recorded, total, m.phaseHint())
}

func (m *Model) phaseHint() string {
	switch m.session.Phase().Kind {
	case trial.PhaseSettling:
		return "hold the mouse still"
	case trial.PhaseDelay:
		return "get ready"
	case trial.PhaseArmed:
		return "move to the target"
	case trial.PhaseTiming:
		if m.session.LastClick() == trial.ClickMissed {
			return "missed, keep going"
		}
		return "click the target"
	default:
		return ""
	}
}
