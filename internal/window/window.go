// Package window runs the experiment in a fullscreen ebiten window.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/verte-zerg/pointspeed/internal/model"
	"github.com/verte-zerg/pointspeed/internal/report"
	"github.com/verte-zerg/pointspeed/internal/session"
	"github.com/verte-zerg/pointspeed/internal/target"
)

// Title is shown in the window decoration when not fullscreen.
const Title = "Mouse pointing speed measurement"

var (
	backgroundColor = color.White
	targetColor     = color.Black
)

// Options configures a window run.
type Options struct {
	Experiment model.Experiment
	Windowed   bool
	Out        io.Writer
}

// Game implements ebiten.Game on top of a session.
type Game struct {
	session *session.Session
	bounds  model.Bounds
	input   inputState
}

// NewGame wraps s for a window of the given bounds.
func NewGame(s *session.Session, bounds model.Bounds) *Game {
	return &Game{session: s, bounds: bounds}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	x, y := ebiten.CursorPosition()
	in := frameInput{
		cursor:  model.Point{X: float64(x), Y: float64(y)},
		clicked: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		quit:    inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
		dt:      g.frameDelta(),
	}
	done, err := g.step(in)
	if err != nil {
		return err
	}
	if done {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	pos, visible := g.session.Target()
	if !visible {
		return
	}
	size := float32(g.session.TargetSize())
	vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), size, size, targetColor, false)
}

// Layout implements ebiten.Game. The logical screen always matches the
// bounds targets are placed in.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.bounds.Width, g.bounds.Height
}

func (g *Game) frameDelta() time.Duration {
	now := time.Now()
	if tps := ebiten.TPS(); tps > 0 {
		g.input.lastUpdate = now
		return time.Second / time.Duration(tps)
	}
	var dt time.Duration
	if !g.input.lastUpdate.IsZero() {
		dt = now.Sub(g.input.lastUpdate)
	}
	g.input.lastUpdate = now
	return dt
}

// Run opens the window and blocks until the session completes or the user quits.
func Run(opts Options) error {
	exp := opts.Experiment
	exp.Bounds = resolveBounds(exp.Bounds, opts.Windowed, monitorSize)

	out := report.NewWriter(opts.Out)
	s, err := session.New(exp, target.New(exp.Seed), out)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowSize(exp.Bounds.Width, exp.Bounds.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetFullscreen(!opts.Windowed)

	runErr := ebiten.RunGame(NewGame(s, exp.Bounds))
	closeErr := s.Close()
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		return fmt.Errorf("failed to run window: %w", runErr)
	}
	return closeErr
}

func monitorSize() (int, int) {
	m := ebiten.Monitor()
	if m == nil {
		return 0, 0
	}
	return m.Size()
}
