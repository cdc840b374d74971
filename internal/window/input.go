package window

import (
	"time"

	"github.com/verte-zerg/pointspeed/internal/model"
)

// FallbackBounds is used when the monitor size is unknown or a windowed run
// has no explicit size.
var FallbackBounds = model.Bounds{Width: 1920, Height: 1080}

// frameInput is the input sampled for one update.
type frameInput struct {
	cursor  model.Point
	clicked bool
	quit    bool
	dt      time.Duration
}

type inputState struct {
	cursor     model.Point
	seen       bool
	lastUpdate time.Time
}

// step applies one frame: cursor movement and clicks first, then the tick.
func (g *Game) step(in frameInput) (bool, error) {
	if in.quit {
		return true, nil
	}
	if !g.input.seen || in.cursor != g.input.cursor {
		g.input.cursor = in.cursor
		g.input.seen = true
		g.session.Move(in.cursor)
	}
	if in.clicked {
		done, err := g.session.Click()
		if err != nil || done {
			return done, err
		}
	}
	g.session.Tick(in.dt)
	return false, nil
}

func resolveBounds(requested model.Bounds, windowed bool, monitor func() (int, int)) model.Bounds {
	if requested.Width > 0 && requested.Height > 0 {
		return requested
	}
	if windowed {
		return FallbackBounds
	}
	w, h := monitor()
	if w <= 0 || h <= 0 {
		return FallbackBounds
	}
	return model.Bounds{Width: w, Height: h}
}
