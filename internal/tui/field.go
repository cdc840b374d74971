package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/pointspeed/internal/model"
)

// renderField draws the playfield with the target block when visible. Rows
// and columns outside the field are clipped.
func renderField(bounds model.Bounds, pos model.Point, size int, visible bool) string {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return ""
	}
	blank := strings.Repeat(" ", bounds.Width)
	x, y := int(pos.X), int(pos.Y)
	left, right := clipSpan(x, size, bounds.Width)

	var b strings.Builder
	for row := 0; row < bounds.Height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		if !visible || row < y || row >= y+size || left >= right {
			b.WriteString(blank)
			continue
		}
		b.WriteString(blank[:left])
		b.WriteString(targetStyle.Render(strings.Repeat(" ", right-left)))
		b.WriteString(blank[right:])
	}
	return b.String()
}

func clipSpan(start, size, limit int) (int, int) {
	lo, hi := start, start+size
	if lo < 0 {
		lo = 0
	}
	if hi > limit {
		hi = limit
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// fitLine pads or truncates s to exactly width display cells.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
