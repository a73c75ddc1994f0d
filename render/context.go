package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/world"
)

const (
	// cellAspect is the height-to-width ratio of a terminal cell
	cellAspect = 2.0

	statusRows = 1
	helpRows   = 1

	minSpan = 10.0
)

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	Snapshot *world.Snapshot
	Theme    Theme

	// Screen dimensions (terminal size)
	ScreenWidth  int
	ScreenHeight int

	// Map viewport between the status and help rows
	ViewportTop    int
	ViewportWidth  int
	ViewportHeight int

	// Rows per world unit; columns per unit is Scale*cellAspect
	Scale float64
}

// NewRenderContext fits every ring of snap into a top-down viewport of the screen
func NewRenderContext(snap *world.Snapshot, width, height int) RenderContext {
	ctx := RenderContext{
		Snapshot:       snap,
		ScreenWidth:    width,
		ScreenHeight:   height,
		ViewportTop:    statusRows,
		ViewportWidth:  width,
		ViewportHeight: max(height-statusRows-helpRows, 0),
	}
	if snap != nil {
		ctx.Theme = ThemeFor(snap.Night)
	} else {
		ctx.Theme = ThemeDay
	}

	span := minSpan
	if snap != nil {
		for _, r := range snap.Rings {
			span = math.Max(span, math.Max(math.Abs(r.Center[0]), math.Abs(r.Center[2]))+r.Radius*2)
		}
	}
	sx := float64(ctx.ViewportWidth) / (2 * span * cellAspect)
	sy := float64(ctx.ViewportHeight) / (2 * span)
	ctx.Scale = math.Min(sx, sy)
	return ctx
}

// Project maps a world position onto the viewport, looking down the Y axis with +Z toward the bottom
func (c RenderContext) Project(p mgl64.Vec3) (x, y int, ok bool) {
	fx := float64(c.ViewportWidth)/2 + p[0]*c.Scale*cellAspect
	fy := float64(c.ViewportHeight)/2 + p[2]*c.Scale
	x = int(math.Floor(fx))
	y = int(math.Floor(fy))
	ok = x >= 0 && x < c.ViewportWidth && y >= 0 && y < c.ViewportHeight
	return x, y + c.ViewportTop, ok
}
