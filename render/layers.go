package render

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/vmath"
)

const gridStep = 10.0

// BackgroundRenderer draws the ground grid
type BackgroundRenderer struct{}

func (r *BackgroundRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	if ctx.Scale <= 0 {
		return
	}
	halfX := float64(ctx.ViewportWidth) / (2 * ctx.Scale * cellAspect)
	halfZ := float64(ctx.ViewportHeight) / (2 * ctx.Scale)
	for gx := -math.Floor(halfX/gridStep) * gridStep; gx <= halfX; gx += gridStep {
		for gz := -math.Floor(halfZ/gridStep) * gridStep; gz <= halfZ; gz += gridStep {
			if x, y, ok := ctx.Project(mgl64.Vec3{gx, 0, gz}); ok {
				buf.SetFgOnly(x, y, '·', ctx.Theme.Grid)
			}
		}
	}
}

// BeaconRenderer tints the ground under each night beacon
type BeaconRenderer struct{}

func (r *BeaconRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	if ctx.Snapshot == nil {
		return
	}
	for _, ring := range ctx.Snapshot.Rings {
		b := ring.Beacon
		if !b.Visible {
			continue
		}
		cx, cy, ok := ctx.Project(ring.Center)
		if !ok {
			continue
		}
		color := FromHex(b.Color)
		radius := max(int(math.Round(b.Scale*ctx.Scale*2)), 1)
		alpha := math.Min(b.Opacity*2, 1)
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius * 2; dx <= radius*2; dx++ {
				d := math.Hypot(float64(dx)/cellAspect, float64(dy))
				if d > float64(radius) {
					continue
				}
				buf.BlendBg(cx+dx, cy+dy, color, alpha*(1-d/float64(radius+1)))
			}
		}
	}
}

// CurveRenderer draws the player's planned polyline; toggled at runtime
type CurveRenderer struct {
	Visible bool
}

func (r *CurveRenderer) IsVisible() bool {
	return r.Visible
}

func (r *CurveRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	if ctx.Snapshot == nil {
		return
	}
	for _, p := range ctx.Snapshot.Player.Curve {
		if x, y, ok := ctx.Project(p); ok {
			buf.SetFgOnly(x, y, '.', ctx.Theme.Curve)
		}
	}
}

// TrailRenderer draws each drone ribbon fading toward the tail
type TrailRenderer struct{}

func (r *TrailRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	if ctx.Snapshot == nil {
		return
	}
	for _, d := range ctx.Snapshot.Drones {
		color := FromHex(d.Color)
		n := float64(len(d.Trail))
		for i, pair := range d.Trail {
			x, y, ok := ctx.Project(vmath.Midpoint(pair[0], pair[1]))
			if !ok {
				continue
			}
			life := 1 - float64(i)/n
			buf.SetFgOnly(x, y, '∙', ctx.Theme.Background.Blend(color, d.TrailOpacity*life))
		}
	}
}

// RingRenderer draws each ring as its center mark and a bar across its opening
type RingRenderer struct{}

func (r *RingRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	if ctx.Snapshot == nil {
		return
	}
	for _, ring := range ctx.Snapshot.Rings {
		color := FromHex(ring.Color)
		side := ring.Normal.Cross(vmath.AxisY)
		bar := barGlyph(side)
		steps := max(int(math.Ceil(ring.Radius*ctx.Scale*cellAspect)), 1)
		for i := -steps; i <= steps; i++ {
			p := ring.Center.Add(side.Mul(ring.Radius * float64(i) / float64(steps)))
			if x, y, ok := ctx.Project(p); ok {
				buf.SetFgOnly(x, y, bar, color)
			}
		}
		if x, y, ok := ctx.Project(ring.Center); ok {
			buf.SetBold(x, y, 'O', color)
		}
	}
}

// barGlyph picks a line glyph for a horizontal direction as seen on screen
func barGlyph(dir mgl64.Vec3) rune {
	angle := math.Atan2(dir[2], dir[0]*cellAspect)
	oct := int(math.Round(angle/(math.Pi/4))) & 3
	return [4]rune{'─', '╲', '│', '╱'}[oct]
}

// ParticleRenderer accumulates flame light into the background
type ParticleRenderer struct{}

func (r *ParticleRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	if ctx.Snapshot == nil {
		return
	}
	for _, p := range ctx.Snapshot.Particles {
		x, y, ok := ctx.Project(p.Position)
		if !ok {
			continue
		}
		glow := FromHex(p.Emissive).Scale(p.Opacity * p.Intensity * 0.25)
		buf.AddBg(x, y, glow)
		if p.Opacity > 0.5 {
			buf.SetFgOnly(x, y, '^', FromHex(p.Color))
		}
	}
}

// DroneRenderer draws each drone as an arrow along its heading
type DroneRenderer struct{}

func (r *DroneRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	if ctx.Snapshot == nil {
		return
	}
	for _, d := range ctx.Snapshot.Drones {
		if x, y, ok := ctx.Project(d.Position); ok {
			buf.SetBold(x, y, arrowGlyph(d.Heading), FromHex(d.Color))
		}
	}
}

// arrowGlyph returns the compass arrow nearest to the horizontal heading
func arrowGlyph(dir mgl64.Vec3) rune {
	if dir[0] == 0 && dir[2] == 0 {
		return '•'
	}
	angle := math.Atan2(dir[2], dir[0])
	oct := int(math.Round(angle/(math.Pi/4))) & 7
	return [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}[oct]
}

// PlayerRenderer draws the camera and a marker two rows along its gaze
type PlayerRenderer struct{}

func (r *PlayerRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	if ctx.Snapshot == nil || ctx.Snapshot.WorldID == "" {
		return
	}
	pl := ctx.Snapshot.Player
	if ctx.Scale > 0 {
		dir := vmath.Horizontal(pl.Gaze.Sub(pl.Position))
		if dir.Len() > 1e-9 {
			marker := pl.Position.Add(dir.Normalize().Mul(2 / ctx.Scale))
			if x, y, ok := ctx.Project(marker); ok {
				buf.SetFgOnly(x, y, '+', ctx.Theme.Player)
			}
		}
	}
	if x, y, ok := ctx.Project(pl.Position); ok {
		buf.SetBold(x, y, '@', ctx.Theme.Player)
	}
}

// HUDRenderer draws the status line and key help
type HUDRenderer struct{}

const helpText = "n night  r regenerate  c curve  q quit"

func (r *HUDRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	if ctx.ScreenHeight == 0 {
		return
	}
	theme := ctx.Theme
	for x := 0; x < ctx.ScreenWidth; x++ {
		buf.BlendBg(x, 0, theme.Text, 0.15)
	}
	if ctx.Snapshot == nil {
		buf.Text(1, 0, "waiting for world", theme.Text)
		return
	}

	snap := ctx.Snapshot
	buf.Text(1, 0, snap.Status, theme.Text)
	info := fmt.Sprintf("%s %3.0f%% tick %d", snap.Player.Look, snap.Player.Progress*100, snap.Tick)
	buf.Text(ctx.ScreenWidth-len([]rune(info))-1, 0, info, theme.Text)

	if ctx.ScreenHeight > 1 {
		buf.Text(1, ctx.ScreenHeight-1, helpText, theme.Text.Blend(theme.Background, 0.4))
	}
}
