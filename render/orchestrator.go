package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ringflight/world"
)

type rendererEntry struct {
	renderer SystemRenderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// RenderOrchestrator coordinates the render pipeline
type RenderOrchestrator struct {
	screen    tcell.Screen
	buffer    *RenderBuffer
	renderers []rendererEntry
	regCount  int
}

// NewRenderOrchestrator creates an orchestrator drawing to screen
func NewRenderOrchestrator(screen tcell.Screen) *RenderOrchestrator {
	w, h := screen.Size()
	return &RenderOrchestrator{
		screen:    screen,
		buffer:    NewRenderBuffer(w, h),
		renderers: make([]rendererEntry, 0, 16),
	}
}

// NewDefaultOrchestrator registers every standard layer
func NewDefaultOrchestrator(screen tcell.Screen) *RenderOrchestrator {
	o := NewRenderOrchestrator(screen)
	o.Register(&BackgroundRenderer{}, PriorityBackground)
	o.Register(&BeaconRenderer{}, PriorityBeacon)
	o.Register(&CurveRenderer{Visible: true}, PriorityCurve)
	o.Register(&TrailRenderer{}, PriorityTrail)
	o.Register(&RingRenderer{}, PriorityRing)
	o.Register(&ParticleRenderer{}, PriorityParticle)
	o.Register(&DroneRenderer{}, PriorityDrone)
	o.Register(&PlayerRenderer{}, PriorityPlayer)
	o.Register(&HUDRenderer{}, PriorityUI)
	return o
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *RenderOrchestrator) Register(r SystemRenderer, priority RenderPriority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Renderer returns the first registered renderer at priority
func (o *RenderOrchestrator) Renderer(priority RenderPriority) SystemRenderer {
	for _, e := range o.renderers {
		if e.priority == priority {
			return e.renderer
		}
	}
	return nil
}

// Buffer exposes the composed frame, used by tests
func (o *RenderOrchestrator) Buffer() *RenderBuffer {
	return o.buffer
}

// RenderFrame executes the render pipeline: size, clear, render all, flush, show
func (o *RenderOrchestrator) RenderFrame(snap *world.Snapshot) {
	w, h := o.screen.Size()
	if bw, bh := o.buffer.Size(); bw != w || bh != h {
		o.buffer.Resize(w, h)
		o.screen.Sync()
	}

	ctx := NewRenderContext(snap, w, h)
	o.buffer.Clear(ctx.Theme.Background)

	for _, entry := range o.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.renderer.Render(ctx, o.buffer)
	}

	o.buffer.Flush(o.screen)
	o.screen.Show()
}
