package effect

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/vmath"
)

type trailNode struct {
	pos   mgl64.Vec3
	right mgl64.Vec3 // half-width offset
}

// Trail is the ribbon history behind a drone, newest node first
type Trail struct {
	nodes []trailNode
	max   int
	width float64
}

// NewTrail creates an empty trail of the standard length and width
func NewTrail() *Trail {
	return &Trail{
		nodes: make([]trailNode, 0, parameter.TrailPoints),
		max:   parameter.TrailPoints,
		width: parameter.TrailWidth,
	}
}

// Push records a new head at pos moving along dir
// Near-vertical travel has no horizontal side, +X is used instead
func (t *Trail) Push(pos, dir mgl64.Vec3) {
	right := dir.Cross(vmath.AxisY)
	if right.Dot(right) < 0.1 {
		right = vmath.AxisX
	} else {
		right = right.Normalize()
	}

	if len(t.nodes) < t.max {
		t.nodes = append(t.nodes, trailNode{})
	}
	copy(t.nodes[1:], t.nodes[:len(t.nodes)-1])
	t.nodes[0] = trailNode{pos: pos, right: right.Mul(t.width)}
}

func (t *Trail) Len() int {
	return len(t.nodes)
}

// Visible reports whether there are enough nodes to form a strip
func (t *Trail) Visible() bool {
	return len(t.nodes) >= 2
}

// Reset drops the history
func (t *Trail) Reset() {
	t.nodes = t.nodes[:0]
}

// Ribbon returns left/right vertex pairs from head to tail, width tapering to zero
func (t *Trail) Ribbon() [][2]mgl64.Vec3 {
	if !t.Visible() {
		return nil
	}
	out := make([][2]mgl64.Vec3, len(t.nodes))
	n := float64(len(t.nodes))
	for i, node := range t.nodes {
		life := 1 - float64(i)/n
		off := node.right.Mul(life)
		out[i] = [2]mgl64.Vec3{node.pos.Sub(off), node.pos.Add(off)}
	}
	return out
}

// TrailOpacity returns the ribbon opacity for the theme
func TrailOpacity(night bool) float64 {
	if night {
		return parameter.TrailOpacityNight
	}
	return parameter.TrailOpacityDay
}
