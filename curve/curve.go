package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/vmath"
)

// ErrTooFewPoints is returned when a curve is requested from fewer than two control points
var ErrTooFewPoints = errors.New("curve: at least two control points required")

// Mode selects the Catmull-Rom knot parameterization
type Mode uint8

const (
	Uniform Mode = iota
	Chordal
	Centripetal
)

// DefaultMode is used when no mode is configured
const DefaultMode = Chordal

func (m Mode) String() string {
	switch m {
	case Uniform:
		return "uniform"
	case Chordal:
		return "chordal"
	case Centripetal:
		return "centripetal"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode resolves a case-insensitive mode name, empty selects DefaultMode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultMode, nil
	case "uniform", "catmullrom":
		return Uniform, nil
	case "chordal":
		return Chordal, nil
	case "centripetal":
		return Centripetal, nil
	}
	return DefaultMode, fmt.Errorf("curve: unknown mode %q", s)
}

// alpha is the exponent applied to chord length for knot spacing
func (m Mode) alpha() float64 {
	switch m {
	case Chordal:
		return 1
	case Centripetal:
		return 0.5
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// cubic holds one segment as p(s) = c0 + c1·s + c2·s² + c3·s³, s∈[0,1]
type cubic struct {
	c0, c1, c2, c3 mgl64.Vec3
}

func (c *cubic) at(s float64) mgl64.Vec3 {
	return c.c0.Add(c.c1.Mul(s)).Add(c.c2.Mul(s * s)).Add(c.c3.Mul(s * s * s))
}

func (c *cubic) deriv(s float64) mgl64.Vec3 {
	return c.c1.Add(c.c2.Mul(2 * s)).Add(c.c3.Mul(3 * s * s))
}

// Curve is an immutable interpolating Catmull-Rom spline parameterized by normalized arc length
// Passes through every control point in order
type Curve struct {
	points  []mgl64.Vec3
	mode    Mode
	tension float64

	segs []cubic

	// Cumulative arc length at every table sample; control point i sits at index i*perSeg
	lengths []float64
	perSeg  int
}

// New builds a curve through points
// tension in [0,1) tightens tangents by (1-tension); 0 is the plain Catmull-Rom
func New(points []mgl64.Vec3, mode Mode, tension float64) (*Curve, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	if tension < 0 || tension >= 1 || math.IsNaN(tension) {
		return nil, fmt.Errorf("curve: tension %v outside [0,1)", tension)
	}

	c := &Curve{
		points:  append([]mgl64.Vec3(nil), points...),
		mode:    mode,
		tension: tension,
		perSeg:  parameter.CurveSamplesPerSegment,
	}
	c.buildSegments()
	c.buildArcTable()
	return c, nil
}

func (c *Curve) buildSegments() {
	n := len(c.points)
	c.segs = make([]cubic, n-1)
	alpha := c.mode.alpha()
	scale := 1 - c.tension

	for i := 0; i < n-1; i++ {
		p1 := c.points[i]
		p2 := c.points[i+1]

		// Phantom endpoints reflect the first and last segments
		var p0, p3 mgl64.Vec3
		if i > 0 {
			p0 = c.points[i-1]
		} else {
			p0 = p1.Mul(2).Sub(p2)
		}
		if i+2 < n {
			p3 = c.points[i+2]
		} else {
			p3 = p2.Mul(2).Sub(p1)
		}

		dt0 := math.Pow(p0.Sub(p1).Len(), alpha)
		dt1 := math.Pow(p1.Sub(p2).Len(), alpha)
		dt2 := math.Pow(p2.Sub(p3).Len(), alpha)

		// Coincident points borrow the neighbouring spacing
		if dt1 < 1e-4 {
			dt1 = 1
		}
		if dt0 < 1e-4 {
			dt0 = dt1
		}
		if dt2 < 1e-4 {
			dt2 = dt1
		}

		m1 := p1.Sub(p0).Mul(1 / dt0).Sub(p2.Sub(p0).Mul(1 / (dt0 + dt1))).Add(p2.Sub(p1).Mul(1 / dt1))
		m2 := p2.Sub(p1).Mul(1 / dt1).Sub(p3.Sub(p1).Mul(1 / (dt1 + dt2))).Add(p3.Sub(p2).Mul(1 / dt2))
		m1 = m1.Mul(dt1 * scale)
		m2 = m2.Mul(dt1 * scale)

		c.segs[i] = cubic{
			c0: p1,
			c1: m1,
			c2: p1.Mul(-3).Add(p2.Mul(3)).Sub(m1.Mul(2)).Sub(m2),
			c3: p1.Mul(2).Sub(p2.Mul(2)).Add(m1).Add(m2),
		}
	}
}

func (c *Curve) buildArcTable() {
	total := len(c.segs) * c.perSeg
	c.lengths = make([]float64, total+1)

	prev := c.points[0]
	sum := 0.0
	for j := 1; j <= total; j++ {
		seg := (j - 1) / c.perSeg
		local := float64(j-seg*c.perSeg) / float64(c.perSeg)
		var p mgl64.Vec3
		if j%c.perSeg == 0 {
			p = c.points[seg+1]
		} else {
			p = c.segs[seg].at(local)
		}
		sum += p.Sub(prev).Len()
		c.lengths[j] = sum
		prev = p
	}
}

// Length returns the total arc length
func (c *Curve) Length() float64 {
	return c.lengths[len(c.lengths)-1]
}

// Mode returns the knot parameterization
func (c *Curve) Mode() Mode {
	return c.mode
}

// Tension returns the configured tension
func (c *Curve) Tension() float64 {
	return c.tension
}

// ControlPoints returns a copy of the interpolated points
func (c *Curve) ControlPoints() []mgl64.Vec3 {
	return append([]mgl64.Vec3(nil), c.points...)
}

// KnotAt returns the normalized arc-length position of control point i
func (c *Curve) KnotAt(i int) float64 {
	if i <= 0 {
		return 0
	}
	if i >= len(c.points)-1 {
		return 1
	}
	total := c.Length()
	if total == 0 {
		return float64(i) / float64(len(c.points)-1)
	}
	return c.lengths[i*c.perSeg] / total
}

// PointAt returns the position at normalized arc length u∈[0,1]
func (c *Curve) PointAt(u float64) mgl64.Vec3 {
	if u <= 0 {
		return c.points[0]
	}
	if u >= 1 {
		return c.points[len(c.points)-1]
	}
	seg, s := c.locate(c.uToT(u))
	return c.segs[seg].at(s)
}

// TangentAt returns the unit direction of travel at normalized arc length u∈[0,1]
// Falls back to +Z when the derivative vanishes
func (c *Curve) TangentAt(u float64) mgl64.Vec3 {
	seg, s := c.locate(c.uToT(vmath.Clamp01(u)))
	d := c.segs[seg].deriv(s)
	if d.Dot(d) < vmath.Epsilon {
		// Stationary point, fall back to the chord of the enclosing segment
		d = c.points[seg+1].Sub(c.points[seg])
	}
	return vmath.NormalizeOr(d, vmath.AxisZ)
}

// Points samples n+1 arc-length-spaced points, n<1 is treated as 1
func (c *Curve) Points(n int) []mgl64.Vec3 {
	if n < 1 {
		n = 1
	}
	out := make([]mgl64.Vec3, n+1)
	for i := 0; i <= n; i++ {
		out[i] = c.PointAt(float64(i) / float64(n))
	}
	return out
}

// uToT maps normalized arc length to the raw spline parameter
func (c *Curve) uToT(u float64) float64 {
	if u <= 0 {
		return 0
	}
	if u >= 1 {
		return 1
	}
	last := len(c.lengths) - 1
	total := c.lengths[last]
	if total == 0 {
		return u
	}
	target := u * total

	// Last sample not beyond target
	i := sort.Search(len(c.lengths), func(k int) bool { return c.lengths[k] > target }) - 1
	if i < 0 {
		i = 0
	}
	if i >= last {
		return 1
	}

	span := c.lengths[i+1] - c.lengths[i]
	frac := 0.0
	if span > 0 {
		frac = (target - c.lengths[i]) / span
	}
	return (float64(i) + frac) / float64(last)
}

// locate splits the raw parameter into segment index and local parameter
func (c *Curve) locate(t float64) (int, float64) {
	p := t * float64(len(c.segs))
	seg := int(math.Floor(p))
	if seg >= len(c.segs) {
		return len(c.segs) - 1, 1
	}
	if seg < 0 {
		return 0, 0
	}
	return seg, p - float64(seg)
}
