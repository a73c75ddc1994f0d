package ring

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/vmath"
)

// Field is the set of rings in the current world, ids are dense indices
// Replaced wholesale on regeneration; ring positions are never mutated
type Field struct {
	rings []Ring
}

// NewField takes ownership of rings and renumbers them by index
func NewField(rings []Ring) *Field {
	for i := range rings {
		rings[i].ID = i
	}
	return &Field{rings: rings}
}

func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.rings)
}

// Get returns the ring with id, or false for an unknown id
func (f *Field) Get(id int) (*Ring, bool) {
	if f == nil || id < 0 || id >= len(f.rings) {
		return nil, false
	}
	return &f.rings[id], true
}

// IDs returns every ring id in order
func (f *Field) IDs() []int {
	ids := make([]int, f.Len())
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// IDsExcept returns every ring id except skip
func (f *Field) IDsExcept(skip int) []int {
	ids := make([]int, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		if i != skip {
			ids = append(ids, i)
		}
	}
	return ids
}

// Rings returns the backing slice for read-only iteration
func (f *Field) Rings() []Ring {
	if f == nil {
		return nil
	}
	return f.rings
}

// SetState updates a ring's state, unknown ids are ignored
func (f *Field) SetState(id int, s State) {
	if r, ok := f.Get(id); ok {
		r.State = s
	}
}

// ResetStates marks every ring Inactive
func (f *Field) ResetStates() {
	if f == nil {
		return
	}
	for i := range f.rings {
		f.rings[i].State = Inactive
	}
}

// CountState returns the number of rings in state s
func (f *Field) CountState(s State) int {
	n := 0
	for i := range f.Rings() {
		if f.rings[i].State == s {
			n++
		}
	}
	return n
}

// ActiveCount returns the number of Active rings
func (f *Field) ActiveCount() int {
	return f.CountState(Active)
}

// StartPose returns the world-start camera position behind ring 0 and the point it faces
func StartPose(f *Field, cruiseHeight float64) (pos, lookAt mgl64.Vec3, ok bool) {
	r, ok := f.Get(0)
	if !ok {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	pos = vmath.WithY(r.Center.Sub(r.Normal.Mul(parameter.StartBackoff)), cruiseHeight)
	return pos, r.Center, true
}
