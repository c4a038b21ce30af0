package phys2d

import (
	"math"

	"github.com/pkg/errors"
)

// Polygon is a convex polygon with counter-clockwise winding.
type Polygon struct {
	verts []Vector
	// normals[i] is the outward normal of the edge verts[i] -> verts[i+1].
	normals []Vector
}

// NewPolygon builds the convex hull of verts.
func NewPolygon(verts []Vector) (*Polygon, error) {
	hull := ConvexHull(verts, 0)
	if len(hull) < 3 {
		return nil, errors.Errorf("phys2d: polygon needs 3 non-collinear vertices, hull has %d", len(hull))
	}
	return NewPolygonRaw(hull), nil
}

// NewPolygonRaw trusts verts to be convex and counter-clockwise.
func NewPolygonRaw(verts []Vector) *Polygon {
	poly := &Polygon{}
	poly.SetVerts(verts)
	return poly
}

func NewBox(w, h float64) *Polygon {
	hw := w / 2.0
	hh := h / 2.0
	bb := BB{-hw, -hh, hw, hh}
	verts := []Vector{
		{bb.R, bb.B},
		{bb.R, bb.T},
		{bb.L, bb.T},
		{bb.L, bb.B},
	}
	return NewPolygonRaw(verts)
}

// NewBoxAt is NewBox translated by offset.
func NewBoxAt(w, h float64, offset Vector) *Polygon {
	box := NewBox(w, h)
	for i := range box.verts {
		box.verts[i] = box.verts[i].Add(offset)
	}
	return box
}

func (p *Polygon) SetVerts(verts []Vector) {
	count := len(verts)
	p.verts = make([]Vector, count)
	p.normals = make([]Vector, count)
	copy(p.verts, verts)

	for i := 0; i < count; i++ {
		a := verts[i]
		b := verts[(i+1)%count]
		p.normals[i] = b.Sub(a).ReversePerp().Normalize()
	}
}

func (p *Polygon) Type() ShapeType {
	return SHAPE_POLYGON
}

func (p *Polygon) Vertices() []Vector {
	return p.verts
}

func (p *Polygon) Normals() []Vector {
	return p.normals
}

func (p *Polygon) Support(dir Vector) Vector {
	_, v := supportVerts(p.verts, dir)
	return v
}

func (p *Polygon) TestPoint(point Vector) bool {
	for i, n := range p.normals {
		if n.Dot(point.Sub(p.verts[i])) > 0 {
			return false
		}
	}
	return true
}

func (p *Polygon) AABB(t Transform) BB {
	l := INFINITY
	r := -INFINITY
	b := INFINITY
	top := -INFINITY

	for _, v := range p.verts {
		v = t.Point(v)
		l = math.Min(l, v.X)
		r = math.Max(r, v.X)
		b = math.Min(b, v.Y)
		top = math.Max(top, v.Y)
	}
	return BB{l, b, r, top}
}

func (*Polygon) sealed() {}

// QuickHull seemed like a neat algorithm, and efficient-ish for large input sets.
// This implementation performs an in place reduction using the result array as scratch space.
func ConvexHull(verts []Vector, tol float64) []Vector {
	count := len(verts)
	result := make([]Vector, count)
	copy(result, verts)
	if count == 0 {
		return result
	}

	start, end := LoopIndexes(result)
	if start == end {
		return result[:1]
	}

	result[0], result[start] = result[start], result[0]
	if end == 0 {
		result[1], result[start] = result[start], result[1]
	} else {
		result[1], result[end] = result[end], result[1]
	}

	a := result[0]
	b := result[1]

	n := QHullReduce(tol, result[2:], count-2, a, b, a, result[1:]) + 1
	return result[:n]
}

func LoopIndexes(verts []Vector) (int, int) {
	start := 0
	end := 0

	min := verts[0]
	max := min

	for i := 1; i < len(verts); i++ {
		v := verts[i]

		if v.X < min.X || (v.X == min.X && v.Y < min.Y) {
			min = v
			start = i
		} else if v.X > max.X || (v.X == max.X && v.Y > max.Y) {
			max = v
			end = i
		}
	}

	return start, end
}

func QHullReduce(tol float64, verts []Vector, count int, a, pivot, b Vector, result []Vector) int {
	if count < 0 {
		return 0
	}

	if count == 0 {
		result[0] = pivot
		return 1
	}

	leftCount := QHullPartition(verts, count, a, pivot, tol)
	index := QHullReduce(tol, verts[1:], leftCount-1, a, verts[0], pivot, result)

	result[index] = pivot
	index++

	rightCount := QHullPartition(verts[leftCount:], count-leftCount, pivot, b, tol)

	// Go doesn't let you just walk off the end of an array, so added a short circuit here
	if rightCount-1 < 0 {
		return index
	}

	return index + QHullReduce(tol, verts[leftCount+1:], rightCount-1, pivot, verts[leftCount], b, result[index:])
}

func QHullPartition(verts []Vector, count int, a, b Vector, tol float64) int {
	if count == 0 {
		return 0
	}

	max := 0.0
	pivot := 0

	delta := b.Sub(a)
	valueTol := tol * delta.Length()

	head := 0
	for tail := count - 1; head <= tail; {
		value := verts[head].Sub(a).Cross(delta)
		if value > valueTol {
			if value > max {
				max = value
				pivot = head
			}

			head++
		} else {
			verts[head], verts[tail] = verts[tail], verts[head]
			tail--
		}
	}

	// move the new pivot to the front if it's not already there.
	if pivot != 0 {
		verts[0], verts[pivot] = verts[pivot], verts[0]
	}
	return head
}
