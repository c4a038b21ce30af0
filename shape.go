package phys2d

import "math"

type ShapeType int

const (
	SHAPE_CIRCLE ShapeType = iota
	SHAPE_POLYGON
	SHAPE_CAPSULE
	SHAPE_MESH
)

// Number of convex shape types handled by the manifold dispatch table.
const CONVEX_SHAPE_TYPES = 3

func (t ShapeType) String() string {
	switch t {
	case SHAPE_CIRCLE:
		return "circle"
	case SHAPE_POLYGON:
		return "polygon"
	case SHAPE_CAPSULE:
		return "capsule"
	case SHAPE_MESH:
		return "mesh"
	}
	return "unknown"
}

// Shape is a geometric description in body-local coordinates. The set of
// shapes is closed: Circle, Polygon, Capsule and Mesh.
type Shape interface {
	Type() ShapeType
	// Support returns the point of the shape farthest along dir.
	Support(dir Vector) Vector
	// TestPoint reports whether the local point p lies inside the shape.
	TestPoint(p Vector) bool
	// AABB bounds the shape once it is placed by t.
	AABB(t Transform) BB

	sealed()
}

// aabbFromSupport builds a world box by querying the local support along each rotated world axis.
func aabbFromSupport(support func(Vector) Vector, t Transform) BB {
	inv := NewTransformRigidInverse(t)
	right := t.Point(support(inv.Vect(Vector{1, 0})))
	left := t.Point(support(inv.Vect(Vector{-1, 0})))
	top := t.Point(support(inv.Vect(Vector{0, 1})))
	bottom := t.Point(support(inv.Vect(Vector{0, -1})))
	return BB{left.X, bottom.Y, right.X, top.Y}
}

// polygonOf returns the vertex ring of the polygonal shapes.
func polygonOf(shape Shape) (*Polygon, bool) {
	switch s := shape.(type) {
	case *Polygon:
		return s, true
	case *Capsule:
		return &s.Polygon, true
	}
	return nil, false
}

func supportVerts(verts []Vector, dir Vector) (int, Vector) {
	best := 0
	max := -math.MaxFloat64
	for i, v := range verts {
		if d := v.Dot(dir); d > max {
			max = d
			best = i
		}
	}
	return best, verts[best]
}
