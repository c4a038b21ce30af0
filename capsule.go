package phys2d

import "math"

// Capsule is a segment of the given height along the local y axis swept by a radius.
// Collision uses its polygonal approximation, bounds and point tests are exact.
type Capsule struct {
	Polygon
	r, height float64
}

func NewCapsule(radius, height float64, subdivisions int) *Capsule {
	if subdivisions < 1 {
		subdivisions = 1
	}
	hh := height * 0.5
	points := make([]Vector, 0, 2*(subdivisions+1))
	for i := 0; i <= subdivisions; i++ {
		a := math.Pi * float64(i) / float64(subdivisions)
		points = append(points, Vector{radius * math.Cos(a), radius*math.Sin(a) + hh})
	}
	for i := 0; i <= subdivisions; i++ {
		a := math.Pi * float64(i) / float64(subdivisions)
		points = append(points, Vector{-radius * math.Cos(a), -radius*math.Sin(a) - hh})
	}

	capsule := &Capsule{r: radius, height: height}
	capsule.SetVerts(ConvexHull(points, 0))
	return capsule
}

func (capsule *Capsule) Type() ShapeType {
	return SHAPE_CAPSULE
}

func (capsule *Capsule) Radius() float64 {
	return capsule.r
}

func (capsule *Capsule) Height() float64 {
	return capsule.height
}

func (capsule *Capsule) exactSupport(dir Vector) Vector {
	out := dir.Normalize().Mult(capsule.r)
	if dir.Y > 0 {
		out.Y += capsule.height * 0.5
	} else if dir.Y < 0 {
		out.Y -= capsule.height * 0.5
	}
	return out
}

func (capsule *Capsule) AABB(t Transform) BB {
	return aabbFromSupport(capsule.exactSupport, t)
}

func (capsule *Capsule) TestPoint(p Vector) bool {
	hh := capsule.height * 0.5
	if hh == 0 {
		return p.LengthSq() < capsule.r*capsule.r
	}
	closest := p.ClosestPointOnSegment(Vector{0, -hh}, Vector{0, hh})
	return p.DistanceSq(closest) < capsule.r*capsule.r
}
