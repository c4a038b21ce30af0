package phys2d

import "math"

// OBB is an oriented bounding box. Axis is the unit direction of the box's
// first half extent, the second extent runs along Axis.Perp().
type OBB struct {
	Center  Vector
	Axis    Vector
	Extents Vector
}

func OBBFromBB(bb BB) OBB {
	return OBB{bb.Center(), Vector{1, 0}, bb.Extents()}
}

// Transform moves the box by a rigid transform.
func (o OBB) Transform(t Transform) OBB {
	return OBB{t.Point(o.Center), t.Vect(o.Axis), o.Extents}
}

func (o OBB) Area() float64 {
	return 4 * o.Extents.X * o.Extents.Y
}

func (o OBB) Corners() [4]Vector {
	u := o.Axis.Mult(o.Extents.X)
	v := o.Axis.Perp().Mult(o.Extents.Y)
	return [4]Vector{
		o.Center.Sub(u).Sub(v),
		o.Center.Add(u).Sub(v),
		o.Center.Add(u).Add(v),
		o.Center.Sub(u).Add(v),
	}
}

func (o OBB) BB() BB {
	hw := o.Extents.X*math.Abs(o.Axis.X) + o.Extents.Y*math.Abs(o.Axis.Y)
	hh := o.Extents.X*math.Abs(o.Axis.Y) + o.Extents.Y*math.Abs(o.Axis.X)
	return NewBBForExtents(o.Center, hw, hh)
}

func (o OBB) project(axis Vector) (center, radius float64) {
	center = o.Center.Dot(axis)
	radius = o.Extents.X*math.Abs(o.Axis.Dot(axis)) + o.Extents.Y*math.Abs(o.Axis.Perp().Dot(axis))
	return
}

// Overlaps is a separating axis test over the four face normals of both boxes.
func (o OBB) Overlaps(other OBB) bool {
	axes := [4]Vector{o.Axis, o.Axis.Perp(), other.Axis, other.Axis.Perp()}
	for _, axis := range axes {
		c0, r0 := o.project(axis)
		c1, r1 := other.project(axis)
		if math.Abs(c0-c1) > r0+r1 {
			return false
		}
	}
	return true
}

// OverlapsBB is Overlaps against an axis aligned box.
func (o OBB) OverlapsBB(bb BB) bool {
	return o.Overlaps(OBBFromBB(bb))
}

// obbForPoints fits a box to points, oriented by principal component analysis.
// The axis aligned fit wins when it is smaller.
func obbForPoints(points []Vector) OBB {
	var mean Vector
	for _, p := range points {
		mean = mean.Add(p)
	}
	mean = mean.Mult(1 / float64(len(points)))

	var cxx, cxy, cyy float64
	for _, p := range points {
		d := p.Sub(mean)
		cxx += d.X * d.X
		cxy += d.X * d.Y
		cyy += d.Y * d.Y
	}

	pca := fitOBB(points, ForAngle(0.5*math.Atan2(2*cxy, cxx-cyy)))
	aligned := fitOBB(points, Vector{1, 0})
	if aligned.Area() <= pca.Area() {
		return aligned
	}
	return pca
}

func fitOBB(points []Vector, axis Vector) OBB {
	perp := axis.Perp()
	minU, maxU := INFINITY, -INFINITY
	minV, maxV := INFINITY, -INFINITY
	for _, p := range points {
		u := p.Dot(axis)
		v := p.Dot(perp)
		minU = math.Min(minU, u)
		maxU = math.Max(maxU, u)
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	center := axis.Mult((minU + maxU) * 0.5).Add(perp.Mult((minV + maxV) * 0.5))
	return OBB{center, axis, Vector{(maxU - minU) * 0.5, (maxV - minV) * 0.5}}
}
