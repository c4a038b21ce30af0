package phys2d

import "math"

// MomentForCircle is the moment of inertia of a hollow circle, r1 and r2 being the
// inner and outer radii. A solid circle has an inner radius of 0.
func MomentForCircle(m, r1, r2 float64, offset Vector) float64 {
	return m * (0.5*(r1*r1+r2*r2) + offset.LengthSq())
}

func AreaForCircle(r1, r2 float64) float64 {
	return math.Pi * math.Abs(r1*r1-r2*r2)
}

func MomentForBox(m, width, height float64) float64 {
	return m * (width*width + height*height) / 12.0
}

// MomentForPoly computes the moment of a solid polygon about its local origin
// after shifting every vertex by offset.
func MomentForPoly(m float64, verts []Vector, offset Vector) float64 {
	count := len(verts)
	var sum1, sum2 float64
	for i := 0; i < count; i++ {
		v1 := verts[i].Add(offset)
		v2 := verts[(i+1)%count].Add(offset)

		a := v2.Cross(v1)
		b := v1.Dot(v1) + v1.Dot(v2) + v2.Dot(v2)

		sum1 += a * b
		sum2 += a
	}
	return (m * sum1) / (6.0 * sum2)
}

// MomentForCapsule approximates the capsule by its polygon.
func MomentForCapsule(m float64, capsule *Capsule) float64 {
	return MomentForPoly(m, capsule.verts, Vector{})
}

// AreaForPoly is positive for counter-clockwise winding.
func AreaForPoly(verts []Vector) float64 {
	count := len(verts)
	var area float64
	for i := 0; i < count; i++ {
		area += verts[i].Cross(verts[(i+1)%count])
	}
	return area * 0.5
}

func CentroidForPoly(verts []Vector) Vector {
	count := len(verts)
	var sum float64
	var vsum Vector
	for i := 0; i < count; i++ {
		v1 := verts[i]
		v2 := verts[(i+1)%count]
		cross := v1.Cross(v2)

		sum += cross
		vsum = vsum.Add(v1.Add(v2).Mult(cross))
	}
	return vsum.Mult(1.0 / (3.0 * sum))
}
