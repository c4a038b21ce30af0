package phys2d

type manifoldInput struct {
	c0, c1    ContactCandidate
	mapping   SpacesMapping
	normal    Vector
	depth     float64
	converged bool
	// clipped points separated by more than this are dropped
	maxSeparation float64
}

func (in *manifoldInput) contact(point0, point1, normal Vector) ContactInfo {
	return ContactInfo{
		Collider0:   in.c0.Collider,
		Collider1:   in.c1.Collider,
		Shape0:      in.c0.Shape,
		Shape1:      in.c1.Shape,
		Point0:      point0,
		LocalPoint0: in.mapping.ToFirstPoint(point0),
		Point1:      point1,
		LocalPoint1: in.mapping.ToSecondPoint(point1),
		Normal:      normal,
		Depth:       point0.Sub(point1).Dot(normal),
		Converged:   in.converged,
	}
}

type ManifoldFunc func(out []ContactInfo, in *manifoldInput) []ContactInfo

func CircleToCircle(out []ContactInfo, in *manifoldInput) []ContactInfo {
	circle0 := in.c0.Shape.(*Circle)
	circle1 := in.c1.Shape.(*Circle)
	c0 := in.mapping.FromFirstPoint(circle0.c)
	c1 := in.mapping.FromSecondPoint(circle1.c)

	n := in.normal
	delta := c1.Sub(c0)
	if d := delta.Length(); d > MAGIC_EPSILON {
		n = delta.Mult(1 / d)
	}
	return append(out, in.contact(c0.Add(n.Mult(circle0.r)), c1.Sub(n.Mult(circle1.r)), n))
}

func CircleToPoly(out []ContactInfo, in *manifoldInput) []ContactInfo {
	circle := in.c0.Shape.(*Circle)
	c := in.mapping.FromFirstPoint(circle.c)
	n := in.normal

	point0 := c.Add(n.Mult(circle.r))
	point1 := point0.Sub(n.Mult(in.depth))
	return append(out, in.contact(point0, point1, n))
}

// PolyToPoly clips the incident edge against the side planes of the reference
// face, which is the face of either polygon best aligned with the normal.
func PolyToPoly(out []ContactInfo, in *manifoldInput) []ContactInfo {
	poly0, _ := polygonOf(in.c0.Shape)
	poly1, _ := polygonOf(in.c1.Shape)
	n := in.normal

	face0, align0 := bestFace(poly0, in.mapping.ToFirstVector(n))
	face1, align1 := bestFace(poly1, in.mapping.ToSecondVector(n.Neg()))

	flip := align1 > align0+1e-3

	var v1, v2, rn Vector
	var incident [2]Vector
	if !flip {
		v1, v2, rn = worldEdge(poly0, face0, in.mapping.first)
		incident = incidentEdge(poly1, in.mapping.ToSecondVector(rn), in.mapping.second)
	} else {
		v1, v2, rn = worldEdge(poly1, face1, in.mapping.second)
		incident = incidentEdge(poly0, in.mapping.ToFirstVector(rn), in.mapping.first)
	}

	tangent := v2.Sub(v1).Normalize()
	clipped, count := clipSegment(incident, tangent.Neg(), -tangent.Dot(v1))
	if count == 2 {
		clipped, count = clipSegment(clipped, tangent, tangent.Dot(v2))
	}

	start := len(out)
	if count == 2 {
		for _, p := range clipped {
			s := rn.Dot(p.Sub(v1))
			if s > in.maxSeparation {
				continue
			}
			q := p.Sub(rn.Mult(s))
			if !flip {
				out = append(out, in.contact(q, p, rn))
			} else {
				out = append(out, in.contact(p, q, rn.Neg()))
			}
		}
	}

	if len(out) == start {
		point0 := in.mapping.FromFirstPoint(poly0.Support(in.mapping.ToFirstVector(n)))
		out = append(out, in.contact(point0, point0.Sub(n.Mult(in.depth)), n))
	}
	return out
}

func ManifoldError(out []ContactInfo, in *manifoldInput) []ContactInfo {
	logger.Println("Shape types are not sorted:", in.c0.Shape.Type(), in.c1.Shape.Type())
	return out
}

var BuiltinManifoldFuncs = [9]ManifoldFunc{
	CircleToCircle,
	ManifoldError,
	ManifoldError,
	CircleToPoly,
	PolyToPoly,
	ManifoldError,
	CircleToPoly,
	PolyToPoly,
	PolyToPoly,
}

// Manifold appends the contact points of a convex pair.
func Manifold(out []ContactInfo, in *manifoldInput) []ContactInfo {
	t0 := in.c0.Shape.Type()
	t1 := in.c1.Shape.Type()
	if t0 >= CONVEX_SHAPE_TYPES || t1 >= CONVEX_SHAPE_TYPES {
		return ManifoldError(out, in)
	}

	// Make sure the shape types are in order.
	if t0 > t1 {
		swapped := *in
		swapped.c0, swapped.c1 = in.c1, in.c0
		swapped.mapping = in.mapping.Swapped()
		swapped.normal = in.normal.Neg()

		start := len(out)
		out = BuiltinManifoldFuncs[t1+t0*CONVEX_SHAPE_TYPES](out, &swapped)
		for i := start; i < len(out); i++ {
			out[i] = out[i].swapped()
		}
		return out
	}

	return BuiltinManifoldFuncs[t0+t1*CONVEX_SHAPE_TYPES](out, in)
}

// bestFace returns the face whose normal is most aligned with the local direction n.
func bestFace(poly *Polygon, n Vector) (int, float64) {
	n = n.Normalize()
	best := 0
	max := -INFINITY
	for i, fn := range poly.normals {
		if d := fn.Dot(n); d > max {
			max = d
			best = i
		}
	}
	return best, max
}

func worldEdge(poly *Polygon, i int, t Transform) (v1, v2, n Vector) {
	count := len(poly.verts)
	return t.Point(poly.verts[i]), t.Point(poly.verts[(i+1)%count]), t.Vect(poly.normals[i])
}

// incidentEdge is the edge whose normal is most anti-parallel to the local reference normal rn.
func incidentEdge(poly *Polygon, rn Vector, t Transform) [2]Vector {
	i, _ := bestFace(poly, rn.Neg())
	v1, v2, _ := worldEdge(poly, i, t)
	return [2]Vector{v1, v2}
}

// clipSegment keeps the part of the segment where n·p <= offset.
func clipSegment(p [2]Vector, n Vector, offset float64) ([2]Vector, int) {
	var out [2]Vector
	count := 0

	d0 := n.Dot(p[0]) - offset
	d1 := n.Dot(p[1]) - offset
	if d0 <= 0 {
		out[count] = p[0]
		count++
	}
	if d1 <= 0 {
		out[count] = p[1]
		count++
	}
	if d0*d1 < 0 {
		out[count] = p[0].Lerp(p[1], d0/(d0-d1))
		count++
	}
	return out, count
}
