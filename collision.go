package phys2d

import "math"

// MinkowskiPoint is a point on the surface of the Minkowski difference of two shapes.
type MinkowskiPoint struct {
	// Cache the two original support points, in world space.
	a, b Vector
	// a - b
	ab Vector
}

// SupportContext evaluates support points of shape0 - shape1 in world space.
type SupportContext struct {
	shape0, shape1 Shape
	mapping        *SpacesMapping
	// margin inflates shape0.
	margin float64
}

func NewSupportContext(shape0, shape1 Shape, mapping *SpacesMapping, margin float64) *SupportContext {
	return &SupportContext{shape0, shape1, mapping, margin}
}

// Support calculates the maximal point on the minkowski difference of two shapes along a particular axis.
func (ctx *SupportContext) Support(n Vector) MinkowskiPoint {
	a := ctx.mapping.FromFirstPoint(ctx.shape0.Support(ctx.mapping.ToFirstVector(n)))
	if ctx.margin > 0 {
		a = a.Add(n.Normalize().Mult(ctx.margin))
	}
	b := ctx.mapping.FromSecondPoint(ctx.shape1.Support(ctx.mapping.ToSecondVector(n.Neg())))
	return MinkowskiPoint{a, b, a.Sub(b)}
}

// Simplex is the GJK working set, up to a triangle in 2D.
type Simplex struct {
	points  [3]MinkowskiPoint
	lambdas [3]float64
	count   int
	closest Vector
}

func (s *Simplex) Count() int {
	return s.count
}

// Closest is the point of the simplex nearest to the origin.
func (s *Simplex) Closest() Vector {
	return s.closest
}

// ClosestPoints are the witness points on both shapes that produce Closest.
func (s *Simplex) ClosestPoints() (a, b Vector) {
	for i := 0; i < s.count; i++ {
		a = a.Add(s.points[i].a.Mult(s.lambdas[i]))
		b = b.Add(s.points[i].b.Mult(s.lambdas[i]))
	}
	return
}

func (s *Simplex) reset(p MinkowskiPoint) {
	s.points[0] = p
	s.lambdas[0] = 1
	s.count = 1
	s.closest = p.ab
}

func (s *Simplex) contains(p MinkowskiPoint) bool {
	for i := 0; i < s.count; i++ {
		if s.points[i].ab.Equal(p.ab) {
			return true
		}
	}
	return false
}

func (s *Simplex) push(p MinkowskiPoint) {
	s.points[s.count] = p
	s.count++
}

// solve reduces the simplex to the feature nearest the origin. It reports
// whether the triangle encloses the origin.
func (s *Simplex) solve() bool {
	switch s.count {
	case 1:
		s.lambdas[0] = 1
		s.closest = s.points[0].ab
	case 2:
		s.solveSegment(s.points[0], s.points[1])
	case 3:
		a, b, c := s.points[0].ab, s.points[1].ab, s.points[2].ab
		area := b.Sub(a).Cross(c.Sub(a))
		if math.Abs(area) > MAGIC_EPSILON*MAGIC_EPSILON {
			u := b.Cross(c) / area
			v := c.Cross(a) / area
			w := a.Cross(b) / area
			if u >= 0 && v >= 0 && w >= 0 {
				s.lambdas = [3]float64{u, v, w}
				s.closest = Vector{}
				return true
			}
		}

		edges := [3][2]MinkowskiPoint{
			{s.points[0], s.points[1]},
			{s.points[1], s.points[2]},
			{s.points[2], s.points[0]},
		}
		best := 0
		bestDist := INFINITY
		for i, e := range edges {
			_, _, v := closestOnSegment(e[0], e[1])
			if d := v.LengthSq(); d < bestDist {
				bestDist = d
				best = i
			}
		}
		s.solveSegment(edges[best][0], edges[best][1])
	}
	return false
}

func (s *Simplex) solveSegment(p0, p1 MinkowskiPoint) {
	l0, l1, v := closestOnSegment(p0, p1)
	s.closest = v
	switch {
	case l1 == 0:
		s.points[0] = p0
		s.lambdas[0] = 1
		s.count = 1
	case l0 == 0:
		s.points[0] = p1
		s.lambdas[0] = 1
		s.count = 1
	default:
		s.points[0], s.points[1] = p0, p1
		s.lambdas[0], s.lambdas[1] = l0, l1
		s.count = 2
	}
}

func closestOnSegment(p0, p1 MinkowskiPoint) (l0, l1 float64, v Vector) {
	d := p1.ab.Sub(p0.ab)
	lsq := d.LengthSq()
	if lsq < MAGIC_EPSILON*MAGIC_EPSILON {
		return 1, 0, p0.ab
	}
	t := Clamp01(-p0.ab.Dot(d) / lsq)
	return 1 - t, t, p0.ab.Lerp(p1.ab, t)
}

type GJKResult struct {
	Distance float64
	// Witness points on shape 0 (inflated by the margin) and shape 1.
	Point0, Point1 Vector
	Iterations     int
	Converged      bool
}

// GJK computes the distance between the shapes of ctx. On return the simplex
// holds the final feature, a triangle around the origin when the shapes overlap.
func GJK(ctx *SupportContext, simplex *Simplex, initialDir Vector, relError float64, maxIterations int) GJKResult {
	if initialDir.LengthSq() == 0 {
		initialDir = Vector{1, 0}
	}
	simplex.reset(ctx.Support(initialDir.Neg()))

	result := GJKResult{}
	for result.Iterations < maxIterations {
		result.Iterations++

		v := simplex.closest
		vv := v.LengthSq()
		if simplex.count == 3 || vv < MAGIC_EPSILON*MAGIC_EPSILON {
			result.Converged = true
			break
		}

		w := ctx.Support(v.Neg())
		if vv-v.Dot(w.ab) <= relError*vv || simplex.contains(w) {
			result.Converged = true
			break
		}

		simplex.push(w)
		simplex.solve()
	}

	if simplex.count == 3 {
		result.Distance = 0
	} else {
		result.Distance = simplex.closest.Length()
	}
	result.Point0, result.Point1 = simplex.ClosestPoints()
	return result
}

type EPAResult struct {
	// Normal points from shape 0 toward shape 1.
	Normal Vector
	Depth  float64
	// MTV is the translation of shape 0 that separates the shapes.
	MTV        Vector
	Iterations int
	Converged  bool
}

// EPA expands the GJK simplex into a polygon until the face nearest the origin
// is found. hull is scratch space and is returned for reuse.
func EPA(ctx *SupportContext, simplex *Simplex, hull []MinkowskiPoint, epsilon float64, maxIterations int) (EPAResult, []MinkowskiPoint) {
	hull = hull[:0]
	for i := 0; i < simplex.count; i++ {
		hull = append(hull, simplex.points[i])
	}

	if len(hull) == 1 {
		dir := hull[0].ab.Neg()
		if dir.LengthSq() < MAGIC_EPSILON*MAGIC_EPSILON {
			dir = Vector{1, 0}
		}
		p := ctx.Support(dir)
		if p.ab.Near(hull[0].ab, MAGIC_EPSILON) {
			p = ctx.Support(dir.Neg())
		}
		hull = append(hull, p)
	}
	if len(hull) == 2 {
		e := hull[1].ab.Sub(hull[0].ab)
		n := e.Perp()
		p := ctx.Support(n)
		if math.Abs(e.Cross(p.ab.Sub(hull[0].ab))) < MAGIC_EPSILON*MAGIC_EPSILON {
			p = ctx.Support(n.Neg())
		}
		hull = append(hull, p)
	}

	area := hull[1].ab.Sub(hull[0].ab).Cross(hull[2].ab.Sub(hull[0].ab))
	if math.Abs(area) < MAGIC_EPSILON*MAGIC_EPSILON {
		// The difference is flat: the shapes only touch.
		n := hull[1].ab.Sub(hull[0].ab).Perp().Normalize()
		if n.LengthSq() == 0 {
			n = Vector{1, 0}
		}
		return EPAResult{Normal: n, Converged: true}, hull
	}
	if area < 0 {
		hull[1], hull[2] = hull[2], hull[1]
	}

	result := EPAResult{}
	var normal Vector
	var dist float64
	for {
		mini := -1
		dist = INFINITY
		for i := range hull {
			j := (i + 1) % len(hull)
			e := hull[j].ab.Sub(hull[i].ab)
			if e.LengthSq() < MAGIC_EPSILON*MAGIC_EPSILON {
				continue
			}
			n := e.ReversePerp().Normalize()
			if d := n.Dot(hull[i].ab); d < dist {
				dist = d
				normal = n
				mini = i
			}
		}
		if mini < 0 {
			break
		}

		if result.Iterations >= maxIterations {
			break
		}
		result.Iterations++

		p := ctx.Support(normal)
		if p.ab.Dot(normal)-dist < epsilon {
			result.Converged = true
			break
		}

		// Rebuild the convex hull by inserting p after the closest edge.
		hull = append(hull, MinkowskiPoint{})
		copy(hull[mini+2:], hull[mini+1:])
		hull[mini+1] = p
	}

	if result.Iterations > WARN_EPA_ITERATIONS {
		logger.Println("Warning: High EPA iterations:", result.Iterations)
	}

	result.Normal = normal
	result.Depth = dist
	result.MTV = normal.Mult(-dist)
	return result, hull
}
