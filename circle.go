package phys2d

type Circle struct {
	c Vector
	r float64
}

// NewCircle makes a circle of the given radius centered at offset in body space.
func NewCircle(radius float64, offset Vector) *Circle {
	return &Circle{
		c: offset,
		r: radius,
	}
}

func (circle *Circle) Type() ShapeType {
	return SHAPE_CIRCLE
}

func (circle *Circle) Radius() float64 {
	return circle.r
}

func (circle *Circle) Center() Vector {
	return circle.c
}

func (circle *Circle) Support(dir Vector) Vector {
	if dir.LengthSq() == 0 {
		return circle.c.Add(Vector{circle.r, 0})
	}
	return circle.c.Add(dir.Normalize().Mult(circle.r))
}

func (circle *Circle) TestPoint(p Vector) bool {
	return p.DistanceSq(circle.c) < circle.r*circle.r
}

func (circle *Circle) AABB(t Transform) BB {
	return NewBBForCircle(t.Point(circle.c), circle.r)
}

func (*Circle) sealed() {}
