package phys2d

// Draw flags
const (
	DRAW_SHAPES         = 1 << 0
	DRAW_JOINTS         = 1 << 1
	DRAW_CONTACT_POINTS = 1 << 2
)

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

// Drawer renders world geometry. Positions are in world space.
type Drawer interface {
	DrawCircle(pos Vector, angle, radius float64, outline, fill FColor)
	DrawSegment(a, b Vector, fill FColor)
	DrawFatSegment(a, b Vector, radius float64, outline, fill FColor)
	DrawPolygon(verts []Vector, outline, fill FColor)
	DrawDot(size float64, pos Vector, fill FColor)

	Flags() int
	OutlineColor() FColor
	ShapeColor(c *Collider) FColor
	JointColor() FColor
	ContactPointColor() FColor
}

func DrawCollider(c *Collider, options Drawer) {
	t := c.Transform()
	outline := options.OutlineColor()
	fill := options.ShapeColor(c)

	switch shape := c.shape.(type) {
	case *Circle:
		options.DrawCircle(t.Point(shape.c), c.body.a, shape.r, outline, fill)
	case *Capsule:
		hh := shape.height * 0.5
		options.DrawFatSegment(t.Point(Vector{0, -hh}), t.Point(Vector{0, hh}), shape.r, outline, fill)
	case *Polygon:
		options.DrawPolygon(transformVerts(t, shape.verts), outline, fill)
	case *Mesh:
		for _, tri := range shape.triangles {
			options.DrawPolygon(transformVerts(t, tri.verts), outline, fill)
		}
	default:
		panic("Unknown shape type")
	}
}

func transformVerts(t Transform, verts []Vector) []Vector {
	out := make([]Vector, len(verts))
	for i, v := range verts {
		out[i] = t.Point(v)
	}
	return out
}

// DrawJoint connects the centers of the joined bodies. Motors draw nothing.
func DrawJoint(joint Joint, options Drawer) {
	a, b := joint.BodyA(), joint.BodyB()
	if a == nil || b == nil {
		return
	}
	color := options.JointColor()
	options.DrawDot(3, a.p, color)
	options.DrawDot(3, b.p, color)
	options.DrawSegment(a.p, b.p, color)
}

func DrawWorld(world *World, options Drawer) {
	if options.Flags()&DRAW_SHAPES != 0 {
		for _, c := range world.detector.colliders {
			DrawCollider(c, options)
		}
	}

	if options.Flags()&DRAW_JOINTS != 0 {
		for _, joint := range world.joints {
			DrawJoint(joint, options)
		}
	}

	if options.Flags()&DRAW_CONTACT_POINTS != 0 {
		color := options.ContactPointColor()
		for _, contact := range world.contacts {
			info := contact.info
			options.DrawSegment(info.Point0, info.Point0.Add(info.Normal.Mult(0.25)), color)
			options.DrawDot(2, info.Point0, color)
		}
	}
}
