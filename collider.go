package phys2d

// Collider attaches a shape to a body. Virtual colliders report contacts but never generate a response.
type Collider struct {
	id      uint32
	body    *Body
	shape   Shape
	mask    uint32
	virtual bool
	aabb    BB
}

func (c *Collider) ID() uint32 {
	return c.id
}

func (c *Collider) Body() *Body {
	return c.body
}

func (c *Collider) Shape() Shape {
	return c.shape
}

func (c *Collider) Mask() uint32 {
	return c.mask
}

func (c *Collider) SetMask(mask uint32) {
	c.mask = mask
}

func (c *Collider) Virtual() bool {
	return c.virtual
}

// AABB is the box computed by the last UpdateAABB.
func (c *Collider) AABB() BB {
	return c.aabb
}

func (c *Collider) Transform() Transform {
	return c.body.transform
}

// UpdateAABB refreshes the box, padded by the contact margin so that pairs
// about to touch reach the narrow phase.
func (c *Collider) UpdateAABB() BB {
	c.aabb = c.shape.AABB(c.body.transform).Grow(GJK_MARGIN)
	return c.aabb
}

// ContactCandidate is a collider together with the convex piece of its shape under test.
type ContactCandidate struct {
	Collider *Collider
	Shape    Shape
	AABB     BB
}

func candidateOf(c *Collider) ContactCandidate {
	return ContactCandidate{Collider: c, Shape: c.shape, AABB: c.aabb}
}

type ContactCandidatePair [2]ContactCandidate

// ContactInfo is one contact point between two colliders. Normal points from
// shape 0 toward shape 1. Depth is positive when the shapes overlap and
// negative for a speculative contact across a small gap.
type ContactInfo struct {
	Collider0, Collider1 *Collider
	Shape0, Shape1       Shape

	Point0, LocalPoint0 Vector
	Point1, LocalPoint1 Vector

	Normal Vector
	Depth  float64
	// Converged is false when GJK or EPA ran out of iterations.
	Converged bool
}

// swapped exchanges the two sides.
func (info ContactInfo) swapped() ContactInfo {
	return ContactInfo{
		Collider0:   info.Collider1,
		Collider1:   info.Collider0,
		Shape0:      info.Shape1,
		Shape1:      info.Shape0,
		Point0:      info.Point1,
		LocalPoint0: info.LocalPoint1,
		Point1:      info.Point0,
		LocalPoint1: info.LocalPoint0,
		Normal:      info.Normal.Neg(),
		Depth:       info.Depth,
		Converged:   info.Converged,
	}
}
