package phys2d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Constraint is one scalar row for the solver. Jacobians are (linear x, linear y, angular)
// per body. BodyB is nil for single body constraints.
type Constraint interface {
	BodyA() *Body
	BodyB() *Body
	Jacobian() (ja, jb mgl64.Vec3)
	DotJacobian() (ja, jb mgl64.Vec3)
	// Value is the position error C.
	Value() float64
	// Speed is the target velocity of the row.
	Speed() float64
	// PushFactor is the velocity bias that corrects Value over the next step.
	PushFactor(dt, strength float64) float64
	Clamping() Clamping
	Cache(id int) float64
	SetCache(id int, value float64)
}

// Biaser is implemented by rows that correct position error through bias
// velocities instead of PushFactor. Bias impulses move the bodies during
// the step but are never kept as momentum.
type Biaser interface {
	Bias(dt, strength float64) float64
}

// PreStepper is implemented by constraints that need per-step state before the solver reads them.
type PreStepper interface {
	PreStep(dt float64)
}

type constraintBase struct {
	a, b  *Body
	cache *ImpulseCache
	// slot of cache that belongs to this constraint
	slot int
}

func newConstraintBase(a, b *Body) constraintBase {
	return constraintBase{a: a, b: b, cache: &ImpulseCache{}}
}

func (c *constraintBase) BodyA() *Body {
	return c.a
}

func (c *constraintBase) BodyB() *Body {
	return c.b
}

func (c *constraintBase) Cache(id int) float64 {
	return c.cache[(id+c.slot)&1]
}

func (c *constraintBase) SetCache(id int, value float64) {
	c.cache[(id+c.slot)&1] = value
}

func (c *constraintBase) DotJacobian() (ja, jb mgl64.Vec3) {
	return
}

func (c *constraintBase) Value() float64 {
	return 0
}

func (c *constraintBase) Speed() float64 {
	return 0
}

func (c *constraintBase) PushFactor(dt, strength float64) float64 {
	return 0
}

func (c *constraintBase) Clamping() Clamping {
	return unbounded
}

func relative_velocity(a, b *Body, r1, r2 Vector) Vector {
	v1_sum := a.v.Add(r1.Perp().Mult(a.w))
	v2_sum := b.v.Add(r2.Perp().Mult(b.w))
	return v2_sum.Sub(v1_sum)
}

// anchors returns the world offsets of two body-local pivots and the vector between them.
func anchors(a, b *Body, pivotA, pivotB Vector) (ra, rb, d Vector) {
	ra = a.transform.Vect(pivotA)
	rb = b.transform.Vect(pivotB)
	d = b.p.Add(rb).Sub(a.p.Add(ra))
	return
}

func pointJacobian(ra, rb, n Vector) (ja, jb mgl64.Vec3) {
	ja = mgl64.Vec3{-n.X, -n.Y, -ra.Cross(n)}
	jb = mgl64.Vec3{n.X, n.Y, rb.Cross(n)}
	return
}

func hadamard(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// k_scalar is the effective inverse mass J M^-1 J^T of a row.
func k_scalar(a, b *Body, ja, jb mgl64.Vec3) float64 {
	k := ja.Dot(hadamard(a.invMass3(), ja))
	if b != nil {
		k += jb.Dot(hadamard(b.invMass3(), jb))
	}
	return k
}

func jacobianVelocity(a, b *Body, ja, jb mgl64.Vec3) float64 {
	v := ja.Dot(a.velocity3())
	if b != nil {
		v += jb.Dot(b.velocity3())
	}
	return v
}

// DistanceConstraint keeps two anchors at a fixed distance.
type DistanceConstraint struct {
	constraintBase
	pivotA, pivotB Vector
	distance       float64
}

func NewDistanceConstraint(a, b *Body, pivotA, pivotB Vector, distance float64) *DistanceConstraint {
	return &DistanceConstraint{
		constraintBase: newConstraintBase(a, b),
		pivotA:         pivotA,
		pivotB:         pivotB,
		distance:       distance,
	}
}

func (c *DistanceConstraint) direction() (ra, rb, d, n Vector, dist float64) {
	ra, rb, d = anchors(c.a, c.b, c.pivotA, c.pivotB)
	dist = d.Length()
	if dist > 0 {
		n = d.Mult(1 / dist)
	} else {
		n = Vector{1, 0}
	}
	return
}

func (c *DistanceConstraint) Jacobian() (ja, jb mgl64.Vec3) {
	ra, rb, _, n, _ := c.direction()
	return pointJacobian(ra, rb, n)
}

func (c *DistanceConstraint) DotJacobian() (ja, jb mgl64.Vec3) {
	ra, rb, _, n, dist := c.direction()
	if dist == 0 {
		return
	}
	dd := relative_velocity(c.a, c.b, ra, rb)
	dn := dd.Sub(n.Mult(n.Dot(dd))).Mult(1 / dist)
	dra := CrossScalar(c.a.w, ra)
	drb := CrossScalar(c.b.w, rb)

	ja = mgl64.Vec3{-dn.X, -dn.Y, -(dra.Cross(n) + ra.Cross(dn))}
	jb = mgl64.Vec3{dn.X, dn.Y, drb.Cross(n) + rb.Cross(dn)}
	return
}

func (c *DistanceConstraint) Value() float64 {
	_, _, _, _, dist := c.direction()
	return dist - c.distance
}

func (c *DistanceConstraint) PushFactor(dt, strength float64) float64 {
	return -strength * c.Value() / dt
}

// LineConstraint keeps anchor B at a signed offset from the line through anchor A.
// The line normal is fixed in A's frame. With a one sided clamp it is a limit.
type LineConstraint struct {
	constraintBase
	pivotA, pivotB Vector
	normal         Vector
	offset         float64
	clamp          Clamping
}

func NewLineConstraint(a, b *Body, pivotA, pivotB, normal Vector, offset float64, clamp Clamping) *LineConstraint {
	return &LineConstraint{
		constraintBase: newConstraintBase(a, b),
		pivotA:         pivotA,
		pivotB:         pivotB,
		normal:         normal.Normalize(),
		offset:         offset,
		clamp:          clamp,
	}
}

func (c *LineConstraint) geometry() (ra, rb, d, n Vector) {
	ra, rb, d = anchors(c.a, c.b, c.pivotA, c.pivotB)
	n = c.a.transform.Vect(c.normal)
	return
}

func (c *LineConstraint) Jacobian() (ja, jb mgl64.Vec3) {
	ra, rb, d, n := c.geometry()
	return pointJacobian(ra.Add(d), rb, n)
}

func (c *LineConstraint) DotJacobian() (ja, jb mgl64.Vec3) {
	ra, rb, d, n := c.geometry()
	dn := CrossScalar(c.a.w, n)
	dd := relative_velocity(c.a, c.b, ra, rb)
	dra := CrossScalar(c.a.w, ra)
	drb := CrossScalar(c.b.w, rb)

	ja = mgl64.Vec3{-dn.X, -dn.Y, -(dra.Add(dd).Cross(n) + ra.Add(d).Cross(dn))}
	jb = mgl64.Vec3{dn.X, dn.Y, drb.Cross(n) + rb.Cross(dn)}
	return
}

func (c *LineConstraint) Value() float64 {
	_, _, d, n := c.geometry()
	return d.Dot(n) - c.offset
}

func (c *LineConstraint) PushFactor(dt, strength float64) float64 {
	value := c.Value()
	if c.clamp != unbounded && value >= 0 {
		// inactive limit: allow reaching it in one step
		return -value / dt
	}
	return -strength * value / dt
}

func (c *LineConstraint) Clamping() Clamping {
	return c.clamp
}

// AngleConstraint keeps the relative angle of two bodies.
type AngleConstraint struct {
	constraintBase
	refAngle float64
}

func NewAngleConstraint(a, b *Body, refAngle float64) *AngleConstraint {
	return &AngleConstraint{constraintBase: newConstraintBase(a, b), refAngle: refAngle}
}

func (c *AngleConstraint) Jacobian() (ja, jb mgl64.Vec3) {
	return mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 1}
}

func (c *AngleConstraint) Value() float64 {
	return c.b.a - c.a.a - c.refAngle
}

func (c *AngleConstraint) PushFactor(dt, strength float64) float64 {
	return -strength * c.Value() / dt
}

// SpringConstraint applies a fixed impulse per step computed from the stretch and
// relative speed of its anchors.
type SpringConstraint struct {
	DistanceConstraint
	stiffness float64
	damping   float64

	impulse float64
}

func NewSpringConstraint(a, b *Body, pivotA, pivotB Vector, distance, stiffness, damping float64) *SpringConstraint {
	return &SpringConstraint{
		DistanceConstraint: *NewDistanceConstraint(a, b, pivotA, pivotB, distance),
		stiffness:          stiffness,
		damping:            damping,
	}
}

func (c *SpringConstraint) PreStep(dt float64) {
	ja, jb := c.Jacobian()
	k := k_scalar(c.a, c.b, ja, jb)
	vrn := jacobianVelocity(c.a, c.b, ja, jb)

	j := -c.stiffness * c.Value() * dt
	if k > 0 {
		// exponential damping stays stable for any coefficient
		j -= (1 - math.Exp(-c.damping*dt*k)) * vrn / k
	}
	c.impulse = j
}

func (c *SpringConstraint) PushFactor(dt, strength float64) float64 {
	return 0
}

func (c *SpringConstraint) Clamping() Clamping {
	return Clamping{c.impulse, c.impulse}
}

// AngularMotorConstraint drives a body toward an angular speed with a bounded torque.
type AngularMotorConstraint struct {
	constraintBase
	speed, torque float64

	maxImpulse float64
}

func NewAngularMotorConstraint(body *Body, speed, torque float64) *AngularMotorConstraint {
	return &AngularMotorConstraint{
		constraintBase: newConstraintBase(body, nil),
		speed:          speed,
		torque:         torque,
	}
}

func (c *AngularMotorConstraint) PreStep(dt float64) {
	c.maxImpulse = c.torque * dt
}

func (c *AngularMotorConstraint) Jacobian() (ja, jb mgl64.Vec3) {
	return mgl64.Vec3{0, 0, 1}, mgl64.Vec3{}
}

func (c *AngularMotorConstraint) Speed() float64 {
	return c.speed
}

func (c *AngularMotorConstraint) Clamping() Clamping {
	return Clamping{-c.maxImpulse, c.maxImpulse}
}

// ContactConstraint is the non penetration row of one contact point.
type ContactConstraint struct {
	constraintBase
	point0, point1 Vector
	normal         Vector
	depth          float64
	bounce         float64
	slop           float64
	converged      bool
}

func (c *ContactConstraint) Jacobian() (ja, jb mgl64.Vec3) {
	return pointJacobian(c.point0.Sub(c.a.p), c.point1.Sub(c.b.p), c.normal)
}

func (c *ContactConstraint) Value() float64 {
	return -c.depth
}

func (c *ContactConstraint) Speed() float64 {
	return c.bounce
}

// PushFactor only lets a speculative contact close its gap within the step.
// Penetration is resolved by Bias.
func (c *ContactConstraint) PushFactor(dt, strength float64) float64 {
	return math.Min(c.depth, 0) / dt
}

func (c *ContactConstraint) Bias(dt, strength float64) float64 {
	if c.depth <= c.slop {
		return 0
	}
	bias := strength * (c.depth - c.slop) / dt
	if !c.converged {
		bias *= 0.5
	}
	return bias
}

func (c *ContactConstraint) Clamping() Clamping {
	return Clamping{0, INFINITY}
}

// FrictionConstraint shares the cache record of its normal row, so Cache(1) is the normal impulse.
type FrictionConstraint struct {
	constraintBase
	point0, point1 Vector
	tangent        Vector
	friction       float64
}

func (c *FrictionConstraint) Jacobian() (ja, jb mgl64.Vec3) {
	return pointJacobian(c.point0.Sub(c.a.p), c.point1.Sub(c.b.p), c.tangent)
}

func (c *FrictionConstraint) Clamping() Clamping {
	max := c.friction * c.Cache(1)
	return Clamping{-max, max}
}
