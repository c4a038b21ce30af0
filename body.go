package phys2d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Handle names a body slot in a World. The generation changes whenever the slot is reused.
type Handle struct {
	Index      uint32
	Generation uint32
}

// Body is a rigid body. The position is the center of mass.
// A mass of zero makes the body static, an inertia of zero stops it from rotating.
type Body struct {
	id     uint32
	handle Handle
	// dense index into the world's body list
	index int

	// mass and it's inverse
	m     float64
	m_inv float64

	// moment of inertia and it's inverse
	i     float64
	i_inv float64

	// position, velocity, force
	p Vector
	v Vector
	f Vector

	// Angle, angular velocity, torque (radians)
	a float64
	w float64
	t float64

	// Velocity bias values used when solving penetrations and correcting constraints.
	v_bias Vector
	w_bias float64

	transform Transform

	UserData interface{}
}

func (b Body) String() string {
	return fmt.Sprint("Body ", b.id)
}

func newBody(id uint32, mass, inertia float64, position Vector, angle float64) *Body {
	body := &Body{id: id, p: position}
	body.SetMass(mass)
	body.SetInertia(inertia)
	body.SetAngle(angle)
	return body
}

func (body *Body) ID() uint32 {
	return body.id
}

func (body *Body) Handle() Handle {
	return body.handle
}

func (body *Body) Mass() float64 {
	return body.m
}

func (body *Body) SetMass(mass float64) {
	body.m = mass
	if mass > 0 {
		body.m_inv = 1 / mass
	} else {
		body.m_inv = 0
	}
}

func (body *Body) Inertia() float64 {
	return body.i
}

func (body *Body) SetInertia(inertia float64) {
	body.i = inertia
	if inertia > 0 {
		body.i_inv = 1 / inertia
	} else {
		body.i_inv = 0
	}
}

// IsStatic reports whether no impulse can move the body.
func (body *Body) IsStatic() bool {
	return body.m_inv == 0 && body.i_inv == 0
}

func (body *Body) Angle() float64 {
	return body.a
}

func (body *Body) SetAngle(angle float64) {
	body.a = angle
	body.UpdateTransform()
}

func (body *Body) Rotation() Vector {
	return body.transform.Rotation()
}

func (body *Body) Position() Vector {
	return body.p
}

func (body *Body) SetPosition(position Vector) {
	body.p = position
	body.UpdateTransform()
}

func (body *Body) Velocity() Vector {
	return body.v
}

func (body *Body) SetVelocity(x, y float64) {
	body.v = Vector{x, y}
}

func (body *Body) SetVelocityVector(v Vector) {
	body.v = v
}

func (body *Body) AngularVelocity() float64 {
	return body.w
}

func (body *Body) SetAngularVelocity(angularVelocity float64) {
	body.w = angularVelocity
}

func (body *Body) Force() Vector {
	return body.f
}

func (body *Body) SetForce(force Vector) {
	body.f = force
}

func (body *Body) ApplyForce(force Vector) {
	body.f = body.f.Add(force)
}

// ApplyForceAtWorldPoint accumulates a force and the torque it produces about the center of mass.
func (body *Body) ApplyForceAtWorldPoint(force, point Vector) {
	body.f = body.f.Add(force)
	body.t += point.Sub(body.p).Cross(force)
}

func (body *Body) Torque() float64 {
	return body.t
}

func (body *Body) ApplyTorque(torque float64) {
	body.t += torque
}

func (body *Body) ApplyImpulseAtWorldPoint(impulse, point Vector) {
	body.v = body.v.Add(impulse.Mult(body.m_inv))
	body.w += body.i_inv * point.Sub(body.p).Cross(impulse)
}

func (body *Body) Transform() Transform {
	return body.transform
}

func (body *Body) UpdateTransform() {
	body.transform = NewTransformRigid(body.p, body.a)
}

func (body *Body) LocalToWorld(v Vector) Vector {
	return body.transform.Point(v)
}

func (body *Body) WorldToLocal(v Vector) Vector {
	return NewTransformRigidInverse(body.transform).Point(v)
}

func (body *Body) VelocityAtWorldPoint(point Vector) Vector {
	return body.v.Add(CrossScalar(body.w, point.Sub(body.p)))
}

func (body *Body) KineticEnergy() float64 {
	vsq := body.v.Dot(body.v)
	wsq := body.w * body.w
	return 0.5 * (vsq*body.m + wsq*body.i)
}

// UpdateVelocity integrates gravity and accumulated forces, then clears the accumulators.
func (body *Body) UpdateVelocity(gravity Vector, dt float64) {
	if body.IsStatic() {
		body.f = Vector{}
		body.t = 0
		return
	}
	if body.m_inv > 0 {
		body.v = body.v.Add(gravity.Add(body.f.Mult(body.m_inv)).Mult(dt))
	}
	body.w += body.t * body.i_inv * dt

	body.f = Vector{}
	body.t = 0
}

// UpdatePosition advances the pose. The transform is refreshed separately, after every island is done.
func (body *Body) UpdatePosition(dt float64) {
	if body.IsStatic() {
		return
	}
	body.p = body.p.Add(body.v.Add(body.v_bias).Mult(dt))
	body.a += (body.w + body.w_bias) * dt

	body.v_bias = Vector{}
	body.w_bias = 0
}

func (body *Body) velocity3() mgl64.Vec3 {
	return mgl64.Vec3{body.v.X, body.v.Y, body.w}
}

func (body *Body) biasVelocity3() mgl64.Vec3 {
	return mgl64.Vec3{body.v_bias.X, body.v_bias.Y, body.w_bias}
}

func (body *Body) invMass3() mgl64.Vec3 {
	return mgl64.Vec3{body.m_inv, body.m_inv, body.i_inv}
}

// applyImpulse3 adds a velocity change already scaled by the inverse mass.
func (body *Body) applyImpulse3(dv mgl64.Vec3) {
	if body.IsStatic() {
		return
	}
	body.v.X += dv[0]
	body.v.Y += dv[1]
	body.w += dv[2]
}

// applyBiasImpulse3 moves the body without adding momentum.
func (body *Body) applyBiasImpulse3(dv mgl64.Vec3) {
	if body.IsStatic() {
		return
	}
	body.v_bias.X += dv[0]
	body.v_bias.Y += dv[1]
	body.w_bias += dv[2]
}
