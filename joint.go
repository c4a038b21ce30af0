package phys2d

import "math"

// Joint groups the constraint rows that tie bodies together. BodyB is nil for motors.
type Joint interface {
	BodyA() *Body
	BodyB() *Body
	Constraints() []Constraint
}

type jointBase struct {
	a, b        *Body
	constraints []Constraint
}

func (j *jointBase) BodyA() *Body {
	return j.a
}

func (j *jointBase) BodyB() *Body {
	return j.b
}

func (j *jointBase) Constraints() []Constraint {
	return j.constraints
}

// Impulse sums the magnitude of the impulses applied by every row during the last step.
func (j *jointBase) Impulse() float64 {
	var sum float64
	for _, c := range j.constraints {
		sum += math.Abs(c.Cache(0))
	}
	return sum
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && math.Abs(f) < INFINITY
}

type DistanceJoint struct {
	jointBase
	constraint *DistanceConstraint
}

func NewDistanceJoint(a *Body, pivotA Vector, b *Body, pivotB Vector, distance float64) *DistanceJoint {
	joint := &DistanceJoint{constraint: NewDistanceConstraint(a, b, pivotA, pivotB, distance)}
	joint.jointBase = jointBase{a, b, []Constraint{joint.constraint}}
	return joint
}

func (joint *DistanceJoint) Distance() float64 {
	return joint.constraint.distance
}

// RevoluteJoint pins two anchors together and leaves rotation free.
type RevoluteJoint struct {
	jointBase
}

func NewRevoluteJoint(a *Body, pivotA Vector, b *Body, pivotB Vector) *RevoluteJoint {
	joint := &RevoluteJoint{}
	joint.jointBase = jointBase{a, b, []Constraint{
		NewLineConstraint(a, b, pivotA, pivotB, Vector{1, 0}, 0, unbounded),
		NewLineConstraint(a, b, pivotA, pivotB, Vector{0, 1}, 0, unbounded),
	}}
	return joint
}

// WeldJoint pins two anchors together and locks the relative angle.
type WeldJoint struct {
	jointBase
}

func NewWeldJoint(a *Body, pivotA Vector, b *Body, pivotB Vector, refAngle float64) *WeldJoint {
	joint := &WeldJoint{}
	joint.jointBase = jointBase{a, b, []Constraint{
		NewLineConstraint(a, b, pivotA, pivotB, Vector{1, 0}, 0, unbounded),
		NewLineConstraint(a, b, pivotA, pivotB, Vector{0, 1}, 0, unbounded),
		NewAngleConstraint(a, b, refAngle),
	}}
	return joint
}

// axisConstraints keeps anchor B on the axis through anchor A, with optional travel limits.
func axisConstraints(a *Body, pivotA Vector, b *Body, pivotB Vector, axis Vector, min, max float64) []Constraint {
	axis = axis.Normalize()
	constraints := []Constraint{
		NewLineConstraint(a, b, pivotA, pivotB, axis.Perp(), 0, unbounded),
	}
	if finite(min) {
		constraints = append(constraints, NewLineConstraint(a, b, pivotA, pivotB, axis, min, Clamping{0, INFINITY}))
	}
	if finite(max) {
		constraints = append(constraints, NewLineConstraint(a, b, pivotA, pivotB, axis.Neg(), -max, Clamping{0, INFINITY}))
	}
	return constraints
}

// PrismaticJoint lets B slide along an axis fixed in A without rotating relative to A.
type PrismaticJoint struct {
	jointBase
	pivotA, pivotB Vector
	axis           Vector
}

func NewPrismaticJoint(a *Body, pivotA Vector, b *Body, pivotB Vector, localAxis Vector, refAngle, minDistance, maxDistance float64) *PrismaticJoint {
	joint := &PrismaticJoint{pivotA: pivotA, pivotB: pivotB, axis: localAxis.Normalize()}
	constraints := axisConstraints(a, pivotA, b, pivotB, localAxis, minDistance, maxDistance)
	constraints = append(constraints, NewAngleConstraint(a, b, refAngle))
	joint.jointBase = jointBase{a, b, constraints}
	return joint
}

// Translation is the travel of anchor B along the axis.
func (joint *PrismaticJoint) Translation() float64 {
	_, _, d := anchors(joint.a, joint.b, joint.pivotA, joint.pivotB)
	return d.Dot(joint.a.transform.Vect(joint.axis))
}

// WheelJoint is a prismatic joint that leaves rotation free.
type WheelJoint struct {
	jointBase
}

func NewWheelJoint(a *Body, pivotA Vector, b *Body, pivotB Vector, localAxis Vector, minDistance, maxDistance float64) *WheelJoint {
	joint := &WheelJoint{}
	joint.jointBase = jointBase{a, b, axisConstraints(a, pivotA, b, pivotB, localAxis, minDistance, maxDistance)}
	return joint
}

type SpringJoint struct {
	jointBase
	spring *SpringConstraint
}

func NewSpringJoint(a *Body, pivotA Vector, b *Body, pivotB Vector, distance, stiffness, damping float64) *SpringJoint {
	joint := &SpringJoint{spring: NewSpringConstraint(a, b, pivotA, pivotB, distance, stiffness, damping)}
	joint.jointBase = jointBase{a, b, []Constraint{joint.spring}}
	return joint
}

func (joint *SpringJoint) RestLength() float64 {
	return joint.spring.distance
}

// AngularMotor drives a single body toward a target angular speed.
type AngularMotor struct {
	jointBase
	motor *AngularMotorConstraint
}

func NewAngularMotor(body *Body, speed, torque float64) *AngularMotor {
	joint := &AngularMotor{motor: NewAngularMotorConstraint(body, speed, torque)}
	joint.jointBase = jointBase{body, nil, []Constraint{joint.motor}}
	return joint
}

func (joint *AngularMotor) Speed() float64 {
	return joint.motor.speed
}

func (joint *AngularMotor) SetSpeed(speed float64) {
	joint.motor.speed = speed
}

func (joint *AngularMotor) Torque() float64 {
	return joint.motor.torque
}
