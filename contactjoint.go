package phys2d

// ContactJoint is the response to one contact point: a non penetration row and a
// friction row sharing one impulse record. Contact joints live for a single step
// and are pooled by the World.
type ContactJoint struct {
	jointBase
	info ContactInfo
	pair *Pair

	impulse  ImpulseCache
	normal   ContactConstraint
	friction FrictionConstraint
}

func (joint *ContactJoint) Init(info ContactInfo, pair *Pair, settings *Settings) *ContactJoint {
	a := info.Collider0.body
	b := info.Collider1.body
	n := info.Normal

	joint.info = info
	joint.pair = pair
	joint.impulse = ImpulseCache{}
	if pair != nil {
		joint.impulse = pair.WarmStart(info.LocalPoint0)
	}

	var bounce float64
	vrn := b.VelocityAtWorldPoint(info.Point1).Sub(a.VelocityAtWorldPoint(info.Point0)).Dot(n)
	if vrn < -settings.RestitutionThreshold {
		bounce = -settings.Restitution * vrn
	}

	joint.normal = ContactConstraint{
		constraintBase: constraintBase{a: a, b: b, cache: &joint.impulse, slot: 0},
		point0:         info.Point0,
		point1:         info.Point1,
		normal:         n,
		depth:          info.Depth,
		bounce:         bounce,
		slop:           settings.Slop,
		converged:      info.Converged,
	}
	joint.friction = FrictionConstraint{
		constraintBase: constraintBase{a: a, b: b, cache: &joint.impulse, slot: 1},
		point0:         info.Point0,
		point1:         info.Point1,
		tangent:        n.Perp(),
		friction:       settings.Friction,
	}

	joint.a = a
	joint.b = b
	joint.constraints = append(joint.constraints[:0], &joint.normal, &joint.friction)
	return joint
}

func (joint *ContactJoint) Info() ContactInfo {
	return joint.info
}

func (joint *ContactJoint) NormalImpulse() float64 {
	return joint.impulse[0]
}

func (joint *ContactJoint) FrictionImpulse() float64 {
	return joint.impulse[1]
}

// store hands the solved impulses back to the pair for warm starting the next step.
func (joint *ContactJoint) store() {
	if joint.pair != nil {
		joint.pair.Store(joint.info.LocalPoint0, joint.impulse)
	}
}
