package phys2d

import (
	"math"

	"github.com/pkg/errors"
)

func (w *World) checkPair(a, b *Body) error {
	if !w.contains(a) || !w.contains(b) {
		return errors.WithStack(ErrBodyNotInWorld)
	}
	if a == b {
		return errors.WithStack(ErrSameBody)
	}
	return nil
}

func (w *World) addJoint(joint Joint) {
	assert(w.locked == 0, "World is locked")
	w.jointIndex[joint] = len(w.joints)
	w.joints = append(w.joints, joint)
	w.slots[joint.BodyA().handle.Index].joints[joint] = struct{}{}
	if b := joint.BodyB(); b != nil {
		w.slots[b.handle.Index].joints[joint] = struct{}{}
	}
}

func (w *World) removeJoint(joint Joint) {
	index := w.jointIndex[joint]
	last := len(w.joints) - 1
	moved := w.joints[last]
	w.joints[index] = moved
	w.jointIndex[moved] = index
	w.joints[last] = nil
	w.joints = w.joints[:last]
	delete(w.jointIndex, joint)

	for _, body := range [2]*Body{joint.BodyA(), joint.BodyB()} {
		if w.contains(body) {
			delete(w.slots[body.handle.Index].joints, joint)
		}
	}
}

// RemoveJoint detaches a joint or motor. Bodies it connected collide again.
func (w *World) RemoveJoint(joint Joint) error {
	assert(w.locked == 0, "World is locked")
	if _, ok := w.jointIndex[joint]; !ok {
		return errors.WithStack(ErrJointNotInWorld)
	}
	w.removeJoint(joint)
	return nil
}

func (w *World) RemoveMotor(motor *AngularMotor) error {
	return w.RemoveJoint(motor)
}

// AddDistanceJoint keeps the anchors at a fixed distance. A negative distance
// uses the current distance between the anchors.
func (w *World) AddDistanceJoint(a *Body, pivotA Vector, b *Body, pivotB Vector, distance float64) (*DistanceJoint, error) {
	if err := w.checkPair(a, b); err != nil {
		return nil, err
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, errors.Wrapf(ErrInvalidJoint, "distance %v", distance)
	}
	if distance < 0 {
		distance = a.LocalToWorld(pivotA).Distance(b.LocalToWorld(pivotB))
	}
	joint := NewDistanceJoint(a, pivotA, b, pivotB, distance)
	w.addJoint(joint)
	return joint, nil
}

func (w *World) AddRevoluteJoint(a *Body, pivotA Vector, b *Body, pivotB Vector) (*RevoluteJoint, error) {
	if err := w.checkPair(a, b); err != nil {
		return nil, err
	}
	joint := NewRevoluteJoint(a, pivotA, b, pivotB)
	w.addJoint(joint)
	return joint, nil
}

// AddWeldJoint locks the bodies at their current relative angle.
func (w *World) AddWeldJoint(a *Body, pivotA Vector, b *Body, pivotB Vector) (*WeldJoint, error) {
	if err := w.checkPair(a, b); err != nil {
		return nil, err
	}
	joint := NewWeldJoint(a, pivotA, b, pivotB, b.a-a.a)
	w.addJoint(joint)
	return joint, nil
}

func checkAxis(axis Vector, minDistance, maxDistance float64) error {
	if axis.LengthSq() == 0 || math.IsNaN(axis.X) || math.IsNaN(axis.Y) {
		return errors.Wrapf(ErrInvalidJoint, "axis %v", axis)
	}
	if math.IsNaN(minDistance) || math.IsNaN(maxDistance) {
		return errors.Wrapf(ErrInvalidJoint, "limits [%v, %v]", minDistance, maxDistance)
	}
	if minDistance > maxDistance {
		return errors.Wrapf(ErrInvalidClamping, "limits [%v, %v]", minDistance, maxDistance)
	}
	return nil
}

// AddPrismaticJoint lets b slide along an axis given in a's local space. Pass
// -INFINITY and INFINITY for an unlimited slide.
func (w *World) AddPrismaticJoint(a *Body, pivotA Vector, b *Body, pivotB Vector, axis Vector, minDistance, maxDistance float64) (*PrismaticJoint, error) {
	if err := w.checkPair(a, b); err != nil {
		return nil, err
	}
	if err := checkAxis(axis, minDistance, maxDistance); err != nil {
		return nil, err
	}
	joint := NewPrismaticJoint(a, pivotA, b, pivotB, axis, b.a-a.a, minDistance, maxDistance)
	w.addJoint(joint)
	return joint, nil
}

func (w *World) AddWheelJoint(a *Body, pivotA Vector, b *Body, pivotB Vector, axis Vector, minDistance, maxDistance float64) (*WheelJoint, error) {
	if err := w.checkPair(a, b); err != nil {
		return nil, err
	}
	if err := checkAxis(axis, minDistance, maxDistance); err != nil {
		return nil, err
	}
	joint := NewWheelJoint(a, pivotA, b, pivotB, axis, minDistance, maxDistance)
	w.addJoint(joint)
	return joint, nil
}

func (w *World) AddSpring(a *Body, pivotA Vector, b *Body, pivotB Vector, distance, stiffness, damping float64) (*SpringJoint, error) {
	if err := w.checkPair(a, b); err != nil {
		return nil, err
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) || !(stiffness >= 0) || !(damping >= 0) {
		return nil, errors.Wrapf(ErrInvalidJoint, "spring distance %v stiffness %v damping %v", distance, stiffness, damping)
	}
	if distance < 0 {
		distance = a.LocalToWorld(pivotA).Distance(b.LocalToWorld(pivotB))
	}
	joint := NewSpringJoint(a, pivotA, b, pivotB, distance, stiffness, damping)
	w.addJoint(joint)
	return joint, nil
}

// AddMotor drives body toward an angular speed using at most torque.
func (w *World) AddMotor(body *Body, speed, torque float64) (*AngularMotor, error) {
	if !w.contains(body) {
		return nil, errors.WithStack(ErrBodyNotInWorld)
	}
	if !(torque >= 0) || math.IsNaN(speed) {
		return nil, errors.Wrapf(ErrInvalidJoint, "motor speed %v torque %v", speed, torque)
	}
	motor := NewAngularMotor(body, speed, torque)
	w.addJoint(motor)
	return motor, nil
}
