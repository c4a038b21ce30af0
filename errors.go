package phys2d

import "github.com/pkg/errors"

var (
	ErrBodyNotInWorld  = errors.New("phys2d: body is not part of this world")
	ErrSameBody        = errors.New("phys2d: joint connects a body to itself")
	ErrInvalidClamping = errors.New("phys2d: clamping minimum exceeds maximum")
	ErrInvalidJoint    = errors.New("phys2d: invalid joint parameters")
	ErrInvalidSettings = errors.New("phys2d: invalid settings")
	ErrNilShape        = errors.New("phys2d: shape is nil")
	ErrJointNotInWorld = errors.New("phys2d: joint is not part of this world")
)
