package phys2d

import "math"

const INFINITY = math.MaxFloat64

const MAGIC_EPSILON = 1e-5

// Narrow phase tuning.
const (
	GJK_MARGIN          = 1e-2
	GJK_REL_ERROR       = 1e-6
	GJK_EPSILON         = 1e-4
	MAX_GJK_ITERATIONS  = 25
	MAX_EPA_ITERATIONS  = 25
	WARN_EPA_ITERATIONS = 20
)

// Solver tuning.
const (
	CONTACT_SLOP          = 5e-3
	RESTITUTION_THRESHOLD = 1.0
	// Pairs that have not been a broad phase candidate for this many steps are dropped.
	PAIR_PERSISTENCE = 3
)

// ALL_CATEGORIES is the default collider mask.
const ALL_CATEGORIES = ^uint32(0)

// Clamping bounds the accumulated impulse of a constraint for one step.
type Clamping struct {
	Min, Max float64
}

var unbounded = Clamping{-INFINITY, INFINITY}

func (c Clamping) Valid() bool {
	return c.Min <= c.Max
}

// ImpulseCache holds the accumulated impulses of a constraint. Slot 0 belongs to the
// constraint itself, slot 1 to a partner that shares the record.
type ImpulseCache [2]float64
