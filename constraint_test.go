package phys2d

import (
	"math"
	"testing"
)

func TestContactConstraint_Bias(t *testing.T) {
	c := ContactConstraint{depth: 0.105, slop: 0.005, converged: true}
	full := c.Bias(0.1, 0.5)
	if math.Abs(full-0.5) > 1e-12 {
		t.Errorf("Expected bias 0.5, got %v", full)
	}
	if c.PushFactor(0.1, 0.5) != 0 {
		t.Error("Penetration must not push through the real velocity")
	}

	c.converged = false
	if half := c.Bias(0.1, 0.5); math.Abs(half-full/2) > 1e-12 {
		t.Errorf("Expected the bias halved to %v, got %v", full/2, half)
	}

	c.depth = 0.004
	if c.Bias(0.1, 0.5) != 0 {
		t.Error("Penetration within the slop needs no correction")
	}

	c.depth = -0.02
	if c.Bias(0.1, 0.5) != 0 {
		t.Error("Speculative contacts have no bias")
	}
	if p := c.PushFactor(0.1, 0.5); math.Abs(p+0.2) > 1e-12 {
		t.Errorf("Speculative contact should allow closing the gap, got %v", p)
	}
}

func TestFrictionConstraint_ClampFollowsNormal(t *testing.T) {
	var cache ImpulseCache
	normal := ContactConstraint{constraintBase: constraintBase{cache: &cache, slot: 0}}
	friction := FrictionConstraint{constraintBase: constraintBase{cache: &cache, slot: 1}, friction: 0.5}

	normal.SetCache(0, 4)
	if clamp := friction.Clamping(); clamp.Min != -2 || clamp.Max != 2 {
		t.Errorf("Expected [-2, 2], got %+v", clamp)
	}
	friction.SetCache(0, 1.5)
	if cache != (ImpulseCache{4, 1.5}) {
		t.Errorf("Rows should share one record, got %v", cache)
	}
}
