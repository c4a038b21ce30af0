package phys2d

import "testing"

func testBodies(n int) []*Body {
	bodies := make([]*Body, n)
	for i := range bodies {
		bodies[i] = newBody(uint32(i), 1, 1, Vector{float64(i), 0}, 0)
		bodies[i].index = i
	}
	return bodies
}

func TestIslands_Chain(t *testing.T) {
	bodies := testBodies(6)
	var joints []Joint
	for i := 1; i < len(bodies); i++ {
		joints = append(joints, NewDistanceJoint(bodies[i-1], Vector{}, bodies[i], Vector{}, 1))
	}

	var g IslandsGenerator
	islands := g.Generate(bodies, joints)
	if len(islands) != 1 {
		t.Fatalf("Expected 1 island, got %d", len(islands))
	}
	if len(islands[0].Bodies) != 6 || len(islands[0].Joints) != 5 {
		t.Errorf("Expected every body and joint in one island, got %d bodies and %d joints", len(islands[0].Bodies), len(islands[0].Joints))
	}
}

func TestIslands_Singletons(t *testing.T) {
	bodies := testBodies(5)

	var g IslandsGenerator
	islands := g.Generate(bodies, nil)
	if len(islands) != 5 {
		t.Fatalf("Expected 5 islands, got %d", len(islands))
	}
	for i, island := range islands {
		if len(island.Bodies) != 1 || island.Bodies[0] != bodies[i] || g.IslandOf(i) != i {
			t.Errorf("Island %d should hold only body %d", i, i)
		}
	}
}

func TestIslands_StaticBodiesDoNotConnect(t *testing.T) {
	bodies := testBodies(3)
	ground := newBody(3, 0, 0, Vector{}, 0)
	ground.index = 3
	bodies = append(bodies, ground)

	joints := []Joint{
		NewRevoluteJoint(bodies[0], Vector{}, ground, Vector{}),
		NewRevoluteJoint(ground, Vector{}, bodies[1], Vector{}),
		NewAngularMotor(bodies[2], 1, 1),
	}

	var g IslandsGenerator
	islands := g.Generate(bodies, joints)
	if len(islands) != 4 {
		t.Fatalf("Expected 4 islands, got %d", len(islands))
	}
	if g.IslandOf(0) == g.IslandOf(1) {
		t.Error("Bodies joined only through a static body should not share an island")
	}
	for i := 0; i < 3; i++ {
		if n := len(islands[g.IslandOf(i)].Joints); n != 1 {
			t.Errorf("Body %d island should own its joint, got %d", i, n)
		}
	}
	if n := len(islands[g.IslandOf(3)].Joints); n != 0 {
		t.Errorf("Static island should own no joints, got %d", n)
	}

	// reuse keeps results independent of the previous call
	islands = g.Generate(bodies[:2], nil)
	if len(islands) != 2 || len(islands[0].Joints) != 0 {
		t.Error("Generate should reset islands")
	}
}
