package phys2d

import (
	"math/rand/v2"
	"testing"
)

func pairSet(broad BroadPhase) map[[2]uint32]bool {
	set := map[[2]uint32]bool{}
	for pair := range broad.Pairs() {
		set[[2]uint32{pair[0].Collider.id, pair[1].Collider.id}] = true
	}
	return set
}

func scatterColliders(count int) []*Collider {
	rng := rand.New(rand.NewPCG(1, 2))
	colliders := make([]*Collider, count)
	for i := range colliders {
		position := Vector{rng.Float64() * 20, rng.Float64() * 20}
		colliders[i] = testCollider(uint32(i+1), NewBox(1+rng.Float64()*2, 1+rng.Float64()*2), 1, position)
	}
	return colliders
}

func TestBBTree_MatchesSweepAndPrune(t *testing.T) {
	colliders := scatterColliders(60)
	tree := NewBBTree()
	sap := NewSweepAndPrune()
	for _, c := range colliders {
		tree.Insert(c)
		sap.Insert(c)
	}
	if tree.Count() != 60 {
		t.Fatal("Expected 60 leaves, got", tree.Count())
	}

	expected := pairSet(sap)
	if len(expected) == 0 {
		t.Fatal("Expected some overlap among scattered boxes")
	}
	got := pairSet(tree)
	if len(got) != len(expected) {
		t.Fatalf("Expected %d pairs, got %d", len(expected), len(got))
	}
	for pair := range expected {
		if !got[pair] {
			t.Error("Missing pair", pair)
		}
	}
}

func TestBBTree_PairsOrderedByID(t *testing.T) {
	tree := NewBBTree()
	for _, c := range scatterColliders(30) {
		tree.Insert(c)
	}
	for pair := range tree.Pairs() {
		if pair[0].Collider.id >= pair[1].Collider.id {
			t.Error("Pair not ordered", pair[0].Collider.id, pair[1].Collider.id)
		}
	}
}

func TestBBTree_Reindex(t *testing.T) {
	a := testCollider(1, NewBox(1, 1), 1, Vector{0, 0})
	b := testCollider(2, NewBox(1, 1), 1, Vector{10, 0})
	tree := NewBBTree()
	tree.Insert(a)
	tree.Insert(b)

	if len(pairSet(tree)) != 0 {
		t.Fatal("Expected no pairs")
	}

	b.body.SetPosition(Vector{0.5, 0})
	b.UpdateAABB()
	if len(pairSet(tree)) != 1 {
		t.Fatal("Expected the moved box to be reinserted")
	}
	if !tree.leaves[b].bb.Contains(b.aabb) {
		t.Error("Leaf box should contain the collider box after reindexing")
	}
}

func TestBBTree_VelocityFattensLeaves(t *testing.T) {
	c := testCollider(1, NewBox(1, 1), 1, Vector{0, 0})
	c.body.SetVelocity(10, 0)
	tree := NewBBTree()
	tree.Insert(c)

	bb := tree.leaves[c].bb
	if bb.R < c.aabb.R+0.99 || bb.L != c.aabb.L {
		t.Error("Expected the leaf to extend along the velocity", bb)
	}

	// moving within the fat box keeps the leaf
	leaf := tree.leaves[c]
	c.body.SetPosition(Vector{0.5, 0})
	c.UpdateAABB()
	for range tree.Pairs() {
	}
	if tree.leaves[c].bb != bb || tree.leaves[c] != leaf {
		t.Error("Leaf should not move while the collider stays inside its fat box")
	}
}

func TestBBTree_RemoveAndQuery(t *testing.T) {
	colliders := scatterColliders(20)
	tree := NewBBTree()
	for _, c := range colliders {
		tree.Insert(c)
	}
	for _, c := range colliders[:10] {
		tree.Remove(c)
	}
	tree.Remove(colliders[0])
	if tree.Count() != 10 {
		t.Fatal("Expected 10 colliders, got", tree.Count())
	}

	everything := BB{-100, -100, 100, 100}
	found := map[*Collider]bool{}
	for c := range tree.Query(everything) {
		found[c] = true
	}
	if len(found) != 10 {
		t.Fatal("Expected 10 query hits, got", len(found))
	}
	for _, c := range colliders[:10] {
		if found[c] {
			t.Error("Removed collider was returned", c.id)
		}
	}

	target := colliders[15]
	hit := false
	for c := range tree.Query(target.aabb) {
		hit = hit || c == target
	}
	if !hit {
		t.Error("Query should find the collider under its own box")
	}

	for _, c := range colliders[10:] {
		tree.Remove(c)
	}
	if tree.root != nil || tree.Count() != 0 {
		t.Error("Expected an empty tree")
	}
}

func TestWorld_BBTreeBroadPhase(t *testing.T) {
	settings := DefaultSettings()
	settings.BroadPhase = BROAD_PHASE_BBTREE
	world := newTestWorld(t, settings)
	if _, ok := world.detector.BroadPhase().(*BBTree); !ok {
		t.Fatal("Expected a BBTree broad phase")
	}
	addFloor(world)
	ball := addBall(world, Vector{0, 5})

	for i := 0; i < 600; i++ {
		world.Simulate(testDt)
	}
	if y := ball.Position().Y; y < 0.98 || y > 1.02 {
		t.Error("Ball should rest on the floor, got y =", y)
	}
}
