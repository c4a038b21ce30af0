package phys2d

import (
	"math"
	"testing"
)

// spacedTriangles lays count unit triangles along x, gap apart.
func spacedTriangles(count int, gap float64) [][3]Vector {
	var triangles [][3]Vector
	for i := 0; i < count; i++ {
		x := float64(i) * gap
		triangles = append(triangles, [3]Vector{{x, 0}, {x + 1, 0}, {x, 1}})
	}
	return triangles
}

func TestOBB_Overlaps(t *testing.T) {
	a := OBB{Vector{}, Vector{1, 0}, Vector{1, 1}}
	b := OBB{Vector{2.3, 0}, ForAngle(math.Pi / 4), Vector{1, 1}}
	if !a.Overlaps(b) {
		t.Error("Rotated box corner should reach the first box")
	}
	b.Center = Vector{2.5, 0}
	if a.Overlaps(b) {
		t.Error("Boxes should be apart")
	}
	if !a.OverlapsBB(BB{0.5, 0.5, 3, 3}) {
		t.Error("Box should overlap the aligned box")
	}
}

func TestOBB_FitContainsPoints(t *testing.T) {
	points := []Vector{{0, 0}, {4, 4}, {5, 4}, {1, 0}}
	box := obbForPoints(points)
	perp := box.Axis.Perp()
	for _, p := range points {
		d := p.Sub(box.Center)
		if math.Abs(d.Dot(box.Axis)) > box.Extents.X+1e-9 || math.Abs(d.Dot(perp)) > box.Extents.Y+1e-9 {
			t.Errorf("Point %v is outside %v", p, box)
		}
	}
	if box.Area() >= 5*4 {
		t.Errorf("Oriented fit should beat the aligned box, got area %v", box.Area())
	}
}

func TestOBBTree_QueryOBB(t *testing.T) {
	mesh := NewMesh(spacedTriangles(8, 10))
	tree := mesh.Tree()
	if tree.Count() != 8 {
		t.Fatal(tree.Count())
	}

	var leaves int
	var walk func(node *OBBNode)
	walk = func(node *OBBNode) {
		if node.IsLeaf() {
			leaves++
			return
		}
		if node.a.parent != node || node.b.parent != node {
			t.Error("Broken parent link")
		}
		walk(node.a)
		walk(node.b)
	}
	walk(tree.Root())
	if leaves != 8 {
		t.Errorf("Expected 8 leaves, got %d", leaves)
	}

	hits := tree.QueryOBB(nil, OBBFromBB(NewBBForExtents(Vector{30.3, 0.3}, 0.1, 0.1)))
	if len(hits) != 1 || hits[0].Triangle().Vertices()[0].X != 30 {
		t.Errorf("Expected the fourth triangle, got %d hits", len(hits))
	}
	if hits := tree.QueryOBB(nil, OBBFromBB(NewBBForExtents(Vector{35, 0.5}, 1, 1))); len(hits) != 0 {
		t.Errorf("Expected no hits between triangles, got %d", len(hits))
	}
	if hits := tree.QueryOBB(nil, OBBFromBB(NewBBForExtents(Vector{35, 0.5}, 6, 1))); len(hits) != 2 {
		t.Errorf("Expected 2 hits, got %d", len(hits))
	}
}

func TestOBBTree_QueryTree(t *testing.T) {
	a := NewMesh(spacedTriangles(4, 10)).Tree()
	b := NewMesh(spacedTriangles(4, 10)).Tree()

	pairs := a.QueryTree(nil, b, NewTransformTranslate(Vector{10, 0}))
	if len(pairs) != 3 {
		t.Fatalf("Expected 3 overlapping pairs, got %d", len(pairs))
	}
	for _, p := range pairs {
		if p[0].Triangle().Vertices()[0].X != p[1].Triangle().Vertices()[0].X+10 {
			t.Error("Pair should match shifted triangles")
		}
	}
}

func testCollider(id uint32, shape Shape, mass float64, position Vector) *Collider {
	body := newBody(id, mass, mass, position, 0)
	c := &Collider{id: id, body: body, shape: shape, mask: ALL_CATEGORIES}
	c.UpdateAABB()
	return c
}

func countRefined(mid MidPhase, a, b *Collider) int {
	pairs := func(yield func(ContactCandidatePair) bool) {
		yield(ContactCandidatePair{candidateOf(a), candidateOf(b)})
	}
	count := 0
	for pair := range mid.Refine(pairs) {
		for _, side := range pair {
			if side.Shape.Type() == SHAPE_MESH {
				return -1
			}
		}
		count++
	}
	return count
}

func TestMidPhase_MeshPruning(t *testing.T) {
	var stats Stats
	mid := NewOBBMidPhase(&stats)

	ground := testCollider(0, NewMesh(spacedTriangles(4, 10)), 0, Vector{})
	ball := testCollider(1, NewCircle(0.5, Vector{}), 1, Vector{20.3, 0.3})
	if n := countRefined(mid, ground, ball); n != 1 {
		t.Errorf("Expected 1 refined pair, got %d", n)
	}
	if n := countRefined(mid, ball, ground); n != 1 {
		t.Errorf("Expected 1 refined pair with the mesh on the right, got %d", n)
	}

	wide := testCollider(2, NewBox(14, 1), 1, Vector{15, 0.5})
	if n := countRefined(mid, ground, wide); n != 2 {
		t.Errorf("Expected 2 refined pairs, got %d", n)
	}

	box := testCollider(3, NewBox(1, 1), 1, Vector{100, 100})
	if n := countRefined(mid, ball, box); n != 1 {
		t.Errorf("Convex pairs should pass through, got %d", n)
	}
	if stats.Candidates != 4 || stats.Refined != 5 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestMidPhase_MeshMesh(t *testing.T) {
	mid := NewOBBMidPhase(nil)
	a := testCollider(0, NewMesh(spacedTriangles(4, 10)), 0, Vector{})
	b := testCollider(1, NewMesh(spacedTriangles(4, 10)), 1, Vector{10.2, 0})
	if n := countRefined(mid, a, b); n != 3 {
		t.Errorf("Expected 3 refined pairs, got %d", n)
	}
}
