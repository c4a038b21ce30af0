package phys2d

import "testing"

func TestPairID_Symmetric(t *testing.T) {
	ids := []uint32{0, 1, 2, 7, 1 << 20, ^uint32(0)}
	for _, a := range ids {
		for _, b := range ids {
			if MakePairID(a, b) != MakePairID(b, a) {
				t.Errorf("PairID(%d, %d) != PairID(%d, %d)", a, b, b, a)
			}
		}
	}
	if MakePairID(1, 2) == MakePairID(1, 3) {
		t.Error("Distinct pairs should not share an id")
	}
}

func TestPairsRegistry_GetIsSymmetric(t *testing.T) {
	r := NewPairsRegistry()
	a := testCollider(4, NewCircle(1, Vector{}), 1, Vector{})
	b := testCollider(2, NewCircle(1, Vector{}), 1, Vector{1, 0})

	p := r.Get(a, b)
	if r.Get(b, a) != p {
		t.Fatal("Expected the same pair for both orders")
	}
	if q, ok := r.Lookup(b, a); !ok || q != p {
		t.Fatal("Lookup should find the pair")
	}
	left, right := p.Colliders()
	if left != b || right != a {
		t.Error("Pair should be ordered by collider id")
	}
	if r.Count() != 1 {
		t.Error(r.Count())
	}
}

func TestPairsRegistry_Mapping(t *testing.T) {
	r := NewPairsRegistry()
	a := testCollider(0, NewCircle(1, Vector{}), 1, Vector{})
	b := testCollider(1, NewCircle(1, Vector{}), 1, Vector{3, 0})
	b.body.SetAngle(1)

	p := r.Get(a, b)
	p.refresh(r.BeginStep())
	m := p.Mapping()

	world := Vector{2, 1}
	if q := m.FromSecondPoint(m.ToSecondPoint(world)); !q.Near(world, 1e-9) {
		t.Errorf("Expected %v, got %v", world, q)
	}
	local := Vector{0.5, 0.5}
	if q := m.SecondToFirst().Point(local); !q.Near(m.ToFirstPoint(m.FromSecondPoint(local)), 1e-9) {
		t.Errorf("Second to first mapping disagrees: %v", q)
	}
	swapped := m.Swapped()
	if !swapped.FromFirstPoint(local).Near(m.FromSecondPoint(local), 1e-12) {
		t.Error("Swapped mapping should exchange sides")
	}
}

func TestPairsRegistry_WarmStartAndFilter(t *testing.T) {
	r := NewPairsRegistry()
	a := testCollider(0, NewCircle(1, Vector{}), 1, Vector{})
	b := testCollider(1, NewCircle(1, Vector{}), 1, Vector{2, 0})

	p := r.Get(a, b)
	p.refresh(r.BeginStep())
	p.Store(Vector{1, 0}, ImpulseCache{2, 0.5})

	p.refresh(r.BeginStep())
	if cache := p.WarmStart(Vector{1.05, 0}); cache != (ImpulseCache{2, 0.5}) {
		t.Errorf("Expected cached impulse, got %v", cache)
	}
	if cache := p.WarmStart(Vector{0, 1}); cache != (ImpulseCache{}) {
		t.Errorf("Far point should start cold, got %v", cache)
	}

	// nothing stored this step: the cache is gone next step
	r.BeginStep()
	if cache := p.WarmStart(Vector{1, 0}); cache != (ImpulseCache{}) {
		t.Errorf("Expected an empty cache, got %v", cache)
	}

	r.Filter(PAIR_PERSISTENCE)
	if r.Count() != 1 {
		t.Fatal("Pair should persist a few steps")
	}
	r.BeginStep()
	r.BeginStep()
	r.Filter(PAIR_PERSISTENCE)
	if r.Count() != 0 {
		t.Error("Stale pair should be filtered")
	}
}

func TestPairsRegistry_RemoveBody(t *testing.T) {
	r := NewPairsRegistry()
	a := testCollider(0, NewCircle(1, Vector{}), 1, Vector{})
	b := testCollider(1, NewCircle(1, Vector{}), 1, Vector{})
	c := testCollider(2, NewCircle(1, Vector{}), 1, Vector{})
	r.Get(a, b)
	r.Get(b, c)
	r.Get(a, c)

	r.RemoveBody(b.body)
	if r.Count() != 1 {
		t.Errorf("Expected 1 pair left, got %d", r.Count())
	}
	r.RemoveCollider(c)
	if r.Count() != 0 {
		t.Errorf("Expected no pairs left, got %d", r.Count())
	}
}
