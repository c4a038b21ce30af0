package phys2d

import "iter"

// Stats counts the work done during the last step.
type Stats struct {
	Candidates    int
	Refined       int
	Contacts      int
	GJKCalls      int
	GJKIterations int
	EPACalls      int
	EPAIterations int
	NonConverged  int
	Islands       int
}

// PairFilter rejects candidate pairs before any geometry is tested.
type PairFilter func(a, b *Collider) bool

// CollisionDetector chains the broad, mid and narrow phases.
type CollisionDetector struct {
	broadPhase  BroadPhase
	midPhase    MidPhase
	narrowPhase NarrowPhase
	registry    *PairsRegistry

	colliders []*Collider
	filter    PairFilter
	stats     *Stats
}

func NewCollisionDetector(broadPhase BroadPhase, registry *PairsRegistry, stats *Stats, filter PairFilter) *CollisionDetector {
	return &CollisionDetector{
		broadPhase:  broadPhase,
		midPhase:    NewOBBMidPhase(stats),
		narrowPhase: NewGJKEPANarrowPhase(registry, stats),
		registry:    registry,
		filter:      filter,
		stats:       stats,
	}
}

func (d *CollisionDetector) Registry() *PairsRegistry {
	return d.registry
}

func (d *CollisionDetector) BroadPhase() BroadPhase {
	return d.broadPhase
}

func (d *CollisionDetector) RegisterCollider(c *Collider) {
	c.UpdateAABB()
	d.colliders = append(d.colliders, c)
	d.broadPhase.Insert(c)
}

func (d *CollisionDetector) UnregisterCollider(c *Collider) {
	for i, other := range d.colliders {
		if other == c {
			d.colliders = append(d.colliders[:i], d.colliders[i+1:]...)
			break
		}
	}
	d.broadPhase.Remove(c)
	d.registry.RemoveCollider(c)
}

// DetectCollisions refreshes every collider box and yields the contacts of this step.
func (d *CollisionDetector) DetectCollisions() iter.Seq[ContactInfo] {
	for _, c := range d.colliders {
		c.UpdateAABB()
	}
	candidates := func(yield func(ContactCandidatePair) bool) {
		for pair := range d.broadPhase.Pairs() {
			if !d.accept(pair[0].Collider, pair[1].Collider) {
				continue
			}
			if !yield(pair) {
				return
			}
		}
	}
	return d.narrowPhase.DetectContacts(d.midPhase.Refine(candidates))
}

func (d *CollisionDetector) accept(a, b *Collider) bool {
	if a.mask&b.mask == 0 {
		return false
	}
	if a.body == b.body {
		return false
	}
	if a.body.IsStatic() && b.body.IsStatic() {
		return false
	}
	return d.filter == nil || d.filter(a, b)
}
