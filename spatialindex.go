package phys2d

import "iter"

// BroadPhase finds colliders whose bounding boxes overlap. Implementations read
// the boxes cached on the colliders, so callers refresh them first.
type BroadPhase interface {
	Insert(c *Collider)
	Remove(c *Collider)
	Count() int
	// Pairs yields every overlapping pair with the lower collider id first.
	Pairs() iter.Seq[ContactCandidatePair]
	// Query yields every collider whose box overlaps bb.
	Query(bb BB) iter.Seq[*Collider]
}
