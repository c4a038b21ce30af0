package phys2d

// PairID identifies an unordered pair of colliders.
type PairID uint64

func MakePairID(a, b uint32) PairID {
	if a > b {
		a, b = b, a
	}
	return PairID(uint64(a)<<32 | uint64(b))
}

// SpacesMapping caches the local and world transforms of both sides of a pair
// so support queries don't recompute inverses every GJK iteration.
type SpacesMapping struct {
	first, firstInv   Transform
	second, secondInv Transform
}

func (m *SpacesMapping) Update(first, second Transform) {
	m.first = first
	m.firstInv = NewTransformRigidInverse(first)
	m.second = second
	m.secondInv = NewTransformRigidInverse(second)
}

// Swapped exchanges the roles of the two sides.
func (m SpacesMapping) Swapped() SpacesMapping {
	return SpacesMapping{m.second, m.secondInv, m.first, m.firstInv}
}

// ToFirstVector maps a world vector into the first local space.
func (m *SpacesMapping) ToFirstVector(v Vector) Vector {
	return m.firstInv.Vect(v)
}

func (m *SpacesMapping) ToSecondVector(v Vector) Vector {
	return m.secondInv.Vect(v)
}

func (m *SpacesMapping) ToFirstPoint(p Vector) Vector {
	return m.firstInv.Point(p)
}

func (m *SpacesMapping) ToSecondPoint(p Vector) Vector {
	return m.secondInv.Point(p)
}

// FromFirstPoint maps a point of the first local space into world space.
func (m *SpacesMapping) FromFirstPoint(p Vector) Vector {
	return m.first.Point(p)
}

func (m *SpacesMapping) FromSecondPoint(p Vector) Vector {
	return m.second.Point(p)
}

// SecondToFirst maps the second local space into the first.
func (m *SpacesMapping) SecondToFirst() Transform {
	return m.firstInv.Mult(m.second)
}

type cachedImpulse struct {
	local   Vector
	impulse ImpulseCache
}

// Warm starting matches contact points whose first local points are this close.
const warmStartDistance = 0.1

// Pair is the persistent record for two colliders that the broad phase has reported.
type Pair struct {
	id          PairID
	left, right *Collider
	mapping     SpacesMapping

	// step of the last mapping refresh
	stamp uint64

	prev []cachedImpulse
	curr []cachedImpulse
}

func (p *Pair) ID() PairID {
	return p.id
}

// Colliders returns the pair ordered by collider id.
func (p *Pair) Colliders() (left, right *Collider) {
	return p.left, p.right
}

func (p *Pair) Mapping() *SpacesMapping {
	return &p.mapping
}

// refresh updates the mapping once per step.
func (p *Pair) refresh(stamp uint64) {
	if p.stamp == stamp {
		return
	}
	p.stamp = stamp
	p.mapping.Update(p.left.body.transform, p.right.body.transform)
}

// WarmStart returns the impulses stored last step for the closest matching point.
func (p *Pair) WarmStart(local Vector) ImpulseCache {
	best := -1
	bestDist := warmStartDistance * warmStartDistance
	for i, c := range p.prev {
		if d := c.local.DistanceSq(local); d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return ImpulseCache{}
	}
	return p.prev[best].impulse
}

// Store records a solved contact for the next step.
func (p *Pair) Store(local Vector, impulse ImpulseCache) {
	p.curr = append(p.curr, cachedImpulse{local, impulse})
}

func (p *Pair) cycle() {
	p.prev, p.curr = p.curr, p.prev[:0]
}

// PairsRegistry owns every Pair, keyed so that (a, b) and (b, a) share one entry.
type PairsRegistry struct {
	pairs map[PairID]*Pair
	stamp uint64
}

func NewPairsRegistry() *PairsRegistry {
	return &PairsRegistry{pairs: map[PairID]*Pair{}}
}

func (r *PairsRegistry) Count() int {
	return len(r.pairs)
}

// BeginStep advances the registry stamp and rotates the impulse caches. Pairs
// that did not touch during the last step start this one with no cache.
func (r *PairsRegistry) BeginStep() uint64 {
	r.stamp++
	for _, p := range r.pairs {
		p.cycle()
	}
	return r.stamp
}

func (r *PairsRegistry) Stamp() uint64 {
	return r.stamp
}

// Get returns the pair for two colliders, creating it on first use.
func (r *PairsRegistry) Get(a, b *Collider) *Pair {
	id := MakePairID(a.id, b.id)
	if p, ok := r.pairs[id]; ok {
		return p
	}
	if a.id > b.id {
		a, b = b, a
	}
	p := &Pair{id: id, left: a, right: b}
	r.pairs[id] = p
	return p
}

func (r *PairsRegistry) Lookup(a, b *Collider) (*Pair, bool) {
	p, ok := r.pairs[MakePairID(a.id, b.id)]
	return p, ok
}

// RemoveCollider drops every pair that references c.
func (r *PairsRegistry) RemoveCollider(c *Collider) {
	for id, p := range r.pairs {
		if p.left == c || p.right == c {
			delete(r.pairs, id)
		}
	}
}

func (r *PairsRegistry) RemoveBody(body *Body) {
	for id, p := range r.pairs {
		if p.left.body == body || p.right.body == body {
			delete(r.pairs, id)
		}
	}
}

// Filter throws away pairs that have not been refreshed for persistence steps.
func (r *PairsRegistry) Filter(persistence uint64) {
	for id, p := range r.pairs {
		if r.stamp-p.stamp >= persistence {
			delete(r.pairs, id)
		}
	}
}
