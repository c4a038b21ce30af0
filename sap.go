package phys2d

import "iter"

type sapEndpoint struct {
	value    float64
	collider *Collider
	isMin    bool
}

func (e sapEndpoint) less(other sapEndpoint) bool {
	if e.value != other.value {
		return e.value < other.value
	}
	// touching intervals overlap
	return e.isMin && !other.isMin
}

// SweepAndPrune projects collider boxes onto the x axis and sweeps the sorted
// endpoints. Endpoints persist between steps so the insertion sort stays close to linear.
type SweepAndPrune struct {
	colliders []*Collider
	endpoints []sapEndpoint
	active    []*Collider
}

func NewSweepAndPrune() *SweepAndPrune {
	return &SweepAndPrune{}
}

func (s *SweepAndPrune) Count() int {
	return len(s.colliders)
}

func (s *SweepAndPrune) Insert(c *Collider) {
	s.colliders = append(s.colliders, c)
	s.endpoints = append(s.endpoints,
		sapEndpoint{c.aabb.L, c, true},
		sapEndpoint{c.aabb.R, c, false},
	)
}

func (s *SweepAndPrune) Remove(c *Collider) {
	for i, other := range s.colliders {
		if other == c {
			s.colliders = append(s.colliders[:i], s.colliders[i+1:]...)
			break
		}
	}
	endpoints := s.endpoints[:0]
	for _, ep := range s.endpoints {
		if ep.collider != c {
			endpoints = append(endpoints, ep)
		}
	}
	s.endpoints = endpoints
}

func (s *SweepAndPrune) update() {
	for i := range s.endpoints {
		ep := &s.endpoints[i]
		if ep.isMin {
			ep.value = ep.collider.aabb.L
		} else {
			ep.value = ep.collider.aabb.R
		}
	}
	insertionSortEndpoints(s.endpoints)
}

func (s *SweepAndPrune) Pairs() iter.Seq[ContactCandidatePair] {
	return func(yield func(ContactCandidatePair) bool) {
		s.update()
		s.active = s.active[:0]

		for _, ep := range s.endpoints {
			c := ep.collider
			if !ep.isMin {
				for i, other := range s.active {
					if other == c {
						s.active[i] = s.active[len(s.active)-1]
						s.active = s.active[:len(s.active)-1]
						break
					}
				}
				continue
			}

			for _, other := range s.active {
				if c.aabb.B > other.aabb.T || other.aabb.B > c.aabb.T {
					continue
				}
				left, right := other, c
				if left.id > right.id {
					left, right = right, left
				}
				if !yield(ContactCandidatePair{candidateOf(left), candidateOf(right)}) {
					return
				}
			}
			s.active = append(s.active, c)
		}
	}
}

func (s *SweepAndPrune) Query(bb BB) iter.Seq[*Collider] {
	return func(yield func(*Collider) bool) {
		for _, c := range s.colliders {
			if c.aabb.Intersects(bb) && !yield(c) {
				return
			}
		}
	}
}

// insertionSortEndpoints is O(n) for nearly-sorted data due to temporal coherence.
func insertionSortEndpoints(eps []sapEndpoint) {
	for i := 1; i < len(eps); i++ {
		key := eps[i]
		j := i - 1
		for j >= 0 && key.less(eps[j]) {
			eps[j+1] = eps[j]
			j--
		}
		eps[j+1] = key
	}
}
