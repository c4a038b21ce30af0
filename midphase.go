package phys2d

import "iter"

// MidPhase refines broad phase candidates into convex sub-shape pairs.
type MidPhase interface {
	Refine(pairs iter.Seq[ContactCandidatePair]) iter.Seq[ContactCandidatePair]
}

// OBBMidPhase replaces mesh candidates with the mesh triangles whose OBBs overlap
// the other side. Convex pairs pass through untouched.
type OBBMidPhase struct {
	nodes     []*OBBNode
	nodePairs [][2]*OBBNode
	stats     *Stats
}

func NewOBBMidPhase(stats *Stats) *OBBMidPhase {
	return &OBBMidPhase{stats: stats}
}

func (m *OBBMidPhase) Refine(pairs iter.Seq[ContactCandidatePair]) iter.Seq[ContactCandidatePair] {
	return func(yield func(ContactCandidatePair) bool) {
		for pair := range pairs {
			if m.stats != nil {
				m.stats.Candidates++
			}
			left, right := pair[0], pair[1]
			leftMesh, leftOk := left.Shape.(*Mesh)
			rightMesh, rightOk := right.Shape.(*Mesh)

			switch {
			case !leftOk && !rightOk:
				if !m.emit(yield, pair) {
					return
				}
			case leftOk && rightOk:
				lt := left.Collider.Transform()
				rt := right.Collider.Transform()
				rightToLeft := NewTransformRigidInverse(lt).Mult(rt)
				m.nodePairs = leftMesh.tree.QueryTree(m.nodePairs[:0], rightMesh.tree, rightToLeft)
				for _, np := range m.nodePairs {
					refined := ContactCandidatePair{
						triangleCandidate(left.Collider, np[0].triangle, lt),
						triangleCandidate(right.Collider, np[1].triangle, rt),
					}
					if !m.emit(yield, refined) {
						return
					}
				}
			case leftOk:
				if !m.refineMesh(yield, left, leftMesh, right, false) {
					return
				}
			default:
				if !m.refineMesh(yield, right, rightMesh, left, true) {
					return
				}
			}
		}
	}
}

// refineMesh tests the other side's box against the mesh tree in mesh space.
func (m *OBBMidPhase) refineMesh(yield func(ContactCandidatePair) bool, mesh ContactCandidate, shape *Mesh, other ContactCandidate, meshIsRight bool) bool {
	t := mesh.Collider.Transform()
	box := OBBFromBB(other.AABB).Transform(NewTransformRigidInverse(t))
	m.nodes = shape.tree.QueryOBB(m.nodes[:0], box)
	for _, node := range m.nodes {
		tri := triangleCandidate(mesh.Collider, node.triangle, t)
		refined := ContactCandidatePair{tri, other}
		if meshIsRight {
			refined = ContactCandidatePair{other, tri}
		}
		if !m.emit(yield, refined) {
			return false
		}
	}
	return true
}

func (m *OBBMidPhase) emit(yield func(ContactCandidatePair) bool, pair ContactCandidatePair) bool {
	if m.stats != nil {
		m.stats.Refined++
	}
	return yield(pair)
}

func triangleCandidate(c *Collider, tri *Polygon, t Transform) ContactCandidate {
	return ContactCandidate{Collider: c, Shape: tri, AABB: tri.AABB(t)}
}
