package phys2d

import (
	"iter"
	"math"
)

// BBTree is a dynamic bounding box tree broad phase. Leaves store a fattened
// box stretched along the body's velocity, so a collider is reinserted only
// once its tight box escapes the fat one.
type BBTree struct {
	// Seconds of travel the fat box covers.
	VelocityCoef float64

	colliders []*Collider
	leaves    map[*Collider]*bbNode
	root      *bbNode

	pooledNodes *bbNode
}

type bbNode struct {
	collider *Collider
	bb       BB
	parent   *bbNode

	a, b *bbNode
}

func NewBBTree() *BBTree {
	return &BBTree{
		VelocityCoef: 0.1,
		leaves:       map[*Collider]*bbNode{},
	}
}

func (node *bbNode) IsLeaf() bool {
	return node.collider != nil
}

func (node *bbNode) setA(value *bbNode) {
	node.a = value
	value.parent = node
}

func (node *bbNode) setB(value *bbNode) {
	node.b = value
	value.parent = node
}

func (node *bbNode) other(child *bbNode) *bbNode {
	if node.a == child {
		return node.b
	}
	return node.a
}

func (tree *BBTree) nodeFromPool() *bbNode {
	node := tree.pooledNodes
	if node != nil {
		tree.pooledNodes = node.parent
		node.parent = nil
		return node
	}
	return &bbNode{}
}

func (tree *BBTree) nodeRecycle(node *bbNode) {
	*node = bbNode{parent: tree.pooledNodes}
	tree.pooledNodes = node
}

func (tree *BBTree) newNode(a, b *bbNode) *bbNode {
	node := tree.nodeFromPool()
	node.bb = a.bb.Merge(b.bb)
	node.setA(a)
	node.setB(b)
	return node
}

func (tree *BBTree) newLeaf(c *Collider) *bbNode {
	node := tree.nodeFromPool()
	node.collider = c
	node.bb = tree.fatBB(c)
	return node
}

// fatBB extends the collider box by where the body will be VelocityCoef
// seconds from now.
func (tree *BBTree) fatBB(c *Collider) BB {
	bb := c.aabb
	v := c.body.v.Mult(tree.VelocityCoef)

	return BB{
		L: bb.L + math.Min(v.X, 0),
		B: bb.B + math.Min(v.Y, 0),
		R: bb.R + math.Max(v.X, 0),
		T: bb.T + math.Max(v.Y, 0),
	}
}

func (tree *BBTree) Count() int {
	return len(tree.colliders)
}

func (tree *BBTree) Insert(c *Collider) {
	leaf := tree.newLeaf(c)
	tree.leaves[c] = leaf
	tree.colliders = append(tree.colliders, c)
	tree.root = tree.subtreeInsert(tree.root, leaf)
	tree.root.parent = nil
}

func (tree *BBTree) Remove(c *Collider) {
	leaf, ok := tree.leaves[c]
	if !ok {
		return
	}
	delete(tree.leaves, c)
	for i, other := range tree.colliders {
		if other == c {
			tree.colliders = append(tree.colliders[:i], tree.colliders[i+1:]...)
			break
		}
	}
	tree.root = tree.subtreeRemove(tree.root, leaf)
	tree.nodeRecycle(leaf)
}

// subtreeInsert descends toward the child whose box grows the least.
func (tree *BBTree) subtreeInsert(subtree, leaf *bbNode) *bbNode {
	if subtree == nil {
		return leaf
	}
	if subtree.IsLeaf() {
		return tree.newNode(leaf, subtree)
	}

	costA := subtree.b.bb.Area() + subtree.a.bb.MergedArea(leaf.bb)
	costB := subtree.a.bb.Area() + subtree.b.bb.MergedArea(leaf.bb)

	if costA == costB {
		costA = subtree.a.bb.Proximity(leaf.bb)
		costB = subtree.b.bb.Proximity(leaf.bb)
	}

	if costB < costA {
		subtree.setB(tree.subtreeInsert(subtree.b, leaf))
	} else {
		subtree.setA(tree.subtreeInsert(subtree.a, leaf))
	}

	subtree.bb = subtree.bb.Merge(leaf.bb)
	return subtree
}

func (tree *BBTree) subtreeRemove(subtree, leaf *bbNode) *bbNode {
	if leaf == subtree {
		return nil
	}

	parent := leaf.parent
	if parent == subtree {
		other := subtree.other(leaf)
		other.parent = subtree.parent
		tree.nodeRecycle(subtree)
		return other
	}

	tree.replaceChild(parent.parent, parent, parent.other(leaf))
	return subtree
}

func (tree *BBTree) replaceChild(parent, child, value *bbNode) {
	assert(!parent.IsLeaf(), "cannot replace the child of a leaf")
	assert(child == parent.a || child == parent.b, "node is not a child of parent")

	if parent.a == child {
		tree.nodeRecycle(parent.a)
		parent.setA(value)
	} else {
		tree.nodeRecycle(parent.b)
		parent.setB(value)
	}

	for node := parent; node != nil; node = node.parent {
		node.bb = node.a.bb.Merge(node.b.bb)
	}
}

// reindex reinserts every leaf whose collider left its fat box.
func (tree *BBTree) reindex() {
	for _, c := range tree.colliders {
		leaf := tree.leaves[c]
		if leaf.bb.Contains(c.aabb) {
			continue
		}
		tree.root = tree.subtreeRemove(tree.root, leaf)
		leaf.parent = nil
		leaf.bb = tree.fatBB(c)
		tree.root = tree.subtreeInsert(tree.root, leaf)
		tree.root.parent = nil
	}
}

func (tree *BBTree) Pairs() iter.Seq[ContactCandidatePair] {
	return func(yield func(ContactCandidatePair) bool) {
		tree.reindex()

		for _, c := range tree.colliders {
			leaf := tree.leaves[c]
			ok := tree.markLeafQuery(tree.root, leaf, func(other *Collider) bool {
				// each pair is reported from its lower id
				if other.id <= c.id || !c.aabb.Intersects(other.aabb) {
					return true
				}
				return yield(ContactCandidatePair{candidateOf(c), candidateOf(other)})
			})
			if !ok {
				return
			}
		}
	}
}

func (tree *BBTree) markLeafQuery(subtree, leaf *bbNode, f func(*Collider) bool) bool {
	if subtree == nil || !leaf.bb.Intersects(subtree.bb) {
		return true
	}
	if subtree.IsLeaf() {
		return f(subtree.collider)
	}
	return tree.markLeafQuery(subtree.a, leaf, f) && tree.markLeafQuery(subtree.b, leaf, f)
}

func (tree *BBTree) Query(bb BB) iter.Seq[*Collider] {
	return func(yield func(*Collider) bool) {
		tree.query(tree.root, bb, yield)
	}
}

func (tree *BBTree) query(subtree *bbNode, bb BB, yield func(*Collider) bool) bool {
	if subtree == nil || !subtree.bb.Intersects(bb) {
		return true
	}
	if subtree.IsLeaf() {
		if subtree.collider.aabb.Intersects(bb) {
			return yield(subtree.collider)
		}
		return true
	}
	return tree.query(subtree.a, bb, yield) && tree.query(subtree.b, bb, yield)
}
