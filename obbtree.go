package phys2d

import (
	"cmp"
	"slices"
)

type OBBNode struct {
	obb    OBB
	parent *OBBNode

	a, b *OBBNode

	triangle *Polygon
}

func (node *OBBNode) IsLeaf() bool {
	return node.triangle != nil
}

func (node *OBBNode) OBB() OBB {
	return node.obb
}

// Triangle is the leaf payload, nil for inner nodes.
func (node *OBBNode) Triangle() *Polygon {
	return node.triangle
}

// OBBTree is a static bounding volume hierarchy over the triangles of a mesh.
// Boxes are stored in mesh-local coordinates.
type OBBTree struct {
	root   *OBBNode
	leaves int

	pooledNodes *OBBNode
}

func NewOBBTree(triangles []*Polygon) *OBBTree {
	tree := &OBBTree{leaves: len(triangles)}
	if len(triangles) > 0 {
		items := make([]*Polygon, len(triangles))
		copy(items, triangles)
		tree.root = tree.build(items)
	}
	return tree
}

func (tree *OBBTree) Root() *OBBNode {
	return tree.root
}

func (tree *OBBTree) Count() int {
	return tree.leaves
}

// build splits at the median centroid along the major axis of the enclosing box.
func (tree *OBBTree) build(items []*Polygon) *OBBNode {
	if len(items) == 1 {
		return tree.NewLeaf(items[0])
	}

	points := make([]Vector, 0, 3*len(items))
	for _, tri := range items {
		points = append(points, tri.verts...)
	}
	box := obbForPoints(points)
	axis := box.Axis
	if box.Extents.Y > box.Extents.X {
		axis = axis.Perp()
	}

	slices.SortFunc(items, func(a, b *Polygon) int {
		return cmp.Compare(centroidOf(a.verts).Dot(axis), centroidOf(b.verts).Dot(axis))
	})
	mid := len(items) / 2

	node := tree.NodeFromPool()
	node.obb = box
	NodeSetA(node, tree.build(items[:mid]))
	NodeSetB(node, tree.build(items[mid:]))
	return node
}

func (tree *OBBTree) NewLeaf(tri *Polygon) *OBBNode {
	node := tree.NodeFromPool()
	node.obb = obbForPoints(tri.verts)
	node.triangle = tri
	return node
}

func NodeSetA(node, value *OBBNode) {
	node.a = value
	value.parent = node
}

func NodeSetB(node, value *OBBNode) {
	node.b = value
	value.parent = node
}

func (tree *OBBTree) NodeFromPool() *OBBNode {
	node := tree.pooledNodes

	if node != nil {
		tree.pooledNodes = node.parent
		node.parent = nil
		return node
	}

	// Pool is exhausted make more
	for i := 0; i < 32; i++ {
		tree.NodeRecycle(&OBBNode{})
	}

	return tree.NodeFromPool()
}

func (tree *OBBTree) NodeRecycle(node *OBBNode) {
	*node = OBBNode{}
	node.parent = tree.pooledNodes
	tree.pooledNodes = node
}

// QueryOBB appends every leaf whose box overlaps box, given in tree space.
func (tree *OBBTree) QueryOBB(out []*OBBNode, box OBB) []*OBBNode {
	if tree.root == nil {
		return out
	}
	return tree.root.queryOBB(out, box)
}

func (subtree *OBBNode) queryOBB(out []*OBBNode, box OBB) []*OBBNode {
	if !subtree.obb.Overlaps(box) {
		return out
	}
	if subtree.IsLeaf() {
		return append(out, subtree)
	}
	out = subtree.a.queryOBB(out, box)
	return subtree.b.queryOBB(out, box)
}

// QueryTree appends every pair of overlapping leaves. otherToTree maps the
// other tree's space into this tree's space.
func (tree *OBBTree) QueryTree(out [][2]*OBBNode, other *OBBTree, otherToTree Transform) [][2]*OBBNode {
	if tree.root == nil || other.root == nil {
		return out
	}
	return queryNodes(out, tree.root, other.root, otherToTree)
}

func queryNodes(out [][2]*OBBNode, a, b *OBBNode, bToA Transform) [][2]*OBBNode {
	if !a.obb.Overlaps(b.obb.Transform(bToA)) {
		return out
	}
	switch {
	case a.IsLeaf() && b.IsLeaf():
		return append(out, [2]*OBBNode{a, b})
	case a.IsLeaf() || (!b.IsLeaf() && b.obb.Area() > a.obb.Area()):
		out = queryNodes(out, a, b.a, bToA)
		return queryNodes(out, a, b.b, bToA)
	default:
		out = queryNodes(out, a.a, b, bToA)
		return queryNodes(out, a.b, b, bToA)
	}
}

func centroidOf(verts []Vector) Vector {
	var sum Vector
	for _, v := range verts {
		sum = sum.Add(v)
	}
	return sum.Mult(1 / float64(len(verts)))
}
