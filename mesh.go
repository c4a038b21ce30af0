package phys2d

// Mesh is a static triangle soup indexed by an OBB tree. Narrow phase never sees a
// mesh directly, the mid phase refines it into its overlapping triangles.
type Mesh struct {
	triangles []*Polygon
	tree      *OBBTree
	bb        BB
}

// NewMesh skips degenerate triangles and fixes clockwise ones.
func NewMesh(triangles [][3]Vector) *Mesh {
	mesh := &Mesh{bb: EmptyBB()}
	for _, tri := range triangles {
		area := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
		if area == 0 {
			logger.Println("Warning: skipping degenerate mesh triangle", tri)
			continue
		}
		if area < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		mesh.triangles = append(mesh.triangles, NewPolygonRaw(tri[:]))
		for _, v := range tri {
			mesh.bb = mesh.bb.Expand(v)
		}
	}
	mesh.tree = NewOBBTree(mesh.triangles)
	return mesh
}

func (mesh *Mesh) Type() ShapeType {
	return SHAPE_MESH
}

func (mesh *Mesh) Triangles() []*Polygon {
	return mesh.triangles
}

func (mesh *Mesh) Tree() *OBBTree {
	return mesh.tree
}

func (mesh *Mesh) Support(dir Vector) Vector {
	best := Vector{}
	max := -INFINITY
	for _, tri := range mesh.triangles {
		v := tri.Support(dir)
		if d := v.Dot(dir); d > max {
			max = d
			best = v
		}
	}
	return best
}

func (mesh *Mesh) TestPoint(p Vector) bool {
	if !mesh.bb.ContainsVect(p) {
		return false
	}
	for _, tri := range mesh.triangles {
		if tri.TestPoint(p) {
			return true
		}
	}
	return false
}

func (mesh *Mesh) AABB(t Transform) BB {
	if len(mesh.triangles) == 0 {
		return NewBBForExtents(t.Translation(), 0, 0)
	}
	return t.BB(mesh.bb)
}

func (*Mesh) sealed() {}
