package phys2d

// Island is a set of dynamic bodies connected through joints or contacts, solved independently.
type Island struct {
	ID     int
	Bodies []*Body
	Joints []Joint
}

// IslandsGenerator partitions bodies with a union-find over joint edges. Static
// bodies never merge islands and each get their own singleton island.
type IslandsGenerator struct {
	parent   []int
	root     []int
	islandOf []int
	islands  []Island
}

func (g *IslandsGenerator) find(i int) int {
	for g.parent[i] != i {
		g.parent[i] = g.parent[g.parent[i]]
		i = g.parent[i]
	}
	return i
}

func (g *IslandsGenerator) union(i, j int) {
	ri := g.find(i)
	rj := g.find(j)
	if ri == rj {
		return
	}
	// keep the lower index as root so island order follows body order
	if ri < rj {
		g.parent[rj] = ri
	} else {
		g.parent[ri] = rj
	}
}

func resize(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}

// Generate returns islands in the order of their first body. The returned slice
// is reused by the next call.
func (g *IslandsGenerator) Generate(bodies []*Body, joints []Joint) []Island {
	n := len(bodies)
	g.parent = resize(g.parent, n)
	g.root = resize(g.root, n)
	g.islandOf = resize(g.islandOf, n)
	for i := range g.parent {
		g.parent[i] = i
		g.root[i] = -1
	}

	for _, joint := range joints {
		a, b := joint.BodyA(), joint.BodyB()
		if b == nil || a.IsStatic() || b.IsStatic() {
			continue
		}
		g.union(a.index, b.index)
	}

	g.islands = g.islands[:0]
	for i, body := range bodies {
		r := g.find(i)
		id := g.root[r]
		if id < 0 {
			id = len(g.islands)
			g.root[r] = id
			g.islands = g.nextIsland(id)
		}
		g.islandOf[i] = id
		g.islands[id].Bodies = append(g.islands[id].Bodies, body)
	}

	for _, joint := range joints {
		a, b := joint.BodyA(), joint.BodyB()
		var owner *Body
		switch {
		case !a.IsStatic():
			owner = a
		case b != nil && !b.IsStatic():
			owner = b
		default:
			continue
		}
		id := g.islandOf[owner.index]
		g.islands[id].Joints = append(g.islands[id].Joints, joint)
	}
	return g.islands
}

// nextIsland grows the island list by one, reusing the slices of earlier steps.
func (g *IslandsGenerator) nextIsland(id int) []Island {
	if id < cap(g.islands) {
		islands := g.islands[:id+1]
		islands[id].ID = id
		islands[id].Bodies = islands[id].Bodies[:0]
		islands[id].Joints = islands[id].Joints[:0]
		return islands
	}
	return append(g.islands, Island{ID: id})
}

// IslandOf is the island id of the body at a dense index after the last Generate.
func (g *IslandsGenerator) IslandOf(index int) int {
	return g.islandOf[index]
}
