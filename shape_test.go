package phys2d

import (
	"math"
	"testing"
)

func TestShapeCircleArea(t *testing.T) {
	if AreaForCircle(0, 2) != 4*math.Pi {
		t.Fail()
	}
	if MomentForCircle(2, 0, 1, Vector{}) != 1 {
		t.Fail()
	}
}

func TestShapeCircleSupport(t *testing.T) {
	circle := NewCircle(2, Vector{1, 0})
	if p := circle.Support(Vector{0, 5}); !p.Near(Vector{1, 2}, 1e-12) {
		t.Errorf("Expected (1, 2), got %v", p)
	}
	if !circle.TestPoint(Vector{2.5, 0}) || circle.TestPoint(Vector{-1.5, 0}) {
		t.Error("Point test is wrong")
	}
	bb := circle.AABB(NewTransformTranslate(Vector{0, 1}))
	if bb != (BB{-1, -1, 3, 3}) {
		t.Errorf("Unexpected bounds %v", bb)
	}
}

func TestShapePolygonHull(t *testing.T) {
	poly, err := NewPolygon([]Vector{{1, 1}, {-1, -1}, {0, 0}, {1, -1}, {-1, 1}, {0.5, 0.2}})
	if err != nil {
		t.Fatal(err)
	}
	verts := poly.Vertices()
	if len(verts) != 4 {
		t.Fatalf("Expected 4 hull vertices, got %v", verts)
	}
	if AreaForPoly(verts) <= 0 {
		t.Error("Hull should wind counter-clockwise")
	}
	for i, n := range poly.Normals() {
		mid := verts[i].Lerp(verts[(i+1)%len(verts)], 0.5)
		if n.Dot(mid) <= 0 {
			t.Errorf("Normal %d points inward: %v", i, n)
		}
	}

	if _, err := NewPolygon([]Vector{{0, 0}, {1, 1}, {2, 2}}); err == nil {
		t.Error("Collinear points should not make a polygon")
	}
}

func TestShapeBox(t *testing.T) {
	box := NewBox(2, 4)
	if AreaForPoly(box.Vertices()) != 8 {
		t.Errorf("Unexpected area %v", AreaForPoly(box.Vertices()))
	}
	if math.Abs(MomentForBox(3, 2, 4)-MomentForPoly(3, box.Vertices(), Vector{})) > 1e-9 {
		t.Errorf("Box moment %v does not match polygon moment %v", MomentForBox(3, 2, 4), MomentForPoly(3, box.Vertices(), Vector{}))
	}
	if !box.TestPoint(Vector{0.9, 1.9}) || box.TestPoint(Vector{1.1, 0}) {
		t.Error("Point test is wrong")
	}
	if p := box.Support(Vector{1, 1}); p != (Vector{1, 2}) {
		t.Errorf("Expected (1, 2), got %v", p)
	}
	if c := CentroidForPoly(NewBoxAt(2, 2, Vector{3, 4}).Vertices()); !c.Near(Vector{3, 4}, 1e-12) {
		t.Errorf("Expected centroid (3, 4), got %v", c)
	}
}

func TestShapeCapsule(t *testing.T) {
	capsule := NewCapsule(0.5, 2, 8)
	if capsule.Type() != SHAPE_CAPSULE {
		t.Fatal(capsule.Type())
	}
	bb := capsule.AABB(NewTransformIdentity())
	if math.Abs(bb.T-1.5) > 1e-9 || math.Abs(bb.B+1.5) > 1e-9 || math.Abs(bb.R-0.5) > 1e-9 || math.Abs(bb.L+0.5) > 1e-9 {
		t.Errorf("Unexpected bounds %v", bb)
	}
	if !capsule.TestPoint(Vector{0.45, 1}) || capsule.TestPoint(Vector{0.45, 1.4}) {
		t.Error("Point test is wrong")
	}
	for _, v := range capsule.Vertices() {
		if v.Length() > 1.5+1e-9 {
			t.Errorf("Vertex %v is outside the capsule", v)
		}
	}
	if poly, ok := polygonOf(capsule); !ok || len(poly.Vertices()) < 4 {
		t.Error("Capsule should collide as a polygon")
	}
}

func TestShapeMesh(t *testing.T) {
	mesh := NewMesh([][3]Vector{
		{{0, 0}, {1, 0}, {0, 1}},
		{{2, 0}, {2, 1}, {3, 0}}, // clockwise
		{{0, 0}, {1, 1}, {2, 2}}, // degenerate
	})
	if len(mesh.Triangles()) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(mesh.Triangles()))
	}
	for _, tri := range mesh.Triangles() {
		if AreaForPoly(tri.Vertices()) <= 0 {
			t.Error("Triangles should be counter-clockwise")
		}
	}
	if !mesh.TestPoint(Vector{2.2, 0.2}) || mesh.TestPoint(Vector{1.5, 0.5}) {
		t.Error("Point test is wrong")
	}
	if mesh.Tree().Count() != 2 {
		t.Error("Tree should hold every triangle")
	}
}
