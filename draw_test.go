package phys2d

import "testing"

type recordingDrawer struct {
	flags                                   int
	circles, segments, fats, polygons, dots int
	polygonVerts                            [][]Vector
}

func (d *recordingDrawer) DrawCircle(pos Vector, angle, radius float64, outline, fill FColor) {
	d.circles++
}

func (d *recordingDrawer) DrawSegment(a, b Vector, fill FColor) {
	d.segments++
}

func (d *recordingDrawer) DrawFatSegment(a, b Vector, radius float64, outline, fill FColor) {
	d.fats++
}

func (d *recordingDrawer) DrawPolygon(verts []Vector, outline, fill FColor) {
	d.polygons++
	d.polygonVerts = append(d.polygonVerts, verts)
}

func (d *recordingDrawer) DrawDot(size float64, pos Vector, fill FColor) {
	d.dots++
}

func (d *recordingDrawer) Flags() int                    { return d.flags }
func (d *recordingDrawer) OutlineColor() FColor          { return FColor{} }
func (d *recordingDrawer) ShapeColor(c *Collider) FColor { return FColor{1, 1, 1, 1} }
func (d *recordingDrawer) JointColor() FColor            { return FColor{} }
func (d *recordingDrawer) ContactPointColor() FColor     { return FColor{} }

func TestDrawWorld(t *testing.T) {
	world := newTestWorld(t, zeroGravity())
	world.CreateBody(NewBox(2, 2), 0, 0, Vector{10, 0}, 0)
	a := addBall(world, Vector{0, 0})
	b := addBall(world, Vector{3, 0})
	capsule := NewCapsule(0.5, 1, 4)
	world.CreateBody(capsule, 1, MomentForCapsule(1, capsule), Vector{-5, 0}, 0)
	world.CreateBody(NewMesh([][3]Vector{{{0, -10}, {2, -10}, {0, -8}}, {{3, -10}, {5, -10}, {3, -8}}}), 0, 0, Vector{}, 0)
	if _, err := world.AddDistanceJoint(a, Vector{}, b, Vector{}, -1); err != nil {
		t.Fatal(err)
	}

	d := &recordingDrawer{flags: DRAW_SHAPES}
	DrawWorld(world, d)
	if d.circles != 2 || d.fats != 1 || d.polygons != 3 {
		t.Errorf("Unexpected shape calls %+v", d)
	}
	if d.segments != 0 || d.dots != 0 {
		t.Error("Joints should not be drawn without DRAW_JOINTS")
	}
	box := d.polygonVerts[0]
	if len(box) != 4 || box[0].X < 9 {
		t.Error("Polygon should be drawn in world space", box)
	}

	d = &recordingDrawer{flags: DRAW_JOINTS}
	DrawWorld(world, d)
	if d.segments != 1 || d.dots != 2 || d.circles != 0 {
		t.Errorf("Unexpected joint calls %+v", d)
	}
}

func TestDrawWorld_ContactPoints(t *testing.T) {
	world := NewWorld()
	addFloor(world)
	addBall(world, Vector{0, 1})
	world.Simulate(testDt)
	if len(world.Contacts()) == 0 {
		t.Fatal("Expected a contact")
	}

	d := &recordingDrawer{flags: DRAW_CONTACT_POINTS}
	DrawWorld(world, d)
	if d.segments != len(world.Contacts()) || d.dots != len(world.Contacts()) {
		t.Errorf("Unexpected contact calls %+v", d)
	}
}
