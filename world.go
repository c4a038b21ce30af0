package phys2d

import (
	"iter"
	"sync"

	"github.com/pkg/errors"
)

type bodySlot struct {
	body       *Body
	generation uint32
	colliders  []*Collider
	// joints and motors touching the body
	joints map[Joint]struct{}
}

// World owns bodies, colliders and joints and advances them with Simulate.
// A World is not safe for concurrent use.
type World struct {
	settings Settings

	slots  []bodySlot
	free   []uint32
	bodies []*Body

	joints     []Joint
	jointIndex map[Joint]int

	registry   *PairsRegistry
	detector   *CollisionDetector
	islandsGen IslandsGenerator
	islands    []Island
	bodyIsland []int
	solver     Solver

	contacts    []*ContactJoint
	contactPool []*ContactJoint
	events      []ContactInfo
	edges       []Joint

	stats  Stats
	stamp  uint64
	time   float64
	prevDt float64
	locked int

	nextBodyID     uint32
	nextColliderID uint32
}

func NewWorld() *World {
	world, _ := NewWorldWithSettings(DefaultSettings())
	return world
}

func NewWorldWithSettings(settings Settings) (*World, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	world := &World{
		settings:   settings,
		jointIndex: map[Joint]int{},
		registry:   NewPairsRegistry(),
	}
	world.detector = NewCollisionDetector(settings.newBroadPhase(), world.registry, &world.stats, world.collideFilter)
	return world, nil
}

func (w *World) Settings() Settings {
	return w.settings
}

// Step is the number of completed Simulate calls.
func (w *World) Step() uint64 {
	return w.stamp
}

func (w *World) Time() float64 {
	return w.time
}

func (w *World) Stats() Stats {
	return w.stats
}

func (w *World) contains(body *Body) bool {
	if body == nil || int(body.handle.Index) >= len(w.slots) {
		return false
	}
	slot := &w.slots[body.handle.Index]
	return slot.body == body && slot.generation == body.handle.Generation
}

// Body resolves a handle, failing for handles of destroyed bodies.
func (w *World) Body(h Handle) (*Body, bool) {
	if int(h.Index) >= len(w.slots) {
		return nil, false
	}
	slot := &w.slots[h.Index]
	if slot.body == nil || slot.generation != h.Generation {
		return nil, false
	}
	return slot.body, true
}

// Bodies is the dense body list. It is invalidated by CreateBody and DestroyBody.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// CreateBody adds a body. A mass of zero makes it static. A non nil shape is
// attached as a collider matching every category.
func (w *World) CreateBody(shape Shape, mass, inertia float64, position Vector, angle float64) *Body {
	assert(w.locked == 0, "World is locked")

	body := newBody(w.nextBodyID, mass, inertia, position, angle)
	w.nextBodyID++

	var index uint32
	if n := len(w.free); n > 0 {
		index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		index = uint32(len(w.slots))
		w.slots = append(w.slots, bodySlot{})
	}
	slot := &w.slots[index]
	slot.body = body
	slot.joints = map[Joint]struct{}{}
	body.handle = Handle{index, slot.generation}

	body.index = len(w.bodies)
	w.bodies = append(w.bodies, body)
	w.bodyIsland = append(w.bodyIsland, -1)

	if shape != nil {
		w.attachCollider(body, shape, ALL_CATEGORIES, false)
	}
	return body
}

// DestroyBody removes the body together with its colliders, joints, motors and pairs.
func (w *World) DestroyBody(body *Body) error {
	assert(w.locked == 0, "World is locked")
	if !w.contains(body) {
		return errors.WithStack(ErrBodyNotInWorld)
	}
	slot := &w.slots[body.handle.Index]

	attached := make([]Joint, 0, len(slot.joints))
	for _, joint := range w.joints {
		if _, ok := slot.joints[joint]; ok {
			attached = append(attached, joint)
		}
	}
	if len(attached) > 0 {
		logger.Printf("Removing %d joints attached to destroyed %v", len(attached), body)
	}
	for _, joint := range attached {
		w.removeJoint(joint)
	}
	for _, c := range slot.colliders {
		w.detector.UnregisterCollider(c)
	}
	w.registry.RemoveBody(body)

	contacts := w.contacts[:0]
	for _, contact := range w.contacts {
		if contact.a == body || contact.b == body {
			w.contactPool = append(w.contactPool, contact)
			continue
		}
		contacts = append(contacts, contact)
	}
	w.contacts = contacts

	last := len(w.bodies) - 1
	moved := w.bodies[last]
	w.bodies[body.index] = moved
	w.bodyIsland[body.index] = w.bodyIsland[last]
	moved.index = body.index
	w.bodies = w.bodies[:last]
	w.bodyIsland = w.bodyIsland[:last]

	slot.body = nil
	slot.colliders = nil
	slot.joints = nil
	slot.generation++
	w.free = append(w.free, body.handle.Index)
	body.index = -1
	return nil
}

func (w *World) AddCollider(body *Body, shape Shape, mask uint32, virtual bool) (*Collider, error) {
	assert(w.locked == 0, "World is locked")
	if !w.contains(body) {
		return nil, errors.WithStack(ErrBodyNotInWorld)
	}
	if shape == nil {
		return nil, errors.WithStack(ErrNilShape)
	}
	return w.attachCollider(body, shape, mask, virtual), nil
}

// attachCollider expects a live body and a non nil shape.
func (w *World) attachCollider(body *Body, shape Shape, mask uint32, virtual bool) *Collider {
	c := &Collider{
		id:      w.nextColliderID,
		body:    body,
		shape:   shape,
		mask:    mask,
		virtual: virtual,
	}
	w.nextColliderID++

	slot := &w.slots[body.handle.Index]
	slot.colliders = append(slot.colliders, c)
	w.detector.RegisterCollider(c)
	return c
}

func (w *World) RemoveCollider(c *Collider) error {
	assert(w.locked == 0, "World is locked")
	if c == nil || !w.contains(c.body) {
		return errors.WithStack(ErrBodyNotInWorld)
	}
	slot := &w.slots[c.body.handle.Index]
	for i, other := range slot.colliders {
		if other == c {
			slot.colliders = append(slot.colliders[:i], slot.colliders[i+1:]...)
			w.detector.UnregisterCollider(c)
			return nil
		}
	}
	return errors.Errorf("phys2d: collider %d is not attached to body %d", c.id, c.body.id)
}

// Colliders lists the colliders attached to a body.
func (w *World) Colliders(body *Body) []*Collider {
	if !w.contains(body) {
		return nil
	}
	return w.slots[body.handle.Index].colliders
}

// collideFilter rejects pairs of bodies connected by a joint.
func (w *World) collideFilter(a, b *Collider) bool {
	for joint := range w.slots[a.body.handle.Index].joints {
		ja, jb := joint.BodyA(), joint.BodyB()
		if (ja == a.body && jb == b.body) || (ja == b.body && jb == a.body) {
			return false
		}
	}
	return true
}

// Query yields the colliders whose last computed boxes overlap bb.
func (w *World) Query(bb BB) iter.Seq[*Collider] {
	return w.detector.BroadPhase().Query(bb)
}

// TestPoint yields the colliders containing the world point p.
func (w *World) TestPoint(p Vector) iter.Seq[*Collider] {
	return func(yield func(*Collider) bool) {
		for c := range w.Query(NewBBForExtents(p, 0, 0)) {
			local := NewTransformRigidInverse(c.body.transform).Point(p)
			if c.shape.TestPoint(local) && !yield(c) {
				return
			}
		}
	}
}

// Simulate advances the world by dt seconds.
func (w *World) Simulate(dt float64) {
	assert(w.locked == 0, "World is locked")
	if dt <= 0 {
		logger.Println("Warning: ignoring non-positive time step", dt)
		return
	}
	w.locked++
	defer func() { w.locked-- }()

	w.stats = Stats{}
	dtCoef := 0.0
	if w.prevDt > 0 {
		dtCoef = dt / w.prevDt
	}

	w.registry.BeginStep()
	w.detectCollisions()

	w.edges = append(w.edges[:0], w.joints...)
	for _, contact := range w.contacts {
		w.edges = append(w.edges, contact)
	}
	w.islands = w.islandsGen.Generate(w.bodies, w.edges)
	w.stats.Islands = len(w.islands)
	for i := range w.bodies {
		w.bodyIsland[i] = w.islandsGen.IslandOf(i)
	}

	w.integrate(dt, dtCoef)

	for _, contact := range w.contacts {
		contact.store()
	}
	for _, body := range w.bodies {
		body.UpdateTransform()
	}
	w.registry.Filter(PAIR_PERSISTENCE)

	w.prevDt = dt
	w.stamp++
	w.time += dt
}

func (w *World) detectCollisions() {
	w.contactPool = append(w.contactPool, w.contacts...)
	w.contacts = w.contacts[:0]
	w.events = w.events[:0]

	for info := range w.detector.DetectCollisions() {
		if info.Collider0.virtual || info.Collider1.virtual {
			w.events = append(w.events, info)
			continue
		}
		pair, _ := w.registry.Lookup(info.Collider0, info.Collider1)
		w.contacts = append(w.contacts, w.contactFromPool().Init(info, pair, &w.settings))
	}
}

func (w *World) contactFromPool() *ContactJoint {
	if n := len(w.contactPool); n > 0 {
		contact := w.contactPool[n-1]
		w.contactPool = w.contactPool[:n-1]
		return contact
	}
	return &ContactJoint{}
}

func (w *World) integrate(dt, dtCoef float64) {
	if !w.settings.ParallelIslands || len(w.islands) < 2 {
		for i := range w.islands {
			w.solver.SolveIsland(&w.islands[i], dt, dtCoef, &w.settings)
		}
		return
	}

	var wg sync.WaitGroup
	for i := range w.islands {
		island := &w.islands[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			solver := solverPool.Get().(*Solver)
			solver.SolveIsland(island, dt, dtCoef, &w.settings)
			solverPool.Put(solver)
		}()
	}
	wg.Wait()
}

// BodyIsland is the island the body was solved in during the last step.
func (w *World) BodyIsland(body *Body) (int, bool) {
	if !w.contains(body) || w.bodyIsland[body.index] < 0 {
		return 0, false
	}
	return w.bodyIsland[body.index], true
}

func (w *World) Islands() []Island {
	return w.islands
}

// Contacts are the contact joints solved during the last step.
func (w *World) Contacts() []*ContactJoint {
	return w.contacts
}

// ContactEvents are the contacts of the last step that involved a virtual collider.
func (w *World) ContactEvents() []ContactInfo {
	return w.events
}

func (w *World) Joints() []Joint {
	return w.joints
}

// JointsOf lists the joints and motors attached to a body.
func (w *World) JointsOf(body *Body) []Joint {
	if !w.contains(body) {
		return nil
	}
	var joints []Joint
	for _, joint := range w.joints {
		if joint.BodyA() == body || joint.BodyB() == body {
			joints = append(joints, joint)
		}
	}
	return joints
}

// Registry exposes the persistent pair records.
func (w *World) Registry() *PairsRegistry {
	return w.registry
}
