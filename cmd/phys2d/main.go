// Command phys2d steps a scene headlessly. It can stream msgpack snapshots,
// one length prefixed frame per step, and draw the last step as an SVG.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"io"
	"log"
	"math"
	"os"

	. "github.com/jakecoffman/phys2d"
	"github.com/pkg/errors"
)

var scenes = map[string]func(*World){
	"ball":     ball,
	"pendulum": pendulum,
	"pyramid":  pyramid,
	"terrain":  terrain,
}

func main() {
	config := flag.String("config", "", "settings file (yaml)")
	scene := flag.String("scene", "pyramid", "ball, pendulum, pyramid or terrain")
	steps := flag.Int("steps", 600, "number of steps to simulate")
	dt := flag.Float64("dt", 1.0/60.0, "time step")
	out := flag.String("out", "", "write snapshots to this file")
	svg := flag.String("svg", "", "draw the final step to this svg file")
	flag.Parse()

	settings := DefaultSettings()
	if *config != "" {
		var err error
		if settings, err = LoadSettings(*config); err != nil {
			log.Fatalf("%+v", err)
		}
	}
	world, err := NewWorldWithSettings(settings)
	if err != nil {
		log.Fatalf("%+v", err)
	}

	build, ok := scenes[*scene]
	if !ok {
		log.Fatalf("unknown scene %q", *scene)
	}
	build(world)

	var w *bufio.Writer
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = bufio.NewWriter(f)
		defer w.Flush()
	}

	perSecond := int(math.Max(1, math.Round(1 / *dt)))
	for i := 0; i < *steps; i++ {
		world.Simulate(*dt)
		if w != nil {
			if err := writeFrame(w, world.Snapshot()); err != nil {
				log.Fatalf("%+v", err)
			}
		}
		if (i+1)%perSecond == 0 {
			stats := world.Stats()
			var energy float64
			for _, body := range world.Bodies() {
				energy += body.KineticEnergy()
			}
			log.Printf("t=%.2f bodies=%d islands=%d contacts=%d gjk=%d epa=%d nonconverged=%d energy=%.3f",
				world.Time(), len(world.Bodies()), stats.Islands, stats.Contacts, stats.GJKCalls, stats.EPACalls, stats.NonConverged, energy)
		}
	}

	if *svg != "" {
		if err := writeSVG(*svg, world, BB{L: -25, B: -6, R: 25, T: 16}); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

func writeFrame(w io.Writer, snapshot Snapshot) error {
	data, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(data)))
	if _, err := w.Write(size[:]); err != nil {
		return errors.Wrap(err, "writing frame header")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "writing frame")
	}
	return nil
}

func floor(world *World) *Body {
	return world.CreateBody(NewBoxAt(100, 1, Vector{X: 0, Y: -0.5}), 0, 0, Vector{}, 0)
}

func ball(world *World) {
	floor(world)
	mass, radius := 1.0, 1.0
	ball := world.CreateBody(NewCircle(radius, Vector{}), mass, MomentForCircle(mass, 0, radius, Vector{}), Vector{X: 0, Y: 5}, 0)
	// a sideways kick above the center sets it rolling
	ball.ApplyImpulseAtWorldPoint(Vector{X: 2, Y: 0}, Vector{X: 0, Y: 5.5})
}

func pendulum(world *World) {
	anchor := world.CreateBody(nil, 0, 0, Vector{X: 0, Y: 10}, 0)
	prev := anchor
	for i := 1; i <= 5; i++ {
		link := world.CreateBody(NewCircle(0.25, Vector{}), 1, MomentForCircle(1, 0, 0.25, Vector{}), Vector{X: float64(i), Y: 10}, 0)
		if _, err := world.AddDistanceJoint(prev, Vector{}, link, Vector{}, -1); err != nil {
			log.Fatalf("%+v", err)
		}
		prev = link
	}

	// a driven rotor beside the chain
	hub := world.CreateBody(nil, 0, 0, Vector{X: -4, Y: 6}, 0)
	rotor := world.CreateBody(NewBox(3, 0.2), 1, MomentForBox(1, 3, 0.2), Vector{X: -4, Y: 6}, 0)
	if _, err := world.AddRevoluteJoint(hub, Vector{}, rotor, Vector{}); err != nil {
		log.Fatalf("%+v", err)
	}
	if _, err := world.AddMotor(rotor, math.Pi, 50); err != nil {
		log.Fatalf("%+v", err)
	}
}

func pyramid(world *World) {
	floor(world)
	const size = 1.0
	for i := 0; i < 10; i++ {
		for j := 0; j <= i; j++ {
			x := float64(j)*(size+0.05) - float64(i)*(size+0.05)/2
			y := float64(10-i)*(size+0.05) + size/2
			world.CreateBody(NewBox(size, size), 1, MomentForBox(1, size, size), Vector{X: x, Y: y}, 0)
		}
	}
}

// terrain drops capsules and boxes on a static sine shaped mesh.
func terrain(world *World) {
	var triangles [][3]Vector
	const segments = 40
	height := func(x float64) float64 { return math.Sin(x/4) * 1.5 }
	for i := 0; i < segments; i++ {
		x0 := float64(i-segments/2) * 2
		x1 := x0 + 2
		a, b := Vector{X: x0, Y: height(x0)}, Vector{X: x1, Y: height(x1)}
		triangles = append(triangles,
			[3]Vector{{X: x0, Y: -5}, {X: x1, Y: -5}, b},
			[3]Vector{{X: x0, Y: -5}, b, a},
		)
	}
	world.CreateBody(NewMesh(triangles), 0, 0, Vector{}, 0)

	for i := 0; i < 20; i++ {
		x := float64(i-10) * 1.5
		if i%2 == 0 {
			capsule := NewCapsule(0.4, 1, 4)
			world.CreateBody(capsule, 1, MomentForCapsule(1, capsule), Vector{X: x, Y: 6}, 0.3)
		} else {
			world.CreateBody(NewBox(0.8, 0.8), 1, MomentForBox(1, 0.8, 0.8), Vector{X: x, Y: 8}, 0)
		}
	}
}
