package phys2d

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

type solverRow struct {
	c      Constraint
	a, b   *Body
	ja, jb mgl64.Vec3
	// inverse mass times the jacobian
	ma, mb mgl64.Vec3
	mass   float64
	target float64

	// target bias velocity and the bias impulse accumulated this step
	bias  float64
	jBias float64
}

func (row *solverRow) apply(lambda float64) {
	row.a.applyImpulse3(row.ma.Mul(lambda))
	if row.b != nil {
		row.b.applyImpulse3(row.mb.Mul(lambda))
	}
}

func (row *solverRow) applyBias(lambda float64) {
	row.a.applyBiasImpulse3(row.ma.Mul(lambda))
	if row.b != nil {
		row.b.applyBiasImpulse3(row.mb.Mul(lambda))
	}
}

func (row *solverRow) solve() {
	if row.bias > 0 {
		vb := row.ja.Dot(row.a.biasVelocity3())
		if row.b != nil {
			vb += row.jb.Dot(row.b.biasVelocity3())
		}
		jbOld := row.jBias
		row.jBias = math.Max(jbOld+(row.bias-vb)*row.mass, 0)
		row.applyBias(row.jBias - jbOld)
	}

	v := jacobianVelocity(row.a, row.b, row.ja, row.jb)
	delta := (row.target - v) * row.mass

	clamp := row.c.Clamping()
	old := row.c.Cache(0)
	next := Clamp(old+delta, clamp.Min, clamp.Max)
	row.c.SetCache(0, next)
	row.apply(next - old)
}

// Solver runs projected Gauss-Seidel over the rows of one island.
type Solver struct {
	rows []solverRow
}

var solverPool = sync.Pool{
	New: func() interface{} {
		return &Solver{}
	},
}

// SolveIsland integrates velocities, solves every row and integrates positions.
// Rows implementing Biaser also solve a bias velocity that only moves the bodies.
// dtCoef rescales the impulses cached from a step of a different length.
func (s *Solver) SolveIsland(island *Island, dt, dtCoef float64, settings *Settings) {
	for _, body := range island.Bodies {
		body.UpdateVelocity(settings.Gravity, dt)
	}

	s.rows = s.rows[:0]
	for _, joint := range island.Joints {
		for _, c := range joint.Constraints() {
			if p, ok := c.(PreStepper); ok {
				p.PreStep(dt)
			}

			a, b := c.BodyA(), c.BodyB()
			ja, jb := c.Jacobian()
			row := solverRow{c: c, a: a, b: b, ja: ja, jb: jb}
			row.ma = hadamard(a.invMass3(), ja)
			if b != nil {
				row.mb = hadamard(b.invMass3(), jb)
			}
			k := ja.Dot(row.ma) + jb.Dot(row.mb)
			if k <= 0 {
				continue
			}
			row.mass = 1 / k

			dja, djb := c.DotJacobian()
			row.target = c.Speed() + c.PushFactor(dt, settings.PushFactor) - dt*jacobianVelocity(a, b, dja, djb)
			if biaser, ok := c.(Biaser); ok {
				row.bias = biaser.Bias(dt, settings.PushFactor)
			}

			// warm start
			clamp := c.Clamping()
			lambda := Clamp(c.Cache(0)*dtCoef, clamp.Min, clamp.Max)
			c.SetCache(0, lambda)
			row.apply(lambda)

			s.rows = append(s.rows, row)
		}
	}

	for i := 0; i < settings.Iterations; i++ {
		for r := range s.rows {
			s.rows[r].solve()
		}
	}

	for _, body := range island.Bodies {
		body.UpdatePosition(dt)
	}
}
