package phys2d

import "iter"

// NarrowPhase turns convex candidate pairs into contact points.
type NarrowPhase interface {
	DetectContacts(pairs iter.Seq[ContactCandidatePair]) iter.Seq[ContactInfo]
}

// GJKEPANarrowPhase finds contacts with GJK on margin inflated shapes, falling
// back to EPA when the shapes really overlap.
type GJKEPANarrowPhase struct {
	registry *PairsRegistry
	stats    *Stats

	Margin        float64
	RelError      float64
	Epsilon       float64
	MaxIterations int

	simplex  Simplex
	hull     []MinkowskiPoint
	manifold []ContactInfo
}

func NewGJKEPANarrowPhase(registry *PairsRegistry, stats *Stats) *GJKEPANarrowPhase {
	return &GJKEPANarrowPhase{
		registry:      registry,
		stats:         stats,
		Margin:        GJK_MARGIN,
		RelError:      GJK_REL_ERROR,
		Epsilon:       GJK_EPSILON,
		MaxIterations: MAX_GJK_ITERATIONS,
	}
}

func (np *GJKEPANarrowPhase) DetectContacts(pairs iter.Seq[ContactCandidatePair]) iter.Seq[ContactInfo] {
	return func(yield func(ContactInfo) bool) {
		for pair := range pairs {
			np.manifold = np.detect(np.manifold[:0], pair)
			for _, info := range np.manifold {
				if !yield(info) {
					return
				}
			}
		}
	}
}

func (np *GJKEPANarrowPhase) detect(out []ContactInfo, candidates ContactCandidatePair) []ContactInfo {
	left, right := candidates[0], candidates[1]
	if left.Collider.id > right.Collider.id {
		left, right = right, left
	}
	if left.Shape.Type() == SHAPE_MESH || right.Shape.Type() == SHAPE_MESH {
		logger.Println("Warning: mesh reached the narrow phase without mid phase refinement")
		return out
	}

	pair := np.registry.Get(left.Collider, right.Collider)
	pair.refresh(np.registry.Stamp())

	ctx := SupportContext{left.Shape, right.Shape, &pair.mapping, np.Margin}
	dir := left.AABB.Center().Sub(right.AABB.Center())

	inflated := GJK(&ctx, &np.simplex, dir, np.RelError, np.MaxIterations)
	np.countGJK(inflated)
	converged := inflated.Converged

	var normal Vector
	var depth float64
	if inflated.Distance < np.Epsilon {
		ctx.margin = 0
		raw := GJK(&ctx, &np.simplex, dir, np.RelError, np.MaxIterations)
		np.countGJK(raw)
		converged = converged && raw.Converged

		if raw.Distance > np.Epsilon {
			// Separated by less than the margin: speculative contact.
			normal = raw.Point1.Sub(raw.Point0).Normalize()
			depth = -raw.Distance
		} else {
			var epa EPAResult
			epa, np.hull = EPA(&ctx, &np.simplex, np.hull, np.Epsilon, MAX_EPA_ITERATIONS)
			if np.stats != nil {
				np.stats.EPACalls++
				np.stats.EPAIterations += epa.Iterations
			}
			converged = converged && epa.Converged
			normal = epa.Normal
			depth = epa.Depth
		}
	} else {
		// GJK may still report a miss for shapes whose supports overlap along
		// the separating direction; only keep the pair if they do.
		normal = inflated.Point1.Sub(inflated.Point0).Normalize()
		point0 := pair.mapping.FromFirstPoint(left.Shape.Support(pair.mapping.ToFirstVector(normal)))
		point1 := pair.mapping.FromSecondPoint(right.Shape.Support(pair.mapping.ToSecondVector(normal.Neg())))
		depth = point0.Sub(point1).Dot(normal)
		if depth <= 0 {
			return out
		}
	}

	if normal.LengthSq() == 0 {
		return out
	}
	if !converged {
		logger.Println("Warning: contact did not converge between colliders", left.Collider.id, right.Collider.id)
		if np.stats != nil {
			np.stats.NonConverged++
		}
	}

	in := manifoldInput{
		c0:            left,
		c1:            right,
		mapping:       pair.mapping,
		normal:        normal,
		depth:         depth,
		converged:     converged,
		maxSeparation: np.Margin + np.Epsilon,
	}
	start := len(out)
	out = Manifold(out, &in)
	if np.stats != nil {
		np.stats.Contacts += len(out) - start
	}
	return out
}

func (np *GJKEPANarrowPhase) countGJK(r GJKResult) {
	if np.stats == nil {
		return
	}
	np.stats.GJKCalls++
	np.stats.GJKIterations += r.Iterations
}
