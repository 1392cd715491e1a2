package physics2d

import "github.com/chewxy/math32"

// resolveContact separates the bodies of c and exchanges momentum along the
// contact normal. Sensors only report, static and kinematic bodies are never moved.
func resolveContact(c *Contact, a, b *Body) {
	ca, okA := a.collider(c.ColliderA.Slot)
	cb, okB := b.collider(c.ColliderB.Slot)
	if !okA || !okB || ca.IsSensor || cb.IsSensor {
		return
	}
	invA, invB := a.inverseMass(), b.inverseMass()
	if invA == 0 && invB == 0 {
		return
	}

	overlap := c.MTV.Overlap()
	depth := overlap.Len()
	if depth == 0 || math32.IsNaN(depth) || math32.IsInf(depth, 0) {
		return
	}
	normal := overlap.Mul(1 / depth)

	shareA, shareB := correctionShares(invA, invB)
	if shareA > 0 {
		a.Position = a.Position.Add(overlap.Mul(shareA))
	}
	if shareB > 0 {
		b.Position = b.Position.Sub(overlap.Mul(shareB))
	}

	relative := a.LinearVelocity.Sub(b.LinearVelocity)
	vn := relative.Dot(normal)
	if vn < 0 {
		e := math32.Max(ca.Restitution, cb.Restitution)
		j := -(1 + e) * vn / (invA + invB)
		impulse := normal.Mul(j)
		point := c.MTV.ContactPoint()
		if invA > 0 {
			a.ApplyForceToCorner(a.Inertia(), impulse, point.Sub(a.Position))
		}
		if invB > 0 {
			b.ApplyForceToCorner(b.Inertia(), impulse.Mul(-1), point.Sub(b.Position))
		}
	}

	if shareA > 0 {
		a.BuildAABB()
	}
	if shareB > 0 {
		b.BuildAABB()
	}
}

// correctionShares splits the positional push between two bodies: half each
// when both are dynamic, all of it on the only dynamic one otherwise.
func correctionShares(invA, invB float32) (float32, float32) {
	switch {
	case invA > 0 && invB > 0:
		return 0.5, 0.5
	case invA > 0:
		return 1, 0
	case invB > 0:
		return 0, 1
	}
	return 0, 0
}
