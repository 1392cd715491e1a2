package geom

import (
	"math"

	"github.com/chewxy/math32"
)

// Collide runs the separating axis test for shape a at pose pa against shape b at pose pb.
//
// The result is an MTV: Rows[1] is the translation that separates a from b (it points
// from b towards a) and Rows[0] is the contact point. The zero Mat22 means no overlap,
// which is also the answer for any pair involving an unsupported shape.
func Collide(a Shape, pa Pose, b Shape, pb Pose) Mat22 {
	return CollideOriented(a.Orient(pa.Angle), pa.Position, b.Orient(pb.Angle), pb.Position)
}

// CollideOriented is Collide for shapes that were already rotated.
func CollideOriented(a Oriented, posA Vec2, b Oriented, posB Vec2) Mat22 {
	ka, kb := a.Shape.Kind, b.Shape.Kind
	switch {
	case ka == ShapeCircle && kb == ShapeCircle:
		return CircleCircle(posA, a.Shape.Radius, posB, b.Shape.Radius)
	case ka == ShapeCircle && kb == ShapeBox:
		return CircleBox(posA, a.Shape.Radius, b, posB)
	case ka == ShapeBox && kb == ShapeCircle:
		mtv := CircleBox(posB, b.Shape.Radius, a, posA)
		if mtv.IsZero() {
			return mtv
		}
		return NewMat22(mtv.Rows[0], mtv.Rows[1].Mul(-1))
	case ka == ShapeBox && kb == ShapeBox:
		return BoxBox(a, posA, b, posB)
	}
	return Mat22{}
}

// CircleCircle overlaps iff the centers are closer than the sum of radii.
// Coincident centers push the smaller circle down and the larger one up; two
// identical circles at the same point both get (0,1).
func CircleCircle(posA Vec2, rA float32, posB Vec2, rB float32) Mat22 {
	d := posA.Sub(posB)
	dist := d.Len()
	sum := rA + rB
	if dist >= sum {
		return Mat22{}
	}
	n := Normalized(d)
	if dist == 0 {
		n = Vec2{0, 1}
		if rA < rB {
			n = Vec2{0, -1}
		}
	}
	return NewMat22(posA.Sub(n.Mul(rA)), n.Mul(sum-dist))
}

// CircleBox tests a circle against a rotated box. The candidate axes are the two box
// axes, plus the axis towards the nearest corner when the center lies in a corner
// Voronoi region.
func CircleBox(center Vec2, radius float32, box Oriented, posB Vec2) Mat22 {
	corners := box.WorldCorners(posB)
	rel := center.Sub(posB)

	var axes [3]Vec2
	n := 0
	for _, ax := range box.Axes {
		if ax.Dot(ax) == 0 {
			continue
		}
		axes[n] = Normalized(ax)
		n++
	}
	kx := scalarProjection(rel, box.Axes[0])
	ky := scalarProjection(rel, box.Axes[1])
	if math32.Abs(kx) > 1 && math32.Abs(ky) > 1 {
		nearest := corners[0]
		best := Distance(nearest, center)
		for _, c := range corners[1:] {
			if d := Distance(c, center); d < best {
				best, nearest = d, c
			}
		}
		if ax := center.Sub(nearest); ax.Dot(ax) > 0 {
			axes[n] = Normalized(ax)
			n++
		}
	}
	if n == 0 {
		return Mat22{}
	}

	best := float32(math.MaxFloat32)
	var dir Vec2
	for _, axis := range axes[:n] {
		c := center.Dot(axis)
		bmin, bmax := project(corners[:], axis)
		depth, d, ok := penetration(c-radius, c+radius, bmin, bmax, axis)
		if !ok {
			return Mat22{}
		}
		if depth < best {
			best, dir = depth, d
		}
	}
	return NewMat22(center.Sub(dir.Mul(radius)), dir.Mul(best))
}

// BoxBox is the four-axis separating axis test between two rotated boxes. The axis with
// the smallest penetration across both boxes wins.
func BoxBox(a Oriented, posA Vec2, b Oriented, posB Vec2) Mat22 {
	ca := a.WorldCorners(posA)
	cb := b.WorldCorners(posB)
	axes := [4]Vec2{a.Axes[0], a.Axes[1], b.Axes[0], b.Axes[1]}

	best := float32(math.MaxFloat32)
	var dir Vec2
	found := false
	for _, ax := range axes {
		if ax.Dot(ax) == 0 {
			continue
		}
		axis := Normalized(ax)
		amin, amax := project(ca[:], axis)
		bmin, bmax := project(cb[:], axis)
		depth, d, ok := penetration(amin, amax, bmin, bmax, axis)
		if !ok {
			return Mat22{}
		}
		if depth < best {
			best, dir, found = depth, d, true
		}
	}
	if !found {
		return Mat22{}
	}

	// deepest corner of a along the push direction
	contact := ca[0]
	lowest := contact.Dot(dir)
	for _, c := range ca[1:] {
		if p := c.Dot(dir); p < lowest {
			lowest, contact = p, c
		}
	}
	return NewMat22(contact, dir.Mul(best))
}

// penetration compares interval a against interval b on axis and returns how far a has to
// move, and in which direction, to clear b. ok is false when the intervals are disjoint
// or only touch.
func penetration(amin, amax, bmin, bmax float32, axis Vec2) (depth float32, dir Vec2, ok bool) {
	pushPos := bmax - amin
	pushNeg := amax - bmin
	if pushPos <= 0 || pushNeg <= 0 {
		return 0, Vec2{}, false
	}
	if pushPos <= pushNeg {
		return pushPos, axis, true
	}
	return pushNeg, axis.Mul(-1), true
}

func project(points []Vec2, axis Vec2) (lo, hi float32) {
	lo = points[0].Dot(axis)
	hi = lo
	for _, p := range points[1:] {
		v := p.Dot(axis)
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
	}
	return lo, hi
}

// scalarProjection returns k such that the projection of u on axis is axis*k.
// A zero axis yields 0.
func scalarProjection(u, axis Vec2) float32 {
	d := axis.Dot(axis)
	if d == 0 {
		return 0
	}
	return u.Dot(axis) / d
}
