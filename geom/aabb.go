package geom

import "github.com/chewxy/math32"

// AABB is an axis-aligned bounding box. TopRight is never below or left of BottomLeft.
type AABB struct {
	TopRight   Vec2 `yaml:"top_right"`
	BottomLeft Vec2 `yaml:"bottom_left"`
}

// NewAABB builds a box from its center and half extents. Negative extents are folded.
func NewAABB(center, extents Vec2) AABB {
	e := Vec2{math32.Abs(extents[0]), math32.Abs(extents[1])}
	return AABB{TopRight: center.Add(e), BottomLeft: center.Sub(e)}
}

// FromCorners builds a box from any two opposite corners.
func FromCorners(a, b Vec2) AABB {
	return AABB{
		TopRight:   Vec2{math32.Max(a[0], b[0]), math32.Max(a[1], b[1])},
		BottomLeft: Vec2{math32.Min(a[0], b[0]), math32.Min(a[1], b[1])},
	}
}

func (a AABB) Center() Vec2 {
	return a.TopRight.Add(a.BottomLeft).Mul(0.5)
}

// Extents returns the half diagonal.
func (a AABB) Extents() Vec2 {
	return a.TopRight.Sub(a.BottomLeft).Mul(0.5)
}

func (a AABB) Top() float32    { return a.TopRight[1] }
func (a AABB) Bottom() float32 { return a.BottomLeft[1] }
func (a AABB) Right() float32  { return a.TopRight[0] }
func (a AABB) Left() float32   { return a.BottomLeft[0] }
func (a AABB) Width() float32  { return a.TopRight[0] - a.BottomLeft[0] }
func (a AABB) Height() float32 { return a.TopRight[1] - a.BottomLeft[1] }

// IsZero reports a zero-size box.
func (a AABB) IsZero() bool {
	return a.TopRight == a.BottomLeft
}

func (a AABB) ContainsPoint(p Vec2) bool {
	return LessEq(p, a.TopRight) && GreaterEq(p, a.BottomLeft)
}

func (a AABB) ContainsAABB(o AABB) bool {
	return a.ContainsPoint(o.TopRight) && a.ContainsPoint(o.BottomLeft)
}

// Overlaps is a closed interval test on both axes.
func (a AABB) Overlaps(o AABB) bool {
	return a.BottomLeft[0] <= o.TopRight[0] && a.TopRight[0] >= o.BottomLeft[0] &&
		a.BottomLeft[1] <= o.TopRight[1] && a.TopRight[1] >= o.BottomLeft[1]
}

func (a AABB) Union(o AABB) AABB {
	return AABB{
		TopRight:   Vec2{math32.Max(a.TopRight[0], o.TopRight[0]), math32.Max(a.TopRight[1], o.TopRight[1])},
		BottomLeft: Vec2{math32.Min(a.BottomLeft[0], o.BottomLeft[0]), math32.Min(a.BottomLeft[1], o.BottomLeft[1])},
	}
}

// Quadrant returns one quarter of the box split at its center:
// 0 top-left, 1 top-right, 2 bottom-left, 3 bottom-right.
func (a AABB) Quadrant(i int) AABB {
	c := a.Center()
	switch i {
	case 0:
		return AABB{TopRight: Vec2{c[0], a.Top()}, BottomLeft: Vec2{a.Left(), c[1]}}
	case 1:
		return AABB{TopRight: a.TopRight, BottomLeft: c}
	case 2:
		return AABB{TopRight: c, BottomLeft: a.BottomLeft}
	default:
		return AABB{TopRight: Vec2{a.Right(), c[1]}, BottomLeft: Vec2{c[0], a.Bottom()}}
	}
}

// SetShape refits the box around pose.Position for the given shape.
func (a *AABB) SetShape(s Shape, pose Pose) {
	*a = FitShape(s, pose)
}

// FitShape returns the tightest box around shape at pose.
// Circles ignore rotation, boxes use their rotated corners, anything else is zero-size.
func FitShape(s Shape, pose Pose) AABB {
	return FitOriented(s.Orient(pose.Angle), pose.Position)
}

func FitOriented(o Oriented, position Vec2) AABB {
	switch o.Shape.Kind {
	case ShapeCircle:
		r := o.Shape.Radius
		return NewAABB(position, Vec2{r, r})
	case ShapeBox:
		corners := o.WorldCorners(position)
		box := AABB{TopRight: corners[0], BottomLeft: corners[0]}
		for _, c := range corners[1:] {
			box = box.Union(AABB{TopRight: c, BottomLeft: c})
		}
		return box
	default:
		return AABB{TopRight: position, BottomLeft: position}
	}
}
