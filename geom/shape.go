package geom

import (
	"errors"
	"fmt"
)

var ErrDegenerateShape = errors.New("geom: degenerate shape")

type ShapeKind uint8

const (
	ShapeNone ShapeKind = iota
	ShapeCircle
	ShapeBox
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeBox:
		return "box"
	case ShapePolygon:
		return "polygon"
	default:
		return "none"
	}
}

// Pose is a position in world units and an angle in degrees.
type Pose struct {
	Position Vec2
	Angle    float32
}

// Shape is a closed union over the supported collision shapes.
// Radius is used by circles, HalfExtents by boxes. Polygons are not implemented
// and never collide.
type Shape struct {
	Kind        ShapeKind
	Radius      float32
	HalfExtents Vec2
}

func Circle(radius float32) (Shape, error) {
	s := Shape{Kind: ShapeCircle, Radius: radius}
	return s, s.Validate()
}

func Box(halfExtents Vec2) (Shape, error) {
	s := Shape{Kind: ShapeBox, HalfExtents: halfExtents}
	return s, s.Validate()
}

func Polygon() Shape {
	return Shape{Kind: ShapePolygon}
}

// Validate rejects zero, negative and non-finite dimensions.
func (s Shape) Validate() error {
	switch s.Kind {
	case ShapeCircle:
		if !finite(s.Radius) || s.Radius <= 0 {
			return fmt.Errorf("circle radius %v: %w", s.Radius, ErrDegenerateShape)
		}
	case ShapeBox:
		if !IsFinite(s.HalfExtents) || s.HalfExtents[0] <= 0 || s.HalfExtents[1] <= 0 {
			return fmt.Errorf("box half extents %v: %w", s.HalfExtents, ErrDegenerateShape)
		}
	}
	return nil
}

// Oriented is a shape rotated to a given angle, expressed in local (body) space.
type Oriented struct {
	Shape Shape
	Angle float32
	// Corners of a box in the order (+x,+y), (-x,+y), (+x,-y), (-x,-y).
	Corners [4]Vec2
	// Axes are the rotated half-axes (hx,0) and (0,hy) of a box.
	Axes [2]Vec2
}

// Orient rotates the shape by angle degrees. It has no side effects.
func (s Shape) Orient(angle float32) Oriented {
	o := Oriented{Shape: s, Angle: angle}
	if s.Kind != ShapeBox {
		return o
	}
	hx, hy := s.HalfExtents[0], s.HalfExtents[1]
	local := [4]Vec2{{hx, hy}, {-hx, hy}, {hx, -hy}, {-hx, -hy}}
	for i, c := range local {
		o.Corners[i] = RotateDeg(c, angle)
	}
	o.Axes[0] = RotateDeg(Vec2{hx, 0}, angle)
	o.Axes[1] = RotateDeg(Vec2{0, hy}, angle)
	return o
}

// WorldCorners returns the box corners placed at position.
func (o Oriented) WorldCorners(position Vec2) [4]Vec2 {
	var out [4]Vec2
	for i, c := range o.Corners {
		out[i] = position.Add(c)
	}
	return out
}
