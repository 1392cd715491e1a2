package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec2 is a 2D vector in world units.
type Vec2 = mgl32.Vec2

func V(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Normalized returns v scaled to unit length. A zero vector is returned unchanged.
func Normalized(v Vec2) Vec2 {
	mag := v.Len()
	if mag == 0 {
		return v
	}
	return Vec2{v[0] / mag, v[1] / mag}
}

// Rotate rotates v counter-clockwise by angle radians.
func Rotate(v Vec2, angle float32) Vec2 {
	return mgl32.Rotate2D(angle).Mul2x1(v)
}

// RotateDeg rotates v counter-clockwise by angle degrees.
func RotateDeg(v Vec2, angle float32) Vec2 {
	return Rotate(v, mgl32.DegToRad(angle))
}

func Lerp(a, b Vec2, t float32) Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// Div divides v by f. A zero divisor is treated as 1.
func Div(v Vec2, f float32) Vec2 {
	if f == 0 {
		f = 1
	}
	return Vec2{v[0] / f, v[1] / f}
}

// Cross returns the z component of the 3D cross product of a and b.
func Cross(a, b Vec2) float32 {
	return a[0]*b[1] - a[1]*b[0]
}

func Distance(a, b Vec2) float32 {
	return a.Sub(b).Len()
}

// AngleBetween returns the unsigned angle in radians between a and b, or 0 if either is zero.
func AngleBetween(a, b Vec2) float32 {
	m := a.Len() * b.Len()
	if m == 0 {
		return 0
	}
	c := a.Dot(b) / m
	return math32.Acos(mgl32.Clamp(c, -1, 1))
}

// Less reports whether both components of a are strictly less than b.
// This is a point-in-box predicate, not a total order.
func Less(a, b Vec2) bool {
	return a[0] < b[0] && a[1] < b[1]
}

// Greater reports whether both components of a are strictly greater than b.
func Greater(a, b Vec2) bool {
	return a[0] > b[0] && a[1] > b[1]
}

func LessEq(a, b Vec2) bool {
	return a[0] <= b[0] && a[1] <= b[1]
}

func GreaterEq(a, b Vec2) bool {
	return a[0] >= b[0] && a[1] >= b[1]
}

// Perp returns v rotated by +90 degrees.
func Perp(v Vec2) Vec2 {
	return Vec2{-v[1], v[0]}
}

// IsFinite reports whether both components are neither NaN nor infinite.
func IsFinite(v Vec2) bool {
	return finite(v[0]) && finite(v[1])
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
