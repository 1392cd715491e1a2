package physics2d

import "github.com/gekko3d/physics2d/geom"

// ApplyExplosion pushes every non-static body whose center lies strictly
// inside radius away from center with a force of the given power.
// Bodies exactly at the center have no direction and are left alone.
// It returns the number of bodies affected.
func (w *World) ApplyExplosion(center geom.Vec2, radius, power float32) int {
	if radius <= 0 {
		return 0
	}
	n := 0
	w.EachBody(func(_ BodyHandle, b *Body) bool {
		if b.Type == Static {
			return true
		}
		d := geom.Distance(b.Position, center)
		if d == 0 || d >= radius {
			return true
		}
		dir := geom.Normalized(b.Position.Sub(center))
		b.ApplyForceToCenter(dir.Mul(power))
		n++
		return true
	})
	return n
}
