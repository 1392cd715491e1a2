package physics2d

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gekko3d/physics2d/geom"
)

type ColliderDef struct {
	Shape       geom.Shape
	IsSensor    bool
	Restitution float32
	UserData    any
}

// Collider attaches a shape to a body. It is owned by the body's fixed slot array.
type Collider struct {
	Shape       geom.Shape
	IsSensor    bool
	Restitution float32
	UserData    any

	used bool
}

func (c *Collider) Init(def ColliderDef) error {
	if def.Shape.Kind == geom.ShapeNone {
		return fmt.Errorf("collider without shape: %w", ErrDegenerateShape)
	}
	if err := def.Shape.Validate(); err != nil {
		return fmt.Errorf("collider %s: %w", def.Shape.Kind, err)
	}
	r := def.Restitution
	if math32.IsNaN(r) {
		r = 0
	}
	*c = Collider{
		Shape:       def.Shape,
		IsSensor:    def.IsSensor,
		Restitution: math32.Max(0, math32.Min(1, r)),
		UserData:    def.UserData,
		used:        true,
	}
	return nil
}

func (c *Collider) InUse() bool { return c.used }

// GetAABB fits the collider's shape at the given pose. Angle is in degrees.
func (c *Collider) GetAABB(position geom.Vec2, angle float32) geom.AABB {
	return geom.FitShape(c.Shape, geom.Pose{Position: position, Angle: angle})
}
