package physics2d

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/gekko3d/physics2d/geom"
)

type BodyType uint8

const (
	Static BodyType = iota
	Kinematic
	Dynamic
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("BodyType(%d)", uint8(t))
	}
}

func (t BodyType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *BodyType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "static":
		*t = Static
	case "kinematic":
		*t = Kinematic
	case "dynamic":
		*t = Dynamic
	default:
		return fmt.Errorf("unknown body type %q", text)
	}
	return nil
}

// Move scales the integrated displacement. Bodies travel half of velocity*dt per step.
const integrationFactor = 0.5

type BodyDef struct {
	Type            BodyType
	Position        geom.Vec2
	LinearVelocity  geom.Vec2
	Angle           float32 // degrees
	AngularVelocity float32 // degrees per second
	Mass            float32
	GravityScale    float32
	UserData        any
}

func NewBodyDef() BodyDef {
	return BodyDef{
		Type:         Dynamic,
		Mass:         1,
		GravityScale: 1,
	}
}

type Body struct {
	ID              uuid.UUID
	Type            BodyType
	Position        geom.Vec2
	LinearVelocity  geom.Vec2
	Angle           float32
	AngularVelocity float32
	Mass            float32
	GravityScale    float32
	UserData        any

	handle       BodyHandle
	colliders    [MaxCollidersPerBody]Collider
	oriented     [MaxCollidersPerBody]geom.Oriented
	colliderLen  int
	aabb         geom.AABB
	hasBounds    bool
	instantiated bool
}

// Init resets the body and copies the definition into it.
func (b *Body) Init(def BodyDef) error {
	*b = Body{handle: b.handle}
	if err := copier.Copy(b, &def); err != nil {
		return fmt.Errorf("failed to copy body definition: %w", err)
	}
	b.ID = uuid.New()
	b.instantiated = true
	b.BuildAABB()
	return nil
}

func (b *Body) Handle() BodyHandle    { return b.handle }
func (b *Body) Instantiated() bool    { return b.instantiated }
func (b *Body) IsStatic() bool        { return b.Type == Static }
func (b *Body) IsDynamic() bool       { return b.Type == Dynamic }
func (b *Body) ColliderCount() int    { return b.colliderLen }
func (b *Body) AABB() geom.AABB       { return b.aabb }
func (b *Body) HasBounds() bool       { return b.hasBounds }
func (b *Body) Colliders() []Collider { return b.colliders[:b.colliderLen] }

// CreateCollider fills the next free slot and refreshes the body's bounds.
func (b *Body) CreateCollider(def ColliderDef) (ColliderHandle, error) {
	if b.colliderLen >= MaxCollidersPerBody {
		return ColliderHandle{}, fmt.Errorf("body %s holds %d colliders: %w", b.ID, b.colliderLen, ErrCapacityExceeded)
	}
	slot := b.colliderLen
	if err := b.colliders[slot].Init(def); err != nil {
		return ColliderHandle{}, err
	}
	b.colliderLen++
	b.BuildAABB()
	return ColliderHandle{Body: b.handle, Slot: uint8(slot)}, nil
}

func (b *Body) collider(slot uint8) (*Collider, bool) {
	if int(slot) >= b.colliderLen {
		return nil, false
	}
	return &b.colliders[slot], true
}

// Oriented returns the shape of a collider as rotated by the last BuildAABB.
// Unused slots report a ShapeNone shape, which never collides.
func (b *Body) Oriented(slot uint8) geom.Oriented {
	if int(slot) >= b.colliderLen {
		return geom.Oriented{}
	}
	return b.oriented[slot]
}

// BuildAABB rotates every collider once, caches the result and merges the
// non-degenerate collider boxes into the body bounds.
func (b *Body) BuildAABB() {
	b.aabb = geom.AABB{TopRight: b.Position, BottomLeft: b.Position}
	b.hasBounds = false
	for i := 0; i < b.colliderLen; i++ {
		c := &b.colliders[i]
		if !c.used {
			continue
		}
		b.oriented[i] = c.Shape.Orient(b.Angle)
		box := geom.FitOriented(b.oriented[i], b.Position)
		if box.IsZero() {
			continue
		}
		if !b.hasBounds {
			b.aabb = box
			b.hasBounds = true
			continue
		}
		b.aabb = b.aabb.Union(box)
	}
}

// Move integrates position and angle. Static bodies never move.
func (b *Body) Move(dt float32) {
	if b.Type == Static {
		return
	}
	b.Position = b.Position.Add(b.LinearVelocity.Mul(dt * integrationFactor))
	b.Angle += b.AngularVelocity * dt * integrationFactor
}

func (b *Body) effectiveMass() float32 {
	if b.Mass == 0 {
		return 1
	}
	return b.Mass
}

func (b *Body) inverseMass() float32 {
	if b.Type != Dynamic {
		return 0
	}
	return 1 / b.effectiveMass()
}

func (b *Body) ApplyForceToCenter(force geom.Vec2) {
	b.LinearVelocity = b.LinearVelocity.Add(force.Mul(b.GravityScale / b.effectiveMass()))
}

// ApplyForceToCorner applies force at offset from the center. The angular part
// uses the rectangle approximation from Inertia and is not a real inertia tensor.
func (b *Body) ApplyForceToCorner(inertia float32, force, offset geom.Vec2) {
	b.ApplyForceToCenter(force)
	if inertia <= 0 {
		return
	}
	torque := geom.Cross(offset, force)
	b.AngularVelocity += mgl32.RadToDeg(torque * b.GravityScale / inertia)
}

// Inertia is width*height^3/12 of the first box collider, 0 otherwise.
func (b *Body) Inertia() float32 {
	for i := 0; i < b.colliderLen; i++ {
		s := b.colliders[i].Shape
		if s.Kind != geom.ShapeBox {
			continue
		}
		w, h := 2*s.HalfExtents[0], 2*s.HalfExtents[1]
		return w * h * h * h / 12
	}
	return 0
}

func (b *Body) SetPosition(p geom.Vec2) {
	b.Position = p
	b.BuildAABB()
}

func (b *Body) SetAngle(deg float32) {
	b.Angle = deg
	b.BuildAABB()
}

func (b *Body) SetLinearVelocity(v geom.Vec2) {
	b.LinearVelocity = v
}

func (b *Body) SetAngularVelocity(deg float32) {
	b.AngularVelocity = deg
}
