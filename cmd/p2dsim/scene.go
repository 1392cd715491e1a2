package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gekko3d/physics2d"
	"github.com/gekko3d/physics2d/geom"
)

// Scene is the YAML description of the bodies to simulate.
type Scene struct {
	Gravity    *geom.Vec2       `yaml:"gravity,omitempty"`
	Bodies     []SceneBody      `yaml:"bodies"`
	Explosions []SceneExplosion `yaml:"explosions,omitempty"`
}

type SceneBody struct {
	Name string `yaml:"name"`
	// Type defaults to dynamic when omitted.
	Type            *physics2d.BodyType `yaml:"type,omitempty"`
	Position        geom.Vec2           `yaml:"position"`
	Velocity        geom.Vec2           `yaml:"velocity"`
	Angle           float32             `yaml:"angle"`
	AngularVelocity float32             `yaml:"angular_velocity"`
	Mass            *float32            `yaml:"mass,omitempty"`
	GravityScale    *float32            `yaml:"gravity_scale,omitempty"`
	Colliders       []SceneCollider     `yaml:"colliders"`
}

type SceneCollider struct {
	Shape       string    `yaml:"shape"`
	Radius      float32   `yaml:"radius,omitempty"`
	HalfExtents geom.Vec2 `yaml:"half_extents,omitempty"`
	Sensor      bool      `yaml:"sensor,omitempty"`
	Restitution float32   `yaml:"restitution,omitempty"`
}

// SceneExplosion fires World.ApplyExplosion before the given step.
type SceneExplosion struct {
	Step   int       `yaml:"step"`
	Center geom.Vec2 `yaml:"center"`
	Radius float32   `yaml:"radius"`
	Power  float32   `yaml:"power"`
}

func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", path, err)
	}
	return &s, nil
}

func (c SceneCollider) shape() (geom.Shape, error) {
	switch strings.ToLower(c.Shape) {
	case "circle":
		return geom.Circle(c.Radius)
	case "box":
		return geom.Box(c.HalfExtents)
	case "polygon":
		return geom.Polygon(), nil
	}
	return geom.Shape{}, fmt.Errorf("unknown shape %q", c.Shape)
}

func (b SceneBody) def() physics2d.BodyDef {
	def := physics2d.NewBodyDef()
	if b.Type != nil {
		def.Type = *b.Type
	}
	def.Position = b.Position
	def.LinearVelocity = b.Velocity
	def.Angle = b.Angle
	def.AngularVelocity = b.AngularVelocity
	if b.Mass != nil {
		def.Mass = *b.Mass
	}
	if b.GravityScale != nil {
		def.GravityScale = *b.GravityScale
	}
	def.UserData = b.Name
	return def
}

// Populate creates every body of the scene. It returns the handles by name.
func (s *Scene) Populate(w *physics2d.World) (map[string]physics2d.BodyHandle, error) {
	if s.Gravity != nil {
		w.SetGravity(*s.Gravity)
	}
	handles := make(map[string]physics2d.BodyHandle, len(s.Bodies))
	for i, sb := range s.Bodies {
		name := sb.Name
		if name == "" {
			name = fmt.Sprintf("body%d", i)
			sb.Name = name
		}
		if _, dup := handles[name]; dup {
			return nil, fmt.Errorf("duplicate body name %q", name)
		}
		h, err := w.CreateBody(sb.def())
		if err != nil {
			return nil, fmt.Errorf("body %q: %w", name, err)
		}
		for j, sc := range sb.Colliders {
			shape, err := sc.shape()
			if err != nil {
				return nil, fmt.Errorf("body %q collider %d: %w", name, j, err)
			}
			_, err = w.CreateCollider(h, physics2d.ColliderDef{
				Shape:       shape,
				IsSensor:    sc.Sensor,
				Restitution: sc.Restitution,
				UserData:    fmt.Sprintf("%s/%d", name, j),
			})
			if err != nil {
				return nil, fmt.Errorf("body %q collider %d: %w", name, j, err)
			}
		}
		handles[name] = h
	}
	return handles, nil
}
