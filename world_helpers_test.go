package physics2d

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gekko3d/physics2d/geom"
)

type recordingListener struct {
	begins []Contact
	ends   []Contact
	events []string
}

func (r *recordingListener) BeginContact(c Contact) {
	r.begins = append(r.begins, c)
	r.events = append(r.events, fmt.Sprintf("begin %s %s", c.ColliderA, c.ColliderB))
}

func (r *recordingListener) EndContact(c Contact) {
	r.ends = append(r.ends, c)
	r.events = append(r.events, fmt.Sprintf("end %s %s", c.ColliderA, c.ColliderB))
}

func zeroGravityConfig() Config {
	cfg := DefaultConfig()
	cfg.Gravity = geom.Vec2{}
	return cfg
}

func newTestWorld(t *testing.T, cfg Config, opts ...Option) *World {
	t.Helper()
	w, err := NewWorld(cfg, opts...)
	require.NoError(t, err)
	return w
}

func addCircle(t *testing.T, w *World, typ BodyType, pos geom.Vec2, r float32) BodyHandle {
	t.Helper()
	def := NewBodyDef()
	def.Type = typ
	def.Position = pos
	h, err := w.CreateBody(def)
	require.NoError(t, err)
	_, err = w.CreateCollider(h, circleDef(t, r))
	require.NoError(t, err)
	return h
}

func addBox(t *testing.T, w *World, typ BodyType, pos, half geom.Vec2) BodyHandle {
	t.Helper()
	def := NewBodyDef()
	def.Type = typ
	def.Position = pos
	h, err := w.CreateBody(def)
	require.NoError(t, err)
	_, err = w.CreateCollider(h, boxDef(t, half.X(), half.Y()))
	require.NoError(t, err)
	return h
}

func mustBody(t *testing.T, w *World, h BodyHandle) *Body {
	t.Helper()
	b, err := w.Body(h)
	require.NoError(t, err)
	return b
}
