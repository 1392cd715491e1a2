package physics2d

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gekko3d/physics2d/geom"
)

type Option func(*World)

func WithLogger(l Logger) Option {
	return func(w *World) { w.logger = loggerOrNop(l) }
}

// WithContactListener adds a listener. Several options fan out in order.
func WithContactListener(l ContactListener) Option {
	return func(w *World) {
		if l != nil {
			w.listeners = append(w.listeners, l)
		}
	}
}

// World owns a fixed pool of bodies and steps them.
// It is not safe for concurrent use: Step needs exclusive access to every body.
type World struct {
	cfg        Config
	gravity    geom.Vec2
	bodies     []Body
	bodyLen    int
	generation uint32
	steps      uint64

	contacts  *ContactManager
	listeners ContactListeners
	logger    Logger
}

func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:        cfg,
		gravity:    cfg.Gravity,
		bodies:     make([]Body, cfg.MaxBodies),
		generation: 1,
		logger:     NewNopLogger(),
	}
	if cfg.Debug {
		w.logger = NewDefaultLogger("physics2d", true)
	}
	for _, opt := range opts {
		opt(w)
	}
	w.contacts = NewContactManager(w, cfg, w.logger)
	w.contacts.SetListener(w.listenerOrNil())
	w.logger.Infof("world created: gravity=%v max_bodies=%d max_contacts=%d policy=%s",
		w.gravity, cfg.MaxBodies, cfg.MaxContacts, cfg.CapacityPolicy)
	return w, nil
}

func (w *World) listenerOrNil() ContactListener {
	switch len(w.listeners) {
	case 0:
		return nil
	case 1:
		return w.listeners[0]
	}
	return w.listeners
}

func (w *World) Config() Config { return w.cfg }

func (w *World) Logger() Logger { return w.logger }

// CreateBody takes the next slot of the pool. The pool never grows.
func (w *World) CreateBody(def BodyDef) (BodyHandle, error) {
	if w.bodyLen >= len(w.bodies) {
		return BodyHandle{}, fmt.Errorf("body pool holds %d bodies: %w", len(w.bodies), ErrCapacityExceeded)
	}
	h := BodyHandle{index: uint32(w.bodyLen), gen: w.generation}
	b := &w.bodies[w.bodyLen]
	b.handle = h
	if err := b.Init(def); err != nil {
		return BodyHandle{}, err
	}
	w.bodyLen++
	w.logger.Debugf("created %s body %s (%s)", b.Type, h, b.ID)
	return h, nil
}

func (w *World) Body(h BodyHandle) (*Body, error) {
	if h.gen == 0 || h.gen != w.generation || int(h.index) >= w.bodyLen {
		return nil, fmt.Errorf("%s: %w", h, ErrInvalidHandle)
	}
	return &w.bodies[h.index], nil
}

// CreateCollider attaches a collider to the body behind h.
func (w *World) CreateCollider(h BodyHandle, def ColliderDef) (ColliderHandle, error) {
	b, err := w.Body(h)
	if err != nil {
		return ColliderHandle{}, err
	}
	return b.CreateCollider(def)
}

func (w *World) Collider(h ColliderHandle) (*Collider, error) {
	b, err := w.Body(h.Body)
	if err != nil {
		return nil, err
	}
	c, ok := b.collider(h.Slot)
	if !ok {
		return nil, fmt.Errorf("%s: %w", h, ErrInvalidHandle)
	}
	return c, nil
}

// EachBody calls fn for every live body in creation order until fn returns false.
func (w *World) EachBody(fn func(h BodyHandle, b *Body) bool) {
	for i := 0; i < w.bodyLen; i++ {
		b := &w.bodies[i]
		if !fn(b.handle, b) {
			return
		}
	}
}

func (w *World) BodyCount() int { return w.bodyLen }

func (w *World) Gravity() geom.Vec2 { return w.gravity }

func (w *World) SetGravity(g geom.Vec2) { w.gravity = g }

// SetContactListener replaces every listener registered so far.
func (w *World) SetContactListener(l ContactListener) {
	w.listeners = nil
	if l != nil {
		w.listeners = ContactListeners{l}
	}
	w.contacts.SetListener(w.listenerOrNil())
}

func (w *World) QuadTree() *QuadTree { return w.contacts.QuadTree() }

func (w *World) ContactManager() *ContactManager { return w.contacts }

func (w *World) Contacts() []Contact { return w.contacts.Contacts() }

func (w *World) Steps() uint64 { return w.steps }

// Step applies gravity to dynamic bodies, moves non-static ones, rebuilds
// their bounds and runs collision detection and resolution.
func (w *World) Step(dt float32) error {
	if dt < 0 || math32.IsNaN(dt) || math32.IsInf(dt, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTimeStep, dt)
	}

	items := make([]QuadItem, 0, w.bodyLen)
	for i := 0; i < w.bodyLen; i++ {
		b := &w.bodies[i]
		if b.Type == Dynamic {
			b.ApplyForceToCenter(w.gravity.Mul(b.effectiveMass() * dt))
		}
		b.Move(dt)
		b.BuildAABB()
		if b.HasBounds() {
			items = append(items, QuadItem{Body: b.handle, Bounds: b.AABB()})
		}
	}

	err := w.contacts.CheckContact(items)
	w.steps++
	if w.logger.DebugEnabled() {
		w.logger.Debugf("step %d: dt=%.4f bodies=%d contacts=%d splits=%d",
			w.steps, dt, w.bodyLen, w.contacts.Count(), w.contacts.QuadTree().SplitCount())
	}
	return err
}

// Reset ends every contact and empties the pool. Handles issued before the
// reset are rejected afterwards.
func (w *World) Reset() {
	w.contacts.Clear()
	for i := 0; i < w.bodyLen; i++ {
		w.bodies[i] = Body{}
	}
	w.bodyLen = 0
	w.generation++
	if w.generation == 0 {
		w.generation = 1
	}
	w.steps = 0
	w.contacts.QuadTree().Reset(geom.AABB{})
	w.logger.Infof("world reset (generation %d)", w.generation)
}
