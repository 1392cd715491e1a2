package physics2d

import (
	"fmt"
	"slices"

	"github.com/gekko3d/physics2d/geom"
)

// Contact is a tracked overlapping collider pair. ColliderA always sorts before ColliderB.
type Contact struct {
	ColliderA ColliderHandle
	ColliderB ColliderHandle
	// MTV carries the contact point in Rows[0] and the overlap that separates A from B in Rows[1].
	MTV geom.Mat22

	updated bool
}

func (c Contact) BodyA() BodyHandle { return c.ColliderA.Body }
func (c Contact) BodyB() BodyHandle { return c.ColliderB.Body }

// Involves reports whether either side belongs to body h.
func (c Contact) Involves(h BodyHandle) bool {
	return c.ColliderA.Body == h || c.ColliderB.Body == h
}

type ContactListener interface {
	BeginContact(c Contact)
	EndContact(c Contact)
}

// ContactListeners fans every event out to each listener in order.
type ContactListeners []ContactListener

func (ls ContactListeners) BeginContact(c Contact) {
	for _, l := range ls {
		if l != nil {
			l.BeginContact(c)
		}
	}
}

func (ls ContactListeners) EndContact(c Contact) {
	for _, l := range ls {
		if l != nil {
			l.EndContact(c)
		}
	}
}

type nopListener struct{}

func (nopListener) BeginContact(Contact) {}
func (nopListener) EndContact(Contact)   {}

// BodyResolver maps handles back to live bodies.
type BodyResolver interface {
	Body(h BodyHandle) (*Body, error)
}

// ContactManager runs the broad and narrow phase each step and keeps the set
// of active contacts. Pairs not confirmed during a step are swept at its end.
type ContactManager struct {
	bodies   BodyResolver
	listener ContactListener
	logger   Logger

	contacts map[pairKey]*Contact
	capacity int
	policy   CapacityPolicy
	dropped  int
	pending  []*Contact

	tree       *QuadTree
	treeBounds *geom.AABB
}

func NewContactManager(bodies BodyResolver, cfg Config, logger Logger) *ContactManager {
	capacity := cfg.MaxContacts
	if capacity <= 0 {
		capacity = DefaultMaxContacts
	}
	m := &ContactManager{
		bodies:     bodies,
		listener:   nopListener{},
		logger:     loggerOrNop(logger),
		contacts:   make(map[pairKey]*Contact),
		capacity:   capacity,
		policy:     cfg.CapacityPolicy,
		tree:       NewQuadTree(0, geom.AABB{}, cfg.QuadTree.MaxObjects, cfg.QuadTree.MaxLevels),
		treeBounds: cfg.QuadTree.Bounds,
	}
	return m
}

func (m *ContactManager) SetListener(l ContactListener) {
	if l == nil {
		l = nopListener{}
	}
	m.listener = l
}

func (m *ContactManager) QuadTree() *QuadTree { return m.tree }

func (m *ContactManager) Count() int { return len(m.contacts) }

// Contacts returns a snapshot of the active contacts ordered by collider pair.
func (m *ContactManager) Contacts() []Contact {
	keys := m.sortedKeys(func(*Contact) bool { return true })
	out := make([]Contact, 0, len(keys))
	for _, k := range keys {
		out = append(out, *m.contacts[k])
	}
	return out
}

// Clear ends every tracked contact.
func (m *ContactManager) Clear() {
	for _, k := range m.sortedKeys(func(*Contact) bool { return true }) {
		c := m.contacts[k]
		delete(m.contacts, k)
		m.listener.EndContact(*c)
	}
}

func (m *ContactManager) sortedKeys(keep func(*Contact) bool) []pairKey {
	keys := make([]pairKey, 0, len(m.contacts))
	for k, c := range m.contacts {
		if keep(c) {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b pairKey) int {
		switch {
		case a.less(b):
			return -1
		case b.less(a):
			return 1
		}
		return 0
	})
	return keys
}

// CheckContact rebuilds the quadtree from items, visits every candidate pair
// and sweeps contacts that were not confirmed. New pairs are admitted after the
// sweep, so slots freed this step are reused. Pairs over capacity are still
// resolved but not tracked. With the fail-fast policy it returns
// ErrCapacityExceeded once the whole pass has run.
func (m *ContactManager) CheckContact(items []QuadItem) error {
	for _, c := range m.contacts {
		c.updated = false
	}
	m.dropped = 0

	m.rebuildTree(items)
	m.tree.Retrieve(m)

	for _, k := range m.sortedKeys(func(c *Contact) bool { return !c.updated }) {
		c := m.contacts[k]
		delete(m.contacts, k)
		m.listener.EndContact(*c)
	}
	m.admitPending()

	if m.dropped == 0 {
		return nil
	}
	if m.policy == DropAndWarn {
		m.logger.Warnf("contact pool full (%d): dropped %d new contacts", m.capacity, m.dropped)
		return nil
	}
	return fmt.Errorf("%d new contacts over limit %d: %w", m.dropped, m.capacity, ErrCapacityExceeded)
}

func (m *ContactManager) rebuildTree(items []QuadItem) {
	var bounds geom.AABB
	switch {
	case m.treeBounds != nil:
		bounds = *m.treeBounds
	case len(items) > 0:
		bounds = items[0].Bounds
		for _, it := range items[1:] {
			bounds = bounds.Union(it.Bounds)
		}
	}
	m.tree.Reset(bounds)
	for _, it := range items {
		m.tree.Insert(it)
	}
}

func (m *ContactManager) CheckContactInsideList(items []QuadItem) {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			m.checkPair(items[i].Body, items[j].Body)
		}
	}
}

func (m *ContactManager) CheckContactBetweenList(items, descendants []QuadItem) {
	for _, a := range items {
		for _, b := range descendants {
			m.checkPair(a.Body, b.Body)
		}
	}
}

// CheckAABBContact is the coarse reject: closed interval overlap of the body bounds.
func (m *ContactManager) CheckAABBContact(a, b *Body) bool {
	if !a.HasBounds() || !b.HasBounds() {
		return false
	}
	return a.AABB().Overlaps(b.AABB())
}

// CheckSATContact runs the narrow phase between one collider of a and one of b,
// using the orientation cached by the last BuildAABB. A zero result means no overlap.
func (m *ContactManager) CheckSATContact(a *Body, slotA uint8, b *Body, slotB uint8) geom.Mat22 {
	if int(slotA) >= a.colliderLen || int(slotB) >= b.colliderLen {
		return geom.Mat22{}
	}
	return geom.CollideOriented(a.Oriented(slotA), a.Position, b.Oriented(slotB), b.Position)
}

func (m *ContactManager) checkPair(ha, hb BodyHandle) {
	if ha == hb {
		return
	}
	if hb.less(ha) {
		ha, hb = hb, ha
	}
	a, err := m.bodies.Body(ha)
	if err != nil {
		return
	}
	b, err := m.bodies.Body(hb)
	if err != nil {
		return
	}
	if !m.CheckAABBContact(a, b) {
		return
	}

	for i := 0; i < a.colliderLen; i++ {
		for j := 0; j < b.colliderLen; j++ {
			ca := ColliderHandle{Body: ha, Slot: uint8(i)}
			cb := ColliderHandle{Body: hb, Slot: uint8(j)}
			mtv := m.CheckSATContact(a, ca.Slot, b, cb.Slot)
			if mtv.IsZero() {
				continue
			}
			m.pushContact(makePairKey(ca, cb), mtv, a, b)
		}
	}
}

// pushContact confirms the contact for key or queues a new one, then resolves
// the pair. a and b must be the bodies of key.a and key.b, in that order.
func (m *ContactManager) pushContact(key pairKey, mtv geom.Mat22, a, b *Body) {
	c, ok := m.contacts[key]
	if ok {
		c.updated = true
		c.MTV = mtv
	} else {
		c = &Contact{ColliderA: key.a, ColliderB: key.b, MTV: mtv, updated: true}
		m.pending = append(m.pending, c)
	}
	resolveContact(c, a, b)
}

func (m *ContactManager) admitPending() {
	for i, c := range m.pending {
		m.pending[i] = nil
		if len(m.contacts) >= m.capacity {
			m.dropped++
			continue
		}
		m.contacts[makePairKey(c.ColliderA, c.ColliderB)] = c
		m.listener.BeginContact(*c)
	}
	m.pending = m.pending[:0]
}
