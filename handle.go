package physics2d

import "fmt"

// BodyHandle is a generation-checked index into the world's body pool.
// The zero value never refers to a live body.
type BodyHandle struct {
	index uint32
	gen   uint32
}

func (h BodyHandle) Index() int { return int(h.index) }

func (h BodyHandle) IsZero() bool { return h.gen == 0 }

func (h BodyHandle) String() string {
	return fmt.Sprintf("body#%d.%d", h.index, h.gen)
}

func (h BodyHandle) less(o BodyHandle) bool {
	if h.index != o.index {
		return h.index < o.index
	}
	return h.gen < o.gen
}

// ColliderHandle identifies one collider slot on a body.
type ColliderHandle struct {
	Body BodyHandle
	Slot uint8
}

func (h ColliderHandle) String() string {
	return fmt.Sprintf("%s/%d", h.Body, h.Slot)
}

func (h ColliderHandle) less(o ColliderHandle) bool {
	if h.Body != o.Body {
		return h.Body.less(o.Body)
	}
	return h.Slot < o.Slot
}

// pairKey is an unordered collider pair in canonical order.
type pairKey struct {
	a, b ColliderHandle
}

func makePairKey(a, b ColliderHandle) pairKey {
	if b.less(a) {
		return pairKey{a: b, b: a}
	}
	return pairKey{a: a, b: b}
}

func (k pairKey) less(o pairKey) bool {
	if k.a != o.a {
		return k.a.less(o.a)
	}
	return k.b.less(o.b)
}
