package physics2d

// ContactCounter is a ContactListener that tracks how many contacts each body
// is part of. It is meant for hosts that tint or flag touching bodies.
type ContactCounter struct {
	counts map[BodyHandle]int
	begins int
	ends   int
}

func NewContactCounter() *ContactCounter {
	return &ContactCounter{counts: make(map[BodyHandle]int)}
}

func (c *ContactCounter) BeginContact(ct Contact) {
	c.begins++
	c.counts[ct.BodyA()]++
	if ct.BodyB() != ct.BodyA() {
		c.counts[ct.BodyB()]++
	}
}

func (c *ContactCounter) EndContact(ct Contact) {
	c.ends++
	c.decrement(ct.BodyA())
	if ct.BodyB() != ct.BodyA() {
		c.decrement(ct.BodyB())
	}
}

func (c *ContactCounter) decrement(h BodyHandle) {
	if c.counts[h] <= 1 {
		delete(c.counts, h)
		return
	}
	c.counts[h]--
}

// Count is the number of active contacts involving h.
func (c *ContactCounter) Count(h BodyHandle) int { return c.counts[h] }

func (c *ContactCounter) InContact(h BodyHandle) bool { return c.counts[h] > 0 }

// Total is the number of bodies currently in at least one contact.
func (c *ContactCounter) Total() int { return len(c.counts) }

func (c *ContactCounter) Begins() int { return c.begins }
func (c *ContactCounter) Ends() int   { return c.ends }

func (c *ContactCounter) Reset() {
	clear(c.counts)
	c.begins, c.ends = 0, 0
}
