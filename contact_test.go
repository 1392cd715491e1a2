package physics2d

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/physics2d/geom"
)

const testDt = float32(1.0 / 60.0)

func TestContactManager_Lifecycle(t *testing.T) {
	rec := &recordingListener{}
	w := newTestWorld(t, zeroGravityConfig(), WithContactListener(rec))
	a := addCircle(t, w, Kinematic, geom.V(0, 0), 10)
	b := addCircle(t, w, Kinematic, geom.V(50, 0), 10)

	require.NoError(t, w.Step(testDt))
	assert.Empty(t, rec.begins)

	mustBody(t, w, b).SetPosition(geom.V(15, 0))
	for i := 0; i < 5; i++ {
		require.NoError(t, w.Step(testDt))
		assert.Equal(t, 1, w.ContactManager().Count())
	}
	require.Len(t, rec.begins, 1)
	assert.Empty(t, rec.ends)
	assert.Equal(t, a, rec.begins[0].BodyA())
	assert.Equal(t, b, rec.begins[0].BodyB())

	mustBody(t, w, b).SetPosition(geom.V(50, 0))
	require.NoError(t, w.Step(testDt))
	require.NoError(t, w.Step(testDt))

	assert.Len(t, rec.begins, 1)
	assert.Len(t, rec.ends, 1)
	assert.Zero(t, w.ContactManager().Count())
	assert.Equal(t, rec.begins[0].ColliderA, rec.ends[0].ColliderA)
	assert.Equal(t, rec.begins[0].ColliderB, rec.ends[0].ColliderB)
}

func TestContactManager_MTVSeparatesA(t *testing.T) {
	w := newTestWorld(t, zeroGravityConfig())
	addCircle(t, w, Kinematic, geom.V(0, 0), 10)
	addCircle(t, w, Kinematic, geom.V(15, 0), 10)

	require.NoError(t, w.Step(testDt))
	contacts := w.Contacts()
	require.Len(t, contacts, 1)
	overlap := contacts[0].MTV.Overlap()
	assert.InDelta(t, -5, overlap.X(), 1e-4)
	assert.InDelta(t, 0, overlap.Y(), 1e-4)
	assert.InDelta(t, 10, contacts[0].MTV.ContactPoint().X(), 1e-4)
}

func TestContactManager_EndsWhenOnlyBoundsOverlap(t *testing.T) {
	rec := &recordingListener{}
	w := newTestWorld(t, zeroGravityConfig(), WithContactListener(rec))
	addCircle(t, w, Kinematic, geom.V(0, 0), 10)
	b := addCircle(t, w, Kinematic, geom.V(14, 14), 10)

	require.NoError(t, w.Step(testDt))
	require.Len(t, rec.begins, 1)

	// Bounds still overlap on the diagonal, the circles do not.
	mustBody(t, w, b).SetPosition(geom.V(15, 15))
	a, _ := w.Body(rec.begins[0].BodyA())
	require.True(t, w.ContactManager().CheckAABBContact(a, mustBody(t, w, b)))

	require.NoError(t, w.Step(testDt))
	assert.Len(t, rec.ends, 1)
	assert.Zero(t, w.ContactManager().Count())
}

func TestContactManager_SeparatedBoxes(t *testing.T) {
	w := newTestWorld(t, zeroGravityConfig())
	ha := addBox(t, w, Static, geom.V(0, 0), geom.V(50, 50))
	hb := addBox(t, w, Static, geom.V(500, 500), geom.V(50, 50))
	a, b := mustBody(t, w, ha), mustBody(t, w, hb)

	cm := w.ContactManager()
	assert.False(t, cm.CheckAABBContact(a, b))
	assert.True(t, cm.CheckSATContact(a, 0, b, 0).IsZero())
	assert.True(t, cm.CheckSATContact(a, 3, b, 0).IsZero(), "unused slot never collides")

	require.NoError(t, w.Step(testDt))
	assert.Zero(t, cm.Count())
}

func TestContactManager_SensorOnlyReports(t *testing.T) {
	rec := &recordingListener{}
	w := newTestWorld(t, zeroGravityConfig(), WithContactListener(rec))
	addBox(t, w, Static, geom.V(0, 0), geom.V(50, 50))

	def := NewBodyDef()
	def.Position = geom.V(0, 55)
	def.LinearVelocity = geom.V(0, -10)
	h, err := w.CreateBody(def)
	require.NoError(t, err)
	sensor := circleDef(t, 10)
	sensor.IsSensor = true
	_, err = w.CreateCollider(h, sensor)
	require.NoError(t, err)

	require.NoError(t, w.Step(testDt))
	require.Len(t, rec.begins, 1)

	body := mustBody(t, w, h)
	assert.InDelta(t, 55-10*testDt/2, body.Position.Y(), 1e-4, "no positional correction")
	assert.Equal(t, geom.V(0, -10), body.LinearVelocity, "no velocity response")
}

func TestContactManager_StaticAndKinematicUntouched(t *testing.T) {
	w := newTestWorld(t, zeroGravityConfig())
	hs := addBox(t, w, Static, geom.V(0, 0), geom.V(50, 50))
	hk := addCircle(t, w, Kinematic, geom.V(0, 55), 10)

	require.NoError(t, w.Step(testDt))
	require.Equal(t, 1, w.ContactManager().Count())
	assert.Equal(t, geom.V(0, 0), mustBody(t, w, hs).Position)
	assert.Equal(t, geom.V(0, 55), mustBody(t, w, hk).Position)
}

func TestContactManager_CapacityPolicies(t *testing.T) {
	setup := func(t *testing.T, policy CapacityPolicy, logger Logger) *World {
		cfg := zeroGravityConfig()
		cfg.MaxContacts = 1
		cfg.CapacityPolicy = policy
		w := newTestWorld(t, cfg, WithLogger(logger))
		for i := 0; i < 3; i++ {
			addCircle(t, w, Kinematic, geom.V(float32(i), 0), 10)
		}
		return w
	}

	t.Run("fail fast", func(t *testing.T) {
		w := setup(t, FailFast, NewNopLogger())
		err := w.Step(testDt)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, 1, w.ContactManager().Count())
		assert.Equal(t, uint64(1), w.Steps(), "step still completes")
	})

	t.Run("drop and warn", func(t *testing.T) {
		var out, errw bytes.Buffer
		w := setup(t, DropAndWarn, NewWriterLogger("test", false, &out, &errw))
		assert.NoError(t, w.Step(testDt))
		assert.Equal(t, 1, w.ContactManager().Count())
		assert.Contains(t, errw.String(), "WARN")
		assert.Contains(t, errw.String(), "dropped 2")
	})

	t.Run("dropped pairs are still resolved", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxContacts = 1
		cfg.CapacityPolicy = DropAndWarn
		w := newTestWorld(t, cfg)
		addBox(t, w, Static, geom.V(0, 0), geom.V(500, 10))
		left := addCircle(t, w, Dynamic, geom.V(-100, 20), 10)
		right := addCircle(t, w, Dynamic, geom.V(100, 20), 10)

		for i := 0; i < 600; i++ {
			require.NoError(t, w.Step(testDt))
		}
		assert.Equal(t, 1, w.ContactManager().Count())
		assert.InDelta(t, 20, mustBody(t, w, left).Position.Y(), 0.05)
		assert.InDelta(t, 20, mustBody(t, w, right).Position.Y(), 0.05)
	})

	t.Run("slot freed in the same step is reused", func(t *testing.T) {
		rec := &recordingListener{}
		var out, errw bytes.Buffer
		cfg := zeroGravityConfig()
		cfg.MaxContacts = 1
		cfg.CapacityPolicy = DropAndWarn
		w := newTestWorld(t, cfg, WithContactListener(rec), WithLogger(NewWriterLogger("test", false, &out, &errw)))
		a := addCircle(t, w, Kinematic, geom.V(0, 0), 10)
		b := addCircle(t, w, Kinematic, geom.V(5, 0), 10)
		c := addCircle(t, w, Kinematic, geom.V(500, 0), 10)

		require.NoError(t, w.Step(testDt))
		require.Len(t, rec.begins, 1)

		mustBody(t, w, b).SetPosition(geom.V(1000, 0))
		mustBody(t, w, c).SetPosition(geom.V(5, 0))
		require.NoError(t, w.Step(testDt))

		require.Len(t, rec.ends, 1)
		require.Len(t, rec.begins, 2)
		assert.True(t, rec.begins[1].Involves(a))
		assert.True(t, rec.begins[1].Involves(c))
		assert.Equal(t, 1, w.ContactManager().Count())
		assert.Empty(t, errw.String())
	})
}

func TestContactManager_EndOrderIsSorted(t *testing.T) {
	rec := &recordingListener{}
	w := newTestWorld(t, zeroGravityConfig(), WithContactListener(rec))
	var hs []BodyHandle
	for i := 0; i < 4; i++ {
		hs = append(hs, addCircle(t, w, Kinematic, geom.V(float32(i)*5, 0), 10))
	}
	require.NoError(t, w.Step(testDt))
	require.Len(t, rec.begins, 6)

	for i, h := range hs {
		mustBody(t, w, h).SetPosition(geom.V(float32(i)*100, 0))
	}
	require.NoError(t, w.Step(testDt))
	require.Len(t, rec.ends, 6)

	sorted := slices.IsSortedFunc(rec.ends, func(a, b Contact) int {
		ka, kb := makePairKey(a.ColliderA, a.ColliderB), makePairKey(b.ColliderA, b.ColliderB)
		switch {
		case ka.less(kb):
			return -1
		case kb.less(ka):
			return 1
		}
		return 0
	})
	assert.True(t, sorted)
}

func TestContactManager_ClearEndsEverything(t *testing.T) {
	counter := NewContactCounter()
	w := newTestWorld(t, zeroGravityConfig(), WithContactListener(counter))
	addCircle(t, w, Kinematic, geom.V(0, 0), 10)
	addCircle(t, w, Kinematic, geom.V(5, 0), 10)
	require.NoError(t, w.Step(testDt))
	require.Equal(t, 2, counter.Total())

	w.ContactManager().Clear()
	assert.Zero(t, w.ContactManager().Count())
	assert.Zero(t, counter.Total())
	assert.Equal(t, 1, counter.Ends())
}

func TestContactListeners_FanOut(t *testing.T) {
	first, second := &recordingListener{}, &recordingListener{}
	ls := ContactListeners{first, nil, second}
	c := Contact{ColliderA: ColliderHandle{Body: BodyHandle{index: 0, gen: 1}}}
	ls.BeginContact(c)
	ls.EndContact(c)
	assert.Len(t, first.events, 2)
	assert.Equal(t, first.events, second.events)
}
