package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalized(t *testing.T) {
	assert.Equal(t, Vec2{}, Normalized(Vec2{}), "zero vector must come back unchanged")

	n := Normalized(V(3, 4))
	assert.InDelta(t, 0.6, n.X(), 1e-6)
	assert.InDelta(t, 0.8, n.Y(), 1e-6)
	assert.InDelta(t, 1, n.Len(), 1e-6)
}

func TestRotate(t *testing.T) {
	r := RotateDeg(V(1, 0), 90)
	assert.InDelta(t, 0, r.X(), 1e-6)
	assert.InDelta(t, 1, r.Y(), 1e-6)

	r = Rotate(V(0, 2), mgl32.DegToRad(180))
	assert.InDelta(t, 0, r.X(), 1e-5)
	assert.InDelta(t, -2, r.Y(), 1e-5)
}

func TestLerpAndDiv(t *testing.T) {
	assert.Equal(t, V(5, 10), Lerp(V(0, 0), V(10, 20), 0.5))
	assert.Equal(t, V(2, 4), Div(V(2, 4), 0), "zero divisor is treated as 1")
	assert.Equal(t, V(1, 2), Div(V(2, 4), 2))
}

func TestOrderingPredicates(t *testing.T) {
	assert.True(t, Less(V(0, 0), V(1, 1)))
	assert.False(t, Less(V(0, 2), V(1, 1)), "both components must be smaller")
	assert.True(t, Greater(V(2, 2), V(1, 1)))
	assert.False(t, Greater(V(1, 2), V(1, 1)))
	assert.True(t, LessEq(V(1, 1), V(1, 1)))
	assert.True(t, GreaterEq(V(1, 1), V(1, 1)))
}

func TestCrossAndAngle(t *testing.T) {
	assert.Equal(t, float32(1), Cross(V(1, 0), V(0, 1)))
	assert.Equal(t, float32(-1), Cross(V(0, 1), V(1, 0)))
	assert.InDelta(t, mgl32.DegToRad(90), AngleBetween(V(1, 0), V(0, 3)), 1e-6)
	assert.Equal(t, float32(0), AngleBetween(Vec2{}, V(1, 0)))
}

func TestMat22(t *testing.T) {
	m := NewMat22(V(1, 2), V(3, 4))
	assert.InDelta(t, -2, m.Det(), 1e-6)

	inv, err := m.Invert()
	require.NoError(t, err)
	id := m.Mul(inv)
	assert.InDelta(t, 1, id.Rows[0].X(), 1e-5)
	assert.InDelta(t, 0, id.Rows[0].Y(), 1e-5)
	assert.InDelta(t, 0, id.Rows[1].X(), 1e-5)
	assert.InDelta(t, 1, id.Rows[1].Y(), 1e-5)

	assert.Equal(t, V(5, 11), m.MulVec(V(1, 2)))
	assert.Equal(t, NewMat22(V(2, 4), V(6, 8)), m.Scale(2))
	assert.Equal(t, NewMat22(V(2, 4), V(6, 8)), m.Add(m))
	assert.True(t, m.Sub(m).IsZero())

	_, err = NewMat22(V(1, 2), V(2, 4)).Invert()
	assert.ErrorIs(t, err, ErrSingularMatrix)
}

func TestPoseTransform(t *testing.T) {
	m := PoseTransform(Pose{Position: V(10, 0), Angle: 90})
	p := TransformPoint(m, V(1, 0))
	assert.InDelta(t, 10, p.X(), 1e-5)
	assert.InDelta(t, 1, p.Y(), 1e-5)
}
