package geom

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrSingularMatrix = errors.New("geom: singular matrix")

// Mat22 is a 2x2 matrix stored as two row vectors.
//
// The narrow phase also uses it to carry a minimum translation vector:
// Rows[0] holds the contact point and Rows[1] the overlap vector.
type Mat22 struct {
	Rows [2]Vec2
}

func NewMat22(r0, r1 Vec2) Mat22 {
	return Mat22{Rows: [2]Vec2{r0, r1}}
}

// Mat2 converts m to the column-major mathgl representation.
func (m Mat22) Mat2() mgl32.Mat2 {
	return mgl32.Mat2FromRows(m.Rows[0], m.Rows[1])
}

func mat22FromMat2(m mgl32.Mat2) Mat22 {
	return NewMat22(m.Row(0), m.Row(1))
}

func (m Mat22) Add(o Mat22) Mat22 {
	return NewMat22(m.Rows[0].Add(o.Rows[0]), m.Rows[1].Add(o.Rows[1]))
}

func (m Mat22) Sub(o Mat22) Mat22 {
	return NewMat22(m.Rows[0].Sub(o.Rows[0]), m.Rows[1].Sub(o.Rows[1]))
}

func (m Mat22) Mul(o Mat22) Mat22 {
	return mat22FromMat2(m.Mat2().Mul2(o.Mat2()))
}

func (m Mat22) MulVec(v Vec2) Vec2 {
	return m.Mat2().Mul2x1(v)
}

func (m Mat22) Scale(f float32) Mat22 {
	return NewMat22(m.Rows[0].Mul(f), m.Rows[1].Mul(f))
}

func (m Mat22) Det() float32 {
	return m.Mat2().Det()
}

func (m Mat22) Invert() (Mat22, error) {
	if m.Det() == 0 {
		return Mat22{}, ErrSingularMatrix
	}
	return mat22FromMat2(m.Mat2().Inv()), nil
}

func (m Mat22) IsZero() bool {
	return m == Mat22{}
}

// ContactPoint returns Rows[0] of an MTV.
func (m Mat22) ContactPoint() Vec2 {
	return m.Rows[0]
}

// Overlap returns Rows[1] of an MTV.
func (m Mat22) Overlap() Vec2 {
	return m.Rows[1]
}

// Mat33 is a 3x3 matrix, used here for homogeneous 2D transforms.
type Mat33 = mgl32.Mat3

// PoseTransform returns the homogeneous transform translate(position) * rotate(angle).
func PoseTransform(p Pose) Mat33 {
	return mgl32.Translate2D(p.Position[0], p.Position[1]).Mul3(mgl32.HomogRotate2D(mgl32.DegToRad(p.Angle)))
}

// TransformPoint applies a homogeneous transform to a point.
func TransformPoint(m Mat33, p Vec2) Vec2 {
	return m.Mul3x1(p.Vec3(1)).Vec2()
}
