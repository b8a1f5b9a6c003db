package vector

import (
	"fmt"
	"math"
)

// SingularThreshold is the fixed, never-raised bound below which a 3x3
// matrix is treated as singular.
//
// A disc-shaped rigid body's inertia tensor determinant naturally lands
// around 1e-20 to 1e-24 for coin-sized masses and radii (I_xx*I_yy*I_zz
// with each factor on the order of 1e-7 to 1e-8). That is a physically
// valid, invertible matrix, not a singular one. The threshold below is
// therefore set far beneath that range, so it only trips on genuine
// degeneracies (zero thickness, zero mass, a truly rank-deficient
// matrix) and never on small-but-legitimate physical magnitudes.
const SingularThreshold = 1e-30

// Mat3 is a row-major 3x3 matrix.
type Mat3 struct {
	m [9]float64
}

// NewMat3 builds a matrix from nine row-major components.
func NewMat3(m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) Mat3 {
	return Mat3{m: [9]float64{m00, m01, m02, m10, m11, m12, m20, m21, m22}}
}

// Diag builds a diagonal matrix.
func Diag(x, y, z float64) Mat3 {
	return NewMat3(
		x, 0, 0,
		0, y, 0,
		0, 0, z,
	)
}

// Identity3 is the 3x3 identity matrix.
var Identity3 = Diag(1, 1, 1)

// At returns the component at row r, column c (0-indexed).
func (m Mat3) At(r, c int) float64 {
	return m.m[r*3+c]
}

func (m Mat3) with(r, c int, v float64) Mat3 {
	m.m[r*3+c] = v
	return m
}

func (m Mat3) Add(o Mat3) Mat3 {
	var out Mat3
	for i := range m.m {
		out.m[i] = m.m[i] + o.m[i]
	}
	return out
}

func (m Mat3) Sub(o Mat3) Mat3 {
	var out Mat3
	for i := range m.m {
		out.m[i] = m.m[i] - o.m[i]
	}
	return out
}

func (m Mat3) Scale(s float64) Mat3 {
	var out Mat3
	for i := range m.m {
		out.m[i] = m.m[i] * s
	}
	return out
}

// Mul multiplies m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m.At(r, k) * o.At(k, c)
			}
			out = out.with(r, c, sum)
		}
	}
	return out
}

// MulVec3 applies m to a column vector.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

func (m Mat3) Transpose() Mat3 {
	return NewMat3(
		m.At(0, 0), m.At(1, 0), m.At(2, 0),
		m.At(0, 1), m.At(1, 1), m.At(2, 1),
		m.At(0, 2), m.At(1, 2), m.At(2, 2),
	)
}

func (m Mat3) Trace() float64 {
	return m.At(0, 0) + m.At(1, 1) + m.At(2, 2)
}

func (m Mat3) Determinant() float64 {
	a, b, c := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	d, e, f := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	g, h, i := m.At(2, 0), m.At(2, 1), m.At(2, 2)

	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// Inverse returns the matrix inverse, failing only when the determinant
// magnitude falls below SingularThreshold. See SingularThreshold's doc
// for why that bound is set so low.
func (m Mat3) Inverse() (Mat3, error) {
	det := m.Determinant()
	if absF(det) < SingularThreshold {
		return Mat3{}, fmt.Errorf("vector: matrix is singular (det=%g)", det)
	}

	a, b, c := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	d, e, f := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	g, h, i := m.At(2, 0), m.At(2, 1), m.At(2, 2)

	invDet := 1.0 / det
	return NewMat3(
		(e*i-f*h)*invDet, (c*h-b*i)*invDet, (b*f-c*e)*invDet,
		(f*g-d*i)*invDet, (a*i-c*g)*invDet, (c*d-a*f)*invDet,
		(d*h-e*g)*invDet, (b*g-a*h)*invDet, (a*e-b*d)*invDet,
	), nil
}

// Skew returns the skew-symmetric cross-product matrix of v, such that
// Skew(v).MulVec3(w) == v.Cross(w).
func Skew(v Vec3) Mat3 {
	return NewMat3(
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	)
}

// RotationX returns the matrix rotating by angle radians about +X.
func RotationX(angle float64) Mat3 {
	c, s := cosSin(angle)
	return NewMat3(
		1, 0, 0,
		0, c, -s,
		0, s, c,
	)
}

// RotationY returns the matrix rotating by angle radians about +Y.
func RotationY(angle float64) Mat3 {
	c, s := cosSin(angle)
	return NewMat3(
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	)
}

// RotationZ returns the matrix rotating by angle radians about +Z.
func RotationZ(angle float64) Mat3 {
	c, s := cosSin(angle)
	return NewMat3(
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	)
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func cosSin(angle float64) (float64, float64) {
	return math.Cos(angle), math.Sin(angle)
}

func (m Mat3) String() string {
	return fmt.Sprintf("[%.6g %.6g %.6g; %.6g %.6g %.6g; %.6g %.6g %.6g]",
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(1, 0), m.At(1, 1), m.At(1, 2),
		m.At(2, 0), m.At(2, 1), m.At(2, 2))
}
