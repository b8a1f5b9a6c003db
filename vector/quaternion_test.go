package vector

import (
	"math"
	"testing"
)

func TestQuaternion_NormalizeIdentityOnZero(t *testing.T) {
	got := Quaternion{}.Normalize()
	if got != Identity {
		t.Errorf("Normalize(zero) = %v, want Identity", got)
	}
}

func TestQuaternion_NormalizeCanonicalizesSign(t *testing.T) {
	q := Quaternion{W: -1, X: 0, Y: 0, Z: 0}
	got := q.Normalize()
	if got.W < 0 {
		t.Errorf("Normalize() did not canonicalize sign: %v", got)
	}
}

func TestQuaternion_NormalizeSnapsNearZero(t *testing.T) {
	q := Quaternion{W: 1, X: 1e-9, Y: 0, Z: 0}
	got := q.Normalize()
	if got.X != 0 {
		t.Errorf("Normalize() did not snap near-zero component: %v", got)
	}
}

func TestQuaternion_InverseNullOnSmallMagnitude(t *testing.T) {
	q := Quaternion{W: 1e-4, X: 0, Y: 0, Z: 0}
	got := q.Inverse()
	if got != (Quaternion{}) {
		t.Errorf("Inverse() on tiny-magnitude quaternion = %v, want zero", got)
	}
}

func TestQuaternion_ConjugateInverseRoundTrip(t *testing.T) {
	q := FromAxisAngle(Vec3{1, 1, 1}, 0.9)
	inv := q.Inverse()
	product := q.Mul(inv)

	if product.W < 1-1e-9 {
		t.Errorf("q * q^-1 = %v, want identity-like", product)
	}
}

func TestQuaternion_RotateVectorPreservesLength(t *testing.T) {
	q := FromAxisAngle(Vec3{0, 1, 0}, math.Pi/3)
	v := Vec3{2, -1, 3}

	rotated := q.RotateVector(v)
	if math.Abs(rotated.Length()-v.Length()) > 1e-10 {
		t.Errorf("rotation changed length: %v vs %v", rotated.Length(), v.Length())
	}
}

func TestQuaternion_RotateVectorKnownCase(t *testing.T) {
	// Rotating +X by 90 degrees around +Y should produce -Z (right-handed).
	q := FromAxisAngle(Up, math.Pi/2)
	got := q.RotateVector(Right)
	want := Vec3{0, 0, -1}

	if got.Distance(want) > 1e-9 {
		t.Errorf("RotateVector = %v, want %v", got, want)
	}
}

func TestQuaternion_FromAxisAngleNormalizesAxis(t *testing.T) {
	q1 := FromAxisAngle(Vec3{0, 5, 0}, math.Pi/2)
	q2 := FromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)

	if q1.W != q2.W || q1.X != q2.X || q1.Y != q2.Y || q1.Z != q2.Z {
		t.Errorf("FromAxisAngle did not normalize axis: %v vs %v", q1, q2)
	}
}

func TestQuaternion_PureRotationIntegration(t *testing.T) {
	// Scenario 5: omega=(0,pi,0), no forces, 50 steps at dt=0.01.
	q := Identity
	omega := Vec3{0, math.Pi, 0}
	dt := 0.01

	for i := 0; i < 50; i++ {
		spin := q.Derivative(omega)
		q = q.Add(spin.Scale(dt)).Normalize()
	}

	want := Quaternion{W: math.Sqrt2 / 2, X: 0, Y: math.Sqrt2 / 2, Z: 0}
	if math.Abs(q.W-want.W) > 1e-3 || math.Abs(q.Y-want.Y) > 1e-3 {
		t.Errorf("q after 50 steps = %v, want ~%v", q, want)
	}
}

func TestQuaternion_Mat3RotatesLikeRotateVector(t *testing.T) {
	q := FromAxisAngle(Vec3{1, 0, 1}, 1.234)
	v := Vec3{0.3, -1.2, 2.5}

	viaSandwich := q.RotateVector(v)
	viaMatrix := q.Mat3().MulVec3(v)

	if viaSandwich.Distance(viaMatrix) > 1e-9 {
		t.Errorf("Mat3() mismatch with RotateVector: %v vs %v", viaMatrix, viaSandwich)
	}
}

func TestQuaternion_ToAxisAngleRoundTrip(t *testing.T) {
	axis := Vec3{1, 2, -1}.Normalize()
	angle := 1.1

	q := FromAxisAngle(axis, angle)
	gotAxis, gotAngle := q.ToAxisAngle()

	if math.Abs(gotAngle-angle) > 1e-6 {
		t.Errorf("angle = %v, want %v", gotAngle, angle)
	}
	if gotAxis.Distance(axis) > 1e-6 {
		t.Errorf("axis = %v, want %v", gotAxis, axis)
	}
}
