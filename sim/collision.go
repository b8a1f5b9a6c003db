package sim

import (
	"github.com/tumblecoin/coinflip/body"
	"github.com/tumblecoin/coinflip/vector"
)

// DefaultPenetrationTolerance is the default penetration tolerance
// below which a near-contact is reported as non-colliding, suppressing
// jitter at rest.
const DefaultPenetrationTolerance = 1e-4

// Result describes the outcome of a ground-plane collision test.
type Result struct {
	Colliding        bool
	Normal           vector.Vec3
	PenetrationDepth float64
	ContactPoint     vector.Vec3
}

// Detect tests an oriented disc against the implicit ground plane
// y=0 with normal (0,1,0). The disc's two face centers are
// C +/- (h/2)*n, where n = q * (0,1,0); the lower face center (smaller
// y) is the one tested for penetration.
//
// Radius is deliberately not used in the contact-point solve: the rim-
// contact case for tilted discs is approximated by this face-center
// test. A future rim-intersection routine could refine this, but must
// preserve the collision properties this package is tested against.
func Detect(rb *body.RigidBody, tolerance float64) Result {
	normal := rb.Orientation.RotateVector(vector.Up)
	halfThickness := rb.Thickness / 2

	faceA := rb.Position.Add(normal.Scale(halfThickness))
	faceB := rb.Position.Sub(normal.Scale(halfThickness))

	lower := faceA
	if faceB.Y < faceA.Y {
		lower = faceB
	}

	penetration := -lower.Y
	if penetration <= tolerance {
		return Result{Colliding: false}
	}

	// Q8: the reported depth is the exceedance beyond tolerance, not
	// the raw geometric penetration.
	return Result{
		Colliding:        true,
		Normal:           vector.Up,
		PenetrationDepth: penetration - tolerance,
		ContactPoint:     vector.Vec3{X: lower.X, Y: 0, Z: lower.Z},
	}
}
