package sim

import (
	"math"

	"github.com/tumblecoin/coinflip/body"
)

// MicroCollisionVelocity is the normal-velocity gate below which
// restitution is treated as zero, killing infinite micro-bouncing.
const MicroCollisionVelocity = -0.1

// Respond applies an instantaneous impulse at the contact point
// (restitution + clamped Coulomb friction) followed by a positional
// projection, mutating rb in place. It reports whether an impulse was
// actually applied (i.e. the bodies were approaching along the normal).
func Respond(rb *body.RigidBody, c Result, restitution, friction float64) bool {
	if !c.Colliding {
		return false
	}

	r := c.ContactPoint.Sub(rb.Position)
	vPoint := rb.LinearVelocity.Add(rb.AngularVelocity.Cross(r))

	normalScalar := vPoint.Dot(c.Normal)
	vNormal := c.Normal.Scale(normalScalar)
	vTangent := vPoint.Sub(vNormal)

	applied := false

	if normalScalar < 0 {
		effectiveRestitution := restitution
		if normalScalar > MicroCollisionVelocity {
			effectiveRestitution = 0
		}

		invInertia := rb.WorldInertiaInverse()
		rCrossN := r.Cross(c.Normal)
		angularTerm := invInertia.MulVec3(rCrossN).Dot(rCrossN)
		denom := 1.0/rb.Mass + angularTerm

		jNormal := -(1 + effectiveRestitution) * normalScalar / denom

		impulse := c.Normal.Scale(jNormal)

		if vTangent.LengthSquared() > 1e-12 {
			tangentDir := vTangent.Normalize()
			frictionMagnitude := friction * math.Abs(jNormal)

			// Cap the friction impulse so it cannot reverse the sign of
			// the tangential motion it is opposing.
			rCrossT := r.Cross(tangentDir)
			angularTermT := invInertia.MulVec3(rCrossT).Dot(rCrossT)
			denomT := 1.0/rb.Mass + angularTermT
			maxCancel := vTangent.Length() / denomT
			if frictionMagnitude > maxCancel {
				frictionMagnitude = maxCancel
			}

			jTangent := tangentDir.Scale(-frictionMagnitude)
			impulse = impulse.Add(jTangent)
		}

		rb.LinearVelocity = rb.LinearVelocity.Add(impulse.Scale(1.0 / rb.Mass))
		rb.AngularVelocity = rb.AngularVelocity.Add(invInertia.MulVec3(r.Cross(impulse)))
		applied = true
	}

	if c.PenetrationDepth > 0 {
		rb.Position = rb.Position.Add(c.Normal.Scale(c.PenetrationDepth))
	}

	return applied
}
