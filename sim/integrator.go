// Package sim implements the per-step physics pipeline: the RK4
// integrator, the ground-plane collision detector and impulse-based
// responder, the stability detector, and the face evaluator.
package sim

import (
	"github.com/tumblecoin/coinflip/body"
	"github.com/tumblecoin/coinflip/vector"
)

// preview is an intermediate predicted state used to evaluate k2..k4.
// It mirrors body.State but travels alongside the body's fixed
// properties so the derivative functional can compute world-frame
// inertia without mutating the real body mid-step.
type preview struct {
	state body.State
	rb    *body.RigidBody
}

func (p preview) worldInertia() (vector.Mat3, vector.Mat3) {
	r := p.state.Orientation.Mat3()
	iWorld := r.Mul(p.rb.InertiaTensor).Mul(r.Transpose())
	iInvWorld := r.Mul(p.rb.InverseInertiaTensor).Mul(r.Transpose())
	return iWorld, iInvWorld
}

// derivative evaluates f(state): the instantaneous rates of change of
// position, linear velocity, orientation and angular velocity, given
// the force model's net force/torque at that predicted state.
//
// The gyroscopic term omega x (I_world * omega) in Euler's rotational
// equation is never dropped — it is what produces tumbling and
// intermediate-axis behavior for the asymmetric disc inertia tensor.
func derivative(p preview, cfg body.ForceConfig) body.Derivative {
	netForce := body.Gravity(p.rb.Mass, cfg.Gravity).Add(
		body.LinearDrag(p.state.LinearVelocity, p.rb.Radius, cfg.AirDensity, cfg.DragCoefficient),
	)
	netTorque := body.AngularDrag(p.state.AngularVelocity, cfg.AngularDrag)

	iWorld, iInvWorld := p.worldInertia()
	omega := p.state.AngularVelocity
	gyroscopic := omega.Cross(iWorld.MulVec3(omega))
	angularAccel := iInvWorld.MulVec3(netTorque.Sub(gyroscopic))

	spin := p.state.Orientation.Derivative(omega)

	return body.Derivative{
		Velocity:            p.state.LinearVelocity,
		Force:               netForce,
		Spin:                spin,
		AngularAcceleration: angularAccel,
	}
}

// advance applies the linear-advance rule used for the intermediate
// RK4 previews (Step applies the same rule inline for the final
// combination): integrate position, both velocities and orientation
// forward by h using the given derivative, then renormalize the
// orientation. Renormalizing intermediate previews
// before they are fed back into force/inertia-world computations is
// required — skipping it is a known source of energy drift.
func advance(state body.State, mass float64, d body.Derivative, h float64) body.State {
	out := body.State{
		Position:        state.Position.Add(d.Velocity.Scale(h)),
		LinearVelocity:  state.LinearVelocity.Add(d.Force.Scale(h / mass)),
		AngularVelocity: state.AngularVelocity.Add(d.AngularAcceleration.Scale(h)),
	}
	out.Orientation = state.Orientation.Add(d.Spin.Scale(h)).Normalize()
	// Normalize flips the whole quaternion when W turns negative. q and -q
	// are the same rotation, but the spin derived from -q is negated and
	// would cancel k1 in the RK4 average, so the preview keeps the sign
	// of the state it was advanced from.
	q0, q := state.Orientation, out.Orientation
	if q0.W*q.W+q0.X*q.X+q0.Y*q.Y+q0.Z*q.Z < 0 {
		out.Orientation = q.Scale(-1)
	}
	return out
}

// Step advances rb by dt using classical RK4: four derivative
// evaluations k1..k4, combined as (k1 + 2*k2 + 2*k3 + k4)/6, mutating
// rb's state in place. Given an identical (body, dt, config) tuple the
// integrator produces byte-identical output within the same binary;
// there is no cross-platform reproducibility guarantee.
func Step(rb *body.RigidBody, dt float64, cfg body.ForceConfig) {
	state0 := rb.State

	k1 := derivative(preview{state: state0, rb: rb}, cfg)

	half := dt / 2
	s2 := advance(state0, rb.Mass, k1, half)
	k2 := derivative(preview{state: s2, rb: rb}, cfg)

	s3 := advance(state0, rb.Mass, k2, half)
	k3 := derivative(preview{state: s3, rb: rb}, cfg)

	s4 := advance(state0, rb.Mass, k3, dt)
	k4 := derivative(preview{state: s4, rb: rb}, cfg)

	meanVelocity := k1.Velocity.Add(k2.Velocity.Scale(2)).Add(k3.Velocity.Scale(2)).Add(k4.Velocity).Scale(1.0 / 6.0)
	meanForce := k1.Force.Add(k2.Force.Scale(2)).Add(k3.Force.Scale(2)).Add(k4.Force).Scale(1.0 / 6.0)
	meanSpin := k1.Spin.Add(k2.Spin.Scale(2)).Add(k3.Spin.Scale(2)).Add(k4.Spin).Scale(1.0 / 6.0)
	meanAngularAccel := k1.AngularAcceleration.Add(k2.AngularAcceleration.Scale(2)).Add(k3.AngularAcceleration.Scale(2)).Add(k4.AngularAcceleration).Scale(1.0 / 6.0)

	rb.Position = state0.Position.Add(meanVelocity.Scale(dt))
	rb.LinearVelocity = state0.LinearVelocity.Add(meanForce.Scale(dt / rb.Mass))
	rb.Orientation = state0.Orientation.Add(meanSpin.Scale(dt)).Normalize()
	rb.AngularVelocity = state0.AngularVelocity.Add(meanAngularAccel.Scale(dt))
}
