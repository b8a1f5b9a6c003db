// Package body defines the rigid-body record the simulation kernel
// advances: its state (position, orientation, velocities) and its
// body-fixed properties (mass, geometry, inertia tensor).
package body

import (
	"fmt"

	"github.com/tumblecoin/coinflip/vector"
)

// State is the fundamental simulation record: position, orientation
// and both velocities. It is an immutable value — every operation that
// advances it should produce or assign a fresh State rather than
// mutating shared aliases.
type State struct {
	Position        vector.Vec3
	Orientation     vector.Quaternion
	LinearVelocity  vector.Vec3
	AngularVelocity vector.Vec3
}

// Snapshot returns a by-value copy of the state, for the debug
// trajectory collaborator. Since State holds only value types, a plain
// copy already satisfies "no aliasing" — this method exists so call
// sites read as an explicit snapshot rather than an incidental copy.
func (s State) Snapshot() State {
	return s
}

// RigidBody extends State with body-fixed physical properties. Its
// inertia tensor is computed once at construction from a cylinder-
// about-disc-axis model and never mutated afterward.
type RigidBody struct {
	State

	Mass      float64 // kg
	Radius    float64 // m
	Thickness float64 // m

	InertiaTensor        vector.Mat3 // body frame, symmetric positive-definite
	InverseInertiaTensor vector.Mat3 // precomputed at construction
}

// New builds a RigidBody from an initial state and coin geometry,
// constructing its inertia tensor from the cylinder-about-disc-axis
// model:
//
//	I_yy = 1/2 * m * r^2                 (about the disc's face normal)
//	I_xx = I_zz = (1/12) * m * (3r^2+h^2) (about in-plane axes)
//
// Construction fails if mass, radius or thickness is not positive, or
// if the resulting tensor is singular.
func New(state State, mass, radius, thickness float64) (*RigidBody, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("body: mass must be positive, got %g", mass)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("body: radius must be positive, got %g", radius)
	}
	if thickness <= 0 {
		return nil, fmt.Errorf("body: thickness must be positive, got %g", thickness)
	}

	iyy := 0.5 * mass * radius * radius
	ixxizz := (1.0 / 12.0) * mass * (3*radius*radius + thickness*thickness)

	inertia := vector.Diag(ixxizz, iyy, ixxizz)
	inverse, err := inertia.Inverse()
	if err != nil {
		return nil, fmt.Errorf("body: singular inertia tensor: %w", err)
	}

	return &RigidBody{
		State:                state,
		Mass:                 mass,
		Radius:               radius,
		Thickness:            thickness,
		InertiaTensor:        inertia,
		InverseInertiaTensor: inverse,
	}, nil
}

// WorldInertiaInverse transforms the body-frame inverse inertia tensor
// into world space: I_world^-1 = R * I_body^-1 * R^T.
func (rb *RigidBody) WorldInertiaInverse() vector.Mat3 {
	r := rb.Orientation.Mat3()
	return r.Mul(rb.InverseInertiaTensor).Mul(r.Transpose())
}

// WorldInertia transforms the body-frame inertia tensor into world
// space: I_world = R * I_body * R^T.
func (rb *RigidBody) WorldInertia() vector.Mat3 {
	r := rb.Orientation.Mat3()
	return r.Mul(rb.InertiaTensor).Mul(r.Transpose())
}

// IsFinite reports whether every field of the body's state holds only
// finite values — used as a defensive check after integration.
func (rb *RigidBody) IsFinite() bool {
	return rb.Position.IsFinite() &&
		rb.LinearVelocity.IsFinite() &&
		rb.AngularVelocity.IsFinite() &&
		!isQuatNonFinite(rb.Orientation)
}

func isQuatNonFinite(q vector.Quaternion) bool {
	parts := vector.Vec3{X: q.W, Y: q.X, Z: q.Y}
	rest := vector.Vec3{X: q.Z, Y: 0, Z: 0}
	return !parts.IsFinite() || !rest.IsFinite()
}

// Accumulator holds the net force and torque acting on a body for one
// derivative evaluation.
type Accumulator struct {
	Force  vector.Vec3 // N
	Torque vector.Vec3 // N*m
}

// Derivative is the rate of change of a RigidBody's state. Its last
// field stores angular acceleration (alpha), not torque, so RK4 can
// average four commensurate derivatives of angular velocity.
type Derivative struct {
	Velocity            vector.Vec3       // dPosition/dt
	Force               vector.Vec3       // net force, to be divided by mass when combined
	Spin                vector.Quaternion // dOrientation/dt
	AngularAcceleration vector.Vec3       // dAngularVelocity/dt
}
