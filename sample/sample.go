// Package sample maps an entropy stream and launch parameters to a
// deterministic initial rigid-body state.
package sample

import (
	"github.com/tumblecoin/coinflip/body"
	"github.com/tumblecoin/coinflip/entropy"
	"github.com/tumblecoin/coinflip/vector"
)

// LaunchParameters describes the distribution the sampler draws the
// initial launch impulse, spin magnitude, and spin axis from, plus the
// fixed starting position and orientation.
type LaunchParameters struct {
	ImpulseMean, ImpulseStdDev           float64
	AngularSpeedMean, AngularSpeedStdDev float64
	SpinAxisStdDev                       float64
	IdealSpinAxis                        vector.Vec3
	Position                             vector.Vec3
	Orientation                          vector.Quaternion
}

// InitialState draws impulse, spin magnitude, and a perturbed spin axis
// from reader, and combines them with params' fixed position and
// orientation into a RigidBodyState. Deterministic in reader's byte
// stream and params: the same bytes and params always produce the same
// state.
func InitialState(reader *entropy.Reader, params LaunchParameters) body.State {
	impulse := reader.NextGaussian(params.ImpulseMean, params.ImpulseStdDev)
	linearVelocity := vector.Vec3{Y: impulse}

	spinMag := reader.NextGaussian(params.AngularSpeedMean, params.AngularSpeedStdDev)

	perturb := vector.Vec3{
		X: reader.NextGaussian(0, params.SpinAxisStdDev),
		Y: reader.NextGaussian(0, params.SpinAxisStdDev),
		Z: reader.NextGaussian(0, params.SpinAxisStdDev),
	}

	axis := params.IdealSpinAxis.Normalize().Add(perturb).Normalize()
	angularVelocity := axis.Scale(spinMag)

	return body.State{
		Position:        params.Position,
		Orientation:     params.Orientation,
		LinearVelocity:  linearVelocity,
		AngularVelocity: angularVelocity,
	}
}
