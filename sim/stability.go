package sim

import "github.com/tumblecoin/coinflip/body"

// StabilityConfig holds the thresholds the stability detector checks.
type StabilityConfig struct {
	VelocityThreshold float64 // m/s
	AngularThreshold  float64 // rad/s
	GroundBand        float64 // m
}

// DefaultStabilityConfig returns the spec's default thresholds, with
// GroundBand set to StabilityBand(radius) rather than a fixed 0.01m
// band.
func DefaultStabilityConfig(radius float64) StabilityConfig {
	return StabilityConfig{
		VelocityThreshold: 0.01,
		AngularThreshold:  0.1,
		GroundBand:        StabilityBand(radius),
	}
}

// StabilityBand resolves the open question of a hard-coded 0.01m
// ground band: parameterized as max(0.01, 2*radius) so stability
// remains reachable for coins larger than 0.5cm in radius.
func StabilityBand(radius float64) float64 {
	band := 2 * radius
	if band < 0.01 {
		return 0.01
	}
	return band
}

// IsStable reports whether rb satisfies all three stability conditions:
// low linear speed, low angular speed, and a position near the ground
// (the last condition suppresses false "stable at apex" readings when
// linear velocity briefly nulls at the top of a flight).
func IsStable(rb *body.RigidBody, cfg StabilityConfig) bool {
	return rb.LinearVelocity.Length() <= cfg.VelocityThreshold &&
		rb.AngularVelocity.Length() <= cfg.AngularThreshold &&
		rb.Position.Y < cfg.GroundBand
}
