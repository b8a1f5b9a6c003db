package coinflip

import (
	"github.com/tumblecoin/coinflip/body"
	"github.com/tumblecoin/coinflip/vector"
)

// Outcome is an externally observable flip result. EDGE is never
// returned from FlipCoin — a settling attempt that classifies as EDGE
// is retried (or, in DebugFlipCoin, surfaced as an error).
type Outcome string

const (
	Heads Outcome = "HEADS"
	Tails Outcome = "TAILS"
)

// Stats records diagnostic counters for one flip's winning attempt.
type Stats struct {
	SimulationTimeMs float64
	EntropyBitsUsed  int
	BounceCount      int
	RetryCount       int
}

// FlipResult is the outcome and diagnostics of a completed flip.
type FlipResult struct {
	Outcome Outcome
	Stats   Stats
}

// InitialConditionsOverride overrides individual sampled fields of a
// flip's initial state. Each field is independently optional: a nil
// field keeps the sampled value, and a non-nil field replaces it, even
// when it points at the zero vector.
type InitialConditionsOverride struct {
	Position        *vector.Vec3
	Orientation     *vector.Quaternion
	LinearVelocity  *vector.Vec3
	AngularVelocity *vector.Vec3
}

// DebugOptions extends a flip attempt with replay and instrumentation
// controls not exposed through the normal entry point.
type DebugOptions struct {
	Seed              []byte
	InitialConditions *InitialConditionsOverride
	RecordTrajectory  bool
}

// DebugFlipResult additionally exposes the seed and initial state the
// attempt actually ran with, and, when requested, its full step-by-step
// trajectory.
type DebugFlipResult struct {
	FlipResult
	Seed              []byte
	InitialConditions body.State
	Trajectory        []body.State
}
