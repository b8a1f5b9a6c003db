package coinflip

import (
	"context"
	"time"

	"github.com/tumblecoin/coinflip/body"
	"github.com/tumblecoin/coinflip/entropy"
	"github.com/tumblecoin/coinflip/sample"
	"github.com/tumblecoin/coinflip/sim"
	"github.com/tumblecoin/coinflip/vector"
)

// fixedDt is the mandatory integration timestep (10kHz). The
// integrator's error analysis and the collision tolerances assume this
// granularity; callers needing a different dt must accept that those
// guarantees no longer hold.
const fixedDt = 1e-4

// consecutiveStableRequired is how many consecutive stable steps end
// an attempt's settling phase.
const consecutiveStableRequired = 10

// nearGroundDamping is the intentional, non-physical energy sink
// applied to both velocities whenever the body is within one radius of
// the ground. It is not a physical effect; it exists to guarantee
// bounded settling time.
const nearGroundDamping = 0.8

// launchParameters builds a sample.LaunchParameters from the toss
// profile, the fixed heads-up starting orientation, and the requested
// starting height.
func launchParameters(profile TossProfile) sample.LaunchParameters {
	impMean, impStdDev := profile.impulseMeanStdDev()
	angMean, angStdDev := profile.angularSpeedMeanStdDev()

	return sample.LaunchParameters{
		ImpulseMean:        impMean,
		ImpulseStdDev:      impStdDev,
		AngularSpeedMean:   angMean,
		AngularSpeedStdDev: angStdDev,
		SpinAxisStdDev:     defaultSpinAxisStdDev,
		IdealSpinAxis:      vector.Right,
		Position:           vector.Vec3{Y: profile.height()},
		Orientation:        vector.Identity,
	}
}

// attemptOutcome is the result of running one settling attempt to
// completion (or to timeout).
type attemptOutcome struct {
	face       sim.Face
	bounces    int
	simTimeMs  float64
	settled    bool
	trajectory []body.State
}

// runAttempt drives a single rigid body from state through the force
// model, integrator, collision detector/responder, and stability
// detector until it settles or the wall clock exceeds timeoutMs.
func runAttempt(state body.State, cfg CoinConfig, forceCfg body.ForceConfig, timeoutMs float64, recordTrajectory bool) (attemptOutcome, error) {
	rb, err := body.New(state, cfg.Mass, cfg.Radius, cfg.Thickness)
	if err != nil {
		return attemptOutcome{}, InvalidCoinConfigError(err)
	}

	stabilityCfg := sim.DefaultStabilityConfig(rb.Radius)
	tolerance := sim.DefaultPenetrationTolerance

	bounces := 0
	stableSteps := 0
	var trajectory []body.State

	start := time.Now()
	for {
		elapsedMs := float64(time.Since(start).Microseconds()) / 1000.0
		if elapsedMs >= timeoutMs {
			return attemptOutcome{bounces: bounces, simTimeMs: elapsedMs, settled: false}, nil
		}

		sim.Step(rb, fixedDt, forceCfg)

		if rb.Position.Y < rb.Radius {
			rb.LinearVelocity = rb.LinearVelocity.Scale(nearGroundDamping)
			rb.AngularVelocity = rb.AngularVelocity.Scale(nearGroundDamping)
		}

		contact := sim.Detect(rb, tolerance)
		sim.Respond(rb, contact, 0.3, 0.6)
		if contact.Colliding {
			bounces++
		}

		if sim.IsStable(rb, stabilityCfg) {
			stableSteps++
		} else {
			stableSteps = 0
		}

		if recordTrajectory {
			trajectory = append(trajectory, rb.Snapshot())
		}

		if stableSteps >= consecutiveStableRequired {
			elapsedMs = float64(time.Since(start).Microseconds()) / 1000.0
			face := sim.Evaluate(rb, sim.DefaultEdgeThreshold)
			return attemptOutcome{
				face:       face,
				bounces:    bounces,
				simTimeMs:  elapsedMs,
				settled:    true,
				trajectory: trajectory,
			}, nil
		}
	}
}

// FlipCoin runs the deterministic physics kernel to a definite
// HEADS/TAILS outcome, retrying with fresh entropy on EDGE settlement
// up to options.MaxEdgeRetries times.
func FlipCoin(ctx context.Context, options FlipOptions) (FlipResult, error) {
	options = options.withDefaults()
	forceCfg := body.DefaultForceConfig()
	params := launchParameters(options.TossProfile)

	for attempt := 0; attempt <= options.MaxEdgeRetries; attempt++ {
		collected, err := options.Collector.Collect(ctx, options.EntropyLevel)
		if err != nil {
			return FlipResult{}, EntropyCollectionFailedError(err)
		}

		seed := entropy.Mix(collected.Bytes)
		expanded, err := entropy.Expand(seed, entropy.MaxExpandLength)
		if err != nil {
			return FlipResult{}, EntropyCollectionFailedError(err)
		}

		reader := entropy.NewReader(expanded)
		initial := sample.InitialState(reader, params)
		if reader.FallbackUsed {
			options.Logger.Printf("entropy reader exhausted its buffer during sampling; fell back to a non-deterministic uniform source (attempt %d)", attempt)
		}

		outcome, err := runAttempt(initial, options.CoinConfig, forceCfg, options.TimeoutMs, false)
		if err != nil {
			return FlipResult{}, err
		}

		if !outcome.settled {
			return FlipResult{}, SimulationTimeoutError(options.TimeoutMs, outcome.simTimeMs)
		}

		if outcome.face == sim.Edge {
			options.Logger.Printf("attempt %d settled on EDGE, retrying with fresh entropy", attempt)
			continue
		}

		return FlipResult{
			Outcome: faceToOutcome(outcome.face),
			Stats: Stats{
				SimulationTimeMs: outcome.simTimeMs,
				EntropyBitsUsed:  collected.Stats.TotalBits,
				BounceCount:      outcome.bounces,
				RetryCount:       attempt,
			},
		}, nil
	}

	return FlipResult{}, EdgeRetryExhaustedError(options.MaxEdgeRetries)
}

// DebugFlipCoin runs one attempt only, bypassing retry-on-EDGE: an
// EDGE settlement is surfaced as an error rather than retried. A
// caller-supplied seed bypasses the entropy collaborator entirely, and
// individual fields of the sampled initial conditions may be
// overridden.
func DebugFlipCoin(ctx context.Context, options FlipOptions, debug DebugOptions) (DebugFlipResult, error) {
	options = options.withDefaults()
	forceCfg := body.DefaultForceConfig()
	params := launchParameters(options.TossProfile)

	// rawSeed is whatever is fed as input to the mixer: either the
	// caller-supplied replay seed or the collaborator's raw bytes. It
	// is what DebugFlipResult.Seed reports, so capturing it from one
	// run and feeding it back as debug.Seed reproduces the same mixed
	// seed rather than re-mixing an already-mixed value.
	var rawSeed []byte
	var entropyBits int
	if debug.Seed != nil {
		rawSeed = debug.Seed
		entropyBits = len(debug.Seed) * 8
	} else {
		collected, err := options.Collector.Collect(ctx, options.EntropyLevel)
		if err != nil {
			return DebugFlipResult{}, EntropyCollectionFailedError(err)
		}
		rawSeed = collected.Bytes
		entropyBits = collected.Stats.TotalBits
	}

	seed := entropy.Mix(rawSeed)
	expanded, err := entropy.Expand(seed, entropy.MaxExpandLength)
	if err != nil {
		return DebugFlipResult{}, EntropyCollectionFailedError(err)
	}

	reader := entropy.NewReader(expanded)
	initial := sample.InitialState(reader, params)
	if reader.FallbackUsed {
		options.Logger.Printf("entropy reader exhausted its buffer during sampling; fell back to a non-deterministic uniform source")
	}
	initial = applyOverrides(initial, debug.InitialConditions)

	outcome, err := runAttempt(initial, options.CoinConfig, forceCfg, options.TimeoutMs, debug.RecordTrajectory)
	if err != nil {
		return DebugFlipResult{}, err
	}

	if !outcome.settled {
		return DebugFlipResult{}, SimulationTimeoutError(options.TimeoutMs, outcome.simTimeMs)
	}

	if outcome.face == sim.Edge {
		return DebugFlipResult{}, EdgeSettlementError()
	}

	return DebugFlipResult{
		FlipResult: FlipResult{
			Outcome: faceToOutcome(outcome.face),
			Stats: Stats{
				SimulationTimeMs: outcome.simTimeMs,
				EntropyBitsUsed:  entropyBits,
				BounceCount:      outcome.bounces,
				RetryCount:       0,
			},
		},
		Seed:              rawSeed,
		InitialConditions: initial,
		Trajectory:        outcome.trajectory,
	}, nil
}

// applyOverrides replaces initial's fields with any that overrides
// sets. Each field is independently optional, so an explicit zero
// vector override (e.g. v=(0,0,0)) is honored rather than mistaken for
// an absent override.
func applyOverrides(initial body.State, overrides *InitialConditionsOverride) body.State {
	if overrides == nil {
		return initial
	}
	if overrides.Position != nil {
		initial.Position = *overrides.Position
	}
	if overrides.Orientation != nil {
		initial.Orientation = *overrides.Orientation
	}
	if overrides.LinearVelocity != nil {
		initial.LinearVelocity = *overrides.LinearVelocity
	}
	if overrides.AngularVelocity != nil {
		initial.AngularVelocity = *overrides.AngularVelocity
	}
	return initial
}

func faceToOutcome(f sim.Face) Outcome {
	if f == sim.Heads {
		return Heads
	}
	return Tails
}
