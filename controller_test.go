package coinflip

import (
	"context"
	"math"
	"testing"

	"github.com/tumblecoin/coinflip/vector"
)

// Scenario 1: identity free-fall settles face-up.
func TestDebugFlipCoin_IdentityFreeFallYieldsHeads(t *testing.T) {
	options := DefaultFlipOptions()
	options.TimeoutMs = 2000

	pos := vector.Vec3{Y: 0.05}
	orient := vector.Identity
	zero := vector.Zero

	debug := DebugOptions{
		RecordTrajectory: true,
		InitialConditions: &InitialConditionsOverride{
			Position:        &pos,
			Orientation:     &orient,
			LinearVelocity:  &zero,
			AngularVelocity: &zero,
		},
	}

	result, err := DebugFlipCoin(context.Background(), options, debug)
	if err != nil {
		t.Fatalf("DebugFlipCoin() error = %v", err)
	}
	if result.Outcome != Heads {
		t.Errorf("Outcome = %v, want HEADS", result.Outcome)
	}
	if result.Stats.BounceCount < 1 {
		t.Errorf("BounceCount = %d, want >= 1", result.Stats.BounceCount)
	}

	if len(result.Trajectory) == 0 {
		t.Fatal("expected a recorded trajectory")
	}
	finalY := result.Trajectory[len(result.Trajectory)-1].Position.Y
	wantY := options.CoinConfig.Thickness / 2
	if math.Abs(finalY-wantY) > 5e-4 {
		t.Errorf("final position.Y = %v, want %v +/- 5e-4", finalY, wantY)
	}
}

// Scenario 2: flipped free-fall settles face-down.
func TestDebugFlipCoin_FlippedFreeFallYieldsTails(t *testing.T) {
	options := DefaultFlipOptions()
	options.TimeoutMs = 2000

	pos := vector.Vec3{Y: 0.05}
	orient := vector.FromAxisAngle(vector.Right, math.Pi)
	zero := vector.Zero

	debug := DebugOptions{
		InitialConditions: &InitialConditionsOverride{
			Position:        &pos,
			Orientation:     &orient,
			LinearVelocity:  &zero,
			AngularVelocity: &zero,
		},
	}

	result, err := DebugFlipCoin(context.Background(), options, debug)
	if err != nil {
		t.Fatalf("DebugFlipCoin() error = %v", err)
	}
	if result.Outcome != Tails {
		t.Errorf("Outcome = %v, want TAILS", result.Outcome)
	}
}

// Scenario 3: an edge-start free-fall is surfaced as an error by the
// debug entry point rather than retried.
func TestDebugFlipCoin_EdgeStartIsSurfacedNotRetried(t *testing.T) {
	options := DefaultFlipOptions()
	options.TimeoutMs = 2000

	pos := vector.Vec3{Y: 0.05}
	orient := vector.FromAxisAngle(vector.Right, math.Pi/2)
	zero := vector.Zero

	debug := DebugOptions{
		InitialConditions: &InitialConditionsOverride{
			Position:        &pos,
			Orientation:     &orient,
			LinearVelocity:  &zero,
			AngularVelocity: &zero,
		},
	}

	_, err := DebugFlipCoin(context.Background(), options, debug)
	if err == nil {
		t.Fatal("expected an EDGE error, got nil")
	}
	var cfErr *Error
	if !errorsAs(err, &cfErr) {
		t.Fatalf("error is not *Error: %v", err)
	}
}

// FlipCoin, unlike DebugFlipCoin, retries past EDGE until it reaches a
// definite outcome or exhausts its retry budget; this exercises that
// retry loop end to end with default (non-adversarial) toss conditions.
func TestFlipCoin_SettlesOrExhaustsRetryBudget(t *testing.T) {
	options := DefaultFlipOptions()
	options.TimeoutMs = 2000
	options.MaxEdgeRetries = 8

	result, err := FlipCoin(context.Background(), options)
	if err != nil {
		// EdgeRetryExhausted is an acceptable outcome for this
		// scenario; any other error is not.
		var cfErr *Error
		if errorsAs(err, &cfErr) && cfErr.Code == CodeEdgeRetryExhausted {
			return
		}
		t.Fatalf("FlipCoin() error = %v", err)
	}
	if result.Outcome != Heads && result.Outcome != Tails {
		t.Errorf("Outcome = %v, want HEADS or TAILS", result.Outcome)
	}
}

// Q4 / Scenario 4: deterministic replay from a captured seed.
func TestDebugFlipCoin_DeterministicReplay(t *testing.T) {
	options := DefaultFlipOptions()
	options.TimeoutMs = 2000

	first, err := DebugFlipCoin(context.Background(), options, DebugOptions{})
	if err != nil {
		t.Fatalf("first DebugFlipCoin() error = %v", err)
	}

	second, err := DebugFlipCoin(context.Background(), options, DebugOptions{Seed: first.Seed})
	if err != nil {
		t.Fatalf("replay DebugFlipCoin() error = %v", err)
	}

	if first.InitialConditions != second.InitialConditions {
		t.Errorf("InitialConditions differ across replay: %+v vs %+v", first.InitialConditions, second.InitialConditions)
	}
	if first.Stats.BounceCount != second.Stats.BounceCount {
		t.Errorf("BounceCount differs across replay: %d vs %d", first.Stats.BounceCount, second.Stats.BounceCount)
	}
	if first.Outcome != second.Outcome {
		t.Errorf("Outcome differs across replay: %v vs %v", first.Outcome, second.Outcome)
	}
}

func TestFlipCoin_InvalidCoinConfigSurfacesImmediately(t *testing.T) {
	options := DefaultFlipOptions()
	options.CoinConfig = CoinConfig{Mass: -1, Radius: 0.01, Thickness: 0.001}

	_, err := FlipCoin(context.Background(), options)
	if err == nil {
		t.Fatal("expected an error for an invalid coin configuration")
	}
	var cfErr *Error
	if !errorsAs(err, &cfErr) || cfErr.Code != CodeInvalidCoinConfig {
		t.Fatalf("error = %v, want CodeInvalidCoinConfig", err)
	}
}

// errorsAs is a tiny local helper so this file does not need to import
// errors solely for a single As call pattern used by several tests.
func errorsAs(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
