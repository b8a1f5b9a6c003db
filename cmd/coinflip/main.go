// Package main provides a CLI for running one coin flip through the
// physics kernel, optionally in debug/replay mode with a recorded
// trajectory.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tumblecoin/coinflip"
	"github.com/tumblecoin/coinflip/entropy"
)

func main() {
	var (
		level      string
		timeoutMs  float64
		maxRetries int
		debug      bool
		replaySeed string
		recordTraj bool
		many       int
		workers    int
	)

	flag.StringVar(&level, "entropy-level", "standard", "entropy level: fast, standard, high, paranoid")
	flag.Float64Var(&timeoutMs, "timeout-ms", 10000, "wall-clock attempt timeout in milliseconds")
	flag.IntVar(&maxRetries, "max-edge-retries", 5, "max retries on EDGE settlement")
	flag.BoolVar(&debug, "debug", false, "run via debugFlipCoin, exposing seed and initial conditions")
	flag.StringVar(&replaySeed, "replay-seed", "", "hex-encoded seed to replay (implies -debug)")
	flag.BoolVar(&recordTraj, "record-trajectory", false, "record the full per-step trajectory (implies -debug)")
	flag.IntVar(&many, "n", 1, "number of independent flips to run")
	flag.IntVar(&workers, "workers", 4, "worker goroutines for -n > 1")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	options := coinflip.DefaultFlipOptions()
	options.EntropyLevel = entropy.Level(level)
	options.TimeoutMs = timeoutMs
	options.MaxEdgeRetries = maxRetries

	if replaySeed != "" || recordTraj {
		debug = true
	}

	var err error
	switch {
	case debug:
		err = runDebug(ctx, options, replaySeed, recordTraj)
	case many > 1:
		err = runMany(ctx, options, many, workers)
	default:
		err = runOne(ctx, options)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "coinflip: %v\n", err)
		os.Exit(1)
	}
}

func runOne(ctx context.Context, options coinflip.FlipOptions) error {
	start := time.Now()
	result, err := coinflip.FlipCoin(ctx, options)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"outcome": result.Outcome,
		"stats":   result.Stats,
		"wallMs":  float64(time.Since(start).Microseconds()) / 1000.0,
	})
}

func runMany(ctx context.Context, options coinflip.FlipOptions, n, workers int) error {
	results, errs := coinflip.FlipMany(ctx, options, n, workers)

	type flipOut struct {
		Outcome coinflip.Outcome `json:"outcome,omitempty"`
		Stats   coinflip.Stats   `json:"stats,omitempty"`
		Error   string           `json:"error,omitempty"`
	}

	out := make([]flipOut, n)
	heads := 0
	for i := range results {
		if errs[i] != nil {
			out[i] = flipOut{Error: errs[i].Error()}
			continue
		}
		out[i] = flipOut{Outcome: results[i].Outcome, Stats: results[i].Stats}
		if results[i].Outcome == coinflip.Heads {
			heads++
		}
	}

	return printJSON(map[string]any{
		"flips":         out,
		"headsFraction": float64(heads) / float64(n),
	})
}

func runDebug(ctx context.Context, options coinflip.FlipOptions, replaySeedHex string, recordTraj bool) error {
	debugOpts := coinflip.DebugOptions{RecordTrajectory: recordTraj}
	if replaySeedHex != "" {
		seed, err := decodeHexSeed(replaySeedHex)
		if err != nil {
			return fmt.Errorf("decoding -replay-seed: %w", err)
		}
		debugOpts.Seed = seed
	}

	result, err := coinflip.DebugFlipCoin(ctx, options, debugOpts)
	if err != nil {
		return err
	}

	return printJSON(map[string]any{
		"outcome":           result.Outcome,
		"stats":             result.Stats,
		"seed":              fmt.Sprintf("%x", result.Seed),
		"initialConditions": result.InitialConditions,
		"trajectorySteps":   len(result.Trajectory),
	})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func decodeHexSeed(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
