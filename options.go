package coinflip

import (
	"log"

	"github.com/tumblecoin/coinflip/entropy"
)

// CoinConfig describes the physical coin in SI units.
type CoinConfig struct {
	Mass      float64
	Radius    float64
	Thickness float64
}

// DefaultCoinConfig matches a typical small coin.
func DefaultCoinConfig() CoinConfig {
	return CoinConfig{Mass: 0.00567, Radius: 0.01213, Thickness: 0.00175}
}

// Range is an inclusive [min, max] bound on a sampled quantity. A zero
// Range (both fields zero) is treated as absent and falls back to the
// profile's default mean/stddev.
type Range struct {
	Min, Max float64
}

func (r Range) isZero() bool { return r.Min == 0 && r.Max == 0 }

// mean and stdDev map a supplied range to Gaussian parameters per
// spec: mu = (min+max)/2, sigma = (max-min)/4.
func (r Range) mean() float64   { return (r.Min + r.Max) / 2 }
func (r Range) stdDev() float64 { return (r.Max - r.Min) / 4 }

// TossProfile parameterizes the initial-condition sampler. Any absent
// (zero-value) range falls back to the package defaults: impulse
// N(5.0, 0.5), angular speed N(120, 20) rad/s around +x, height 1.0m.
type TossProfile struct {
	LinearVelocityRange  Range
	AngularVelocityRange Range
	HeightRange          Range
}

const (
	defaultImpulseMean        = 5.0
	defaultImpulseStdDev      = 0.5
	defaultAngularSpeedMean   = 120.0
	defaultAngularSpeedStdDev = 20.0
	defaultHeight             = 1.0
	defaultSpinAxisStdDev     = 0.05
)

// FlipOptions configures a single flip attempt (or, under retry, a
// sequence of attempts sharing entropy level, coin, and toss profile).
type FlipOptions struct {
	EntropyLevel   entropy.Level
	CoinConfig     CoinConfig
	TossProfile    TossProfile
	TimeoutMs      float64
	MaxEdgeRetries int
	Collector      entropy.Collector
	Logger         *log.Logger
}

// DefaultFlipOptions returns the package defaults named in §6 of the
// spec this kernel implements.
func DefaultFlipOptions() FlipOptions {
	return FlipOptions{
		EntropyLevel:   entropy.Standard,
		CoinConfig:     DefaultCoinConfig(),
		TimeoutMs:      10000,
		MaxEdgeRetries: 5,
		Collector:      entropy.DefaultCollector{},
	}
}

func (o FlipOptions) withDefaults() FlipOptions {
	if o.EntropyLevel == "" {
		o.EntropyLevel = entropy.Standard
	}
	if o.CoinConfig == (CoinConfig{}) {
		o.CoinConfig = DefaultCoinConfig()
	}
	if o.TimeoutMs == 0 {
		o.TimeoutMs = 10000
	}
	if o.MaxEdgeRetries == 0 {
		o.MaxEdgeRetries = 5
	}
	if o.Collector == nil {
		o.Collector = entropy.DefaultCollector{}
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

func (p TossProfile) impulseMeanStdDev() (float64, float64) {
	if p.LinearVelocityRange.isZero() {
		return defaultImpulseMean, defaultImpulseStdDev
	}
	return p.LinearVelocityRange.mean(), p.LinearVelocityRange.stdDev()
}

func (p TossProfile) angularSpeedMeanStdDev() (float64, float64) {
	if p.AngularVelocityRange.isZero() {
		return defaultAngularSpeedMean, defaultAngularSpeedStdDev
	}
	return p.AngularVelocityRange.mean(), p.AngularVelocityRange.stdDev()
}

func (p TossProfile) height() float64 {
	if p.HeightRange.isZero() {
		return defaultHeight
	}
	return p.HeightRange.mean()
}
