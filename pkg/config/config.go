// Package config holds the decoder's tunable, non-runtime configuration:
// search radius, distance tolerance, bearing probe distance, and scoring
// weights. Grounded on the teacher's pkg/api.DefaultConfig/ServerConfig
// literal-default pattern.
package config

import "github.com/azybler/openlrdecoder/pkg/scoring"

// Config holds every tunable of the decoding core.
type Config struct {
	// SearchRadius bounds candidate enumeration around an LRP, in meters.
	SearchRadius float64

	// DistanceTolerance (ε) is the relative slack allowed on a route's
	// length versus the LRP-encoded target distance.
	DistanceTolerance float64

	// DistanceSlack (τ) is a small absolute slack, in meters, added on top
	// of the relative tolerance to compensate for rounding.
	DistanceSlack float64

	// BearingProbeDist records the bearing probe distance, in meters. The
	// scorer does not read this field: it always probes scoring.BearDist
	// meters, so changing it has no effect on decoding.
	BearingProbeDist float64

	// Weights are the scorer's four sub-score weights; must sum to 1.
	Weights scoring.Weights

	// MinCandidateScore rejects candidates scoring below this threshold.
	// The default of 0 permits all non-zero-geographic-score candidates.
	MinCandidateScore float64
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		SearchRadius:      100.0,
		DistanceTolerance: 0.30,
		DistanceSlack:     5.0,
		BearingProbeDist:  scoring.BearDist,
		Weights:           scoring.DefaultWeights(),
		MinCandidateScore: 0.0,
	}
}
