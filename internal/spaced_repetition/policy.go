package spaced_repetition

import (
	"fmt"
	"math"
)

// Rank bounds and adjustment constants
const (
	MinRank = 0.1
	MaxRank = 2.0

	// Initial rank for a question answered for the first time
	InitialRankCorrect   = 0.8
	InitialRankIncorrect = 1.2

	// Base rank adjustment per answer
	RankStep = 0.1

	// Bootstrap intervals in days for the first attempt
	NewCorrectInterval   = 3
	NewIncorrectInterval = 1
)

// Weights scale the scoring factors
type Weights struct {
	Correct      float64
	ResponseTime float64
	Time         float64
	Rank         float64 // subtracted from the score
	Trend        float64
}

// Policy is the immutable scoring and scheduling configuration
type Policy struct {
	Weights Weights
	// Response time in seconds that maps to a response time factor of 1
	MaxResponseTimeSeconds float64
	// Days since review that map to a time factor of 1
	MaxDays float64
	// Use the mirrored rank (MinRank+MaxRank-rank) when computing intervals,
	// so well known questions get the longer intervals
	InvertIntervalRank bool
}

// DefaultWeights returns the stock weights
func DefaultWeights() Weights {
	return Weights{
		Correct:      1.0,
		ResponseTime: 0.5,
		Time:         0.5,
		Rank:         0.1,
		Trend:        2.0,
	}
}

// DefaultPolicy returns the stock policy
func DefaultPolicy() Policy {
	return Policy{
		Weights:                DefaultWeights(),
		MaxResponseTimeSeconds: 60,
		MaxDays:                30,
	}
}

// Validate checks that the policy can be used for scoring
func (p Policy) Validate() error {
	if !(p.MaxResponseTimeSeconds > 0) || math.IsInf(p.MaxResponseTimeSeconds, 0) {
		return fmt.Errorf("max response time must be positive, got %v", p.MaxResponseTimeSeconds)
	}
	if !(p.MaxDays > 0) || math.IsInf(p.MaxDays, 0) {
		return fmt.Errorf("max days must be positive, got %v", p.MaxDays)
	}
	w := p.Weights
	for name, v := range map[string]float64{
		"correct":       w.Correct,
		"response time": w.ResponseTime,
		"time":          w.Time,
		"rank":          w.Rank,
		"trend":         w.Trend,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("weight %s must be a non-negative number, got %v", name, v)
		}
	}
	return nil
}

// ClampRank bounds a rank to [MinRank, MaxRank]. NaN maps to the neutral rank 1.
func ClampRank(rank float64) float64 {
	if math.IsNaN(rank) {
		return 1
	}
	return math.Min(MaxRank, math.Max(MinRank, rank))
}
