package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/mcqdrill/pkg/models"
)

// Factors holds the unweighted inputs of a score
type Factors struct {
	DaysSinceReview float64
	Correctness     float64
	ResponseTime    float64
	Time            float64
	Rank            float64
	Trend           float64
}

// ComputeFactors derives the scoring factors of a record at now
func ComputeFactors(rec models.PerformanceRecord, p Policy, now time.Time) Factors {
	days := p.MaxDays
	if rec.LastSeen != nil {
		days = now.Sub(*rec.LastSeen).Hours() / 24
	}
	days = math.Min(p.MaxDays, math.Max(0, days))

	f := Factors{
		DaysSinceReview: days,
		Correctness:     1 / float64(max(rec.TimesCorrect, 0)+1),
		Rank:            rec.CurrentRank,
		Trend:           trend(rec),
	}
	if p.MaxResponseTimeSeconds > 0 {
		// not capped: a runaway slow question must surface
		f.ResponseTime = math.Max(0, rec.AverageResponseTime) / p.MaxResponseTimeSeconds
	}
	if p.MaxDays > 0 {
		f.Time = days / p.MaxDays
	}
	return f
}

// trend compares the current aggregate with the one before the latest attempt.
// Positive values mean the question is getting easier.
func trend(rec models.PerformanceRecord) float64 {
	if rec.TimesSeen <= 1 {
		return 0
	}
	var correctness, responseTime float64
	if rec.PreviousTimesCorrect > 0 {
		current := float64(rec.TimesCorrect) / float64(rec.TimesSeen)
		previous := float64(rec.PreviousTimesCorrect) / float64(rec.TimesSeen-1)
		correctness = current - previous
	}
	if rec.PreviousAverageResponseTime > 0 {
		responseTime = (rec.PreviousAverageResponseTime - rec.AverageResponseTime) / (rec.PreviousAverageResponseTime + 1)
	}
	return correctness + responseTime
}

// Weighted combines factors into a score
func (f Factors) Weighted(w Weights) float64 {
	return w.Correct*f.Correctness +
		w.ResponseTime*f.ResponseTime +
		w.Time*f.Time -
		w.Rank*f.Rank +
		w.Trend*f.Trend
}

// Score returns the priority score of rec. A question that has never been
// attempted (nil record) always scores 0.
func Score(rec *models.PerformanceRecord, p Policy, now time.Time) float64 {
	if rec == nil {
		return 0
	}
	return ComputeFactors(*rec, p, now).Weighted(p.Weights)
}
