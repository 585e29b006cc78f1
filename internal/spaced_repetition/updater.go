package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/mcqdrill/pkg/models"
)

// Update is the result of applying one answer
type Update struct {
	Record       models.PerformanceRecord
	IntervalDays int
	IsNew        bool
}

// Apply folds one answer into a performance record and schedules the next review.
// A nil rec creates the record. The input record is not modified.
func Apply(rec *models.PerformanceRecord, questionID int64, correct bool, responseTime time.Duration, now time.Time, p Policy) Update {
	seconds := math.Max(0, responseTime.Seconds())

	if rec == nil {
		return applyFirst(questionID, correct, seconds, now, p)
	}

	next := rec.Clone()
	if next.QuestionID == 0 {
		next.QuestionID = questionID
	}

	// Self-heal counters so the seen == correct + incorrect invariant holds going forward
	next.TimesCorrect = max(next.TimesCorrect, 0)
	next.TimesIncorrect = max(next.TimesIncorrect, 0)
	next.TimesSeen = next.TimesCorrect + next.TimesIncorrect
	if math.IsNaN(next.AverageResponseTime) || next.AverageResponseTime < 0 {
		next.AverageResponseTime = 0
	}

	next.PreviousTimesCorrect = next.TimesCorrect
	next.PreviousAverageResponseTime = next.AverageResponseTime

	next.TimesSeen++
	if correct {
		next.TimesCorrect++
	} else {
		next.TimesIncorrect++
	}

	n := float64(next.TimesSeen)
	next.AverageResponseTime = (next.PreviousAverageResponseTime*(n-1) + seconds) / n

	ratio := float64(next.TimesCorrect) / n
	var improvement float64
	if next.PreviousAverageResponseTime > 0 {
		improvement = (next.PreviousAverageResponseTime - next.AverageResponseTime) / next.PreviousAverageResponseTime
	}

	rank := ClampRank(next.CurrentRank)
	if correct {
		rank -= RankStep * (1 + ratio + improvement)
	} else {
		rank += RankStep * (2 - ratio)
	}
	next.CurrentRank = ClampRank(rank)

	interval := p.IntervalDays(next.CurrentRank, correct, false)
	schedule(&next, now, interval)

	return Update{Record: next, IntervalDays: interval}
}

func applyFirst(questionID int64, correct bool, seconds float64, now time.Time, p Policy) Update {
	rec := models.PerformanceRecord{
		QuestionID:          questionID,
		TimesSeen:           1,
		AverageResponseTime: seconds,
		CurrentRank:         InitialRankIncorrect,
	}
	if correct {
		rec.TimesCorrect = 1
		rec.CurrentRank = InitialRankCorrect
	} else {
		rec.TimesIncorrect = 1
	}

	interval := p.IntervalDays(rec.CurrentRank, correct, true)
	schedule(&rec, now, interval)

	return Update{Record: rec, IntervalDays: interval, IsNew: true}
}

func schedule(rec *models.PerformanceRecord, now time.Time, days int) {
	seen := now
	due := now.AddDate(0, 0, days)
	rec.LastSeen = &seen
	rec.NextReview = &due
	rec.UpdatedAt = now
}
