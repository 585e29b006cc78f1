package session

import (
	"sort"
	"time"

	"github.com/example/mcqdrill/pkg/models"
)

// Rank bucket bounds and the target accuracy of the history report
const (
	EasyRankBelow   = 0.5
	MediumRankBelow = 1.5
	TargetAccuracy  = 0.8
	StrugglingRank  = 1.2
)

// Bucket counts questions in one difficulty band
type Bucket struct {
	Count   int
	Correct int
}

// Accuracy of the bucket, 0 when empty
func (b Bucket) Accuracy() float64 {
	if b.Count == 0 {
		return 0
	}
	return float64(b.Correct) / float64(b.Count)
}

// SubjectHistory is the per-subject part of a history report
type SubjectHistory struct {
	Subject             string
	Questions           int
	Correct             int
	SessionAccuracy     float64
	HistoricalAccuracy  float64
	AverageRank         float64
	AverageResponseTime float64 // seconds
	Attempts            int
}

// Struggling reports whether the subject is below target
func (s SubjectHistory) Struggling() bool {
	return s.SessionAccuracy < TargetAccuracy ||
		(s.Attempts > 0 && s.HistoricalAccuracy < TargetAccuracy) ||
		s.AverageRank > StrugglingRank
}

// History describes the questions last reviewed on one day
type History struct {
	Day                 time.Time
	Total               int
	Correct             int
	Accuracy            float64
	AverageResponseTime float64 // seconds
	Easy                Bucket
	Medium              Bucket
	Hard                Bucket
	Subjects            []SubjectHistory
}

// Struggling returns the subjects that need more practice
func (h History) Struggling() []SubjectHistory {
	var out []SubjectHistory
	for _, s := range h.Subjects {
		if s.Struggling() {
			out = append(out, s)
		}
	}
	return out
}

// BuildHistory summarizes the records last seen on day. A question counts as
// correct when it has ever been answered correctly.
func BuildHistory(day time.Time, candidates []models.Candidate) History {
	h := History{Day: day}

	type acc struct {
		questions, correct int
		rankSum, timeSum   float64
		attempts, allRight int
	}
	bySubject := make(map[string]*acc)

	var timeSum float64
	for _, c := range candidates {
		p := c.Performance
		if p == nil {
			continue
		}
		h.Total++
		correct := p.TimesCorrect > 0
		if correct {
			h.Correct++
		}
		timeSum += p.AverageResponseTime

		b := &h.Hard
		switch {
		case p.CurrentRank < EasyRankBelow:
			b = &h.Easy
		case p.CurrentRank < MediumRankBelow:
			b = &h.Medium
		}
		b.Count++
		if correct {
			b.Correct++
		}

		a, ok := bySubject[c.Question.Subject]
		if !ok {
			a = &acc{}
			bySubject[c.Question.Subject] = a
		}
		a.questions++
		if correct {
			a.correct++
		}
		a.rankSum += p.CurrentRank
		a.timeSum += p.AverageResponseTime
		a.attempts += p.TimesCorrect + p.TimesIncorrect
		a.allRight += p.TimesCorrect
	}

	if h.Total == 0 {
		return h
	}
	h.Accuracy = float64(h.Correct) / float64(h.Total)
	h.AverageResponseTime = timeSum / float64(h.Total)

	for subject, a := range bySubject {
		s := SubjectHistory{
			Subject:             subject,
			Questions:           a.questions,
			Correct:             a.correct,
			SessionAccuracy:     float64(a.correct) / float64(a.questions),
			AverageRank:         a.rankSum / float64(a.questions),
			AverageResponseTime: a.timeSum / float64(a.questions),
			Attempts:            a.attempts,
		}
		if a.attempts > 0 {
			s.HistoricalAccuracy = float64(a.allRight) / float64(a.attempts)
		}
		h.Subjects = append(h.Subjects, s)
	}
	sort.Slice(h.Subjects, func(i, j int) bool {
		return h.Subjects[i].Subject < h.Subjects[j].Subject
	})
	return h
}
