package session

import (
	"sort"
	"time"

	"github.com/example/mcqdrill/pkg/models"
)

// StrongThreshold is the accuracy at or above which a subject counts as strong
const StrongThreshold = 0.7

// SubjectSummary aggregates a session's outcomes for one subject
type SubjectSummary struct {
	Subject             string
	Total               int
	Correct             int
	Accuracy            float64
	AverageResponseTime time.Duration
}

// Report summarizes a finished or interrupted session
type Report struct {
	SessionID           string
	Total               int
	Correct             int
	Accuracy            float64 // 0..1
	AverageResponseTime time.Duration
	Subjects            []SubjectSummary
	Missed              []models.SessionOutcome
	Outcomes            []models.SessionOutcome

	// Set by the runner
	Skipped     int
	Interrupted bool
}

// BuildReport aggregates session outcomes
func BuildReport(sessionID string, outcomes []models.SessionOutcome) Report {
	r := Report{
		SessionID: sessionID,
		Total:     len(outcomes),
		Outcomes:  outcomes,
	}
	if len(outcomes) == 0 {
		return r
	}

	type acc struct {
		total, correct int
		elapsed        time.Duration
	}
	bySubject := make(map[string]*acc)

	var elapsed time.Duration
	for _, o := range outcomes {
		elapsed += o.ResponseTime
		a, ok := bySubject[o.Subject]
		if !ok {
			a = &acc{}
			bySubject[o.Subject] = a
		}
		a.total++
		a.elapsed += o.ResponseTime
		if o.Correct {
			r.Correct++
			a.correct++
		} else {
			r.Missed = append(r.Missed, o)
		}
	}

	r.Accuracy = float64(r.Correct) / float64(r.Total)
	r.AverageResponseTime = elapsed / time.Duration(r.Total)

	r.Subjects = make([]SubjectSummary, 0, len(bySubject))
	for subject, a := range bySubject {
		r.Subjects = append(r.Subjects, SubjectSummary{
			Subject:             subject,
			Total:               a.total,
			Correct:             a.correct,
			Accuracy:            float64(a.correct) / float64(a.total),
			AverageResponseTime: a.elapsed / time.Duration(a.total),
		})
	}
	sort.Slice(r.Subjects, func(i, j int) bool {
		if r.Subjects[i].Accuracy != r.Subjects[j].Accuracy {
			return r.Subjects[i].Accuracy > r.Subjects[j].Accuracy
		}
		return r.Subjects[i].Subject < r.Subjects[j].Subject
	})
	return r
}

// Strong returns the subjects answered at or above StrongThreshold
func (r Report) Strong() []SubjectSummary {
	var out []SubjectSummary
	for _, s := range r.Subjects {
		if s.Accuracy >= StrongThreshold {
			out = append(out, s)
		}
	}
	return out
}

// NeedsImprovement returns the subjects below StrongThreshold
func (r Report) NeedsImprovement() []SubjectSummary {
	var out []SubjectSummary
	for _, s := range r.Subjects {
		if s.Accuracy < StrongThreshold {
			out = append(out, s)
		}
	}
	return out
}
