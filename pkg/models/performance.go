package models

import "time"

// PerformanceRecord tracks the learner's history with one question.
// It exists only after the first attempt.
type PerformanceRecord struct {
	ID                  int64      `json:"id" db:"id"`
	QuestionID          int64      `json:"question_id" db:"question_id"`
	LastSeen            *time.Time `json:"last_seen" db:"last_seen"`     // nil before first attempt
	NextReview          *time.Time `json:"next_review" db:"next_review"` // nil before first attempt
	TimesSeen           int        `json:"times_seen" db:"times_seen"`
	TimesCorrect        int        `json:"times_correct" db:"times_correct"`
	TimesIncorrect      int        `json:"times_incorrect" db:"times_incorrect"`
	AverageResponseTime float64    `json:"average_response_time" db:"average_response_time"` // seconds
	CurrentRank         float64    `json:"current_rank" db:"current_rank"`                   // lower = better known

	// Snapshot of the state before the latest update, used for the trend signal
	PreviousTimesCorrect        int     `json:"previous_times_correct" db:"previous_times_correct"`
	PreviousAverageResponseTime float64 `json:"previous_average_response_time" db:"previous_average_response_time"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Clone returns a copy that shares no pointers with r.
func (r PerformanceRecord) Clone() PerformanceRecord {
	out := r
	if r.LastSeen != nil {
		v := *r.LastSeen
		out.LastSeen = &v
	}
	if r.NextReview != nil {
		v := *r.NextReview
		out.NextReview = &v
	}
	return out
}

// IsDue reports whether the record is due for review at now.
func (r PerformanceRecord) IsDue(now time.Time) bool {
	return r.NextReview != nil && !r.NextReview.After(now)
}

// Candidate pairs a question with its performance record, nil when never attempted.
type Candidate struct {
	Question    Question
	Performance *PerformanceRecord
}
