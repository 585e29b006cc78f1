package models

import "time"

// SessionOutcome records one answered question within a session. It is not persisted.
type SessionOutcome struct {
	QuestionID    int64         `json:"question_id"`
	QuestionText  string        `json:"question_text"`
	Subject       string        `json:"subject"`
	CorrectOption string        `json:"correct_option"`
	Correct       bool          `json:"correct"`
	ResponseTime  time.Duration `json:"response_time"`
	Rank          float64       `json:"rank"` // rank when asked; the initial rank on a first attempt
	IntervalDays  int           `json:"interval_days"`
}
