package models

// SubjectCount is a per-subject counter
type SubjectCount struct {
	Subject string `json:"subject" db:"subject"`
	Count   int    `json:"count" db:"count"`
}

// DueSummary describes the questions due for review
type DueSummary struct {
	Total     int            `json:"total"`
	BySubject []SubjectCount `json:"by_subject"`
}
