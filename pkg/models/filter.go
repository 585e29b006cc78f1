package models

import "strings"

// CandidateFilter narrows the question pool by subject.
// Both fields are optional case-insensitive substring matches.
type CandidateFilter struct {
	Subject    string
	SubSubject string
}

// Matches reports whether q passes the filter.
func (f CandidateFilter) Matches(q Question) bool {
	if f.Subject != "" && !containsFold(q.Subject, f.Subject) {
		return false
	}
	if f.SubSubject != "" && !containsFold(q.SubSubject, f.SubSubject) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
