package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MinOptions is the smallest option list a stored question may carry
const MinOptions = 2

// Question represents a multiple-choice question. It is never modified after ingestion.
type Question struct {
	ID            int64     `json:"id" db:"id"`
	Text          string    `json:"question_text" db:"question_text"`
	Options       []string  `json:"options" db:"-"`
	CorrectOption string    `json:"correct_option" db:"correct_option"` // Plain option text, not a letter
	Subject       string    `json:"subject" db:"subject"`
	SubSubject    string    `json:"sub_subject,omitempty" db:"sub_subject"`
	Difficulty    string    `json:"difficulty,omitempty" db:"difficulty"`
	Reasoning     string    `json:"reasoning,omitempty" db:"reasoning"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

var (
	// ErrNoOptions is returned for questions without any options
	ErrNoOptions = errors.New("question has no options")
	// ErrNoCorrectOption is returned for questions without a correct option
	ErrNoCorrectOption = errors.New("question has no correct option")
)

// labelPrefix matches a display label such as "A. " or "b) " in front of the option text
var labelPrefix = regexp.MustCompile(`(?s)^([A-Za-z])[.)]\s+(.+)$`)

// NormalizeOption strips whitespace and quoting/bracket artifacts.
// The same normalization must be applied to both sides of a comparison.
func NormalizeOption(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "\"'[]\\"))
}

// SplitLabel separates a leading display label from s. index is the label's
// position in the alphabet (A = 0).
func SplitLabel(s string) (index int, rest string, ok bool) {
	m := labelPrefix.FindStringSubmatch(NormalizeOption(s))
	if m == nil {
		return 0, "", false
	}
	return int(strings.ToUpper(m[1])[0] - 'A'), NormalizeOption(m[2]), true
}

// StripLabels removes display labels when every option carries one and the
// letters run in order (A, B, C...). Otherwise options are returned as they are,
// so abbreviations such as "E. coli" survive.
func StripLabels(options []string) ([]string, bool) {
	if len(options) < MinOptions {
		return options, false
	}
	out := make([]string, len(options))
	for i, opt := range options {
		idx, rest, ok := SplitLabel(opt)
		if !ok || idx != i {
			return options, false
		}
		out[i] = rest
	}
	return out, true
}

// Labeled reports whether the stored options carry display labels in order
func (q Question) Labeled() bool {
	_, ok := StripLabels(q.Options)
	return ok
}

// Canonical returns text in the form it is compared against the question's
// options. A leading label is only dropped when the options are labeled.
func (q Question) Canonical(text string) string {
	s := NormalizeOption(text)
	if q.Labeled() {
		if _, rest, ok := SplitLabel(s); ok {
			s = rest
		}
	}
	return s
}

// DisplayOptions returns the option texts without artifacts or stored labels
func (q Question) DisplayOptions() []string {
	out := make([]string, len(q.Options))
	for i, opt := range q.Options {
		out[i] = q.Canonical(opt)
	}
	return out
}

// SameOption reports whether a and b name the same option of q
func (q Question) SameOption(a, b string) bool {
	return q.Canonical(a) == q.Canonical(b)
}

// Playable reports whether the question can be presented and evaluated.
func (q Question) Playable() error {
	if len(q.Options) == 0 {
		return ErrNoOptions
	}
	if q.Canonical(q.CorrectOption) == "" {
		return ErrNoCorrectOption
	}
	return nil
}

// HasOption reports whether text matches one of the options after normalization.
func (q Question) HasOption(text string) bool {
	want := q.Canonical(text)
	if want == "" {
		return false
	}
	for _, opt := range q.Options {
		if q.Canonical(opt) == want {
			return true
		}
	}
	return false
}

// Validate checks the invariants enforced at ingestion.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("question text is empty")
	}
	if strings.TrimSpace(q.Subject) == "" {
		return errors.New("subject is empty")
	}
	if len(q.Options) < MinOptions {
		return fmt.Errorf("need at least %d options, got %d", MinOptions, len(q.Options))
	}
	if err := q.Playable(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		c := q.Canonical(opt)
		if c == "" {
			return errors.New("option is empty")
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("option %q appears more than once", c)
		}
		seen[c] = struct{}{}
	}
	if !q.HasOption(q.CorrectOption) {
		return fmt.Errorf("correct option %q is not among the options", q.CorrectOption)
	}
	return nil
}
