package spaced_repetition

import (
	"time"

	"github.com/example/mcqdrill/pkg/models"
)

// Engine scores, schedules and updates performance records under one policy
type Engine struct {
	policy Policy
}

// NewEngine creates an engine after validating the policy
func NewEngine(p Policy) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Engine{policy: p}, nil
}

// MustEngine is like NewEngine but panics on an invalid policy
func MustEngine(p Policy) *Engine {
	e, err := NewEngine(p)
	if err != nil {
		panic(err)
	}
	return e
}

// Policy returns the engine's policy
func (e *Engine) Policy() Policy {
	return e.policy
}

// Score returns the priority score of a record; lower is studied sooner.
func (e *Engine) Score(rec *models.PerformanceRecord, now time.Time) float64 {
	return Score(rec, e.policy, now)
}

// NextIntervalDays returns the review interval for the given rank and outcome
func (e *Engine) NextIntervalDays(rank float64, correct, isNew bool) int {
	return e.policy.IntervalDays(rank, correct, isNew)
}

// Apply records one answer. See Apply.
func (e *Engine) Apply(rec *models.PerformanceRecord, questionID int64, correct bool, responseTime time.Duration, now time.Time) Update {
	return Apply(rec, questionID, correct, responseTime, now, e.policy)
}
