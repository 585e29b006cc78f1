package spaced_repetition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyValidate(t *testing.T) {
	require.NoError(t, DefaultPolicy().Validate())

	tests := []struct {
		name   string
		mutate func(p *Policy)
	}{
		{"zero max response time", func(p *Policy) { p.MaxResponseTimeSeconds = 0 }},
		{"negative max days", func(p *Policy) { p.MaxDays = -1 }},
		{"NaN max days", func(p *Policy) { p.MaxDays = math.NaN() }},
		{"negative weight", func(p *Policy) { p.Weights.Trend = -2 }},
		{"infinite weight", func(p *Policy) { p.Weights.Rank = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			tt.mutate(&p)
			assert.Error(t, p.Validate())

			_, err := NewEngine(p)
			assert.Error(t, err)
		})
	}
}

func TestClampRank(t *testing.T) {
	assert.Equal(t, MinRank, ClampRank(-1))
	assert.Equal(t, MaxRank, ClampRank(3))
	assert.Equal(t, 1.3, ClampRank(1.3))
	assert.Equal(t, 1.0, ClampRank(math.NaN()))
}

func TestEngineApplyUsesPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.InvertIntervalRank = true
	e := MustEngine(p)

	assert.Equal(t, p, e.Policy())
	u := e.Apply(nil, 1, true, 0, testNow)
	assert.Equal(t, 3, u.IntervalDays)
	assert.Equal(t, 3, e.NextIntervalDays(0.5, true, false))
}
