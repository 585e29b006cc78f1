package spaced_repetition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextIntervalDays(t *testing.T) {
	tests := []struct {
		name    string
		rank    float64
		correct bool
		isNew   bool
		want    int
	}{
		{"new correct", 0.8, true, true, 3},
		{"new incorrect", 1.2, false, true, 1},
		{"new ignores rank", 2.0, true, true, 3},
		{"correct rank 1", 1.0, true, false, 2},
		{"correct max rank", 2.0, true, false, 4},
		{"correct low rank floors to one", 0.1, true, false, 1},
		{"correct rank 1.6", 1.6, true, false, 3},
		{"incorrect rank 0.1", 0.1, false, false, 10},
		{"incorrect rank 0.3", 0.3, false, false, 3},
		{"incorrect high rank", 1.5, false, false, 1},
		{"rank above range is clamped", 5, true, false, 4},
		{"rank below range is clamped", -3, false, false, 10},
		{"NaN rank", math.NaN(), true, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextIntervalDays(tt.rank, tt.correct, tt.isNew))
		})
	}
}

func TestNextIntervalDaysAtLeastOne(t *testing.T) {
	for rank := MinRank; rank <= MaxRank+1e-9; rank += 0.01 {
		for _, correct := range []bool{true, false} {
			for _, isNew := range []bool{true, false} {
				assert.GreaterOrEqual(t, NextIntervalDays(rank, correct, isNew), 1, "rank=%v correct=%v new=%v", rank, correct, isNew)
			}
		}
	}
}

func TestInvertIntervalRank(t *testing.T) {
	p := DefaultPolicy()
	p.InvertIntervalRank = true

	// well known question (low rank) gets the long interval
	assert.Equal(t, 3, p.IntervalDays(0.5, true, false))  // 2^1.6
	assert.Equal(t, 1, p.IntervalDays(1.8, true, false))  // 2^0.3
	assert.Equal(t, 3, p.IntervalDays(1.8, false, false)) // 1/0.3
	// bootstrap intervals are unaffected
	assert.Equal(t, 3, p.IntervalDays(0.8, true, true))

	assert.Equal(t, 1, DefaultPolicy().IntervalDays(0.5, true, false))
}
