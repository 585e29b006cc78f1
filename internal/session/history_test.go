package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mcqdrill/pkg/models"
)

func TestBuildHistory(t *testing.T) {
	day := testNow.Truncate(24 * time.Hour)
	candidates := []models.Candidate{
		{Question: question(1, "math"), Performance: seenRecord(1, 4, 0, 0.3, 0)},
		{Question: question(2, "math"), Performance: seenRecord(2, 1, 1, 1.0, 0)},
		{Question: question(3, "bio"), Performance: seenRecord(3, 0, 3, 1.9, 0)},
		{Question: question(4, "bio")}, // never attempted, ignored
	}

	h := BuildHistory(day, candidates)

	assert.Equal(t, day, h.Day)
	assert.Equal(t, 3, h.Total)
	assert.Equal(t, 2, h.Correct)
	assert.InDelta(t, 2.0/3.0, h.Accuracy, 1e-9)
	assert.InDelta(t, 10.0, h.AverageResponseTime, 1e-9)

	assert.Equal(t, Bucket{Count: 1, Correct: 1}, h.Easy)
	assert.Equal(t, Bucket{Count: 1, Correct: 1}, h.Medium)
	assert.Equal(t, Bucket{Count: 1, Correct: 0}, h.Hard)
	assert.Zero(t, h.Hard.Accuracy())

	require.Len(t, h.Subjects, 2)
	bio, math := h.Subjects[0], h.Subjects[1]
	assert.Equal(t, "bio", bio.Subject)
	assert.Equal(t, 3, bio.Attempts)
	assert.Zero(t, bio.SessionAccuracy)
	assert.InDelta(t, 1.9, bio.AverageRank, 1e-9)

	assert.Equal(t, "math", math.Subject)
	assert.Equal(t, 1.0, math.SessionAccuracy)
	assert.InDelta(t, 5.0/6.0, math.HistoricalAccuracy, 1e-9)
	assert.InDelta(t, 0.65, math.AverageRank, 1e-9)
	assert.Equal(t, 6, math.Attempts)

	struggling := h.Struggling()
	require.Len(t, struggling, 1)
	assert.Equal(t, "bio", struggling[0].Subject)
}

func TestSubjectHistoryStruggling(t *testing.T) {
	tests := []struct {
		name string
		s    SubjectHistory
		want bool
	}{
		{"on target", SubjectHistory{SessionAccuracy: 0.9, HistoricalAccuracy: 0.85, AverageRank: 0.7, Attempts: 10}, false},
		{"low session accuracy", SubjectHistory{SessionAccuracy: 0.5, HistoricalAccuracy: 0.9, AverageRank: 0.7, Attempts: 10}, true},
		{"low historical accuracy", SubjectHistory{SessionAccuracy: 1, HistoricalAccuracy: 0.6, AverageRank: 0.7, Attempts: 10}, true},
		{"high rank", SubjectHistory{SessionAccuracy: 1, HistoricalAccuracy: 1, AverageRank: 1.3, Attempts: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.Struggling())
		})
	}
}

func TestBuildHistoryEmpty(t *testing.T) {
	h := BuildHistory(testNow, nil)
	assert.Zero(t, h.Total)
	assert.Empty(t, h.Subjects)
	assert.Empty(t, h.Struggling())
}
