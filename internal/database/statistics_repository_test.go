package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mcqdrill/pkg/models"
)

func TestDueSummary(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	q1 := seedQuestion(t, s, "q1", "math", "")
	q2 := seedQuestion(t, s, "q2", "math", "")
	q3 := seedQuestion(t, s, "q3", "bio", "")
	q4 := seedQuestion(t, s, "q4", "bio", "")
	seedQuestion(t, s, "q5", "bio", "") // never attempted

	require.NoError(t, s.UpsertPerformance(ctx, record(q1.ID, now.AddDate(0, 0, -3), 1)))
	require.NoError(t, s.UpsertPerformance(ctx, record(q2.ID, now.AddDate(0, 0, -1), 1)))
	require.NoError(t, s.UpsertPerformance(ctx, record(q3.ID, now.AddDate(0, 0, -5), 2)))
	require.NoError(t, s.UpsertPerformance(ctx, record(q4.ID, now.AddDate(0, 0, -1), 3)))

	summary, err := s.DueSummary(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, []models.SubjectCount{{Subject: "bio", Count: 1}, {Subject: "math", Count: 2}}, summary.BySubject)

	summary, err = s.DueSummary(ctx, now.AddDate(0, 0, -10))
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Empty(t, summary.BySubject)
}

func TestSessionDatesAndAttempts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	day1 := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 12, 23, 59, 0, 0, time.UTC)

	q1 := seedQuestion(t, s, "q1", "math", "")
	q2 := seedQuestion(t, s, "q2", "math", "")
	q3 := seedQuestion(t, s, "q3", "bio", "")
	seedQuestion(t, s, "q4", "bio", "")

	require.NoError(t, s.UpsertPerformance(ctx, record(q1.ID, day1, 1)))
	require.NoError(t, s.UpsertPerformance(ctx, record(q2.ID, day2, 1)))
	require.NoError(t, s.UpsertPerformance(ctx, record(q3.ID, day2.Add(-time.Hour), 1)))

	dates, err := s.SessionDates(ctx, 0)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.True(t, Day(day2).Equal(dates[0]))
	assert.True(t, Day(day1).Equal(dates[1]))

	dates, err = s.SessionDates(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, dates, 1)

	attempts, err := s.AttemptsOn(ctx, day2)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, q2.ID, attempts[0].Question.ID)
	assert.Equal(t, q3.ID, attempts[1].Question.ID)

	attempts, err = s.AttemptsOn(ctx, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	got := Day(time.Date(2024, 3, 11, 1, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got)
}
