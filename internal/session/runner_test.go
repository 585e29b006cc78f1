package session

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mcqdrill/pkg/models"
)

func newTestRunner(store Store, p Presenter) *Runner {
	return NewRunner(store, p, testEngine(), quietLogger()).
		WithClock(func() time.Time { return testNow }).
		WithRand(rand.New(rand.NewSource(1)))
}

// newPool returns n unattempted questions; inputs are scripted by option text
func newPool(n int) []models.Candidate {
	pool := make([]models.Candidate, n)
	for i := range pool {
		pool[i] = models.Candidate{Question: question(int64(i+1), "math")}
	}
	return pool
}

func TestRunnerFullSession(t *testing.T) {
	store := &memoryStore{candidates: newPool(3)}
	p := &scriptedPresenter{inputs: []string{"beta", "alpha", "beta"}, elapsed: 5 * time.Second}

	report, err := newTestRunner(store, p).Run(context.Background(), Options{Limit: 10})
	require.NoError(t, err)

	assert.False(t, report.Interrupted)
	assert.NotEmpty(t, report.SessionID)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Correct)
	require.Len(t, report.Missed, 1)
	assert.Equal(t, int64(2), report.Missed[0].QuestionID)

	require.Len(t, store.saved, 3)
	first := store.saved[0]
	assert.Equal(t, int64(1), first.QuestionID)
	assert.Equal(t, 1, first.TimesSeen)
	assert.InDelta(t, 0.8, first.CurrentRank, 1e-9)
	assert.Equal(t, testNow.AddDate(0, 0, 3), *first.NextReview)
	assert.InDelta(t, 1.2, store.saved[1].CurrentRank, 1e-9)

	require.Len(t, p.feedback, 3)
	assert.Equal(t, 3, p.feedback[0].Outcome.IntervalDays)
	assert.Equal(t, "beta", p.feedback[1].Outcome.CorrectOption)
	for i, prompt := range p.asked {
		assert.Equal(t, report.SessionID, prompt.SessionID)
		assert.Equal(t, i+1, prompt.Index)
		assert.Equal(t, 3, prompt.Total)
	}
}

func TestRunnerRespectsLimitAndFilter(t *testing.T) {
	pool := newPool(4)
	pool[0].Question.Subject = "Biology"
	pool[2].Question.Subject = "Marine biology"
	store := &memoryStore{candidates: pool}
	p := &scriptedPresenter{inputs: []string{"beta", "beta", "beta"}}

	report, err := newTestRunner(store, p).Run(context.Background(), Options{
		Filter: models.CandidateFilter{Subject: "BIO"},
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, int64(1), report.Outcomes[0].QuestionID)
}

func TestRunnerRepromptsInvalidAnswer(t *testing.T) {
	store := &memoryStore{candidates: newPool(1)}
	p := &scriptedPresenter{inputs: []string{"Z", "omega", "beta"}}

	report, err := newTestRunner(store, p).Run(context.Background(), Options{Limit: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Z", "omega"}, p.rejected)
	assert.Len(t, p.asked, 3)
	assert.Equal(t, 1, report.Correct)
	assert.Len(t, store.saved, 1)
}

func TestRunnerQuitKeepsCommittedUpdates(t *testing.T) {
	store := &memoryStore{candidates: newPool(3)}
	p := &scriptedPresenter{inputs: []string{"beta", "q"}}

	report, err := newTestRunner(store, p).Run(context.Background(), Options{Limit: 3})
	require.NoError(t, err)

	assert.True(t, report.Interrupted)
	assert.Equal(t, 1, report.Total)
	assert.Len(t, store.saved, 1)
}

func TestRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &memoryStore{candidates: newPool(3)}
	p := &scriptedPresenter{inputs: []string{"beta", "beta", "beta"}}
	p.onAsk = func(n int) {
		if n == 2 {
			cancel()
		}
	}

	report, err := newTestRunner(store, p).Run(ctx, Options{Limit: 3})
	require.NoError(t, err)
	assert.True(t, report.Interrupted)
	assert.Equal(t, 1, report.Total)
	assert.Len(t, store.saved, 1)
}

func TestRunnerStoreFailures(t *testing.T) {
	boom := errors.New("disk full")

	t.Run("query", func(t *testing.T) {
		store := &memoryStore{queryErr: boom}
		_, err := newTestRunner(store, &scriptedPresenter{}).Run(context.Background(), Options{Limit: 3})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("upsert", func(t *testing.T) {
		store := &memoryStore{candidates: newPool(3), upsertErr: boom, failAfter: 1}
		p := &scriptedPresenter{inputs: []string{"beta", "beta", "beta"}}

		report, err := newTestRunner(store, p).Run(context.Background(), Options{Limit: 3})
		assert.ErrorIs(t, err, boom)
		require.NotNil(t, report)
		assert.Equal(t, 1, report.Total)
		assert.Len(t, store.saved, 1)
	})
}

func TestRunnerEmptyPool(t *testing.T) {
	p := &scriptedPresenter{}
	report, err := newTestRunner(&memoryStore{}, p).Run(context.Background(), Options{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, report.Total)
	assert.False(t, report.Interrupted)
	assert.Empty(t, p.asked)
}

func TestRunnerUpdatesExistingRecord(t *testing.T) {
	pool := newPool(1)
	pool[0].Performance = seenRecord(1, 3, 1, 0.6, 4)
	pool[0].Performance.ID = 11
	store := &memoryStore{candidates: pool}
	p := &scriptedPresenter{inputs: []string{"gamma"}, elapsed: 20 * time.Second}

	_, err := newTestRunner(store, p).Run(context.Background(), Options{Limit: 1})
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	rec := store.saved[0]
	assert.Equal(t, int64(11), rec.ID)
	assert.Equal(t, 5, rec.TimesSeen)
	assert.Equal(t, 2, rec.TimesIncorrect)
	assert.InDelta(t, 0.74, rec.CurrentRank, 1e-9)
	// the candidate held by the store is untouched
	assert.Equal(t, 4, pool[0].Performance.TimesSeen)
}

func TestRunnerOutcomeRankIsRankWhenAsked(t *testing.T) {
	pool := newPool(2)
	pool[0].Performance = seenRecord(1, 1, 3, 1.5, 2)
	store := &memoryStore{candidates: pool}
	p := &scriptedPresenter{inputs: []string{"beta", "beta"}, elapsed: 5 * time.Second}

	report, err := newTestRunner(store, p).Run(context.Background(), Options{Limit: 10})
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 2)

	byID := make(map[int64]models.SessionOutcome)
	for _, o := range report.Outcomes {
		byID[o.QuestionID] = o
	}
	assert.InDelta(t, 1.5, byID[1].Rank, 1e-9)
	assert.InDelta(t, 0.8, byID[2].Rank, 1e-9)

	for _, rec := range store.saved {
		if rec.QuestionID == 1 {
			assert.Less(t, rec.CurrentRank, 1.5)
		}
	}
}
