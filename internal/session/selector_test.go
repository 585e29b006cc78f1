package session

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mcqdrill/pkg/models"
)

func distinctPool() []models.Candidate {
	return []models.Candidate{
		{Question: question(1, "math"), Performance: seenRecord(1, 5, 0, 0.2, 1)},
		{Question: question(2, "math"), Performance: seenRecord(2, 0, 4, 1.8, 20)},
		{Question: question(3, "bio"), Performance: seenRecord(3, 2, 2, 1.0, 7)},
		{Question: question(4, "bio"), Performance: seenRecord(4, 1, 0, 0.8, 3)},
		{Question: question(5, "chem"), Performance: seenRecord(5, 3, 1, 0.5, 12)},
	}
}

func ids(sel Selection) []int64 {
	out := make([]int64, len(sel.Items))
	for i, it := range sel.Items {
		out[i] = it.Candidate.Question.ID
	}
	return out
}

func TestSelectOrdersByScore(t *testing.T) {
	s := NewSelector(testEngine(), rand.New(rand.NewSource(1)), quietLogger())
	sel := s.Select(distinctPool(), 10, false, testNow)

	require.Len(t, sel.Items, 5)
	for i := 1; i < len(sel.Items); i++ {
		assert.LessOrEqual(t, sel.Items[i-1].Score, sel.Items[i].Score)
	}
}

func TestSelectDeterministicUnderPermutation(t *testing.T) {
	s := NewSelector(testEngine(), rand.New(rand.NewSource(1)), quietLogger())
	want := ids(s.Select(distinctPool(), 3, false, testNow))

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 20; i++ {
		pool := distinctPool()
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		assert.Equal(t, want, ids(s.Select(pool, 3, false, testNow)))
	}
}

func TestSelectNewQuestionsKeepInputOrder(t *testing.T) {
	pool := []models.Candidate{
		{Question: question(7, "x")},
		{Question: question(3, "x")},
		{Question: question(5, "x")},
	}
	s := NewSelector(testEngine(), nil, quietLogger())
	sel := s.Select(pool, 3, false, testNow)
	assert.Equal(t, []int64{7, 3, 5}, ids(sel))
	for _, it := range sel.Items {
		assert.Equal(t, 0.0, it.Score)
	}
}

func TestSelectLimitAndMembership(t *testing.T) {
	pool := distinctPool()
	inPool := map[int64]bool{}
	for _, c := range pool {
		inPool[c.Question.ID] = true
	}

	s := NewSelector(testEngine(), rand.New(rand.NewSource(7)), quietLogger())
	for _, randomize := range []bool{false, true} {
		for limit := -1; limit <= 7; limit++ {
			sel := s.Select(pool, limit, randomize, testNow)
			assert.LessOrEqual(t, len(sel.Items), max(limit, 0))
			seen := map[int64]bool{}
			for _, id := range ids(sel) {
				assert.True(t, inPool[id])
				assert.False(t, seen[id], "duplicate %d", id)
				seen[id] = true
			}
		}
	}
}

func TestSelectEmpty(t *testing.T) {
	s := NewSelector(testEngine(), nil, quietLogger())
	assert.Empty(t, s.Select(nil, 10, false, testNow).Items)
	assert.Empty(t, s.Select(distinctPool(), 0, false, testNow).Items)
}

func TestSelectRandomUsesInjectedSource(t *testing.T) {
	a := NewSelector(testEngine(), rand.New(rand.NewSource(42)), quietLogger())
	b := NewSelector(testEngine(), rand.New(rand.NewSource(42)), quietLogger())
	assert.Equal(t, ids(a.Select(distinctPool(), 5, true, testNow)), ids(b.Select(distinctPool(), 5, true, testNow)))
}

func TestSelectSkipsMalformed(t *testing.T) {
	noOptions := question(8, "x")
	noOptions.Options = nil
	noAnswer := question(9, "x")
	noAnswer.CorrectOption = "  "

	pool := append(distinctPool(), models.Candidate{Question: noOptions}, models.Candidate{Question: noAnswer})
	s := NewSelector(testEngine(), nil, quietLogger())
	sel := s.Select(pool, 10, false, testNow)

	assert.Len(t, sel.Items, 5)
	require.Len(t, sel.Skipped, 2)
	assert.Equal(t, int64(8), sel.Skipped[0].Question.ID)
	assert.Equal(t, int64(9), sel.Skipped[1].Question.ID)
	assert.Len(t, sel.Questions(), 5)
}
