package session

import (
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/example/mcqdrill/internal/spaced_repetition"
	"github.com/example/mcqdrill/pkg/models"
)

// Scored is a candidate with its priority score
type Scored struct {
	Candidate models.Candidate
	Score     float64
}

// Selection is the ordered set of questions for one session
type Selection struct {
	Items   []Scored
	Skipped []models.Candidate // malformed candidates left out of the pool
}

// Questions returns the selected questions in order
func (s Selection) Questions() []models.Question {
	out := make([]models.Question, len(s.Items))
	for i, it := range s.Items {
		out[i] = it.Candidate.Question
	}
	return out
}

// Selector picks the questions of a session
type Selector struct {
	engine *spaced_repetition.Engine
	rng    *rand.Rand
	logger *slog.Logger
}

// NewSelector creates a selector. rng is only used for randomized sessions.
func NewSelector(engine *spaced_repetition.Engine, rng *rand.Rand, logger *slog.Logger) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{engine: engine, rng: rng, logger: logger}
}

// Select scores candidates and returns at most limit of them.
//
// In random mode the pool is shuffled uniformly. Otherwise candidates are
// ordered by ascending score, ties keeping their input order.
func (s *Selector) Select(candidates []models.Candidate, limit int, randomize bool, now time.Time) Selection {
	var sel Selection
	if limit <= 0 || len(candidates) == 0 {
		return sel
	}

	pool := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		if err := c.Question.Playable(); err != nil {
			s.logger.Warn("skipping malformed question",
				"question_id", c.Question.ID,
				"error", err)
			sel.Skipped = append(sel.Skipped, c)
			continue
		}
		pool = append(pool, Scored{Candidate: c, Score: s.engine.Score(c.Performance, now)})
	}

	if randomize {
		s.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	} else {
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].Score < pool[j].Score
		})
	}

	if len(pool) > limit {
		pool = pool[:limit]
	}
	sel.Items = pool
	return sel
}
