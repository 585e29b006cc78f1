package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/example/mcqdrill/internal/spaced_repetition"
	"github.com/example/mcqdrill/pkg/models"
)

// Store is the persistence the runner needs
type Store interface {
	QueryCandidates(ctx context.Context, filter models.CandidateFilter) ([]models.Candidate, error)
	UpsertPerformance(ctx context.Context, rec *models.PerformanceRecord) error
}

// Prompt is one question as handed to the presenter
type Prompt struct {
	SessionID string
	Index     int // 1-based
	Total     int
	Layout    Layout
}

// Answer is the learner's raw input and how long it took
type Answer struct {
	Input   string
	Elapsed time.Duration
}

// Feedback is shown after each evaluated answer
type Feedback struct {
	Outcome   models.SessionOutcome
	Reasoning string
}

// Presenter is the learner-facing side of a session
type Presenter interface {
	// Ask blocks until the learner answers. It returns ErrQuit to end the session.
	Ask(ctx context.Context, p Prompt) (Answer, error)
	// Reject tells the learner the input matched no option
	Reject(p Prompt, input string)
	Feedback(p Prompt, fb Feedback)
}

// Options configure one session
type Options struct {
	Filter    models.CandidateFilter
	Limit     int
	Randomize bool
}

// Runner drives study sessions
type Runner struct {
	store     Store
	presenter Presenter
	engine    *spaced_repetition.Engine
	selector  *Selector
	rng       *rand.Rand
	logger    *slog.Logger
	now       func() time.Time
}

// NewRunner creates a session runner
func NewRunner(store Store, presenter Presenter, engine *spaced_repetition.Engine, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Runner{
		store:     store,
		presenter: presenter,
		engine:    engine,
		selector:  NewSelector(engine, rng, logger),
		rng:       rng,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the runner's clock
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// WithRand replaces the source used for shuffling questions and options
func (r *Runner) WithRand(rng *rand.Rand) *Runner {
	r.rng = rng
	r.selector = NewSelector(r.engine, rng, r.logger)
	return r
}

// Run selects the session's questions once and asks them in order. Each
// answer is persisted before the next question. When the learner quits or
// ctx is cancelled the partial report is returned without error. A store
// failure stops the session and is returned together with the partial report.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	sessionID := uuid.NewString()
	log := r.logger.With("session_id", sessionID)

	candidates, err := r.store.QueryCandidates(ctx, opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	sel := r.selector.Select(candidates, opts.Limit, opts.Randomize, r.now())
	log.Info("session started",
		"pool", len(candidates),
		"selected", len(sel.Items),
		"skipped", len(sel.Skipped),
		"random", opts.Randomize)

	outcomes := make([]models.SessionOutcome, 0, len(sel.Items))
	finish := func(interrupted bool) *Report {
		report := BuildReport(sessionID, outcomes)
		report.Skipped = len(sel.Skipped)
		report.Interrupted = interrupted
		log.Info("session finished",
			"answered", report.Total,
			"correct", report.Correct,
			"interrupted", interrupted)
		return &report
	}

	for i, item := range sel.Items {
		if ctx.Err() != nil {
			return finish(true), nil
		}
		prompt := Prompt{
			SessionID: sessionID,
			Index:     i + 1,
			Total:     len(sel.Items),
			Layout:    NewLayout(item.Candidate.Question, r.rng),
		}

		outcome, err := r.ask(ctx, prompt, item.Candidate)
		if err != nil {
			if errors.Is(err, ErrQuit) || ctx.Err() != nil {
				return finish(true), nil
			}
			return finish(true), err
		}
		outcomes = append(outcomes, outcome)
	}

	return finish(false), nil
}

func (r *Runner) ask(ctx context.Context, prompt Prompt, c models.Candidate) (models.SessionOutcome, error) {
	q := c.Question

	var (
		correct bool
		elapsed time.Duration
	)
	for {
		ans, err := r.presenter.Ask(ctx, prompt)
		if err == nil {
			// an answer given after cancellation is discarded
			err = ctx.Err()
		}
		if err != nil {
			return models.SessionOutcome{}, err
		}
		text, err := prompt.Layout.Resolve(ans.Input)
		if err == nil {
			correct, err = Evaluate(q, text)
		}
		if errors.Is(err, ErrInvalidAnswer) {
			r.presenter.Reject(prompt, ans.Input)
			continue
		}
		if err != nil {
			return models.SessionOutcome{}, err
		}
		elapsed = max(ans.Elapsed, 0)
		break
	}

	upd := r.engine.Apply(c.Performance, q.ID, correct, elapsed, r.now())
	rank := upd.Record.CurrentRank
	if c.Performance != nil {
		rank = spaced_repetition.ClampRank(c.Performance.CurrentRank)
	}
	if err := r.store.UpsertPerformance(ctx, &upd.Record); err != nil {
		return models.SessionOutcome{}, fmt.Errorf("failed to save performance for question %d: %w", q.ID, err)
	}

	r.logger.Debug("answer recorded",
		"session_id", prompt.SessionID,
		"question_id", q.ID,
		"correct", correct,
		"elapsed", elapsed,
		"rank", rank,
		"new_rank", upd.Record.CurrentRank,
		"interval_days", upd.IntervalDays)

	outcome := models.SessionOutcome{
		QuestionID:    q.ID,
		QuestionText:  q.Text,
		Subject:       q.Subject,
		CorrectOption: q.Canonical(q.CorrectOption),
		Correct:       correct,
		ResponseTime:  elapsed,
		Rank:          rank,
		IntervalDays:  upd.IntervalDays,
	}
	r.presenter.Feedback(prompt, Feedback{Outcome: outcome, Reasoning: q.Reasoning})
	return outcome, nil
}
