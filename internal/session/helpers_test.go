package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/example/mcqdrill/internal/spaced_repetition"
	"github.com/example/mcqdrill/pkg/models"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine() *spaced_repetition.Engine {
	return spaced_repetition.MustEngine(spaced_repetition.DefaultPolicy())
}

func question(id int64, subject string) models.Question {
	return models.Question{
		ID:            id,
		Text:          "question " + string(rune('a'+id%26)),
		Options:       []string{"alpha", "beta", "gamma", "delta"},
		CorrectOption: "beta",
		Subject:       subject,
	}
}

func seenRecord(questionID int64, correct, incorrect int, rank float64, daysAgo int) *models.PerformanceRecord {
	last := testNow.AddDate(0, 0, -daysAgo)
	next := last.AddDate(0, 0, 1)
	return &models.PerformanceRecord{
		QuestionID:          questionID,
		LastSeen:            &last,
		NextReview:          &next,
		TimesSeen:           correct + incorrect,
		TimesCorrect:        correct,
		TimesIncorrect:      incorrect,
		AverageResponseTime: 10,
		CurrentRank:         rank,
	}
}

// memoryStore is an in-memory Store
type memoryStore struct {
	candidates []models.Candidate
	saved      []models.PerformanceRecord
	queryErr   error
	upsertErr  error
	failAfter  int // fail upserts once this many have succeeded, 0 = never
}

func (m *memoryStore) QueryCandidates(_ context.Context, filter models.CandidateFilter) ([]models.Candidate, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var out []models.Candidate
	for _, c := range m.candidates {
		if filter.Matches(c.Question) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryStore) UpsertPerformance(_ context.Context, rec *models.PerformanceRecord) error {
	if m.upsertErr != nil && len(m.saved) >= m.failAfter {
		return m.upsertErr
	}
	m.saved = append(m.saved, rec.Clone())
	return nil
}

// scriptedPresenter answers from a fixed script of inputs
type scriptedPresenter struct {
	inputs   []string
	elapsed  time.Duration
	asked    []Prompt
	rejected []string
	feedback []Feedback
	onAsk    func(n int)
}

var errScriptExhausted = errors.New("script exhausted")

func (p *scriptedPresenter) Ask(ctx context.Context, prompt Prompt) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	p.asked = append(p.asked, prompt)
	if p.onAsk != nil {
		p.onAsk(len(p.asked))
	}
	if len(p.inputs) == 0 {
		return Answer{}, errScriptExhausted
	}
	in := p.inputs[0]
	p.inputs = p.inputs[1:]
	if in == "q" {
		return Answer{}, ErrQuit
	}
	return Answer{Input: in, Elapsed: p.elapsed}, nil
}

func (p *scriptedPresenter) Reject(_ Prompt, input string) {
	p.rejected = append(p.rejected, input)
}

func (p *scriptedPresenter) Feedback(_ Prompt, fb Feedback) {
	p.feedback = append(p.feedback, fb)
}
