package database

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/mcqdrill/pkg/models"
)

// DefaultSessionDates is how many past study days SessionDates returns by default
const DefaultSessionDates = 10

// StatisticsRepository answers reporting queries over performance records
type StatisticsRepository struct {
	db *sqlx.DB
}

// NewStatisticsRepository creates a new repository instance
func NewStatisticsRepository(db *sqlx.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

type reviewRow struct {
	Subject    string     `db:"subject"`
	NextReview *time.Time `db:"next_review"`
}

// DueSummary counts the records due for review at now, per subject.
// Dates are compared in Go since sqlite keeps timestamps as text.
func (r *StatisticsRepository) DueSummary(ctx context.Context, now time.Time) (*models.DueSummary, error) {
	var rows []reviewRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT q.subject, p.next_review
		FROM performance_records p
		JOIN questions q ON q.id = p.question_id
		WHERE p.next_review IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get due reviews: %w", err)
	}

	counts := make(map[string]int)
	summary := &models.DueSummary{}
	for _, row := range rows {
		rec := models.PerformanceRecord{NextReview: row.NextReview}
		if !rec.IsDue(now) {
			continue
		}
		summary.Total++
		counts[row.Subject]++
	}
	for subject, n := range counts {
		summary.BySubject = append(summary.BySubject, models.SubjectCount{Subject: subject, Count: n})
	}
	sort.Slice(summary.BySubject, func(i, j int) bool {
		return summary.BySubject[i].Subject < summary.BySubject[j].Subject
	})
	return summary, nil
}

// SessionDates returns the distinct UTC days on which questions were last
// reviewed, newest first. limit <= 0 uses DefaultSessionDates.
func (r *StatisticsRepository) SessionDates(ctx context.Context, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = DefaultSessionDates
	}

	var seen []time.Time
	if err := r.db.SelectContext(ctx, &seen, "SELECT last_seen FROM performance_records WHERE last_seen IS NOT NULL"); err != nil {
		return nil, fmt.Errorf("failed to get session dates: %w", err)
	}

	days := make(map[time.Time]struct{})
	for _, t := range seen {
		days[Day(t)] = struct{}{}
	}
	out := make([]time.Time, 0, len(days))
	for d := range days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Day truncates t to midnight UTC
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AttemptsOn returns the questions whose last review fell on the UTC day of day
func (s *Store) AttemptsOn(ctx context.Context, day time.Time) ([]models.Candidate, error) {
	reviewed, err := s.ReviewedCandidates(ctx)
	if err != nil {
		return nil, err
	}
	start := Day(day)
	end := start.AddDate(0, 0, 1)

	var out []models.Candidate
	for _, c := range reviewed {
		seen := c.Performance.LastSeen
		if seen != nil && !seen.Before(start) && seen.Before(end) {
			out = append(out, c)
		}
	}
	return out, nil
}

// DueSummary delegates to the statistics repository
func (s *Store) DueSummary(ctx context.Context, now time.Time) (*models.DueSummary, error) {
	return s.Statistics.DueSummary(ctx, now)
}

// SessionDates delegates to the statistics repository
func (s *Store) SessionDates(ctx context.Context, limit int) ([]time.Time, error) {
	return s.Statistics.SessionDates(ctx, limit)
}
