package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/mcqdrill/pkg/models"
)

// candidateRow is one row of the questions / performance_records left join
type candidateRow struct {
	questionRow

	PerfID                      sql.NullInt64   `db:"perf_id"`
	LastSeen                    sql.NullTime    `db:"last_seen"`
	NextReview                  sql.NullTime    `db:"next_review"`
	TimesSeen                   sql.NullInt64   `db:"times_seen"`
	TimesCorrect                sql.NullInt64   `db:"times_correct"`
	TimesIncorrect              sql.NullInt64   `db:"times_incorrect"`
	AverageResponseTime         sql.NullFloat64 `db:"average_response_time"`
	CurrentRank                 sql.NullFloat64 `db:"current_rank"`
	PreviousTimesCorrect        sql.NullInt64   `db:"previous_times_correct"`
	PreviousAverageResponseTime sql.NullFloat64 `db:"previous_average_response_time"`
	PerfUpdatedAt               sql.NullTime    `db:"perf_updated_at"`
}

func (r candidateRow) toModel() (models.Candidate, error) {
	q, err := r.questionRow.toModel()
	if err != nil {
		return models.Candidate{}, err
	}
	c := models.Candidate{Question: q}
	if !r.PerfID.Valid {
		return c, nil
	}

	rec := &models.PerformanceRecord{
		ID:                          r.PerfID.Int64,
		QuestionID:                  q.ID,
		TimesSeen:                   int(r.TimesSeen.Int64),
		TimesCorrect:                int(r.TimesCorrect.Int64),
		TimesIncorrect:              int(r.TimesIncorrect.Int64),
		AverageResponseTime:         r.AverageResponseTime.Float64,
		CurrentRank:                 r.CurrentRank.Float64,
		PreviousTimesCorrect:        int(r.PreviousTimesCorrect.Int64),
		PreviousAverageResponseTime: r.PreviousAverageResponseTime.Float64,
		UpdatedAt:                   r.PerfUpdatedAt.Time,
	}
	if r.LastSeen.Valid {
		t := r.LastSeen.Time
		rec.LastSeen = &t
	}
	if r.NextReview.Valid {
		t := r.NextReview.Time
		rec.NextReview = &t
	}
	normalizeRecordTimes(rec)
	c.Performance = rec
	return c, nil
}

const candidateQuery = `
	SELECT q.id, q.question_text, q.options, q.correct_option, q.subject, q.sub_subject,
		q.difficulty, q.reasoning, q.created_at, q.updated_at,
		p.id AS perf_id, p.last_seen, p.next_review, p.times_seen, p.times_correct,
		p.times_incorrect, p.average_response_time, p.current_rank,
		p.previous_times_correct, p.previous_average_response_time,
		p.updated_at AS perf_updated_at
	FROM questions q
	LEFT JOIN performance_records p ON p.question_id = q.id`

// likePattern builds a case-insensitive substring pattern with LIKE wildcards escaped
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

// QueryCandidates returns every question matching filter with its record, in ID order
func (s *Store) QueryCandidates(ctx context.Context, filter models.CandidateFilter) ([]models.Candidate, error) {
	var (
		where []string
		args  []any
	)
	if filter.Subject != "" {
		where = append(where, `LOWER(q.subject) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(filter.Subject))
	}
	if filter.SubSubject != "" {
		where = append(where, `LOWER(q.sub_subject) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(filter.SubSubject))
	}
	return s.queryCandidates(ctx, where, args)
}

// ReviewedCandidates returns the questions that have a performance record
func (s *Store) ReviewedCandidates(ctx context.Context) ([]models.Candidate, error) {
	return s.queryCandidates(ctx, []string{"p.last_seen IS NOT NULL"}, nil)
}

func (s *Store) queryCandidates(ctx context.Context, where []string, args []any) ([]models.Candidate, error) {
	query := candidateQuery
	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\tORDER BY q.id"

	var rows []candidateRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	out := make([]models.Candidate, 0, len(rows))
	for _, row := range rows {
		c, err := row.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// UpsertPerformance stores a performance record
func (s *Store) UpsertPerformance(ctx context.Context, rec *models.PerformanceRecord) error {
	return s.Performance.Upsert(ctx, rec)
}
