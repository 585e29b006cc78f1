package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/mcqdrill/pkg/models"
)

// PerformanceRepository handles database operations for performance records
type PerformanceRepository struct {
	db *sqlx.DB
}

// NewPerformanceRepository creates a new repository instance
func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

const performanceColumns = `id, question_id, last_seen, next_review, times_seen, times_correct,
	times_incorrect, average_response_time, current_rank, previous_times_correct,
	previous_average_response_time, updated_at`

// GetByQuestion returns the record of a question, ErrNotFound before the first attempt
func (r *PerformanceRepository) GetByQuestion(ctx context.Context, questionID int64) (*models.PerformanceRecord, error) {
	var rec models.PerformanceRecord
	query := r.db.Rebind("SELECT " + performanceColumns + " FROM performance_records WHERE question_id = ?")
	err := r.db.GetContext(ctx, &rec, query, questionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get performance record: %w", err)
	}
	normalizeRecordTimes(&rec)
	return &rec, nil
}

// Upsert inserts or replaces the record of rec.QuestionID in one statement
// and sets rec.ID.
func (r *PerformanceRepository) Upsert(ctx context.Context, rec *models.PerformanceRecord) error {
	if rec.QuestionID == 0 {
		return fmt.Errorf("performance record has no question id")
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}

	query := r.db.Rebind(`
		INSERT INTO performance_records (
			question_id, last_seen, next_review, times_seen, times_correct, times_incorrect,
			average_response_time, current_rank, previous_times_correct,
			previous_average_response_time, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (question_id) DO UPDATE SET
			last_seen = excluded.last_seen,
			next_review = excluded.next_review,
			times_seen = excluded.times_seen,
			times_correct = excluded.times_correct,
			times_incorrect = excluded.times_incorrect,
			average_response_time = excluded.average_response_time,
			current_rank = excluded.current_rank,
			previous_times_correct = excluded.previous_times_correct,
			previous_average_response_time = excluded.previous_average_response_time,
			updated_at = excluded.updated_at
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		rec.QuestionID,
		utcPtr(rec.LastSeen),
		utcPtr(rec.NextReview),
		rec.TimesSeen,
		rec.TimesCorrect,
		rec.TimesIncorrect,
		rec.AverageResponseTime,
		rec.CurrentRank,
		rec.PreviousTimesCorrect,
		rec.PreviousAverageResponseTime,
		rec.UpdatedAt.UTC(),
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert performance record: %w", err)
	}
	return nil
}

// GetAll returns every performance record
func (r *PerformanceRepository) GetAll(ctx context.Context) ([]models.PerformanceRecord, error) {
	var recs []models.PerformanceRecord
	if err := r.db.SelectContext(ctx, &recs, "SELECT "+performanceColumns+" FROM performance_records ORDER BY question_id"); err != nil {
		return nil, fmt.Errorf("failed to get performance records: %w", err)
	}
	for i := range recs {
		normalizeRecordTimes(&recs[i])
	}
	return recs, nil
}

// utcPtr returns a UTC copy; nil stays nil so the driver writes NULL
func utcPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func normalizeRecordTimes(rec *models.PerformanceRecord) {
	if rec.LastSeen != nil {
		t := rec.LastSeen.UTC()
		rec.LastSeen = &t
	}
	if rec.NextReview != nil {
		t := rec.NextReview.UTC()
		rec.NextReview = &t
	}
	rec.UpdatedAt = rec.UpdatedAt.UTC()
}
