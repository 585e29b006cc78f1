package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/mcqdrill/pkg/models"
)

// QuestionRepository handles database operations for questions
type QuestionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository creates a new repository instance
func NewQuestionRepository(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// questionRow carries the options column as stored JSON
type questionRow struct {
	models.Question
	OptionsJSON string `db:"options"`
}

func (r questionRow) toModel() (models.Question, error) {
	q := r.Question
	opts, err := decodeOptions(r.OptionsJSON)
	if err != nil {
		return q, fmt.Errorf("question %d: %w", q.ID, err)
	}
	q.Options = opts
	q.CreatedAt = q.CreatedAt.UTC()
	q.UpdatedAt = q.UpdatedAt.UTC()
	return q, nil
}

func encodeOptions(opts []string) (string, error) {
	if opts == nil {
		opts = []string{}
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}
	return string(b), nil
}

func decodeOptions(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	return opts, nil
}

const questionColumns = `id, question_text, options, correct_option, subject, sub_subject,
	difficulty, reasoning, created_at, updated_at`

// Create inserts a new question and fills in its ID and timestamps
func (r *QuestionRepository) Create(ctx context.Context, q *models.Question) error {
	opts, err := encodeOptions(q.Options)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO questions (question_text, options, correct_option, subject, sub_subject, difficulty, reasoning, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err = r.db.QueryRowxContext(ctx, query,
		q.Text,
		opts,
		q.CorrectOption,
		q.Subject,
		q.SubSubject,
		q.Difficulty,
		q.Reasoning,
		now,
		now,
	).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	q.CreatedAt, q.UpdatedAt = now, now
	return nil
}

// CreateBatch inserts questions in a single transaction. Questions whose text
// already exists are left alone. It returns the number of rows inserted.
func (r *QuestionRepository) CreateBatch(ctx context.Context, questions []models.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
		INSERT INTO questions (question_text, options, correct_option, subject, sub_subject, difficulty, reasoning, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (question_text) DO NOTHING
	`))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	created := 0
	for _, q := range questions {
		opts, err := encodeOptions(q.Options)
		if err != nil {
			return 0, err
		}
		res, err := stmt.ExecContext(ctx,
			q.Text,
			opts,
			q.CorrectOption,
			q.Subject,
			q.SubSubject,
			q.Difficulty,
			q.Reasoning,
			now,
			now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert question %q: %w", q.Text, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get affected rows: %w", err)
		}
		created += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit questions: %w", err)
	}
	return created, nil
}

// GetByID returns a question by ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	return r.getOne(ctx, "SELECT "+questionColumns+" FROM questions WHERE id = ?", id)
}

// GetByText returns the question with exactly this text
func (r *QuestionRepository) GetByText(ctx context.Context, text string) (*models.Question, error) {
	return r.getOne(ctx, "SELECT "+questionColumns+" FROM questions WHERE question_text = ?", text)
}

func (r *QuestionRepository) getOne(ctx context.Context, query string, arg any) (*models.Question, error) {
	var row questionRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	q, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetAll returns every question ordered by ID
func (r *QuestionRepository) GetAll(ctx context.Context) ([]models.Question, error) {
	var rows []questionRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT "+questionColumns+" FROM questions ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	out := make([]models.Question, 0, len(rows))
	for _, row := range rows {
		q, err := row.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// ExistingTexts returns the set of stored question texts
func (r *QuestionRepository) ExistingTexts(ctx context.Context) (map[string]struct{}, error) {
	var texts []string
	if err := r.db.SelectContext(ctx, &texts, "SELECT question_text FROM questions"); err != nil {
		return nil, fmt.Errorf("failed to get question texts: %w", err)
	}
	out := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		out[t] = struct{}{}
	}
	return out, nil
}

// Subjects returns the number of questions per subject
func (r *QuestionRepository) Subjects(ctx context.Context) ([]models.SubjectCount, error) {
	var subjects []models.SubjectCount
	err := r.db.SelectContext(ctx, &subjects, `
		SELECT subject, COUNT(*) AS count
		FROM questions
		GROUP BY subject
		ORDER BY subject
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get subjects: %w", err)
	}
	return subjects, nil
}

// Count returns the number of stored questions
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM questions"); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return n, nil
}
