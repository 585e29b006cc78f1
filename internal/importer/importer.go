package importer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/example/mcqdrill/pkg/models"
)

// DefaultBatchSize is the number of questions inserted per transaction
const DefaultBatchSize = 100

// Repository is where imported questions go
type Repository interface {
	ExistingTexts(ctx context.Context) (map[string]struct{}, error)
	CreateBatch(ctx context.Context, questions []models.Question) (int, error)
}

// Config defines the import configuration
type Config struct {
	FilePath  string // .xlsx, .csv, .json or .jsonl
	SheetName string // xlsx sheet, first sheet when empty
	StartRow  int    // first data row for xlsx/csv (1-based), 2 skips the header
	BatchSize int

	// Column letters for tabular files
	QuestionColumn   string
	OptionsColumn    string
	CorrectColumn    string
	SubjectColumn    string
	SubSubjectColumn string
	DifficultyColumn string
	ReasoningColumn  string

	Logger *slog.Logger
}

// DefaultConfig returns the default import configuration
func DefaultConfig() Config {
	return Config{
		StartRow:         2,
		BatchSize:        DefaultBatchSize,
		QuestionColumn:   "A",
		OptionsColumn:    "B",
		CorrectColumn:    "C",
		SubjectColumn:    "D",
		SubSubjectColumn: "E",
		DifficultyColumn: "F",
		ReasoningColumn:  "G",
	}
}

// Result holds the result of an import operation
type Result struct {
	TotalProcessed int
	Created        int
	Duplicates     int
	Incomplete     int
	Errors         []string
}

// record is one question as read from a file, before validation
type record struct {
	line       int
	text       string
	options    []string
	correct    string
	subject    string
	subSubject string
	difficulty string
	reasoning  string
}

// Import reads questions from cfg.FilePath and stores the new ones
func Import(ctx context.Context, repo Repository, cfg Config) (*Result, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	result := &Result{Errors: make([]string, 0)}

	var (
		records []record
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(cfg.FilePath)); ext {
	case ".xlsx", ".xlsm":
		records, err = readExcel(cfg)
	case ".csv":
		records, err = readCSV(cfg)
	case ".json":
		records, err = readJSON(cfg.FilePath)
	case ".jsonl", ".ndjson":
		records, err = readJSONL(cfg.FilePath, result)
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}

	existing, err := repo.ExistingTexts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing questions: %w", err)
	}

	batch := make([]models.Question, 0, cfg.BatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := repo.CreateBatch(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to store questions: %w", err)
		}
		result.Created += n
		result.Duplicates += len(batch) - n
		cfg.Logger.Info("imported question batch", "size", len(batch), "created", n)
		batch = batch[:0]
		return nil
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.TotalProcessed++

		q, err := rec.toQuestion()
		if err != nil {
			result.Incomplete++
			cfg.Logger.Warn("skipping incomplete question", "line", rec.line, "error", err)
			continue
		}
		if _, dup := existing[q.Text]; dup {
			result.Duplicates++
			cfg.Logger.Debug("skipping duplicate question", "line", rec.line)
			continue
		}
		existing[q.Text] = struct{}{}

		batch = append(batch, q)
		if len(batch) >= cfg.BatchSize {
			if err := flush(); err != nil {
				return result, err
			}
		}
	}
	if err := flush(); err != nil {
		return result, err
	}

	cfg.Logger.Info("import completed",
		"file", cfg.FilePath,
		"processed", result.TotalProcessed,
		"created", result.Created,
		"duplicates", result.Duplicates,
		"incomplete", result.Incomplete,
		"errors", len(result.Errors))
	return result, nil
}

// toQuestion cleans the record and checks the mandatory fields
func (r record) toQuestion() (models.Question, error) {
	q := models.Question{
		Text:       strings.TrimSpace(r.text),
		Subject:    strings.TrimSpace(r.subject),
		SubSubject: strings.TrimSpace(r.subSubject),
		Difficulty: strings.TrimSpace(r.difficulty),
		Reasoning:  strings.TrimSpace(r.reasoning),
	}
	for _, opt := range r.options {
		if opt = models.NormalizeOption(opt); opt != "" {
			q.Options = append(q.Options, opt)
		}
	}
	q.Options, _ = models.StripLabels(q.Options)
	q.CorrectOption = resolveCorrect(r.correct, q.Options)

	if err := q.Validate(); err != nil {
		return q, err
	}
	return q, nil
}

// resolveCorrect maps the answer onto an option. An answer that matches an
// option is kept as written. A labeled answer ("B. green") is accepted when the
// label points at that option, and a bare letter is read as the option at that
// position.
func resolveCorrect(answer string, options []string) string {
	a := models.NormalizeOption(answer)
	for _, opt := range options {
		if opt == a {
			return a
		}
	}
	if idx, rest, ok := models.SplitLabel(a); ok && idx < len(options) && options[idx] == rest {
		return rest
	}
	letter := strings.TrimRight(a, ".)")
	if len(letter) == 1 {
		idx := int(strings.ToUpper(letter)[0]) - 'A'
		if idx >= 0 && idx < len(options) {
			return options[idx]
		}
	}
	return a
}
