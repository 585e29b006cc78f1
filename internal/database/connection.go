package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"

	// DefaultFile is the sqlite file created under the data directory
	DefaultFile = "mcqdrill.db"
)

// Config selects and locates the database
type Config struct {
	Type    string // sqlite or postgres
	URL     string // postgres DSN or sqlite path
	DataDir string // used for sqlite when URL is empty
}

// Store owns the connection and the repositories built on it
type Store struct {
	db          *sqlx.DB
	Questions   *QuestionRepository
	Performance *PerformanceRepository
	Statistics  *StatisticsRepository
}

// Connect opens the database described by cfg and makes sure the schema exists
func Connect(cfg Config) (*Store, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.Type {
	case TypePostgres:
		if cfg.URL == "" {
			return nil, fmt.Errorf("postgres requires a database URL")
		}
		db, err = sqlx.Connect("postgres", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	case TypeSQLite, "":
		path := cfg.URL
		if path == "" {
			dataDir := cfg.DataDir
			if dataDir == "" {
				dataDir = "data"
			}
			// Create data directory if it doesn't exist
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
			path = filepath.Join(dataDir, DefaultFile)
		}
		db, err = sqlx.Connect("sqlite3", path)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}

	store, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewStore wraps an open connection and initializes the schema
func NewStore(db *sqlx.DB) (*Store, error) {
	if err := initializeSchema(db); err != nil {
		return nil, err
	}
	return &Store{
		db:          db,
		Questions:   NewQuestionRepository(db),
		Performance: NewPerformanceRepository(db),
		Statistics:  NewStatisticsRepository(db),
	}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func isPostgres(db *sqlx.DB) bool {
	return db.DriverName() == "postgres"
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	stmts := sqliteSchema
	if isPostgres(db) {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question_text TEXT NOT NULL UNIQUE,
		options TEXT NOT NULL,
		correct_option TEXT NOT NULL,
		subject TEXT NOT NULL,
		sub_subject TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '',
		reasoning TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_subject ON questions(subject)`,
	`CREATE TABLE IF NOT EXISTS performance_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question_id INTEGER NOT NULL UNIQUE,
		last_seen TIMESTAMP,
		next_review TIMESTAMP,
		times_seen INTEGER NOT NULL DEFAULT 0,
		times_correct INTEGER NOT NULL DEFAULT 0,
		times_incorrect INTEGER NOT NULL DEFAULT 0,
		average_response_time REAL NOT NULL DEFAULT 0,
		current_rank REAL NOT NULL DEFAULT 1,
		previous_times_correct INTEGER NOT NULL DEFAULT 0,
		previous_average_response_time REAL NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL,
		FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_performance_next_review ON performance_records(next_review)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id BIGSERIAL PRIMARY KEY,
		question_text TEXT NOT NULL UNIQUE,
		options TEXT NOT NULL,
		correct_option TEXT NOT NULL,
		subject TEXT NOT NULL,
		sub_subject TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '',
		reasoning TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_subject ON questions(subject)`,
	`CREATE TABLE IF NOT EXISTS performance_records (
		id BIGSERIAL PRIMARY KEY,
		question_id BIGINT NOT NULL UNIQUE REFERENCES questions(id) ON DELETE CASCADE,
		last_seen TIMESTAMPTZ,
		next_review TIMESTAMPTZ,
		times_seen INTEGER NOT NULL DEFAULT 0,
		times_correct INTEGER NOT NULL DEFAULT 0,
		times_incorrect INTEGER NOT NULL DEFAULT 0,
		average_response_time DOUBLE PRECISION NOT NULL DEFAULT 0,
		current_rank DOUBLE PRECISION NOT NULL DEFAULT 1,
		previous_times_correct INTEGER NOT NULL DEFAULT 0,
		previous_average_response_time DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_performance_next_review ON performance_records(next_review)`,
}
