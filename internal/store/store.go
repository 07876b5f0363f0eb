package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// DBPool is an interface that abstracts the pgxpool.Pool to allow for mocking in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Record is one answered question.
type Record struct {
	ID         string
	Question   string
	Answer     string
	Model      string
	AnsweredAt time.Time
}

const (
	sqlCreateAnswers = `
        CREATE TABLE IF NOT EXISTS answers (
            id          UUID PRIMARY KEY,
            question    TEXT NOT NULL,
            answer      TEXT NOT NULL,
            model       TEXT NOT NULL,
            answered_at TIMESTAMPTZ NOT NULL
        );
    `
	sqlInsertAnswer = `
        INSERT INTO answers (id, question, answer, model, answered_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	sqlRecentAnswers = `
        SELECT id, question, answer, model, answered_at
        FROM answers
        ORDER BY answered_at DESC
        LIMIT $1;
    `
)

// Store provides a PostgreSQL log of answered questions.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

// New creates a new store instance on an already connected pool.
func New(pool DBPool, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}
}

// EnsureSchema creates the answers table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, sqlCreateAnswers); err != nil {
		return fmt.Errorf("failed to create answers table: %w", err)
	}
	return nil
}

// RecordAnswer stores one answer. A missing ID is generated and the timestamp
// is stored in UTC; the stored record is returned.
func (s *Store) RecordAnswer(ctx context.Context, r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.AnsweredAt.IsZero() {
		r.AnsweredAt = time.Now()
	}
	r.AnsweredAt = r.AnsweredAt.UTC()

	tag, err := s.pool.Exec(ctx, sqlInsertAnswer, r.ID, r.Question, r.Answer, r.Model, r.AnsweredAt)
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert answer: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return Record{}, fmt.Errorf("mismatch in inserted answers: expected 1, got %d", tag.RowsAffected())
	}
	s.log.Debug("Answer recorded.", zap.String("id", r.ID), zap.String("model", r.Model))
	return r, nil
}

// RecentAnswers returns up to limit answers, newest first.
func (s *Store) RecentAnswers(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	rows, err := s.pool.Query(ctx, sqlRecentAnswers, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Question, &r.Answer, &r.Model, &r.AnsweredAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}
	return records, nil
}
