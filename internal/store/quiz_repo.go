package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type quizRepo struct {
	db *sqlx.DB
}

func (r *quizRepo) Save(ctx context.Context, sessionID string, data []byte, quizType, difficulty string) (string, error) {
	quizID := uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO quizzes (quiz_id, session_id, quiz_data, quiz_type, difficulty) VALUES (?, ?, ?, ?, ?)`,
		quizID, sessionID, string(data), quizType, difficulty)
	if err != nil {
		return "", fmt.Errorf("insert quiz: %w", err)
	}

	return quizID, nil
}

func (r *quizRepo) Get(ctx context.Context, quizID string) (*Quiz, error) {
	var q Quiz
	err := r.db.GetContext(ctx, &q,
		`SELECT quiz_id, session_id, quiz_data, quiz_type, difficulty, created_at FROM quizzes WHERE quiz_id = ?`,
		quizID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query quiz: %w", err)
	}
	return &q, nil
}
