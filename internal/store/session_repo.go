package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

type sessionRepo struct {
	db *sqlx.DB
}

func (r *sessionRepo) Create(ctx context.Context, source, extractedText string, topics []string) (string, error) {
	sessionID := uuid.NewString()

	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		return "", fmt.Errorf("marshal topics: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, source, extracted_text, topics) VALUES (?, ?, ?, ?)`,
		sessionID, source, extractedText, string(topicsJSON))
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	return sessionID, nil
}

func (r *sessionRepo) Get(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	err := r.db.GetContext(ctx, &s,
		`SELECT session_id, source, extracted_text, topics, created_at FROM sessions WHERE session_id = ?`,
		sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query session: %w", err)
	}

	if err := json.Unmarshal([]byte(s.TopicsJSON), &s.Topics); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}

	return &s, nil
}
