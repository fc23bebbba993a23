package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type submissionRepo struct {
	db *sqlx.DB
}

func (r *submissionRepo) Save(ctx context.Context, quizID, sessionID string, score float64, results []byte) (string, error) {
	submissionID := uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO submissions (submission_id, quiz_id, session_id, score, results) VALUES (?, ?, ?, ?, ?)`,
		submissionID, quizID, sessionID, score, string(results))
	if err != nil {
		return "", fmt.Errorf("insert submission: %w", err)
	}

	return submissionID, nil
}

func (r *submissionRepo) LastScore(ctx context.Context, sessionID string) (float64, error) {
	var score float64
	err := r.db.GetContext(ctx, &score,
		`SELECT score FROM submissions WHERE session_id = ? ORDER BY rowid DESC LIMIT 1`,
		sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultScore, nil
		}
		return 0, fmt.Errorf("query last score: %w", err)
	}
	return score, nil
}

func (r *submissionRepo) Stats(ctx context.Context, sessionID string) (*PerformanceStats, error) {
	var points []ScorePoint
	err := r.db.SelectContext(ctx, &points,
		`SELECT score, created_at FROM submissions WHERE session_id = ? ORDER BY rowid`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	if len(points) == 0 {
		return nil, ErrNotFound
	}

	sum := 0.0
	for i := range points {
		points[i].QuizNumber = i + 1
		sum += points[i].Score
	}
	avg := sum / float64(len(points))

	stats := &PerformanceStats{
		SessionID:        sessionID,
		TotalQuizzes:     len(points),
		AverageScore:     avg,
		TopicPerformance: make(map[string]float64),
		History:          points,
	}

	// Per-topic performance is the session average applied to each
	// topic; submissions are not attributed to individual topics.
	var topicsJSON string
	err = r.db.GetContext(ctx, &topicsJSON,
		`SELECT topics FROM sessions WHERE session_id = ?`, sessionID)
	if err == nil {
		var topics []string
		if jsonErr := decodeTopics(topicsJSON, &topics); jsonErr == nil {
			for _, t := range topics {
				stats.TopicPerformance[t] = avg
			}
		}
	}

	return stats, nil
}

func (r *submissionRepo) SaveState(ctx context.Context, sessionID string, data []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO learner_states (session_id, state_data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(session_id) DO UPDATE SET state_data = excluded.state_data, updated_at = CURRENT_TIMESTAMP`,
		sessionID, string(data))
	if err != nil {
		return fmt.Errorf("upsert learner state: %w", err)
	}
	return nil
}

func (r *submissionRepo) GetState(ctx context.Context, sessionID string) ([]byte, error) {
	var data string
	err := r.db.GetContext(ctx, &data,
		`SELECT state_data FROM learner_states WHERE session_id = ?`, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query learner state: %w", err)
	}
	return []byte(data), nil
}
