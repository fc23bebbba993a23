package store

import (
	"context"
	"time"
)

// Session is a persisted upload/processing session.
type Session struct {
	SessionID     string    `db:"session_id"`
	Source        string    `db:"source"`
	ExtractedText string    `db:"extracted_text"`
	TopicsJSON    string    `db:"topics"`
	CreatedAt     time.Time `db:"created_at"`

	// Topics is decoded from TopicsJSON on load.
	Topics []string `db:"-"`
}

// Quiz is a persisted quiz record. Data holds the serialized question
// set exactly as the generation pipeline produced it; it round-trips
// unchanged.
type Quiz struct {
	QuizID     string    `db:"quiz_id"`
	SessionID  string    `db:"session_id"`
	Data       string    `db:"quiz_data"`
	QuizType   string    `db:"quiz_type"`
	Difficulty string    `db:"difficulty"`
	CreatedAt  time.Time `db:"created_at"`
}

// Submission is a persisted quiz submission with its per-question results.
type Submission struct {
	SubmissionID string    `db:"submission_id"`
	QuizID       string    `db:"quiz_id"`
	SessionID    string    `db:"session_id"`
	Score        float64   `db:"score"`
	ResultsJSON  string    `db:"results"`
	CreatedAt    time.Time `db:"created_at"`
}

// ScorePoint is one historical submission score.
type ScorePoint struct {
	Score      float64   `db:"score"`
	CreatedAt  time.Time `db:"created_at"`
	QuizNumber int       `db:"-"`
}

// PerformanceStats aggregates a session's submission history.
type PerformanceStats struct {
	SessionID        string
	TotalQuizzes     int
	AverageScore     float64
	TopicPerformance map[string]float64
	History          []ScorePoint
}

// SessionRepo manages session records.
type SessionRepo interface {
	// Create stores a new session and returns its generated ID.
	Create(ctx context.Context, source, extractedText string, topics []string) (string, error)

	// Get returns the session, or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*Session, error)
}

// QuizRepo manages quiz records.
type QuizRepo interface {
	// Save stores a quiz and returns its generated ID.
	Save(ctx context.Context, sessionID string, data []byte, quizType, difficulty string) (string, error)

	// Get returns the serialized quiz data, or ErrNotFound.
	Get(ctx context.Context, quizID string) (*Quiz, error)
}

// SubmissionRepo manages submissions and learner state.
type SubmissionRepo interface {
	// Save stores a submission and returns its generated ID.
	Save(ctx context.Context, quizID, sessionID string, score float64, results []byte) (string, error)

	// LastScore returns the most recent submission score for the session.
	// Returns DefaultScore when the session has no submissions yet.
	LastScore(ctx context.Context, sessionID string) (float64, error)

	// Stats aggregates the session's submission history, or ErrNotFound
	// when the session has no submissions.
	Stats(ctx context.Context, sessionID string) (*PerformanceStats, error)

	// SaveState upserts the serialized learner state for a session.
	SaveState(ctx context.Context, sessionID string, data []byte) error

	// GetState returns the serialized learner state, or ErrNotFound.
	GetState(ctx context.Context, sessionID string) ([]byte, error)
}

// DefaultScore is the neutral score assumed before any submission exists.
const DefaultScore = 50.0

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int
	Purpose string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a persisted LLM request event.
type LLMEvent struct {
	ID           int64     `db:"id"`
	Timestamp    time.Time `db:"timestamp"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	LatencyMs    int64     `db:"latency_ms"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
	RequestBody  string    `db:"request_body"`
	ResponseBody string    `db:"response_body"`
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns recent events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
}
