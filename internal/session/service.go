// Package session orchestrates the quiz lifecycle: source intake,
// topic extraction, quiz generation, scoring, and adaptive module
// progression, persisted through the store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/socratai/socratai/internal/adaptive"
	"github.com/socratai/socratai/internal/extract"
	"github.com/socratai/socratai/internal/quizgen"
	"github.com/socratai/socratai/internal/store"
	"github.com/socratai/socratai/internal/topics"
)

// ErrSessionNotFound indicates the caller referenced an unknown session.
var ErrSessionNotFound = errors.New("session not found")

// ErrQuizNotFound indicates the caller referenced an unknown quiz.
var ErrQuizNotFound = errors.New("quiz not found")

// Service owns the quiz lifecycle for all sessions.
type Service struct {
	sessions    store.SessionRepo
	quizzes     store.QuizRepo
	submissions store.SubmissionRepo
	extractor   extract.Extractor
	cascade     *quizgen.Cascade
	engine      *adaptive.Engine

	// state transitions are serialized per session so concurrent
	// submissions cannot break the module-index and history invariants.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates the session service.
func New(st *store.Store, extractor extract.Extractor, cascade *quizgen.Cascade) *Service {
	return &Service{
		sessions:    st.SessionRepo(),
		quizzes:     st.QuizRepo(),
		submissions: st.SubmissionRepo(),
		extractor:   extractor,
		cascade:     cascade,
		engine:      adaptive.NewEngine(),
		locks:       make(map[string]*sync.Mutex),
	}
}

func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

// StartResult is the outcome of session creation.
type StartResult struct {
	SessionID  string   `json:"session_id"`
	Topics     []string `json:"topics"`
	TextLength int      `json:"text_length"`
}

// Start extracts text from the source, derives topics, and creates a
// session with a fresh learner state.
func (s *Service) Start(ctx context.Context, source string) (*StartResult, error) {
	text, err := s.extractor.Extract(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("extracting source text: %w", err)
	}

	topicList := topics.Extract(text)

	sessionID, err := s.sessions.Create(ctx, source, text, topicList)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	stateData, err := json.Marshal(adaptive.NewLearnerState())
	if err != nil {
		return nil, fmt.Errorf("encoding learner state: %w", err)
	}
	if err := s.submissions.SaveState(ctx, sessionID, stateData); err != nil {
		return nil, fmt.Errorf("saving learner state: %w", err)
	}

	return &StartResult{
		SessionID:  sessionID,
		Topics:     topicList,
		TextLength: len(text),
	}, nil
}

// GenerateOptions tune a standalone quiz request.
type GenerateOptions struct {
	// Count is the number of questions. Defaults to 10.
	Count int

	// Type is the question shape. Defaults to mcq.
	Type quizgen.QuestionType

	// Difficulty overrides the adaptive choice when set. When empty,
	// the difficulty derives from the session's last submission score.
	Difficulty adaptive.Difficulty

	// Focus is the cognitive level. Defaults to Mixed.
	Focus adaptive.Bloom
}

// QuizResult pairs a stored quiz with its ID.
type QuizResult struct {
	QuizID string           `json:"quiz_id"`
	Quiz   *quizgen.QuizSet `json:"quiz"`
}

// GenerateQuiz produces and stores a quiz for the session. The request
// always yields a question set, degrading through the cascade tiers;
// only an invalid session reference is an error.
func (s *Service) GenerateQuiz(ctx context.Context, sessionID string, opts GenerateOptions) (*QuizResult, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if opts.Count <= 0 {
		opts.Count = 10
	}
	if opts.Type == "" {
		opts.Type = quizgen.TypeMCQ
	}
	if opts.Focus == "" {
		opts.Focus = adaptive.BloomMixed
	}
	if opts.Difficulty == "" {
		lastScore, err := s.submissions.LastScore(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("loading last score: %w", err)
		}
		opts.Difficulty = adaptive.NextDifficulty(lastScore)
	}

	req := quizgen.GenerationRequest{
		Topics:     sess.Topics,
		Context:    sess.ExtractedText,
		Count:      opts.Count,
		Difficulty: opts.Difficulty,
		Focus:      opts.Focus,
		Type:       opts.Type,
	}
	return s.generateAndStore(ctx, sessionID, req)
}

// GenerateModuleQuiz produces the quiz for the learner's current
// adaptive module: a fixed diagnostic for module 1, state-driven
// parameters afterwards.
func (s *Service) GenerateModuleQuiz(ctx context.Context, sessionID string) (*QuizResult, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cfg := s.engine.ModuleConfig(state)

	req := quizgen.GenerationRequest{
		Topics:     sess.Topics,
		Context:    sess.ExtractedText,
		Count:      cfg.NumQuestions,
		Difficulty: cfg.Difficulty,
		Focus:      cfg.Focus,
		Type:       quizgen.TypeMCQ,
	}
	return s.generateAndStore(ctx, sessionID, req)
}

func (s *Service) generateAndStore(ctx context.Context, sessionID string, req quizgen.GenerationRequest) (*QuizResult, error) {
	set, err := s.cascade.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating quiz: %w", err)
	}

	data, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("encoding quiz: %w", err)
	}
	quizID, err := s.quizzes.Save(ctx, sessionID, data, string(set.QuestionType), string(set.Difficulty))
	if err != nil {
		return nil, fmt.Errorf("saving quiz: %w", err)
	}

	return &QuizResult{QuizID: quizID, Quiz: set}, nil
}

// Answer is one learner response to a quiz question.
type Answer struct {
	// Index is the selected option for mcq questions.
	Index int `json:"index"`

	// Text is the free-text response for fill_ups and short_answer.
	Text string `json:"text"`

	// TimeTaken is the response time in seconds.
	TimeTaken float64 `json:"time_taken"`

	// Skipped marks an unanswered question. A skipped answer is
	// always scored incorrect.
	Skipped bool `json:"skipped"`
}

// QuestionResult is the scored outcome of one question.
type QuestionResult struct {
	QuestionIndex int    `json:"question_index"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// SubmissionResult aggregates a scored quiz submission.
type SubmissionResult struct {
	SubmissionID   string              `json:"submission_id"`
	Results        []QuestionResult    `json:"results"`
	Score          float64             `json:"score"`
	Correct        int                 `json:"correct"`
	Total          int                 `json:"total"`
	NextDifficulty adaptive.Difficulty `json:"next_difficulty"`
}

// SubmitQuiz scores the answers against the stored quiz, persists the
// submission, and reports the next difficulty tier.
func (s *Service) SubmitQuiz(ctx context.Context, quizID string, answers []Answer) (*SubmissionResult, error) {
	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("loading quiz: %w", err)
	}

	var set quizgen.QuizSet
	if err := json.Unmarshal([]byte(quiz.Data), &set); err != nil {
		return nil, fmt.Errorf("decoding quiz: %w", err)
	}

	results := make([]QuestionResult, 0, len(set.Questions))
	correct := 0
	for i, q := range set.Questions {
		var ans Answer
		if i < len(answers) {
			ans = answers[i]
		} else {
			ans = Answer{Skipped: true}
		}

		r := scoreQuestion(i, q, ans)
		if r.IsCorrect {
			correct++
		}
		results = append(results, r)
	}

	total := len(set.Questions)
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 100
	}

	resultsData, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("encoding results: %w", err)
	}
	submissionID, err := s.submissions.Save(ctx, quizID, quiz.SessionID, score, resultsData)
	if err != nil {
		return nil, fmt.Errorf("saving submission: %w", err)
	}

	return &SubmissionResult{
		SubmissionID:   submissionID,
		Results:        results,
		Score:          score,
		Correct:        correct,
		Total:          total,
		NextDifficulty: adaptive.NextDifficulty(score),
	}, nil
}

// scoreQuestion applies the type-specific scoring rule.
func scoreQuestion(idx int, q quizgen.Question, ans Answer) QuestionResult {
	r := QuestionResult{QuestionIndex: idx}

	switch q.Type {
	case quizgen.TypeMCQ:
		r.CorrectAnswer = q.Options[q.AnswerIndex]
		if ans.Index >= 0 && ans.Index < len(q.Options) {
			r.UserAnswer = q.Options[ans.Index]
		}
		r.IsCorrect = !ans.Skipped && ans.Index == q.AnswerIndex
	case quizgen.TypeFillUps:
		r.CorrectAnswer = q.Answer
		r.UserAnswer = ans.Text
		r.IsCorrect = !ans.Skipped && strings.EqualFold(strings.TrimSpace(ans.Text), strings.TrimSpace(q.Answer))
	case quizgen.TypeShortAnswer:
		r.CorrectAnswer = strings.Join(q.Keywords, ", ")
		r.UserAnswer = ans.Text
		if !ans.Skipped && strings.TrimSpace(ans.Text) != "" {
			lower := strings.ToLower(ans.Text)
			r.IsCorrect = true
			for _, k := range q.Keywords {
				if !strings.Contains(lower, strings.ToLower(k)) {
					r.IsCorrect = false
					break
				}
			}
		}
	}
	return r
}

// AdvanceModule runs the adaptive transition for one completed module
// under the session's lock and persists the updated learner state.
func (s *Service) AdvanceModule(ctx context.Context, sessionID string, results []adaptive.ModuleResult) (*adaptive.LearnerState, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Evaluate(state, results); err != nil {
		return nil, err
	}

	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encoding learner state: %w", err)
	}
	if err := s.submissions.SaveState(ctx, sessionID, data); err != nil {
		return nil, fmt.Errorf("saving learner state: %w", err)
	}
	return state, nil
}

// State returns the session's current learner state.
func (s *Service) State(ctx context.Context, sessionID string) (*adaptive.LearnerState, error) {
	return s.loadState(ctx, sessionID)
}

func (s *Service) loadState(ctx context.Context, sessionID string) (*adaptive.LearnerState, error) {
	data, err := s.submissions.GetState(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Sessions created before adaptive flows have no state row.
			return adaptive.NewLearnerState(), nil
		}
		return nil, fmt.Errorf("loading learner state: %w", err)
	}
	var state adaptive.LearnerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decoding learner state: %w", err)
	}
	return &state, nil
}

// Stats aggregates the session's submission history.
func (s *Service) Stats(ctx context.Context, sessionID string) (*store.PerformanceStats, error) {
	stats, err := s.submissions.Stats(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading stats: %w", err)
	}
	return stats, nil
}
