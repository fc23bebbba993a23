package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/socratai/socratai/internal/adaptive"
	"github.com/socratai/socratai/internal/extract"
	"github.com/socratai/socratai/internal/quizgen"
	"github.com/socratai/socratai/internal/store"
)

const syllabus = "1. Determinant of a Matrix\n2. Inverse of a Matrix\n3. Eigenvalues and Eigenvectors"

// newTestService builds a service over a temp database with a
// deterministic template-only cascade.
func newTestService(t *testing.T) *Service {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := quizgen.DefaultConfig()
	registry := quizgen.NewRegistryWithTiers(quizgen.NewTemplateTier(cfg))
	cascade := quizgen.NewCascade(registry, cfg)

	return New(st, extract.PlainText{}, cascade)
}

func TestStart(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Start(context.Background(), syllabus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SessionID == "" {
		t.Fatal("expected a session ID")
	}
	if len(res.Topics) != 3 {
		t.Errorf("expected 3 topics, got %v", res.Topics)
	}

	state, err := svc.State(context.Background(), res.SessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Module != 1 {
		t.Errorf("fresh session should start at module 1, got %d", state.Module)
	}
}

func TestGenerateQuiz_Defaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Start(ctx, syllabus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quiz, err := svc.GenerateQuiz(ctx, res.SessionID, GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz.QuizID == "" {
		t.Fatal("expected a quiz ID")
	}
	if len(quiz.Quiz.Questions) != 10 {
		t.Errorf("expected default 10 questions, got %d", len(quiz.Quiz.Questions))
	}
	// No submissions yet: neutral score 50 maps to Easy.
	if quiz.Quiz.Difficulty != adaptive.DifficultyEasy {
		t.Errorf("expected Easy for a fresh session, got %q", quiz.Quiz.Difficulty)
	}
	if quiz.Quiz.TopicCount != 3 {
		t.Errorf("expected topic_count 3, got %d", quiz.Quiz.TopicCount)
	}
}

func TestGenerateQuiz_UnknownSession(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.GenerateQuiz(context.Background(), "nope", GenerateOptions{}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSubmitQuiz_AllCorrect(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Start(ctx, syllabus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quiz, err := svc.GenerateQuiz(ctx, res.SessionID, GenerateOptions{Count: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answers := make([]Answer, len(quiz.Quiz.Questions))
	for i, q := range quiz.Quiz.Questions {
		answers[i] = Answer{Index: q.AnswerIndex, TimeTaken: 12}
	}

	sub, err := svc.SubmitQuiz(ctx, quiz.QuizID, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Score != 100 {
		t.Errorf("expected score 100, got %v", sub.Score)
	}
	if sub.Correct != 4 || sub.Total != 4 {
		t.Errorf("expected 4/4, got %d/%d", sub.Correct, sub.Total)
	}
	if sub.NextDifficulty != adaptive.DifficultyHard {
		t.Errorf("expected Hard next, got %q", sub.NextDifficulty)
	}
	for i, r := range sub.Results {
		if !r.IsCorrect {
			t.Errorf("question %d should be correct", i)
		}
		if r.UserAnswer != r.CorrectAnswer {
			t.Errorf("question %d: answers differ: %q vs %q", i, r.UserAnswer, r.CorrectAnswer)
		}
	}

	// The next default quiz picks up the submission score.
	next, err := svc.GenerateQuiz(ctx, res.SessionID, GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Quiz.Difficulty != adaptive.DifficultyHard {
		t.Errorf("expected Hard after perfect score, got %q", next.Quiz.Difficulty)
	}
}

func TestSubmitQuiz_SkipsAndMissingAnswers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Start(ctx, syllabus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quiz, err := svc.GenerateQuiz(ctx, res.SessionID, GenerateOptions{Count: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Answer only the first question correctly; the rest are omitted
	// and scored as skipped.
	answers := []Answer{{Index: quiz.Quiz.Questions[0].AnswerIndex}}
	sub, err := svc.SubmitQuiz(ctx, quiz.QuizID, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Correct != 1 {
		t.Errorf("expected 1 correct, got %d", sub.Correct)
	}
	if sub.Score != 25 {
		t.Errorf("expected score 25, got %v", sub.Score)
	}
	if sub.NextDifficulty != adaptive.DifficultyEasy {
		t.Errorf("expected Easy next, got %q", sub.NextDifficulty)
	}
}

func TestSubmitQuiz_FillUps(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Start(ctx, syllabus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quiz, err := svc.GenerateQuiz(ctx, res.SessionID, GenerateOptions{Count: 2, Type: quizgen.TypeFillUps})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answers := []Answer{
		{Text: "  " + quiz.Quiz.Questions[0].Answer + " "}, // whitespace tolerated
		{Text: "definitely wrong"},
	}
	sub, err := svc.SubmitQuiz(ctx, quiz.QuizID, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Correct != 1 {
		t.Errorf("expected 1 correct, got %d", sub.Correct)
	}
	if !sub.Results[0].IsCorrect || sub.Results[1].IsCorrect {
		t.Errorf("unexpected per-question results: %+v", sub.Results)
	}
}

func TestSubmitQuiz_UnknownQuiz(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.SubmitQuiz(context.Background(), "nope", nil); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestGenerateModuleQuiz_Diagnostic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Start(ctx, syllabus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quiz, err := svc.GenerateModuleQuiz(ctx, res.SessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz.Quiz.Questions) != 5 {
		t.Errorf("diagnostic module must have 5 questions, got %d", len(quiz.Quiz.Questions))
	}
	if quiz.Quiz.Difficulty != adaptive.DifficultyMedium {
		t.Errorf("diagnostic must be Medium, got %q", quiz.Quiz.Difficulty)
	}
	if quiz.Quiz.BloomLevel != adaptive.BloomAll {
		t.Errorf("diagnostic must cover all levels, got %q", quiz.Quiz.BloomLevel)
	}
}

func TestAdvanceModule(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Start(ctx, syllabus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results := []adaptive.ModuleResult{
		{Correct: true, TimeTaken: 20},
		{Correct: true, TimeTaken: 20},
		{Correct: true, TimeTaken: 20},
		{Correct: true, TimeTaken: 20},
		{Correct: true, TimeTaken: 20},
	}
	state, err := svc.AdvanceModule(ctx, res.SessionID, results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Module != 2 {
		t.Errorf("expected module 2, got %d", state.Module)
	}
	if state.Difficulty != adaptive.DifficultyHard {
		t.Errorf("expected Hard after perfect module, got %q", state.Difficulty)
	}

	// The persisted state drives the next module quiz.
	quiz, err := svc.GenerateModuleQuiz(ctx, res.SessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz.Quiz.Difficulty != adaptive.DifficultyHard {
		t.Errorf("expected Hard module quiz, got %q", quiz.Quiz.Difficulty)
	}
}

func TestAdvanceModule_Serialized(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Start(ctx, syllabus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const workers = 8
	results := []adaptive.ModuleResult{{Correct: true, TimeTaken: 15}}

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AdvanceModule(ctx, res.SessionID, results); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent advance failed: %v", err)
	}

	state, err := svc.State(ctx, res.SessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Module != 1+workers {
		t.Errorf("expected module %d after %d serialized advances, got %d", 1+workers, workers, state.Module)
	}
	if len(state.History) != workers {
		t.Errorf("expected %d history entries, got %d", workers, len(state.History))
	}
}
