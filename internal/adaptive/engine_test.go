package adaptive

import (
	"errors"
	"testing"
)

// makeResults builds a result list with the given correct count, per
// question time, and skip count out of 10 questions.
func makeResults(correct int, timeTaken float64, skips int) []ModuleResult {
	results := make([]ModuleResult, 10)
	for i := range results {
		results[i].TimeTaken = timeTaken
		if i < correct {
			results[i].Correct = true
		}
		if i >= len(results)-skips {
			results[i].Skipped = true
		}
	}
	return results
}

func TestEvaluate_HighAccuracy(t *testing.T) {
	state := NewLearnerState()
	engine := NewEngine()

	// 90% accuracy, slow, no skips.
	if err := engine.Evaluate(state, makeResults(9, 20, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Difficulty != DifficultyHard {
		t.Errorf("expected Hard, got %q", state.Difficulty)
	}
	if state.Focus != BloomAnalyze {
		t.Errorf("expected Analyze focus, got %q", state.Focus)
	}
	if state.Accuracy != 90 {
		t.Errorf("expected accuracy 90, got %v", state.Accuracy)
	}
}

func TestEvaluate_LowAccuracy(t *testing.T) {
	state := NewLearnerState()
	engine := NewEngine()

	if err := engine.Evaluate(state, makeResults(3, 20, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Difficulty != DifficultyEasy {
		t.Errorf("expected Easy, got %q", state.Difficulty)
	}
	if state.Focus != BloomRemember {
		t.Errorf("expected Remember focus, got %q", state.Focus)
	}
}

func TestEvaluate_MidAccuracy(t *testing.T) {
	state := NewLearnerState()
	engine := NewEngine()

	if err := engine.Evaluate(state, makeResults(6, 20, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Difficulty != DifficultyMedium {
		t.Errorf("expected Medium, got %q", state.Difficulty)
	}
	if state.Focus != BloomMixed {
		t.Errorf("expected Mixed focus, got %q", state.Focus)
	}
}

func TestEvaluate_SpeedOverride(t *testing.T) {
	state := NewLearnerState()
	engine := NewEngine()

	// 75% accuracy would normally be Medium, but 5s average response
	// with accuracy above 70 pushes to Hard.
	results := make([]ModuleResult, 8)
	for i := range results {
		results[i].TimeTaken = 5
		if i < 6 {
			results[i].Correct = true
		}
	}
	if err := engine.Evaluate(state, results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Difficulty != DifficultyHard {
		t.Errorf("expected Hard via speed override, got %q", state.Difficulty)
	}
	if state.Focus != BloomMixed {
		t.Errorf("speed override should leave focus alone, got %q", state.Focus)
	}
}

func TestEvaluate_SkipOverrideWins(t *testing.T) {
	state := NewLearnerState()
	engine := NewEngine()

	// High accuracy and fast answers, but 3 skips. The skip rule is
	// evaluated last and must win over both the accuracy rule and the
	// speed override.
	if err := engine.Evaluate(state, makeResults(9, 5, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Difficulty != DifficultyEasy {
		t.Errorf("expected Easy via skip override, got %q", state.Difficulty)
	}
}

func TestEvaluate_ModuleAndHistoryGrowth(t *testing.T) {
	state := NewLearnerState()
	engine := NewEngine()

	const rounds = 4
	for i := 0; i < rounds; i++ {
		if err := engine.Evaluate(state, makeResults(6, 15, 0)); err != nil {
			t.Fatalf("round %d: unexpected error: %v", i, err)
		}
	}

	if state.Module != 1+rounds {
		t.Errorf("expected module %d, got %d", 1+rounds, state.Module)
	}
	if len(state.History) != rounds {
		t.Errorf("expected %d history entries, got %d", rounds, len(state.History))
	}
	for i, h := range state.History {
		if h.Module != i+1 {
			t.Errorf("history[%d].Module = %d, want %d", i, h.Module, i+1)
		}
	}
}

func TestEvaluate_EmptyResults(t *testing.T) {
	state := NewLearnerState()
	engine := NewEngine()

	if err := engine.Evaluate(state, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Module != 1 {
		t.Errorf("empty results must not advance the module, got %d", state.Module)
	}
	if len(state.History) != 0 {
		t.Errorf("empty results must not append history, got %d entries", len(state.History))
	}
}

func TestEvaluate_InvariantViolations(t *testing.T) {
	engine := NewEngine()

	cases := []struct {
		name  string
		state *LearnerState
	}{
		{"module regression", &LearnerState{Module: 0, Difficulty: DifficultyMedium, Focus: BloomMixed}},
		{"accuracy out of range", &LearnerState{Module: 1, Accuracy: 140, Difficulty: DifficultyMedium, Focus: BloomMixed}},
		{"bad difficulty", &LearnerState{Module: 1, Difficulty: "Brutal", Focus: BloomMixed}},
		{"history mismatch", &LearnerState{Module: 3, Difficulty: DifficultyMedium, Focus: BloomMixed}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := engine.Evaluate(tc.state, makeResults(5, 10, 0))
			if err == nil {
				t.Fatal("expected invariant violation")
			}
			var inv *ErrInvariantViolation
			if !errors.As(err, &inv) {
				t.Fatalf("expected *ErrInvariantViolation, got %T", err)
			}
		})
	}
}

func TestModuleConfig_Diagnostic(t *testing.T) {
	state := NewLearnerState()
	engine := NewEngine()

	cfg := engine.ModuleConfig(state)
	if cfg.NumQuestions != 5 {
		t.Errorf("expected 5 questions, got %d", cfg.NumQuestions)
	}
	if cfg.Difficulty != DifficultyMedium {
		t.Errorf("diagnostic must be Medium, got %q", cfg.Difficulty)
	}
	if cfg.Focus != BloomAll {
		t.Errorf("diagnostic must sample all levels, got %q", cfg.Focus)
	}
}

func TestModuleConfig_Adaptive(t *testing.T) {
	state := NewLearnerState()
	engine := NewEngine()

	if err := engine.Evaluate(state, makeResults(9, 20, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := engine.ModuleConfig(state)
	if cfg.Difficulty != DifficultyHard {
		t.Errorf("expected state difficulty Hard, got %q", cfg.Difficulty)
	}
	if cfg.Focus != BloomAnalyze {
		t.Errorf("expected state focus Analyze, got %q", cfg.Focus)
	}
	if cfg.NumQuestions != 5 {
		t.Errorf("expected 5 questions, got %d", cfg.NumQuestions)
	}
}

func TestNextDifficulty(t *testing.T) {
	cases := []struct {
		score float64
		want  Difficulty
	}{
		{0, DifficultyEasy},
		{59.9, DifficultyEasy},
		{60, DifficultyMedium},
		{79.9, DifficultyMedium},
		{80, DifficultyHard},
		{100, DifficultyHard},
	}
	for _, tc := range cases {
		if got := NextDifficulty(tc.score); got != tc.want {
			t.Errorf("NextDifficulty(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
