package adaptive

import "fmt"

// Accuracy thresholds for the base adaptation rule.
const (
	accuracyHard = 80.0
	accuracyEasy = 40.0
)

// Behavioral override thresholds.
const (
	fastAvgTimeSecs   = 10.0
	fastMinAccuracy   = 70.0
	frustrationSkips  = 2
	questionsPerRound = 5
)

// ErrInvariantViolation indicates learner state broke a structural
// invariant (module regression, accuracy out of range). This is a
// programming error, not a recoverable condition.
type ErrInvariantViolation struct {
	Detail string
}

func (e *ErrInvariantViolation) Error() string {
	return fmt.Sprintf("learner state invariant violated: %s", e.Detail)
}

// Engine adjusts a learner's difficulty and cognitive focus from
// module results. It is stateless; all learner data lives in
// LearnerState.
type Engine struct{}

// NewEngine creates an adaptive engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate consumes one completed module's per-question results and
// transitions the learner state: difficulty and focus for the next
// module, rolling accuracy and response time, history append, module
// increment. An empty result list leaves the state untouched.
//
// Rule order matters. The accuracy rule sets the baseline, the
// fast-and-correct override pushes to Hard, and the skip override is
// evaluated last so a frustration signal always wins.
func (e *Engine) Evaluate(state *LearnerState, results []ModuleResult) error {
	if err := checkInvariants(state); err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	correct := 0
	skips := 0
	totalTime := 0.0
	for _, r := range results {
		if r.Correct {
			correct++
		}
		if r.Skipped {
			skips++
		}
		totalTime += r.TimeTaken
	}

	total := len(results)
	accuracy := float64(correct) / float64(total) * 100
	avgTime := totalTime / float64(total)

	// Accuracy base rule.
	switch {
	case accuracy > accuracyHard:
		state.Difficulty = DifficultyHard
		state.Focus = BloomAnalyze
	case accuracy < accuracyEasy:
		state.Difficulty = DifficultyEasy
		state.Focus = BloomRemember
	default:
		state.Difficulty = DifficultyMedium
		state.Focus = BloomMixed
	}

	// Fast and correct: push harder, focus unchanged.
	if avgTime < fastAvgTimeSecs && accuracy > fastMinAccuracy {
		state.Difficulty = DifficultyHard
	}

	// Frustration signal: back off to rebuild confidence. Checked last
	// so it beats the speed override when both fire.
	if skips > frustrationSkips {
		state.Difficulty = DifficultyEasy
	}

	state.Accuracy = accuracy
	state.AvgTime = avgTime
	state.TotalScore += correct
	state.History = append(state.History, ModuleOutcome{
		Module:   state.Module,
		Accuracy: accuracy,
		AvgTime:  avgTime,
		Skips:    skips,
		Correct:  correct,
		Total:    total,
	})
	state.Module++

	return nil
}

// ModuleConfig returns generation parameters for the learner's current
// module. Module 1 is always a fixed diagnostic regardless of state.
func (e *Engine) ModuleConfig(state *LearnerState) ModuleConfig {
	if state.Module == 1 {
		return ModuleConfig{
			Name:         "Diagnostic Module",
			NumQuestions: questionsPerRound,
			Difficulty:   DifficultyMedium,
			Focus:        BloomAll,
		}
	}
	return ModuleConfig{
		Name:         fmt.Sprintf("Adaptive Module %d", state.Module),
		NumQuestions: questionsPerRound,
		Difficulty:   state.Difficulty,
		Focus:        state.Focus,
	}
}

// NextDifficulty maps a submission score percentage to the difficulty
// of the next standalone quiz. Used by the submission flow; the module
// state machine above uses the richer per-question signal instead.
func NextDifficulty(score float64) Difficulty {
	switch {
	case score < 60:
		return DifficultyEasy
	case score >= 80:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

func checkInvariants(state *LearnerState) error {
	if state.Module < 1 {
		return &ErrInvariantViolation{Detail: fmt.Sprintf("module index %d < 1", state.Module)}
	}
	if state.Accuracy < 0 || state.Accuracy > 100 {
		return &ErrInvariantViolation{Detail: fmt.Sprintf("accuracy %.2f outside [0,100]", state.Accuracy)}
	}
	if !state.Difficulty.Valid() {
		return &ErrInvariantViolation{Detail: fmt.Sprintf("unknown difficulty %q", state.Difficulty)}
	}
	if !state.Focus.Valid() {
		return &ErrInvariantViolation{Detail: fmt.Sprintf("unknown focus %q", state.Focus)}
	}
	if len(state.History) != state.Module-1 {
		return &ErrInvariantViolation{Detail: fmt.Sprintf("history length %d does not match module %d", len(state.History), state.Module)}
	}
	return nil
}
