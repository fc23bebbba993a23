package adaptive

// Difficulty is a quiz difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is one of the enumerated tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Bloom is a cognitive-level focus tag (Bloom's taxonomy).
type Bloom string

const (
	BloomRemember   Bloom = "Remember"
	BloomUnderstand Bloom = "Understand"
	BloomApply      Bloom = "Apply"
	BloomAnalyze    Bloom = "Analyze"
	BloomEvaluate   Bloom = "Evaluate"
	BloomMixed      Bloom = "Mixed"

	// BloomAll marks the diagnostic module, which samples every level.
	BloomAll Bloom = "All"
)

// Valid reports whether b is one of the enumerated focus tags.
func (b Bloom) Valid() bool {
	switch b {
	case BloomRemember, BloomUnderstand, BloomApply, BloomAnalyze, BloomEvaluate, BloomMixed, BloomAll:
		return true
	}
	return false
}

// ModuleResult is the outcome of one answered question within a module.
// Immutable once recorded.
type ModuleResult struct {
	Correct   bool    `json:"correct"`
	TimeTaken float64 `json:"time_taken"` // seconds
	Skipped   bool    `json:"skipped"`
}

// ModuleOutcome is the aggregate of one completed module, retained in
// the learner's history for audit.
type ModuleOutcome struct {
	Module   int     `json:"module"`
	Accuracy float64 `json:"accuracy"`
	AvgTime  float64 `json:"avg_time"`
	Skips    int     `json:"skips"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
}

// LearnerState tracks a learner's position in the adaptive flow.
// Created with defaults on session start and mutated exclusively by
// Engine.Evaluate after each module is scored.
type LearnerState struct {
	// Module is the current module index. Starts at 1 and strictly
	// increases by 1 per Evaluate call.
	Module int `json:"module"`

	// TotalScore accumulates correct answers across all modules.
	TotalScore int `json:"total_score"`

	// Accuracy is the most recent module's accuracy, 0-100.
	Accuracy float64 `json:"accuracy"`

	// AvgTime is the most recent module's mean response time in seconds.
	AvgTime float64 `json:"avg_time"`

	// Difficulty is the tier the next module will target.
	Difficulty Difficulty `json:"difficulty"`

	// Focus is the cognitive level the next module will target.
	Focus Bloom `json:"focus"`

	// History holds one outcome per completed module, append-only.
	History []ModuleOutcome `json:"history"`
}

// NewLearnerState returns the initial state: module 1, Medium
// difficulty, Mixed focus, empty history.
func NewLearnerState() *LearnerState {
	return &LearnerState{
		Module:     1,
		Difficulty: DifficultyMedium,
		Focus:      BloomMixed,
	}
}

// ModuleConfig parameterizes question generation for one module.
type ModuleConfig struct {
	Name         string
	NumQuestions int
	Difficulty   Difficulty
	Focus        Bloom
}
