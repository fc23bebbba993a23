package quizgen

import "time"

// Config controls generation behavior across the cascade.
type Config struct {
	// Validators is the ordered list of validators every candidate must
	// pass. The first failure discards the candidate.
	Validators []Validator

	// MaxTokens is the token budget for LLM responses.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// ModelAttempts is how many times one model is tried before moving
	// to the next ranked model. Rate limits abandon the model early.
	ModelAttempts int

	// AttemptBackoff is the pause between attempts against one model.
	AttemptBackoff time.Duration

	// TierTimeout bounds each cascade tier. A tier that exceeds it is
	// treated as failed and the cascade advances.
	TierTimeout time.Duration

	// TriviaURL is the external trivia endpoint. Overridable for tests.
	TriviaURL string

	// TriviaTimeout bounds the external trivia fetch.
	TriviaTimeout time.Duration

	// MinContextForGrounding is the context length below which the
	// request counts as general knowledge, making the trivia tier
	// eligible.
	MinContextForGrounding int
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DenylistValidator{},
		},
		MaxTokens:              4096,
		Temperature:            0.7,
		ModelAttempts:          2,
		AttemptBackoff:         time.Second,
		TierTimeout:            90 * time.Second,
		TriviaURL:              "https://opentdb.com/api.php",
		TriviaTimeout:          5 * time.Second,
		MinContextForGrounding: 100,
	}
}
