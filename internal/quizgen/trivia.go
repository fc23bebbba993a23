package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"net/url"
)

// TriviaTier is the secondary tier: a public trivia source for general
// knowledge requests. It only applies when no grounding context is
// available and only produces multiple choice questions.
type TriviaTier struct {
	client *http.Client
	cfg    Config
}

// NewTriviaTier creates the trivia tier with its own bounded client.
func NewTriviaTier(cfg Config) *TriviaTier {
	return &TriviaTier{
		client: &http.Client{Timeout: cfg.TriviaTimeout},
		cfg:    cfg,
	}
}

func (t *TriviaTier) Name() string { return "opentdb" }

// triviaResponse mirrors the Open Trivia DB payload.
type triviaResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

func (t *TriviaTier) Generate(ctx context.Context, req GenerationRequest) ([]Question, error) {
	if req.Type != TypeMCQ {
		return nil, errors.New("trivia source only serves multiple choice")
	}
	if len(req.Context) >= t.cfg.MinContextForGrounding {
		return nil, errors.New("context-grounded request, trivia not applicable")
	}

	endpoint := fmt.Sprintf("%s?amount=%d&type=multiple", t.cfg.TriviaURL, req.Count)
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("bad trivia URL: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("trivia fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trivia fetch: status %d", resp.StatusCode)
	}

	var payload triviaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("trivia decode: %w", err)
	}
	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("trivia response code %d", payload.ResponseCode)
	}

	candidates := make([]Candidate, 0, len(payload.Results))
	for _, r := range payload.Results {
		correct := html.UnescapeString(r.CorrectAnswer)
		options := make([]string, 0, len(r.IncorrectAnswers)+1)
		for _, o := range r.IncorrectAnswers {
			options = append(options, html.UnescapeString(o))
		}
		options = append(options, correct)
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		idx := -1
		for i, o := range options {
			if o == correct {
				idx = i
				break
			}
		}
		candidates = append(candidates, Candidate{
			Question:    html.UnescapeString(r.Question),
			Options:     options,
			AnswerIndex: idx,
			HasIndex:    idx >= 0,
		})
	}

	return filterCandidates(candidates, TypeMCQ, t.cfg.Validators, t.Name()), nil
}
