package quizgen

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
)

// ExtractiveTier is the tertiary tier: a local fallback that synthesizes
// questions directly from the source text. It anchors each question on a
// technical term extracted from a content segment and builds distractors
// from peer terms in the surrounding text. No network, CPU only.
type ExtractiveTier struct {
	cfg Config

	initOnce sync.Once
	termRe   *regexp.Regexp
	stops    map[string]bool
}

// NewExtractiveTier creates the tier. Term extraction machinery is
// built lazily on first use and shared read-only thereafter.
func NewExtractiveTier(cfg Config) *ExtractiveTier {
	return &ExtractiveTier{cfg: cfg}
}

func (t *ExtractiveTier) Name() string { return "extractive" }

const minSegmentLen = 60

func (t *ExtractiveTier) init() {
	t.initOnce.Do(func() {
		t.termRe = regexp.MustCompile(`\b[A-Z][a-z]{4,}\b|\b\w{10,}\b`)
		t.stops = map[string]bool{
			"However": true, "Because": true, "Therefore": true,
			"Although": true, "Unlike": true, "Finally": true,
			"Moreover": true, "Furthermore": true, "Nevertheless": true,
		}
	})
}

func (t *ExtractiveTier) Generate(ctx context.Context, req GenerationRequest) ([]Question, error) {
	t.init()

	segments := t.segments(req)
	allTerms := t.terms(req.Context)

	n := req.Count
	if len(segments) < n {
		n = len(segments)
	}

	candidates := make([]Candidate, 0, n)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		seg := segments[i]
		anchor := t.anchor(seg, req.Topics, i)
		candidates = append(candidates, t.synthesize(req.Type, seg, anchor, allTerms))
	}

	return filterCandidates(candidates, req.Type, t.cfg.Validators, t.Name()), nil
}

// segments splits the context on sentence boundaries, keeps substantial
// ones, and randomizes their order. With no usable context, one
// synthetic segment per topic keeps the tier productive.
func (t *ExtractiveTier) segments(req GenerationRequest) []string {
	var segments []string
	for _, s := range strings.Split(req.Context, ".") {
		s = strings.TrimSpace(s)
		if len(s) > minSegmentLen {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		for _, topic := range req.Topics {
			segments = append(segments, fmt.Sprintf("The concept of %s is important in this field and underpins much of the material", topic))
		}
	}
	rand.Shuffle(len(segments), func(i, j int) {
		segments[i], segments[j] = segments[j], segments[i]
	})
	return segments
}

// terms extracts technical terms: capitalized words of 5+ letters and
// any word of 10+ characters, minus sentence-connective stopwords.
// First occurrence order, deduplicated.
func (t *ExtractiveTier) terms(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range t.termRe.FindAllString(text, -1) {
		if t.stops[m] || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

func (t *ExtractiveTier) anchor(segment string, topics []string, i int) string {
	if segTerms := t.terms(segment); len(segTerms) > 0 {
		return segTerms[0]
	}
	if len(topics) > 0 {
		return topics[i%len(topics)]
	}
	return "the core concept"
}

func (t *ExtractiveTier) synthesize(qt QuestionType, segment, anchor string, allTerms []string) Candidate {
	switch qt {
	case TypeFillUps:
		question := strings.Replace(segment, anchor, BlankToken, 1)
		if !strings.Contains(question, BlankToken) {
			question = segment + " relates most directly to " + BlankToken
		}
		return Candidate{Question: question + ".", AnswerText: anchor}
	case TypeShortAnswer:
		return Candidate{
			Question: fmt.Sprintf("Explain the significance of %s in this material.", anchor),
			Keywords: []string{anchor},
		}
	default:
		question := fmt.Sprintf("What is the significance of %s in the context of this material?", anchor)
		options := append([]string{anchor}, t.distractors(anchor, allTerms)...)
		correct := options[0]
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		idx := 0
		for i, o := range options {
			if o == correct {
				idx = i
				break
			}
		}
		return Candidate{Question: question, Options: options, AnswerIndex: idx, HasIndex: true}
	}
}

// distractors picks 3 peer terms distinct from the anchor. With fewer
// than 3 peers available, templated phrases referencing the anchor fill
// the remainder.
func (t *ExtractiveTier) distractors(anchor string, allTerms []string) []string {
	var peers []string
	for _, term := range allTerms {
		if !strings.EqualFold(term, anchor) {
			peers = append(peers, term)
		}
	}
	rand.Shuffle(len(peers), func(i, j int) {
		peers[i], peers[j] = peers[j], peers[i]
	})
	if len(peers) >= 3 {
		return peers[:3]
	}

	templated := []string{
		fmt.Sprintf("A variant of %s", anchor),
		fmt.Sprintf("The inverse of %s", anchor),
		fmt.Sprintf("An alternative to %s", anchor),
	}
	return append(peers, templated[:3-len(peers)]...)
}
