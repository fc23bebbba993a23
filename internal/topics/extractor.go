// Package topics extracts candidate topic titles from raw course text.
// The extraction is a best-effort heuristic over structural markers
// (numbered lists, bullets, headings, capitalized lines). False
// positives are expected and tolerated downstream.
package topics

import (
	"regexp"
	"strings"
)

const (
	minTopicLen = 6
	maxTopicLen = 99
	maxTopics   = 20
)

var (
	numberedRe = regexp.MustCompile(`\d+[\.\)]\s*([A-Z][^\n]+)`)
	bulletRe   = regexp.MustCompile(`[-*•]\s*([A-Z][^\n]+)`)
	headingRe  = regexp.MustCompile(`(?i)(?:Chapter|Unit|Topic|Module)\s*\d*[:\-]?\s*([A-Z][^\n]+)`)
	columnsRe  = regexp.MustCompile(`\s{3,}`)

	// Marks a lowercase-to-capitalized word boundary inside a merged
	// heading, e.g. "...of Determinants Determinant of a Matrix".
	mergedBoundaryRe = regexp.MustCompile(`([a-z])\s+([A-Z][a-z])`)
)

// connectors are words a title never ends on. A fragment ending in one
// was split mid-phrase and gets rejoined with its successor.
var connectors = map[string]bool{
	"of": true, "a": true, "an": true, "the": true,
	"and": true, "or": true, "for": true, "to": true,
	"in": true, "with": true, "by": true, "using": true,
}

// genericSingles are one-word fragments that almost always belong to a
// larger heading and carry no value on their own.
var genericSingles = map[string]bool{
	"matrix": true, "formula": true, "introduction": true,
}

// badPhrases are whole-line connector phrases left behind by splitting.
var badPhrases = map[string]bool{
	"how to": true, "methods to": true, "types of": true, "properties of": true,
}

// Extract turns raw text into at most 20 candidate topic strings, each
// 6 to 99 characters and starting with an alphanumeric character.
// Empty input yields an empty slice.
func Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	var candidates []string

	for _, m := range numberedRe.FindAllStringSubmatch(text, -1) {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	for _, m := range bulletRe.FindAllStringSubmatch(text, -1) {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	for _, m := range headingRe.FindAllStringSubmatch(text, -1) {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}

	rawLines := strings.Split(text, "\n")
	candidates = append(candidates, titleLines(rawLines)...)

	topics := filterCandidates(candidates)
	topics = dedupe(topics)

	// Nothing structured found: every raw line of substance becomes a
	// topic, unfiltered.
	if len(topics) == 0 {
		for _, line := range rawLines {
			line = strings.TrimSpace(line)
			if len(line) > 8 && len(line) <= maxTopicLen {
				topics = append(topics, line)
			}
		}
		topics = dedupe(topics)
	}

	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return topics
}

// titleLines runs the generic-line pipeline: normalize underscores,
// split column artifacts and merged headings, then repair fragments
// broken mid-phrase.
func titleLines(rawLines []string) []string {
	var out []string
	for _, line := range rawLines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.ReplaceAll(line, "_", " ")

		var parts []string
		for _, col := range columnsRe.Split(line, -1) {
			if len(col) > 60 {
				parts = append(parts, splitMerged(col)...)
			} else {
				parts = append(parts, col)
			}
		}

		// Generic detection only admits capitalized starts; numbered
		// and bulleted lines are handled by their own detectors.
		for _, part := range mergeConnectorFragments(parts) {
			part = strings.TrimSpace(part)
			if part != "" && part[0] >= 'A' && part[0] <= 'Z' {
				out = append(out, part)
			}
		}
	}
	return out
}

// splitMerged breaks an OCR-concatenated heading at each point where a
// lowercase word runs straight into a capitalized one.
func splitMerged(s string) []string {
	marked := mergedBoundaryRe.ReplaceAllString(s, "$1\x00$2")
	return strings.Split(marked, "\x00")
}

// mergeConnectorFragments rejoins adjacent fragments when the first
// ends in a connector word, e.g. "Determinant of a" + "Matrix".
func mergeConnectorFragments(parts []string) []string {
	if len(parts) == 0 {
		return nil
	}
	merged := make([]string, 0, len(parts))
	current := parts[0]
	for _, next := range parts[1:] {
		words := strings.Fields(strings.TrimSpace(current))
		if len(words) > 0 && connectors[strings.ToLower(words[len(words)-1])] {
			current += " " + next
		} else {
			merged = append(merged, current)
			current = next
		}
	}
	return append(merged, current)
}

func filterCandidates(candidates []string) []string {
	var topics []string
	for _, line := range candidates {
		line = strings.TrimSpace(line)

		if len(strings.Fields(line)) < 2 && genericSingles[strings.ToLower(line)] {
			continue
		}
		if len(line) < minTopicLen || len(line) > maxTopicLen {
			continue
		}
		if !isAlnum(rune(line[0])) {
			continue
		}
		// A line ending in a period reads as a sentence, not a title,
		// unless it is short enough to be a title anyway.
		if strings.HasSuffix(line, ".") && len(line) >= 60 {
			continue
		}
		if badPhrases[strings.ToLower(line)] {
			continue
		}
		topics = append(topics, line)
	}
	return topics
}

func dedupe(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	out := topics[:0]
	for _, t := range topics {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
