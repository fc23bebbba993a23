// Package extract turns uploaded source material into raw text for
// topic extraction and question grounding. An empty result means "no
// context"; callers degrade to general-knowledge generation.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Extractor produces raw text from a source reference. The source
// meaning is implementation-defined: inline text, a file path.
type Extractor interface {
	// Extract returns the raw text for the source. A source that
	// yields no usable text returns an empty string and no error.
	Extract(ctx context.Context, source string) (string, error)
}

// PlainText treats the source as the text itself, normalized.
type PlainText struct{}

func (PlainText) Extract(_ context.Context, source string) (string, error) {
	return normalize(source), nil
}

// File reads the source as a path to a UTF-8 text file.
type File struct {
	// MaxBytes bounds how much of the file is read. Zero means the
	// default of 1 MiB.
	MaxBytes int64
}

const defaultMaxBytes = 1 << 20

func (f File) Extract(_ context.Context, source string) (string, error) {
	maxBytes := f.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", filepath.Base(source), err)
	}
	if info.Size() > maxBytes {
		return "", fmt.Errorf("%s exceeds %d byte limit", filepath.Base(source), maxBytes)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(source), err)
	}
	return normalize(string(data)), nil
}

// normalize strips control characters other than newlines and tabs and
// collapses carriage returns, keeping line structure intact for the
// topic detectors.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\r':
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
