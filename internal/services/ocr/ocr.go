// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package ocr wraps the external text extraction engine.
package ocr

import (
	"context"
)

// Word is a single recognized token with its confidence on a 0-100 scale.
// A negative confidence means the engine did not score the token.
type Word struct {
	Text       string
	Confidence float64
}

// Result is the output of a single extraction.
type Result struct { //nolint:govet // fieldalignment not critical
	Text          string
	Words         []Word
	AvgConfidence float64
	HOCR          string
	Language      string
}

// Engine extracts text from an encoded image. Implementations may block
// for the duration of the external engine's processing; callers must
// treat Extract as a synchronous, potentially slow call.
type Engine interface {
	Extract(ctx context.Context, image []byte) (*Result, error)
}

// AverageConfidence averages the confidence of all scored words.
// Unscored words (negative confidence) are excluded.
func AverageConfidence(words []Word) float64 {
	var sum float64
	var n int
	for _, w := range words {
		if w.Confidence < 0 {
			continue
		}
		sum += w.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
