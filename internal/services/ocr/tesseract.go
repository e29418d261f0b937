// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract implements Engine using the gosseract client. Each extraction
// uses a fresh client; the binding is not safe for concurrent reuse.
type Tesseract struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewTesseract constructs a Tesseract-backed engine for the given
// languages. With no languages the engine falls back to the Tesseract
// default (eng).
func NewTesseract(languages ...string) *Tesseract {
	return &Tesseract{
		languages:     languages,
		clientFactory: gosseract.NewClient,
	}
}

// Extract runs OCR on a single encoded image.
func (t *Tesseract) Extract(ctx context.Context, image []byte) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c := t.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if len(t.languages) > 0 {
		if err := c.SetLanguage(t.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	words := extractWords(c)

	// HOCR needs a second recognition pass; treat failure as absence.
	hocr, err := c.HOCRText()
	if err != nil {
		hocr = ""
	}

	return &Result{
		Text:          text,
		Words:         words,
		AvgConfidence: AverageConfidence(words),
		HOCR:          hocr,
		Language:      t.language(),
	}, nil
}

func (t *Tesseract) language() string {
	if len(t.languages) > 0 {
		return strings.Join(t.languages, "+")
	}
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil || len(langs) == 0 {
		return ""
	}
	return langs[0]
}

func extractWords(c *gosseract.Client) []Word {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return nil
	}
	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{Text: b.Word, Confidence: b.Confidence})
	}
	return words
}
