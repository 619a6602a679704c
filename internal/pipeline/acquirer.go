package pipeline

import (
	"context"

	"github.com/lquispe/exam-renamer/internal/ocr"
)

// OCRAcquirer adapts ocr.Extractor to the TextAcquirer capability.
type OCRAcquirer struct {
	e *ocr.Extractor
}

func NewOCRAcquirer(e *ocr.Extractor) *OCRAcquirer {
	return &OCRAcquirer{e: e}
}

func (a *OCRAcquirer) Extract(ctx context.Context, path string) (string, string, error) {
	res, err := a.e.Extract(ctx, path)
	if err != nil {
		return "", "", err
	}
	return res.Text, res.Method, nil
}
