package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lquispe/exam-renamer/internal/analyze"
)

// TextAcquirer is the acquisition capability: file -> text. Implemented
// by the pdftotext/tesseract extractor; stubbed in tests.
type TextAcquirer interface {
	Extract(ctx context.Context, path string) (ocrText string, method string, err error)
}

// Job is the outcome of processing one file.
type Job struct {
	ID       uuid.UUID
	Path     string
	Method   string // "pdf-text" | "pdf-ocr" | "filename-only"
	Result   analyze.Result
	Duration time.Duration
}

// Processor coordinates text acquisition then analysis for one file.
// It holds no cross-file state; parallel invocation is safe.
type Processor struct {
	Logger   *slog.Logger
	Acquirer TextAcquirer
	Analyzer *analyze.Analyzer
}

func NewProcessor(logger *slog.Logger, acquirer TextAcquirer, analyzer *analyze.Analyzer) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if analyzer == nil {
		analyzer = analyze.NewAnalyzer(logger)
	}
	return &Processor{Logger: logger, Acquirer: acquirer, Analyzer: analyzer}
}

// ProcessFile acquires text for a file and analyzes it. Acquisition
// failures degrade to filename-only analysis, never to an error.
func (p *Processor) ProcessFile(ctx context.Context, path string) Job {
	start := time.Now()
	jobID := uuid.New()

	text := ""
	method := "filename-only"
	if p.Acquirer != nil {
		t, m, err := p.Acquirer.Extract(ctx, path)
		if err != nil {
			p.Logger.Warn("processor.acquire.failed", "job_id", jobID, "path", path, "error", err)
		} else {
			text, method = t, m
		}
	}

	res := p.Analyzer.Analyze(text, filepath.Base(path))

	if res.Success {
		p.Logger.Info("processor.analyze.ok",
			"job_id", jobID,
			"path", path,
			"method", method,
			"suggested", res.SuggestedName,
		)
	} else {
		p.Logger.Warn("processor.analyze.insufficient",
			"job_id", jobID,
			"path", path,
			"method", method,
			"notes", res.Notes,
		)
	}

	return Job{
		ID:       jobID,
		Path:     path,
		Method:   method,
		Result:   res,
		Duration: time.Since(start),
	}
}
