package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// acquisitionThreshold is the minimum number of non-whitespace characters
// a digital text layer must yield before OCR is skipped.
const acquisitionThreshold = 50

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Pdfinfo   string // binary name or absolute path; if empty -> "pdfinfo"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	DPI      int // rasterization DPI for scanned PDFs, default 300
	MaxPages int // page cap for acquisition OCR, default 3

	TessdataDir string
}

type ExtractionResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-ocr"
	Language string
	Duration time.Duration
	Warnings []string
}

// Extractor acquires document text: digital layer first, OCR fallback.
type Extractor struct {
	cfg    Config
	lang   string
	runner Runner
	logger *slog.Logger
}

func NewExtractor(ctx context.Context, cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Pdfinfo == "" {
		cfg.Pdfinfo = "pdfinfo"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 3
	}
	e := &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
	e.lang = e.probeLanguage(ctx)
	return e
}

// probeLanguage prefers Spanish+English, falling back to English-only
// when the Spanish traineddata is not installed. Probed once.
func (e *Extractor) probeLanguage(ctx context.Context) string {
	out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, "--list-langs")
	if err != nil {
		return "spa+eng"
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == "spa" {
			return "spa+eng"
		}
	}
	e.logger.Warn("spanish traineddata not available, falling back", "lang", "eng")
	return "eng"
}

// Extract returns the document text. The digital layer wins when it
// yields enough characters; otherwise the first MaxPages pages are
// rasterized and OCR'd. Failures surface as an error; callers treat that
// as empty text and fall back to filename-only analysis.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()

	text, pages, warns, err := e.pdfToText(ctx, path)
	if err == nil && nonWhitespaceLen(text) >= acquisitionThreshold {
		return ExtractionResult{
			Text:     text,
			Pages:    pages,
			Method:   "pdf-text",
			Language: e.lang,
			Duration: time.Since(start),
			Warnings: warns,
		}, nil
	}
	if err != nil {
		warns = append(warns, err.Error())
	}

	ocrText, ocrPages, ocrWarns, err := e.pdfToOCR(ctx, path)
	warns = append(warns, ocrWarns...)
	if err != nil {
		return ExtractionResult{Warnings: warns, Duration: time.Since(start)}, err
	}
	// Keep whatever the digital layer produced ahead of the OCR text.
	return ExtractionResult{
		Text:     text + ocrText,
		Pages:    ocrPages,
		Method:   "pdf-ocr",
		Language: e.lang,
		Duration: time.Since(start),
		Warnings: warns,
	}, nil
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}
	text = string(out)
	// A form-feed \f separates pages by default.
	pages = 1 + strings.Count(text, "\f")
	return text, pages, nil, nil
}

func (e *Extractor) pdfToOCR(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	tmpDir, err := os.MkdirTemp("", "er-pp-*")
	if err != nil {
		return "", 0, nil, err
	}
	defer func() {
		if rerr := os.RemoveAll(tmpDir); rerr != nil {
			e.logger.Warn("failed to remove temp dir", "dir", tmpDir, "error", rerr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -f 1 -l <max> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-r", fmt.Sprintf("%d", e.cfg.DPI),
		"-f", "1", "-l", fmt.Sprintf("%d", e.cfg.MaxPages),
		"-png", path, prefix)
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		txt, w, err := e.tesseractOCR(ctx, img)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n")
		}
		b.WriteString(txt)
		warns = append(warns, w...)
	}
	return b.String(), len(matches), warns, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	args := []string{path, "stdout", "-l", e.lang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}
	return Normalize(string(out)), nil, nil
}

func nonWhitespaceLen(s string) int {
	return len(strings.Join(strings.Fields(s), ""))
}
