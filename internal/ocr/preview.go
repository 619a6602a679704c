package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/lquispe/exam-renamer/internal/preview"
)

// PageSource renders PDF pages and OCRs them into positioned tokens.
// It implements the preview capabilities (preview.PageImager and
// preview.PageTokenizer) on top of pdftoppm and tesseract.
type PageSource struct {
	cfg    Config
	lang   string
	runner Runner
	logger *slog.Logger
}

func NewPageSource(e *Extractor) *PageSource {
	return &PageSource{cfg: e.cfg, lang: e.lang, runner: e.runner, logger: e.logger}
}

var rePagesLine = regexp.MustCompile(`(?m)^Pages:\s+(\d+)`)

// PageCount reads the page count from pdfinfo.
func (p *PageSource) PageCount(ctx context.Context, path string) (int, error) {
	out, errb, err := p.runner.Run(ctx, p.cfg.Pdfinfo, path)
	if err != nil {
		return 0, fmt.Errorf("pdfinfo: %w (%s)", err, truncate(string(errb), 512))
	}
	m := rePagesLine.FindStringSubmatch(string(out))
	if m == nil {
		return 0, fmt.Errorf("pdfinfo: no page count in output")
	}
	return strconv.Atoi(m[1])
}

// RenderPage renders one 0-based page as a JPEG no wider than maxWidth.
func (p *PageSource) RenderPage(ctx context.Context, path string, page, maxWidth int) (preview.RenderedPage, error) {
	tmpDir, err := os.MkdirTemp("", "er-render-*")
	if err != nil {
		return preview.RenderedPage{}, err
	}
	defer p.cleanupTemp(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	pageArg := strconv.Itoa(page + 1)
	_, errb, err := p.runner.Run(ctx, p.cfg.Pdftoppm,
		"-f", pageArg, "-l", pageArg,
		"-scale-to-x", strconv.Itoa(maxWidth), "-scale-to-y", "-1",
		"-jpeg", path, prefix)
	if err != nil {
		return preview.RenderedPage{}, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	img, err := p.readRendered(prefix, ".jpg")
	if err != nil {
		return preview.RenderedPage{}, err
	}
	return img, nil
}

// PageTokens rasterizes one 0-based page at full DPI and runs tesseract
// in TSV mode, returning word tokens with their boxes plus the pixel
// dimensions of the OCR'd image.
func (p *PageSource) PageTokens(ctx context.Context, path string, page int) ([]preview.Token, int, int, error) {
	tmpDir, err := os.MkdirTemp("", "er-tsv-*")
	if err != nil {
		return nil, 0, 0, err
	}
	defer p.cleanupTemp(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	pageArg := strconv.Itoa(page + 1)
	_, errb, err := p.runner.Run(ctx, p.cfg.Pdftoppm,
		"-r", strconv.Itoa(p.cfg.DPI),
		"-f", pageArg, "-l", pageArg,
		"-png", path, prefix)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	rendered, err := p.readRendered(prefix, ".png")
	if err != nil {
		return nil, 0, 0, err
	}
	pngPath, err := p.renderedPath(prefix, ".png")
	if err != nil {
		return nil, 0, 0, err
	}

	args := []string{pngPath, "stdout", "-l", p.lang}
	if p.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", p.cfg.TessdataDir)
	}
	args = append(args, "tsv")
	out, errb, err := p.runner.Run(ctx, p.cfg.Tesseract, args...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("tesseract tsv: %w (%s)", err, truncate(string(errb), 512))
	}

	return parseTSV(out), rendered.Width, rendered.Height, nil
}

func (p *PageSource) renderedPath(prefix, ext string) (string, error) {
	matches, _ := filepath.Glob(prefix + "-*" + ext)
	if len(matches) == 0 {
		return "", fmt.Errorf("pdftoppm produced no %s output", ext)
	}
	return matches[0], nil
}

func (p *PageSource) readRendered(prefix, ext string) (preview.RenderedPage, error) {
	path, err := p.renderedPath(prefix, ext)
	if err != nil {
		return preview.RenderedPage{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return preview.RenderedPage{}, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return preview.RenderedPage{}, fmt.Errorf("decode rendered page: %w", err)
	}
	return preview.RenderedPage{JPEG: data, Width: cfg.Width, Height: cfg.Height}, nil
}

func (p *PageSource) cleanupTemp(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn("failed to remove temp dir", "dir", dir, "error", err)
	}
}

// parseTSV extracts word-level rows (level 5) from tesseract TSV output.
// Columns: level page block par line word left top width height conf text.
func parseTSV(out []byte) []preview.Token {
	lines := strings.Split(string(out), "\n")
	tokens := make([]preview.Token, 0, len(lines))
	for i, ln := range lines {
		if i == 0 || ln == "" {
			continue // header
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		if cols[0] != "5" {
			continue
		}
		left, err1 := strconv.Atoi(cols[6])
		top, err2 := strconv.Atoi(cols[7])
		width, err3 := strconv.Atoi(cols[8])
		height, err4 := strconv.Atoi(cols[9])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		tokens = append(tokens, preview.Token{
			Text:   cols[11],
			Left:   left,
			Top:    top,
			Width:  width,
			Height: height,
		})
	}
	return tokens
}
