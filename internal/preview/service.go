package preview

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/lquispe/exam-renamer/constants"
)

// digitalTextThreshold: a first page with fewer non-whitespace characters
// than this is treated as scanned, pushing previews to the OCR path.
const digitalTextThreshold = 50

// Page is one rendered preview page with its field highlights.
type Page struct {
	Image      string      `json:"image"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Highlights []Highlight `json:"highlights"`
	PageNumber int         `json:"page"`
}

// Result carries either a single page or all preview pages, plus the
// total page count (capped) for pagination.
type Result struct {
	Page       *Page  `json:"page,omitempty"`
	Pages      []Page `json:"pages,omitempty"`
	TotalPages int    `json:"total_pages"`
}

// Service generates page previews with highlighted field locations.
// Capabilities are resolved once at construction; searcher may be nil
// when no digital-text backend is available.
type Service struct {
	logger   *slog.Logger
	imager   PageImager
	tokens   PageTokenizer
	searcher Searcher
	maxWidth int
}

func NewService(imager PageImager, tokens PageTokenizer, searcher Searcher, maxWidth int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if maxWidth <= 0 {
		maxWidth = 500
	}
	return &Service{logger: logger, imager: imager, tokens: tokens, searcher: searcher, maxWidth: maxWidth}
}

// SinglePage renders one 0-based page with highlights. A nil result with
// nil error means no preview could be produced for that page.
func (s *Service) SinglePage(ctx context.Context, path string, defaults map[constants.Field]string, pageNum int) *Result {
	if defaults == nil {
		defaults = map[constants.Field]string{}
	}
	total, err := s.imager.PageCount(ctx, path)
	if err != nil || total == 0 || pageNum >= total {
		return nil
	}
	if total > MaxPreviewPages {
		total = MaxPreviewPages
	}

	page := s.renderPage(ctx, path, defaults, pageNum)
	if page == nil {
		return nil
	}
	return &Result{Page: page, TotalPages: total}
}

// AllPages renders every page up to MaxPreviewPages.
func (s *Service) AllPages(ctx context.Context, path string, defaults map[constants.Field]string) *Result {
	if defaults == nil {
		defaults = map[constants.Field]string{}
	}
	total, err := s.imager.PageCount(ctx, path)
	if err != nil || total == 0 {
		return nil
	}
	renderCount := total
	if renderCount > MaxPreviewPages {
		renderCount = MaxPreviewPages
	}

	pages := make([]Page, 0, renderCount)
	for i := 0; i < renderCount; i++ {
		if p := s.renderPage(ctx, path, defaults, i); p != nil {
			pages = append(pages, *p)
		}
	}
	if len(pages) == 0 {
		return nil
	}
	return &Result{Pages: pages, TotalPages: total}
}

// renderPage produces one preview page, choosing the digital search path
// when a digital text layer exists and falling back to OCR tokens.
// Failures are logged and yield nil, never an error.
func (s *Service) renderPage(ctx context.Context, path string, defaults map[constants.Field]string, pageNum int) *Page {
	img, err := s.imager.RenderPage(ctx, path, pageNum, s.maxWidth)
	if err != nil {
		s.logger.Warn("preview.render.failed", "path", path, "page", pageNum, "error", err)
		return nil
	}

	highlights := s.locate(ctx, path, defaults, pageNum, img)
	if highlights == nil {
		highlights = []Highlight{}
	}
	return &Page{
		Image:      "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(img.JPEG),
		Width:      img.Width,
		Height:     img.Height,
		Highlights: highlights,
		PageNumber: pageNum + 1,
	}
}

func (s *Service) locate(ctx context.Context, path string, defaults map[constants.Field]string, pageNum int, img RenderedPage) []Highlight {
	if s.searcher != nil {
		if text, err := s.searcher.PageText(ctx, path, 0); err == nil &&
			len(strings.Join(strings.Fields(text), "")) >= digitalTextThreshold {
			pageWidth, err := s.searcher.PageWidth(ctx, path, pageNum)
			if err == nil && pageWidth > 0 {
				zoom := float64(img.Width) / pageWidth
				return MatchDigital(func(value string) []Box {
					boxes, err := s.searcher.Search(ctx, path, pageNum, value)
					if err != nil {
						return nil
					}
					return boxes
				}, defaults, zoom)
			}
		}
	}

	tokens, ocrW, ocrH, err := s.tokens.PageTokens(ctx, path, pageNum)
	if err != nil || ocrW == 0 || ocrH == 0 {
		if err != nil {
			s.logger.Warn("preview.ocr.failed", "path", path, "page", pageNum, "error", err)
		}
		return nil
	}
	scaleX := float64(img.Width) / float64(ocrW)
	scaleY := float64(img.Height) / float64(ocrH)
	return MatchTokens(tokens, defaults, scaleX, scaleY)
}
