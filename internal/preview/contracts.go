package preview

import (
	"context"

	"github.com/lquispe/exam-renamer/constants"
)

// MaxPreviewPages caps how many pages a preview exposes.
const MaxPreviewPages = 5

// Box is an axis-aligned rectangle. Units depend on context: page units
// for digital search results, pixels for OCR tokens and highlights.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Token is one recognized OCR word with its bounding box in the pixel
// space of the OCR'd page image.
type Token struct {
	Text   string
	Left   int
	Top    int
	Width  int
	Height int
}

// Highlight is one located field value on a rendered page.
type Highlight struct {
	Field constants.Field `json:"field"`
	Color string          `json:"color"`
	X     float64         `json:"x"`
	Y     float64         `json:"y"`
	W     float64         `json:"w"`
	H     float64         `json:"h"`
}

// RenderedPage is one rendered page image plus its pixel dimensions.
type RenderedPage struct {
	JPEG   []byte
	Width  int
	Height int
}

// PageImager renders document pages for display.
type PageImager interface {
	PageCount(ctx context.Context, path string) (int, error)
	// RenderPage renders one 0-based page as JPEG no wider than maxWidth.
	RenderPage(ctx context.Context, path string, page, maxWidth int) (RenderedPage, error)
}

// PageTokenizer OCRs one 0-based page, returning tokens plus the pixel
// dimensions of the image they were recognized on.
type PageTokenizer interface {
	PageTokens(ctx context.Context, path string, page int) ([]Token, int, int, error)
}

// Searcher is the digital-text capability: exact text search on a page.
// Resolved once at composition time; nil when no digital backend exists.
type Searcher interface {
	// PageText returns the digital text of a 0-based page.
	PageText(ctx context.Context, path string, page int) (string, error)
	// Search returns match boxes for value on a 0-based page, in page
	// units (scaled to the rendered image by the caller).
	Search(ctx context.Context, path string, page int, value string) ([]Box, error)
	// PageWidth returns the page width in page units.
	PageWidth(ctx context.Context, path string, page int) (float64, error)
}
