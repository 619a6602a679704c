package preview

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lquispe/exam-renamer/constants"
)

type fakeImager struct {
	pages     int
	countErr  error
	renderErr error
}

func (f *fakeImager) PageCount(context.Context, string) (int, error) {
	return f.pages, f.countErr
}

func (f *fakeImager) RenderPage(_ context.Context, _ string, page, maxWidth int) (RenderedPage, error) {
	if f.renderErr != nil {
		return RenderedPage{}, f.renderErr
	}
	return RenderedPage{JPEG: []byte("jpeg-" + fmt.Sprint(page)), Width: maxWidth, Height: maxWidth * 2}, nil
}

type fakeTokenizer struct {
	tokens []Token
	w, h   int
	err    error
	calls  int
}

func (f *fakeTokenizer) PageTokens(context.Context, string, int) ([]Token, int, int, error) {
	f.calls++
	return f.tokens, f.w, f.h, f.err
}

type fakeSearcher struct {
	text  string
	boxes map[string][]Box
	width float64
}

func (f *fakeSearcher) PageText(context.Context, string, int) (string, error) {
	return f.text, nil
}

func (f *fakeSearcher) Search(_ context.Context, _ string, _ int, value string) ([]Box, error) {
	return f.boxes[value], nil
}

func (f *fakeSearcher) PageWidth(context.Context, string, int) (float64, error) {
	return f.width, nil
}

func TestSinglePageOCRPath(t *testing.T) {
	imager := &fakeImager{pages: 3}
	tokenizer := &fakeTokenizer{
		tokens: []Token{{Text: "76248882", Left: 100, Top: 50, Width: 200, Height: 40}},
		w:      1000, h: 2000,
	}
	svc := NewService(imager, tokenizer, nil, 500, nil)
	defaults := map[constants.Field]string{constants.FieldIdentityNumber: "76248882"}

	res := svc.SinglePage(context.Background(), "doc.pdf", defaults, 0)
	require.NotNil(t, res)
	require.NotNil(t, res.Page)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 1, res.Page.PageNumber)
	assert.Equal(t, 500, res.Page.Width)
	assert.True(t, strings.HasPrefix(res.Page.Image, "data:image/jpeg;base64,"))

	// OCR boxes scale from 1000x2000 px to the 500x1000 display image.
	require.Len(t, res.Page.Highlights, 1)
	assert.Equal(t, 50.0, res.Page.Highlights[0].X)
	assert.Equal(t, 100.0, res.Page.Highlights[0].W)
	assert.Equal(t, 20.0, res.Page.Highlights[0].H)
}

func TestSinglePageDigitalPath(t *testing.T) {
	imager := &fakeImager{pages: 1}
	tokenizer := &fakeTokenizer{}
	searcher := &fakeSearcher{
		text:  strings.Repeat("texto digital con contenido suficiente ", 3),
		boxes: map[string][]Box{"76248882": {{X: 100, Y: 100, W: 50, H: 10}}},
		width: 1000,
	}
	svc := NewService(imager, tokenizer, searcher, 500, nil)
	defaults := map[constants.Field]string{constants.FieldIdentityNumber: "76248882"}

	res := svc.SinglePage(context.Background(), "doc.pdf", defaults, 0)
	require.NotNil(t, res)
	require.Len(t, res.Page.Highlights, 1)
	// zoom = 500/1000.
	assert.Equal(t, 50.0, res.Page.Highlights[0].X)
	assert.Equal(t, 25.0, res.Page.Highlights[0].W)
	// The OCR tokenizer is never touched on the digital path.
	assert.Zero(t, tokenizer.calls)
}

func TestSinglePageScannedDocumentSkipsDigital(t *testing.T) {
	imager := &fakeImager{pages: 1}
	tokenizer := &fakeTokenizer{w: 500, h: 1000}
	searcher := &fakeSearcher{text: "corto", width: 1000} // below threshold
	svc := NewService(imager, tokenizer, searcher, 500, nil)

	res := svc.SinglePage(context.Background(), "doc.pdf", nil, 0)
	require.NotNil(t, res)
	assert.Equal(t, 1, tokenizer.calls)
}

func TestSinglePageOutOfRange(t *testing.T) {
	svc := NewService(&fakeImager{pages: 2}, &fakeTokenizer{w: 1, h: 1}, nil, 500, nil)
	assert.Nil(t, svc.SinglePage(context.Background(), "doc.pdf", nil, 2))
}

func TestSinglePagePageCountError(t *testing.T) {
	svc := NewService(&fakeImager{countErr: fmt.Errorf("pdfinfo failed")}, &fakeTokenizer{}, nil, 500, nil)
	assert.Nil(t, svc.SinglePage(context.Background(), "doc.pdf", nil, 0))
}

func TestSinglePageRenderErrorYieldsNil(t *testing.T) {
	svc := NewService(&fakeImager{pages: 1, renderErr: fmt.Errorf("boom")}, &fakeTokenizer{}, nil, 500, nil)
	assert.Nil(t, svc.SinglePage(context.Background(), "doc.pdf", nil, 0))
}

func TestSinglePageOCRFailureStillRendersPage(t *testing.T) {
	imager := &fakeImager{pages: 1}
	tokenizer := &fakeTokenizer{err: fmt.Errorf("tesseract failed")}
	svc := NewService(imager, tokenizer, nil, 500, nil)

	res := svc.SinglePage(context.Background(), "doc.pdf", nil, 0)
	require.NotNil(t, res)
	assert.Empty(t, res.Page.Highlights)
}

func TestAllPagesCapped(t *testing.T) {
	imager := &fakeImager{pages: 9}
	tokenizer := &fakeTokenizer{w: 500, h: 1000}
	svc := NewService(imager, tokenizer, nil, 500, nil)

	res := svc.AllPages(context.Background(), "doc.pdf", nil)
	require.NotNil(t, res)
	assert.Len(t, res.Pages, MaxPreviewPages)
	assert.Equal(t, 9, res.TotalPages)
	assert.Equal(t, 1, res.Pages[0].PageNumber)
	assert.Equal(t, MaxPreviewPages, res.Pages[len(res.Pages)-1].PageNumber)
}

func TestAllPagesEmptyDocument(t *testing.T) {
	svc := NewService(&fakeImager{pages: 0}, &fakeTokenizer{}, nil, 500, nil)
	assert.Nil(t, svc.AllPages(context.Background(), "doc.pdf", nil))
}
