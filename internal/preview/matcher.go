package preview

import (
	"strings"

	"github.com/lquispe/exam-renamer/constants"
	"github.com/lquispe/exam-renamer/internal/extract"
)

// concatWindow caps how many tokens ahead the OCR matcher concatenates
// when looking for a multi-token value.
const concatWindow = 12

// MatchDigital locates field values with an exact-search function over a
// digital page. Retries: accent-stripped form, then (for multi-token
// values) the first token alone. Boxes are scaled by the render zoom.
func MatchDigital(search func(value string) []Box, defaults map[constants.Field]string, zoom float64) []Highlight {
	var highlights []Highlight
	for _, field := range constants.Fields {
		value := defaults[field]
		if value == "" {
			continue
		}
		boxes := search(value)
		if len(boxes) == 0 {
			if stripped := extract.StripAccents(value); stripped != value {
				boxes = search(stripped)
			}
		}
		if len(boxes) == 0 && strings.Contains(value, " ") {
			boxes = search(strings.Fields(value)[0])
		}
		for _, b := range boxes {
			w, h := b.W*zoom, b.H*zoom
			if w <= 1 || h <= 1 {
				continue
			}
			highlights = append(highlights, Highlight{
				Field: field,
				Color: constants.FieldColors[field],
				X:     b.X * zoom,
				Y:     b.Y * zoom,
				W:     w,
				H:     h,
			})
		}
	}
	return highlights
}

// MatchTokens locates field values in an OCR token stream by sliding-
// window concatenation. For each start token it concatenates subsequent
// tokens and compares both the raw upper-cased window and its accent-
// stripped form against the value; the first containment match wins and
// the box is the union of the consumed token boxes. Values of two or
// more tokens that never fully match fall back to locating their first
// token and spanning a fixed window of following tokens. Boxes are scaled
// from OCR-pixel space to display space by scaleX/scaleY.
func MatchTokens(tokens []Token, defaults map[constants.Field]string, scaleX, scaleY float64) []Highlight {
	var highlights []Highlight
	for _, field := range constants.Fields {
		value := defaults[field]
		if value == "" {
			continue
		}
		valueUpper := strings.ToUpper(value)
		valueNorm := extract.StripAccents(valueUpper)
		valueWords := strings.Fields(valueUpper)

		h, hasBox, found := matchConcat(tokens, field, valueUpper, valueNorm, scaleX, scaleY)
		if hasBox {
			highlights = append(highlights, h)
		}
		if found {
			continue
		}
		if len(valueWords) >= 2 {
			if h, ok := matchFirstWord(tokens, field, valueWords, scaleX, scaleY); ok {
				highlights = append(highlights, h)
			}
		}
	}
	return highlights
}

func matchConcat(tokens []Token, field constants.Field, valueUpper, valueNorm string, scaleX, scaleY float64) (h Highlight, hasBox, found bool) {
	n := len(tokens)
	for i := 0; i < n; i++ {
		if strings.TrimSpace(tokens[i].Text) == "" {
			continue
		}
		concat := ""
		var matched []int
		end := i + concatWindow
		if end > n {
			end = n
		}
		for j := i; j < end; j++ {
			w := strings.TrimSpace(tokens[j].Text)
			if w == "" {
				continue
			}
			if concat == "" {
				concat = w
			} else {
				concat += " " + w
			}
			matched = append(matched, j)

			concatUpper := strings.ToUpper(concat)
			concatNorm := extract.StripAccents(concatUpper)
			if strings.Contains(concatUpper, valueUpper) || strings.Contains(concatNorm, valueNorm) {
				// Found either way; a degenerate box is dropped but the
				// fallback must not produce a second region.
				h, hasBox = unionHighlight(tokens, matched, field, scaleX, scaleY)
				return h, hasBox, true
			}
		}
	}
	return Highlight{}, false, false
}

func matchFirstWord(tokens []Token, field constants.Field, valueWords []string, scaleX, scaleY float64) (Highlight, bool) {
	first := valueWords[0]
	firstNorm := extract.StripAccents(first)
	n := len(tokens)
	for i := 0; i < n; i++ {
		w := strings.ToUpper(strings.TrimSpace(tokens[i].Text))
		if w == "" {
			continue
		}
		if w != first && extract.StripAccents(w) != firstNorm {
			continue
		}
		// Span a fixed window of following non-empty tokens.
		var matched []int
		end := i + len(valueWords) + 3
		if end > n {
			end = n
		}
		for j := i; j < end; j++ {
			if strings.TrimSpace(tokens[j].Text) != "" {
				matched = append(matched, j)
			}
			if len(matched) >= len(valueWords) {
				break
			}
		}
		if len(matched) == 0 {
			return Highlight{}, false
		}
		return unionHighlight(tokens, matched, field, scaleX, scaleY)
	}
	return Highlight{}, false
}

// unionHighlight builds the bounding box spanning the given token
// indices, scaled to display space. Degenerate boxes are rejected.
func unionHighlight(tokens []Token, indices []int, field constants.Field, scaleX, scaleY float64) (Highlight, bool) {
	x0, y0 := tokens[indices[0]].Left, tokens[indices[0]].Top
	x1 := tokens[indices[0]].Left + tokens[indices[0]].Width
	y1 := tokens[indices[0]].Top + tokens[indices[0]].Height
	for _, k := range indices[1:] {
		t := tokens[k]
		if t.Left < x0 {
			x0 = t.Left
		}
		if t.Top < y0 {
			y0 = t.Top
		}
		if t.Left+t.Width > x1 {
			x1 = t.Left + t.Width
		}
		if t.Top+t.Height > y1 {
			y1 = t.Top + t.Height
		}
	}
	w, h := x1-x0, y1-y0
	if w <= 2 || h <= 2 {
		return Highlight{}, false
	}
	return Highlight{
		Field: field,
		Color: constants.FieldColors[field],
		X:     float64(x0) * scaleX,
		Y:     float64(y0) * scaleY,
		W:     float64(w) * scaleX,
		H:     float64(h) * scaleY,
	}, true
}
