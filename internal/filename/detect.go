package filename

import (
	"regexp"
	"strings"

	"github.com/lquispe/exam-renamer/constants"
)

var (
	// Content signatures for ConventionA documents. The logo often OCRs
	// with stray spaces, so the first pattern tolerates them.
	contentSignatures = []*regexp.Regexp{
		regexp.MustCompile(`H\s*\.?\s*U?\s*D\s*B\s*AY`),
		regexp.MustCompile(`HUDBAY`),
		regexp.MustCompile(`FOR-SS[O0]-\d{3}`),
		regexp.MustCompile(`FORMATOS\s+PARA\s+LA\s+VALORACI[OÓ]N\s+DE\s+LA\s+APTITUD`),
		regexp.MustCompile(`AUTORIZADO\s+POR\s+HUDBAY`),
		regexp.MustCompile(`\bHBP\b`),
	}

	reLeadingDNI  = regexp.MustCompile(`^\d{8}-`)
	reLeadingDate = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{2,4}\s`)
)

// stripExt removes a trailing .pdf/.PDF extension.
func stripExt(name string) string {
	for _, ext := range []string{".pdf", ".PDF"} {
		if i := strings.LastIndex(name, ext); i >= 0 {
			name = name[:i]
		}
	}
	return strings.TrimSpace(name)
}

// DetectFromContent classifies document text by organization-specific
// signatures. Any match means ConventionA.
func DetectFromContent(text string) constants.Convention {
	if text == "" {
		return constants.ConventionUnknown
	}
	upper := strings.ToUpper(text)
	for _, re := range contentSignatures {
		if re.MatchString(upper) {
			return constants.ConventionA
		}
	}
	return constants.ConventionUnknown
}

// Detect classifies a filename by shape.
//
// ConventionB: starts with an 8-digit identity number and contains the
// fixed center code. ConventionA: starts with a D.M.Y date followed by
// whitespace.
func Detect(name string) constants.Convention {
	if name == "" {
		return constants.ConventionUnknown
	}
	base := stripExt(name)
	if base == "" {
		return constants.ConventionUnknown
	}
	if reLeadingDNI.MatchString(base) && strings.Contains(strings.ToUpper(base), constants.CenterCode) {
		return constants.ConventionB
	}
	if reLeadingDate.MatchString(base) {
		return constants.ConventionA
	}
	return constants.ConventionUnknown
}
