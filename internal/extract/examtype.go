package extract

import (
	"regexp"
	"strings"

	"github.com/lquispe/exam-renamer/constants"
)

const examTokenRe = `PRE[- ]?OCUPACIONAL|POST[- ]?OCUPACIONAL|PERI[OÓ]DICO|ANUAL|INGRESO|EGRESO|RETIRO`

var (
	// Checkbox-style forms: the marker glyph picks the selected option,
	// so these carry the highest confidence.
	reExamCheckedAfter  = regexp.MustCompile(`(?i)(` + examTokenRe + `)\s*\|?\s*[xX✓✗☒]\b`)
	reExamCheckedBefore = regexp.MustCompile(`(?i)[|]?\s*[xX✓✗☒]\s*\|?\s*(` + examTokenRe + `)`)

	reExamLabeled    = regexp.MustCompile(`(?i)TIPO\s+DE\s+(?:EXAMEN|EVALUACI[OÓ]N)\s*[:\-]\s*(` + examTokenRe + `)`)
	reExamContextual = regexp.MustCompile(`(?i)EXAMEN\s+M[EÉ]DICO\s+(` + examTokenRe + `)`)
)

var examVariantReplacer = strings.NewReplacer(
	"PRE-OCUPACIONAL", "PREOCUPACIONAL",
	"POST-OCUPACIONAL", "POSTOCUPACIONAL",
	"PRE OCUPACIONAL", "PREOCUPACIONAL",
	"POST OCUPACIONAL", "POSTOCUPACIONAL",
)

// examFallbackOrder is the probe order for the bare-keyword tier;
// POSTOCUPACIONAL probes before PERIODICO.
var examFallbackOrder = []constants.ExamType{
	constants.Preocupacional,
	constants.Postocupacional,
	constants.Periodico,
	constants.Ingreso,
	constants.Egreso,
	constants.Retiro,
}

// ExamTypeCandidates returns canonical exam types found in text.
//
// Tiers, descending confidence:
//  1. checkbox-style forms where a marker glyph adjoins the type
//  2. "TIPO DE EXAMEN:" / "TIPO DE EVALUACIÓN:" labels on the same line
//  3. contextual phrase "EXAMEN MÉDICO <type>"
//  4. bare keyword occurrence anywhere (only when tiers 1-3 are empty)
func ExamTypeCandidates(text string) []string {
	if text == "" {
		return nil
	}

	var prioritized []string
	appendCanonical := func(raw string) {
		if t, ok := constants.CanonicalExamLabel(raw); ok {
			prioritized = append(prioritized, string(t))
		}
	}

	for _, m := range reExamCheckedAfter.FindAllStringSubmatch(text, -1) {
		appendCanonical(m[1])
	}
	for _, m := range reExamCheckedBefore.FindAllStringSubmatch(text, -1) {
		appendCanonical(m[1])
	}
	for _, line := range strings.Split(text, "\n") {
		for _, m := range reExamLabeled.FindAllStringSubmatch(line, -1) {
			appendCanonical(m[1])
		}
	}
	for _, m := range reExamContextual.FindAllStringSubmatch(text, -1) {
		appendCanonical(m[1])
	}
	if len(prioritized) > 0 {
		return DedupeKeepOrder(prioritized)
	}

	// Fallback: bare keyword anywhere, after flattening hyphen/space
	// variants of PRE/POST-OCUPACIONAL.
	normalized := examVariantReplacer.Replace(strings.ToUpper(text))
	var found []string
	for _, t := range examFallbackOrder {
		if strings.Contains(normalized, string(t)) {
			found = append(found, string(t))
		}
	}
	return DedupeKeepOrder(found)
}
