package constants

import "strings"

// ExamType is the canonical occupational-exam category.
type ExamType string

const (
	Preocupacional  ExamType = "PREOCUPACIONAL"
	Periodico       ExamType = "PERIODICO"
	Postocupacional ExamType = "POSTOCUPACIONAL"
	Ingreso         ExamType = "INGRESO"
	Egreso          ExamType = "EGRESO"
	Retiro          ExamType = "RETIRO"
)

// ExamTypes lists every canonical exam type.
var ExamTypes = []ExamType{
	Preocupacional,
	Periodico,
	Postocupacional,
	Ingreso,
	Egreso,
	Retiro,
}

// examAbbr maps canonical exam types to the short form used in filenames.
// The mapping is a bijection; abbrToExam below is its inverse.
var examAbbr = map[ExamType]string{
	Preocupacional:  "EMPO",
	Periodico:       "EMOA",
	Postocupacional: "EMOR",
	Ingreso:         "INGRESO",
	Egreso:          "EGRESO",
	Retiro:          "RETIRO",
}

var abbrToExam = func() map[string]ExamType {
	m := make(map[string]ExamType, len(examAbbr))
	for k, v := range examAbbr {
		m[v] = k
	}
	return m
}()

// examLabels maps checkbox/form label variants to canonical exam types.
var examLabels = map[string]ExamType{
	"PREOCUPACIONAL":   Preocupacional,
	"PRE-OCUPACIONAL":  Preocupacional,
	"PRE OCUPACIONAL":  Preocupacional,
	"POSTOCUPACIONAL":  Postocupacional,
	"POST-OCUPACIONAL": Postocupacional,
	"POST OCUPACIONAL": Postocupacional,
	"PERIODICO":        Periodico,
	"PERIÓDICO":        Periodico,
	"ANUAL":            Periodico,
	"INGRESO":          Ingreso,
	"EGRESO":           Egreso,
	"RETIRO":           Retiro,
}

// ExamAbbr returns the short form for an exam type. Unknown values pass
// through unchanged so a hand-edited field still renders.
func ExamAbbr(t string) string {
	if abbr, ok := examAbbr[ExamType(strings.ToUpper(strings.TrimSpace(t)))]; ok {
		return abbr
	}
	return strings.ToUpper(strings.TrimSpace(t))
}

// ResolveExamToken resolves a token that may be a canonical exam type or
// an abbreviation to the canonical form.
func ResolveExamToken(token string) (ExamType, bool) {
	upper := strings.ToUpper(strings.TrimSpace(token))
	if _, ok := examAbbr[ExamType(upper)]; ok {
		return ExamType(upper), true
	}
	if full, ok := abbrToExam[upper]; ok {
		return full, true
	}
	return "", false
}

// CanonicalExamLabel maps a form label variant (e.g. "PRE-OCUPACIONAL",
// "ANUAL") to its canonical exam type.
func CanonicalExamLabel(label string) (ExamType, bool) {
	t, ok := examLabels[strings.ToUpper(strings.TrimSpace(label))]
	return t, ok
}

// ExamTokens returns every token recognized as an exam type in filenames:
// canonical names first, then abbreviations.
func ExamTokens() []string {
	out := make([]string, 0, 2*len(ExamTypes))
	for _, t := range ExamTypes {
		out = append(out, string(t))
	}
	for _, t := range ExamTypes {
		if abbr := examAbbr[t]; abbr != string(t) {
			out = append(out, abbr)
		}
	}
	return out
}
