package analyze

import (
	"log/slog"
	"strings"

	"github.com/lquispe/exam-renamer/constants"
	"github.com/lquispe/exam-renamer/internal/extract"
	"github.com/lquispe/exam-renamer/internal/filename"
)

// Result is the full outcome of analyzing one document.
type Result struct {
	Success              bool                          `json:"success"`
	SuggestedName        string                        `json:"suggested_name,omitempty"`
	Candidates           map[constants.Field][]string  `json:"candidates"`
	Defaults             map[constants.Field]string    `json:"defaults"`
	Notes                []string                      `json:"notes"`
	TextChars            int                           `json:"text_chars"`
	UsedFilenameFallback bool                          `json:"used_filename_fallback"`
	DetectedFormat       constants.Convention          `json:"detected_format,omitempty"`
}

// Analyzer runs the candidate extractors and the filename parser over one
// document and merges their results. It holds no cross-document state.
type Analyzer struct {
	logger *slog.Logger
}

func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// Analyze extracts candidates from text, appends filename-derived values
// as lowest-priority fallbacks, picks defaults, and synthesizes the
// suggested name. The identity number is the only mandatory field.
func (a *Analyzer) Analyze(text, originalFilename string) Result {
	var fromName filename.Fields
	if originalFilename != "" {
		fromName = filename.Parse(originalFilename)
	}

	dniC := extract.IdentityNumberCandidates(text)
	nameC := extract.PersonNameCandidates(text)
	orgC := extract.OrganizationCandidates(text)
	examC := extract.ExamTypeCandidates(text)
	dateC := extract.DateCandidates(text)

	// Filename-derived values go last: used only when text yields nothing
	// earlier in the list.
	if fromName.IdentityNumber != "" {
		dniC = append(dniC, fromName.IdentityNumber)
	}
	if fromName.PersonName != "" {
		nameC = append(nameC, fromName.PersonName)
	}
	if fromName.Organization != "" {
		orgC = append(orgC, fromName.Organization)
	}
	if fromName.ExamType != "" {
		examC = append(examC, fromName.ExamType)
	}
	if fromName.Date != "" {
		dateC = append(dateC, extract.NormalizeDate(fromName.Date))
	}

	candidates := map[constants.Field][]string{
		constants.FieldIdentityNumber: extract.DedupeKeepOrder(dniC),
		constants.FieldPersonName:     extract.DedupeKeepOrder(cleanAll(nameC)),
		constants.FieldOrganization:   extract.DedupeKeepOrder(cleanAll(orgC)),
		constants.FieldExamType:       extract.DedupeKeepOrder(upperAll(examC)),
		constants.FieldDate:           extract.DedupeKeepOrder(normalizeDates(dateC)),
	}

	defaults := make(map[constants.Field]string, len(constants.Fields))
	for _, f := range constants.Fields {
		if c := candidates[f]; len(c) > 0 {
			defaults[f] = c[0]
		} else {
			defaults[f] = ""
		}
	}

	notes := []string{}
	success := true
	if defaults[constants.FieldIdentityNumber] == "" {
		success = false
		notes = append(notes, "No se detectó DNI (requerido).")
	}
	if defaults[constants.FieldDate] == "" {
		// Reported but never a hard failure.
		notes = append(notes, "No se detectó fecha de evaluación.")
	}

	suggested := ""
	if defaults[constants.FieldIdentityNumber] != "" {
		suggested = filename.Build(filename.Fields{
			IdentityNumber: defaults[constants.FieldIdentityNumber],
			PersonName:     defaults[constants.FieldPersonName],
			Organization:   defaults[constants.FieldOrganization],
			ExamType:       defaults[constants.FieldExamType],
			Date:           defaults[constants.FieldDate],
		}, nil, constants.ConventionA)
	}

	// Content signals take precedence over filename shape.
	detected := filename.DetectFromContent(text)
	if detected == constants.ConventionUnknown {
		detected = filename.Detect(originalFilename)
	}

	res := Result{
		Success:              success && suggested != "",
		SuggestedName:        suggested,
		Candidates:           candidates,
		Defaults:             defaults,
		Notes:                notes,
		TextChars:            len([]rune(text)),
		UsedFilenameFallback: len(strings.TrimSpace(text)) < 10 && !fromName.Empty(),
		DetectedFormat:       detected,
	}

	a.logger.Debug("analyze.done",
		"success", res.Success,
		"suggested", res.SuggestedName,
		"text_chars", res.TextChars,
		"format", string(res.DetectedFormat),
	)
	return res
}

func cleanAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = extract.CleanSpaces(v)
	}
	return out
}

func upperAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToUpper(extract.CleanSpaces(v))
	}
	return out
}

func normalizeDates(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = extract.NormalizeDate(v)
	}
	return out
}
