package filename

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/lquispe/exam-renamer/constants"
)

// Fields holds values recovered from a filename. Empty string means the
// field was not present.
type Fields struct {
	IdentityNumber string
	PersonName     string
	Organization   string
	ExamType       string
	Date           string
}

// Empty reports whether no field was recovered.
func (f Fields) Empty() bool {
	return f == Fields{}
}

var (
	reDateExact    = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{2,4}$`)
	reDNIExact     = regexp.MustCompile(`^\d{8}$`)
	reAnyDateShape = regexp.MustCompile(`(\d{1,2}[.\-/]\d{1,2}[.\-/]\d{2,4})`)
	reAnyDNIShape  = regexp.MustCompile(`(\d{8})`)

	genericNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d{8}\s+([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\s]{8,50}?)\s*-`),
		regexp.MustCompile(`(?i)(?:DNI|ID)[:\s]*\d+\s+([A-ZÁÉÍÓÚÑ\s]{10,50}?)(?:-|CONSORCIO|EMPRESA|COMPANY)`),
	}

	reAllDigitsOrSpace = regexp.MustCompile(`^[\d\s]+$`)
)

// Parse recovers fields from a filename, dispatching on the detected
// convention; unrecognized shapes fall through to a generic heuristic.
func Parse(name string) Fields {
	base := stripExt(name)
	if base == "" {
		return Fields{}
	}
	switch Detect(name) {
	case constants.ConventionA:
		return parseConventionA(base)
	case constants.ConventionB:
		return parseConventionB(base)
	default:
		return parseGeneric(base)
	}
}

// parseConventionA walks "DD.MM.YY TIPO DNI NOMBRE-EMPRESA" left to
// right: date, exam type (full or abbreviated), identity number, then the
// remaining tokens as the person name. The organization sits after the
// first hyphen.
func parseConventionA(base string) Fields {
	var f Fields

	main, org := base, ""
	if i := strings.Index(base, "-"); i >= 0 {
		main, org = base[:i], base[i+1:]
	}

	tokens := strings.Fields(main)
	idx := 0

	if idx < len(tokens) && reDateExact.MatchString(tokens[idx]) {
		f.Date = tokens[idx]
		idx++
	}
	if idx < len(tokens) {
		if exam, ok := constants.ResolveExamToken(tokens[idx]); ok {
			f.ExamType = string(exam)
			idx++
		}
	}
	if idx < len(tokens) && reDNIExact.MatchString(tokens[idx]) {
		f.IdentityNumber = tokens[idx]
		idx++
	}
	if idx < len(tokens) {
		name := strings.TrimSpace(strings.Join(tokens[idx:], " "))
		if len(strings.Fields(name)) >= 2 {
			f.PersonName = name
		}
	}
	if org = strings.TrimSpace(org); org != "" {
		f.Organization = org
	}
	return f
}

// parseConventionB walks "DNI-NOMBRE-EMPRESA-TIPO-CMESPINAR-DD.MM.YY"
// from both ends; whatever segments remain in the middle are the person
// name (first) and the organization (rest, re-joined by hyphen).
func parseConventionB(base string) Fields {
	segments := strings.Split(base, "-")
	if len(segments) < 3 {
		return parseGeneric(base)
	}

	var f Fields
	start, end := 0, len(segments)-1

	if reDNIExact.MatchString(strings.TrimSpace(segments[0])) {
		f.IdentityNumber = strings.TrimSpace(segments[0])
		start = 1
	}
	if reDateExact.MatchString(strings.TrimSpace(segments[end])) {
		f.Date = strings.TrimSpace(segments[end])
		end--
	}
	if end >= start && strings.EqualFold(strings.TrimSpace(segments[end]), constants.CenterCode) {
		end--
	}
	if end >= start {
		if exam, ok := constants.ResolveExamToken(segments[end]); ok {
			f.ExamType = string(exam)
			end--
		}
	}

	middle := segments[start : end+1]
	switch {
	case len(middle) >= 2:
		f.PersonName = strings.TrimSpace(middle[0])
		f.Organization = strings.TrimSpace(strings.Join(middle[1:], "-"))
	case len(middle) == 1:
		val := strings.TrimSpace(middle[0])
		r := []rune(val)
		if len(strings.Fields(val)) >= 2 && len(r) > 0 && unicode.IsLetter(r[0]) {
			f.PersonName = val
		} else {
			f.Organization = val
		}
	}
	return f
}

// genericOrgFiller words are dropped when trimming a long organization
// tail in the generic parser. Tuned to the observed dataset; kept as-is.
var genericOrgFiller = map[string]struct{}{
	"MECANICA": {}, "REVESTIMIENTO": {}, "Y": {},
}

// parseGeneric extracts whatever fields it can from an unrecognized
// filename shape with independent pattern searches.
func parseGeneric(base string) Fields {
	var f Fields

	if m := reAnyDateShape.FindStringSubmatch(base); m != nil {
		f.Date = m[1]
	}
	if m := reAnyDNIShape.FindStringSubmatch(base); m != nil {
		f.IdentityNumber = m[1]
	}

	upper := strings.ToUpper(base)
	for _, token := range constants.ExamTokens() {
		if strings.Contains(upper, token) {
			if exam, ok := constants.ResolveExamToken(token); ok {
				f.ExamType = string(exam)
				break
			}
		}
	}

	for _, re := range genericNamePatterns {
		if m := re.FindStringSubmatch(base); m != nil {
			name := strings.TrimSpace(m[1])
			if len(strings.Fields(name)) >= 2 && !reAllDigitsOrSpace.MatchString(name) {
				f.PersonName = name
				break
			}
		}
	}

	if i := strings.Index(base, "-"); i >= 0 {
		org := strings.ReplaceAll(base[i+1:], "&", "Y")
		words := strings.Fields(org)
		if len(words) > 4 {
			head := words
			if len(head) > 6 {
				head = head[:6]
			}
			important := make([]string, 0, len(head))
			for _, w := range head {
				if _, filler := genericOrgFiller[strings.ToUpper(w)]; !filler {
					important = append(important, w)
				}
			}
			if len(important) > 0 {
				if len(important) > 4 {
					important = important[:4]
				}
				words = important
			} else {
				words = words[:3]
			}
		}
		if len(words) > 0 {
			f.Organization = strings.Join(words, " ")
		}
	}

	return f
}
