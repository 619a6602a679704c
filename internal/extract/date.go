package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const dateToken = `(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`

var (
	// Tier 1: dates immediately preceded by an evaluation-date label.
	reLabeledDate = regexp.MustCompile(`(?i)(?:FECHA\s+DE\s+EVALUACI[OÓ]N|FECHA\s+DE\s+EXAMEN(?:\s+INICIAL)?|F\.\s*DE\s+EXAMEN|FECHA\s+EXAMEN|FECHA\s+DE\s+ATENCI[OÓ]N)\s*[:\-]?\s*` + dateToken)

	// Tier 2: any date-shaped token.
	reAnyDate = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
		regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{2,4}`),
		regexp.MustCompile(`\d{4}[/-]\d{1,2}[/-]\d{1,2}`),
	}

	reWordDate = regexp.MustCompile(`(?i)(\d{1,2})\s+(?:de\s+)?(enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre)\s+(?:de\s+)?(\d{4})`)
)

var spanishMonths = map[string]int{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4,
	"mayo": 5, "junio": 6, "julio": 7, "agosto": 8,
	"septiembre": 9, "octubre": 10, "noviembre": 11, "diciembre": 12,
}

// DateCandidates returns normalized dates found in text. Dates carrying
// an evaluation-date label come first; every other date-shaped token
// (including word-form Spanish dates) follows.
func DateCandidates(text string) []string {
	if text == "" {
		return nil
	}
	var found []string
	for _, m := range reLabeledDate.FindAllStringSubmatch(text, -1) {
		found = append(found, NormalizeDate(m[1]))
	}
	for _, re := range reAnyDate {
		for _, m := range re.FindAllString(text, -1) {
			found = append(found, NormalizeDate(m))
		}
	}
	for _, m := range reWordDate.FindAllStringSubmatch(text, -1) {
		if month, ok := spanishMonths[strings.ToLower(m[2])]; ok {
			found = append(found, m[1]+"-"+strconv.Itoa(month)+"-"+m[3])
		}
	}
	return DedupeKeepOrder(found)
}
