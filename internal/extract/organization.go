package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Tier 1: labeled fields, tolerating a trailing "/ word" qualifier
	// before the separator ("EMPRESA / CONTRATA | SINAR PERU").
	reOrgLabeled = regexp.MustCompile(`(?i)(?:EMPRESA|RAZON\s+SOCIAL|RAZÓN\s+SOCIAL|CONTRATISTA|CLIENTE|COMPAÑIA|COMPAÑÍA|COMPANIA|COMPANY)(?:\s*/\s*\w+)*\s*[:\-|]?\s*([A-ZÁÉÍÓÚÑ0-9a-záéíóúñ&\s.]{3,120})`)

	// OCR repairs for '&': "M á S" -> "M&S", "&$" -> "&".
	reAmpMisread  = regexp.MustCompile(`(\w)\s*á\s+(\w)`)
	reAmpDollar   = regexp.MustCompile(`&\$`)
	reAmpSpacing  = regexp.MustCompile(`\s*&\s*`)
)

// cleanOrganizationName repairs known OCR misreads, rejects mostly
// lowercase garbage, and caps the result at 5 tokens.
func cleanOrganizationName(raw string) string {
	raw = CleanSpaces(raw)
	raw = reAmpMisread.ReplaceAllString(raw, "$1&$2")
	raw = reAmpDollar.ReplaceAllString(raw, "&")
	raw = reAmpSpacing.ReplaceAllString(raw, "&")
	raw = CleanSpaces(raw)

	words := strings.Fields(raw)
	upperCount := 0
	for _, w := range words {
		if r := []rune(w); len(r) > 0 && unicode.IsUpper(r[0]) {
			upperCount++
		}
	}
	if len(words) > 3 && float64(upperCount) < float64(len(words))*0.5 {
		return ""
	}
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ")
}

// OrganizationCandidates returns possible organization names found in text.
func OrganizationCandidates(text string) []string {
	if text == "" {
		return nil
	}
	var candidates []string

	for _, m := range reOrgLabeled.FindAllStringSubmatch(text, -1) {
		raw := strings.TrimSpace(strings.SplitN(m[1], "\n", 2)[0])
		cleaned := cleanOrganizationName(raw)
		if len(cleaned) >= 3 {
			candidates = append(candidates, cleaned)
		}
	}

	// Tier 2: lines mentioning CONSORCIO, scanned near the top of the page.
	lines := strings.Split(text, "\n")
	if len(lines) > 80 {
		lines = lines[:80]
	}
	for _, line := range lines {
		l := CleanSpaces(line)
		if l == "" {
			continue
		}
		if strings.Contains(strings.ToUpper(l), "CONSORCIO") {
			if cleaned := cleanOrganizationName(l); cleaned != "" {
				candidates = append(candidates, cleaned)
			}
		}
	}

	return DedupeKeepOrder(candidates)
}
