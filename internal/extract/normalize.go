package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reSpaces       = regexp.MustCompile(`\s+`)
	reDateCleanup  = regexp.MustCompile(`[^\d./-]`)
	reDateSepRuns  = regexp.MustCompile(`-{2,}`)
	accentStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// CleanSpaces trims and collapses runs of whitespace to single spaces.
func CleanSpaces(s string) string {
	return reSpaces.ReplaceAllString(strings.TrimSpace(s), " ")
}

// NormalizeDate normalizes a date token to '-' separators.
// Examples: "31.12.25" -> "31-12-25"; "31/12/2025" -> "31-12-2025".
func NormalizeDate(s string) string {
	if s == "" {
		return ""
	}
	cleaned := reDateCleanup.ReplaceAllString(strings.TrimSpace(s), "")
	cleaned = strings.ReplaceAll(cleaned, ".", "-")
	cleaned = strings.ReplaceAll(cleaned, "/", "-")
	cleaned = reDateSepRuns.ReplaceAllString(cleaned, "-")
	return strings.Trim(cleaned, "-")
}

// DateToShort converts a normalized date (DD-MM-YYYY) to the short form
// DD.MM.YY used in filenames. Four-digit years keep their last two digits.
func DateToShort(date string) string {
	if date == "" {
		return ""
	}
	parts := strings.Split(strings.NewReplacer("/", "-", ".", "-").Replace(date), "-")
	if len(parts) != 3 {
		return strings.ReplaceAll(date, "-", ".")
	}
	dd, mm, yy := parts[0], parts[1], parts[2]
	if len(yy) == 4 {
		yy = yy[2:]
	}
	return dd + "." + mm + "." + yy
}

// StripAccents removes diacritics for accent-insensitive comparison.
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// dedupeKey is the normalization-equality key for candidate dedup:
// case- and whitespace-insensitive.
func dedupeKey(s string) string {
	return strings.ToUpper(CleanSpaces(s))
}

// DedupeKeepOrder removes empty values and normalization-duplicates,
// keeping the first occurrence (and its exact string) of each value.
func DedupeKeepOrder(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		key := dedupeKey(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
