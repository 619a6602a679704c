package extract

import "regexp"

// Identity-number tiers, descending confidence. The bare 8-digit run has
// a high false-positive rate and always goes last.
var (
	reDNILabeled = regexp.MustCompile(`(?i)\bDNI\s*[:\-]?\s*(\d{8})\b`)
	reDNIAnyRun  = regexp.MustCompile(`(?i)\bDNI\s*[:\-]?\s*(\d+)\b`)
	reDNIBare    = regexp.MustCompile(`\b(\d{8})\b`)
)

// IdentityNumberCandidates returns possible identity numbers found in
// text, ordered by tier confidence and deduplicated.
func IdentityNumberCandidates(text string) []string {
	if text == "" {
		return nil
	}
	var found []string
	for _, m := range reDNILabeled.FindAllStringSubmatch(text, -1) {
		found = append(found, m[1])
	}
	for _, m := range reDNIAnyRun.FindAllStringSubmatch(text, -1) {
		found = append(found, m[1])
	}
	for _, m := range reDNIBare.FindAllStringSubmatch(text, -1) {
		found = append(found, m[1])
	}
	return DedupeKeepOrder(found)
}
