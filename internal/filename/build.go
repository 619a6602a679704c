package filename

import (
	"regexp"
	"strings"

	"github.com/lquispe/exam-renamer/constants"
	"github.com/lquispe/exam-renamer/internal/extract"
)

// Toggles switches individual fields off during synthesis. A field absent
// from the map is included.
type Toggles map[constants.Field]bool

func (t Toggles) include(f constants.Field) bool {
	if t == nil {
		return true
	}
	on, ok := t[f]
	return !ok || on
}

var reForbiddenChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Build renders the fields into a canonical filename under the given
// convention. Empty or toggled-off fields are omitted; an entirely empty
// result yields "".
func Build(f Fields, toggles Toggles, convention constants.Convention) string {
	dni := extract.CleanSpaces(f.IdentityNumber)
	name := strings.ToUpper(extract.CleanSpaces(f.PersonName))
	org := strings.ToUpper(extract.CleanSpaces(f.Organization))
	exam := strings.ToUpper(extract.CleanSpaces(f.ExamType))
	date := extract.NormalizeDate(f.Date)

	abbr := constants.ExamAbbr(exam)

	var out string
	if convention == constants.ConventionB {
		parts := make([]string, 0, 6)
		if toggles.include(constants.FieldIdentityNumber) && dni != "" {
			parts = append(parts, dni)
		}
		if toggles.include(constants.FieldPersonName) && name != "" {
			parts = append(parts, name)
		}
		if toggles.include(constants.FieldOrganization) && org != "" {
			parts = append(parts, org)
		}
		if toggles.include(constants.FieldExamType) && abbr != "" {
			parts = append(parts, abbr)
		}
		parts = append(parts, constants.CenterCode)
		if toggles.include(constants.FieldDate) && date != "" {
			parts = append(parts, extract.DateToShort(date))
		}
		out = strings.Join(parts, "-")
	} else {
		parts := make([]string, 0, 4)
		if toggles.include(constants.FieldDate) && date != "" {
			parts = append(parts, extract.DateToShort(date))
		}
		if toggles.include(constants.FieldExamType) && abbr != "" {
			parts = append(parts, abbr)
		}
		if toggles.include(constants.FieldIdentityNumber) && dni != "" {
			parts = append(parts, dni)
		}

		// Person name and organization share one segment, joined by a hyphen.
		nameOrg := ""
		if toggles.include(constants.FieldPersonName) && name != "" {
			nameOrg = name
		}
		if toggles.include(constants.FieldOrganization) && org != "" {
			if nameOrg != "" {
				nameOrg += "-" + org
			} else {
				nameOrg = org
			}
		}
		if nameOrg != "" {
			parts = append(parts, nameOrg)
		}
		out = strings.Join(parts, " ")
	}

	out = reForbiddenChars.ReplaceAllString(out, "")
	if out == "" {
		return ""
	}
	return out + ".pdf"
}
